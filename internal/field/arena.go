package field

import "fmt"

// ID addresses a field inside an Arena.
type ID int32

// NoID marks an unbound child slot. It evaluates to 0.
const NoID ID = -1

type entry struct {
	op       Op
	children []ID
}

// Arena owns a set of fields and their child bindings.
type Arena struct {
	entries []entry
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Len is the number of fields in the arena.
func (a *Arena) Len() int { return len(a.entries) }

// Add appends a field with every child slot unbound.
func (a *Arena) Add(op Op) Field {
	children := make([]ID, op.Kind().Arity())
	for i := range children {
		children[i] = NoID
	}
	a.entries = append(a.entries, entry{op: op, children: children})
	return Field{arena: a, id: ID(len(a.entries) - 1)}
}

// Field returns the handle for id.
func (a *Arena) Field(id ID) (Field, bool) {
	if a.entry(id) == nil {
		return Field{}, false
	}
	return Field{arena: a, id: id}, true
}

func (a *Arena) entry(id ID) *entry {
	if id < 0 || int(id) >= len(a.entries) {
		return nil
	}
	return &a.entries[id]
}

// Bind sets slot of parent to child. Bindings that would make parent
// reachable from itself are refused with ErrCycle and leave the arena
// unchanged. Rebinding a RegionCache's input invalidates its grid.
func (a *Arena) Bind(parent ID, slot int, child ID) error {
	pe := a.entry(parent)
	if pe == nil {
		return fmt.Errorf("parent %d: %w", parent, ErrUnknownField)
	}
	if slot < 0 || slot >= len(pe.children) {
		return fmt.Errorf("%s %d slot %d: %w", pe.op.Kind(), parent, slot, ErrSlotOutOfRange)
	}
	if child != NoID {
		if a.entry(child) == nil {
			return fmt.Errorf("child %d: %w", child, ErrUnknownField)
		}
		if a.reaches(child, parent) {
			return fmt.Errorf("binding %d into %d: %w", child, parent, ErrCycle)
		}
	}
	pe.children[slot] = child
	if c, ok := pe.op.(*RegionCache); ok {
		c.invalidate()
	}
	return nil
}

// Child returns the ID bound to slot of parent, or NoID.
func (a *Arena) Child(parent ID, slot int) ID {
	e := a.entry(parent)
	if e == nil || slot < 0 || slot >= len(e.children) {
		return NoID
	}
	return e.children[slot]
}

// reaches reports whether target is reachable from start through child links.
func (a *Arena) reaches(start, target ID) bool {
	seen := make([]bool, len(a.entries))
	stack := []ID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if id < 0 || seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, a.entries[id].children...)
	}
	return false
}

// Field is a handle to one arena entry. The zero Field is invalid and
// evaluates to 0.
type Field struct {
	arena *Arena
	id    ID
}

// Valid reports whether f addresses an arena entry.
func (f Field) Valid() bool {
	return f.arena != nil && f.arena.entry(f.id) != nil
}

// ID returns the arena index of f.
func (f Field) ID() ID {
	if f.arena == nil {
		return NoID
	}
	return f.id
}

// Arena returns the arena owning f.
func (f Field) Arena() *Arena { return f.arena }

// Kind returns the variant of f.
func (f Field) Kind() Kind {
	if !f.Valid() {
		return KindInvalid
	}
	return f.arena.entries[f.id].op.Kind()
}

// Op returns the parameters of f.
func (f Field) Op() Op {
	if !f.Valid() {
		return nil
	}
	return f.arena.entries[f.id].op
}

// Child returns the field bound to slot, if any.
func (f Field) Child(slot int) (Field, bool) {
	if !f.Valid() {
		return Field{}, false
	}
	return f.arena.Field(f.arena.Child(f.id, slot))
}

// Bind sets slot of f to child. Both must belong to the same arena.
func (f Field) Bind(slot int, child Field) error {
	if !f.Valid() {
		return ErrUnknownField
	}
	if child.arena != f.arena {
		return fmt.Errorf("child from another arena: %w", ErrUnknownField)
	}
	return f.arena.Bind(f.id, slot, child.id)
}

// Evaluate samples f at p. Evaluation is total: invalid handles and unbound
// slots yield 0.
func (f Field) Evaluate(p Vec3) float64 {
	if f.arena == nil {
		return 0
	}
	return f.arena.eval(f.id, p)
}

// Walk visits every field reachable from f once, children before parents.
func (f Field) Walk(visit func(Field)) {
	if !f.Valid() {
		return
	}
	seen := make([]bool, len(f.arena.entries))
	var walk func(id ID)
	walk = func(id ID) {
		if id < 0 || seen[id] {
			return
		}
		seen[id] = true
		for _, c := range f.arena.entries[id].children {
			walk(c)
		}
		visit(Field{arena: f.arena, id: id})
	}
	walk(f.id)
}
