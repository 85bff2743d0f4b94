package field

import "fmt"

// Kind enumerates the field variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindConstant
	KindGenerator
	KindAdd
	KindMultiply
	KindSubtract
	KindMin
	KindMax
	KindPower
	KindAbs
	KindInvert
	KindScaleBias
	KindNormalize
	KindClamp
	KindCurve
	KindSelect
	KindBlend
	KindErosion
	KindBeach
	KindBeachSand
	KindSedimentCliff
	KindSedimentSediment
	KindSlope
	KindHeightSelector
	KindRegionCache

	kindCount
)

var kindInfo = [kindCount]struct {
	name  string
	arity int
}{
	KindInvalid:          {"invalid", 0},
	KindConstant:         {"constant", 0},
	KindGenerator:        {"generator", 0},
	KindAdd:              {"add", 2},
	KindMultiply:         {"multiply", 2},
	KindSubtract:         {"subtract", 2},
	KindMin:              {"min", 2},
	KindMax:              {"max", 2},
	KindPower:            {"power", 2},
	KindAbs:              {"abs", 1},
	KindInvert:           {"invert", 1},
	KindScaleBias:        {"scale_bias", 1},
	KindNormalize:        {"normalize", 1},
	KindClamp:            {"clamp", 1},
	KindCurve:            {"curve", 1},
	KindSelect:           {"select", 3},
	KindBlend:            {"blend", 3},
	KindErosion:          {"erosion", 1},
	KindBeach:            {"beach", 1},
	KindBeachSand:        {"beach_sand", 1},
	KindSedimentCliff:    {"sediment_cliff", 2},
	KindSedimentSediment: {"sediment_sediment", 2},
	KindSlope:            {"slope", 1},
	KindHeightSelector:   {"height_selector", 1},
	KindRegionCache:      {"region_cache", 1},
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindInfo[k].name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Arity is the number of child slots of the variant.
func (k Kind) Arity() int {
	if k < kindCount {
		return kindInfo[k].arity
	}
	return 0
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindConstant; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
