package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// PropertyType is the declared type of a property value.
type PropertyType int

const (
	// TypeText is the zero value so that undeclared properties are read verbatim.
	TypeText PropertyType = iota
	TypeNumber
	TypeInteger
	TypeBool
	TypeQuality
	TypeCurve
)

// Quality names accepted by TypeQuality.
const (
	QualityFast     = "fast"
	QualityStandard = "standard"
	QualityBest     = "best"
)

// CurvePointType is the cty type of one curve control point.
var CurvePointType = cty.Object(map[string]cty.Type{
	"in":  cty.Number,
	"out": cty.Number,
})

var (
	// ErrNotInteger is returned when an integer property holds a fractional number.
	ErrNotInteger = errors.New("value is not a whole number")
	// ErrUnknownQuality is returned for a quality outside fast, standard and best.
	ErrUnknownQuality = errors.New("unknown quality")
	// ErrMalformedCurve is returned when a control point is not written as in:out.
	ErrMalformedCurve = errors.New("malformed curve control point")
)

var propertyTypeNames = map[PropertyType]string{
	TypeText:    "text",
	TypeNumber:  "number",
	TypeInteger: "integer",
	TypeBool:    "bool",
	TypeQuality: "quality",
	TypeCurve:   "curve",
}

// String returns the keyword used for the type in documents.
func (t PropertyType) String() string {
	if s, ok := propertyTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PropertyType(%d)", int(t))
}

// ParsePropertyType maps a type keyword back to a PropertyType. "string" is
// accepted as an alias of "text".
func ParsePropertyType(keyword string) (PropertyType, bool) {
	if keyword == "string" {
		return TypeText, true
	}
	for t, name := range propertyTypeNames {
		if name == keyword {
			return t, true
		}
	}
	return TypeText, false
}

// CtyType returns the cty type a value of this declared type parses into.
func (t PropertyType) CtyType() cty.Type {
	switch t {
	case TypeNumber, TypeInteger:
		return cty.Number
	case TypeBool:
		return cty.Bool
	case TypeCurve:
		return cty.List(CurvePointType)
	default:
		return cty.String
	}
}

// ParseValue parses the string value of p according to its declared type.
func ParseValue(p Property) (cty.Value, error) {
	raw := strings.TrimSpace(p.Value)
	switch p.Type {
	case TypeNumber:
		return parseNumber(raw)
	case TypeInteger:
		v, err := parseNumber(raw)
		if err != nil {
			return cty.NilVal, err
		}
		if !v.AsBigFloat().IsInt() {
			return cty.NilVal, fmt.Errorf("%q: %w", raw, ErrNotInteger)
		}
		return v, nil
	case TypeBool:
		v, err := convert.Convert(cty.StringVal(strings.ToLower(raw)), cty.Bool)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%q is not a bool: %w", raw, err)
		}
		return v, nil
	case TypeQuality:
		q := strings.ToLower(raw)
		switch q {
		case QualityFast, QualityStandard, QualityBest:
			return cty.StringVal(q), nil
		}
		return cty.NilVal, fmt.Errorf("%q: %w", raw, ErrUnknownQuality)
	case TypeCurve:
		return parseCurve(raw)
	default:
		return cty.StringVal(p.Value), nil
	}
}

func parseNumber(raw string) (cty.Value, error) {
	if raw == "" {
		return cty.NilVal, errors.New("empty number")
	}
	v, err := convert.Convert(cty.StringVal(raw), cty.Number)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%q is not a number: %w", raw, err)
	}
	return v, nil
}

// parseCurve reads "in:out, in:out, ..." into a list of control points.
func parseCurve(raw string) (cty.Value, error) {
	if raw == "" {
		return cty.ListValEmpty(CurvePointType), nil
	}
	var points []cty.Value
	for i, part := range strings.Split(raw, ",") {
		pair := strings.Split(strings.TrimSpace(part), ":")
		if len(pair) != 2 {
			return cty.NilVal, fmt.Errorf("point %d %q: %w", i, part, ErrMalformedCurve)
		}
		in, err := parseNumber(strings.TrimSpace(pair[0]))
		if err != nil {
			return cty.NilVal, fmt.Errorf("point %d input: %w", i, err)
		}
		out, err := parseNumber(strings.TrimSpace(pair[1]))
		if err != nil {
			return cty.NilVal, fmt.Errorf("point %d output: %w", i, err)
		}
		points = append(points, cty.ObjectVal(map[string]cty.Value{"in": in, "out": out}))
	}
	return cty.ListVal(points), nil
}

// FormatCurve is the inverse of the curve parser.
func FormatCurve(points [][2]float64) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%g:%g", p[0], p[1])
	}
	return strings.Join(parts, ", ")
}

// CurvePoints decodes a value produced by ParseValue for TypeCurve.
func CurvePoints(v cty.Value) ([][2]float64, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	var points [][2]float64
	it := v.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		var in, out float64
		if err := gocty.FromCtyValue(elem.GetAttr("in"), &in); err != nil {
			return nil, err
		}
		if err := gocty.FromCtyValue(elem.GetAttr("out"), &out); err != nil {
			return nil, err
		}
		points = append(points, [2]float64{in, out})
	}
	return points, nil
}
