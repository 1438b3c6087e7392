package graphics

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/lazyview/pkg/errors"
)

// Unit is the unit of a single margin value.
type Unit int

const (
	// UnitPixel is an absolute length in logical pixels.
	UnitPixel Unit = iota
	// UnitPercent is relative to the root's width or height.
	UnitPercent
)

// Length is one side of a Margin.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixel} }

// Percent returns a percentage Length.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

func (l Length) resolve(extent float64) float64 {
	if l.Unit == UnitPercent {
		return extent * l.Value / 100
	}
	return l.Value
}

func (l Length) String() string {
	s := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.Unit == UnitPercent {
		return s + "%"
	}
	return s + "px"
}

// Margin is a root margin as written in CSS shorthand: it grows (or, with
// negative values, shrinks) the root rectangle before intersection testing.
type Margin struct {
	Top, Right, Bottom, Left Length
}

// Resolve converts the margin to pixel insets against the given root.
// Top and bottom percentages use the root height, left and right the width.
func (m Margin) Resolve(root Rect) EdgeInsets {
	return EdgeInsets{
		Top:    m.Top.resolve(root.Height()),
		Right:  m.Right.resolve(root.Width()),
		Bottom: m.Bottom.resolve(root.Height()),
		Left:   m.Left.resolve(root.Width()),
	}
}

// String renders the margin in four-value shorthand.
func (m Margin) String() string {
	return strings.Join([]string{m.Top.String(), m.Right.String(), m.Bottom.String(), m.Left.String()}, " ")
}

// ParseMargin parses a CSS-style margin shorthand such as "200px 0px" or
// "10% 0px 25% 0px". One to four whitespace-separated values are accepted,
// each a finite number suffixed with px or %; a bare 0 is allowed. The empty string is a zero
// margin.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) > 4 {
		return Margin{}, &errors.ParseError{Field: "rootMargin", Input: s, Reason: "expected at most four values"}
	}
	values := make([]Length, len(fields))
	for i, field := range fields {
		l, err := parseLength(field)
		if err != nil {
			return Margin{}, &errors.ParseError{Field: "rootMargin", Input: s, Reason: err.Error()}
		}
		values[i] = l
	}

	switch len(values) {
	case 0:
		return Margin{}, nil
	case 1:
		v := values[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	default:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	}
}

type lengthError string

func (e lengthError) Error() string { return string(e) }

func parseLength(field string) (Length, error) {
	unit := UnitPixel
	number := field
	switch {
	case strings.HasSuffix(field, "px"):
		number = strings.TrimSuffix(field, "px")
	case strings.HasSuffix(field, "%"):
		number = strings.TrimSuffix(field, "%")
		unit = UnitPercent
	default:
		if v, err := strconv.ParseFloat(field, 64); err == nil && floatEqual(v, 0) {
			return Px(0), nil
		}
		return Length{}, lengthError("value " + strconv.Quote(field) + " must end in px or %")
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, lengthError("value " + strconv.Quote(field) + " is not a finite number")
	}
	return Length{Value: v, Unit: unit}, nil
}
