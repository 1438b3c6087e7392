// Package graphics provides the geometry used for visibility testing:
// sizes, rectangles, insets and CSS-style root margins.
package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Area returns the area of the rectangle, or 0 if it is empty.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Touches reports whether the rectangles overlap or share an edge.
// Unlike Intersect it treats edge-adjacent and zero-area rects as touching.
func (r Rect) Touches(other Rect) bool {
	return r.Left <= other.Right+epsilon &&
		other.Left <= r.Right+epsilon &&
		r.Top <= other.Bottom+epsilon &&
		other.Top <= r.Bottom+epsilon
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Inflate grows the rect by the given insets. Negative insets shrink it.
func (r Rect) Inflate(insets EdgeInsets) Rect {
	return Rect{
		Left:   r.Left - insets.Left,
		Top:    r.Top - insets.Top,
		Right:  r.Right + insets.Right,
		Bottom: r.Bottom + insets.Bottom,
	}
}

// EdgeInsets holds per-side distances in logical pixels.
type EdgeInsets struct {
	Top, Right, Bottom, Left float64
}

// EdgeInsetsAll returns insets with the same value on every side.
func EdgeInsetsAll(value float64) EdgeInsets {
	return EdgeInsets{Top: value, Right: value, Bottom: value, Left: value}
}

// EdgeInsetsSymmetric returns insets with vertical applied to top and bottom
// and horizontal applied to left and right.
func EdgeInsetsSymmetric(vertical, horizontal float64) EdgeInsets {
	return EdgeInsets{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
