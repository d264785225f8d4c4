// Package geometry derives the circle bounds and text placement for the
// circular gauge. Everything here is a pure function of its inputs; the
// caller decides when recomputation is worth the cost.
package geometry

import "math"

// Point is a position in the drawing surface's coordinate space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. A Rect with non-positive width or
// height is the degenerate sentinel; layout functions return the zero Rect
// when their inputs collapse and callers must skip drawing.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a rectangle from its edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Inset shrinks the rectangle by dx on the left and right and dy on the
// top and bottom. Negative values grow it.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right - dx,
		Bottom: r.Bottom - dy,
	}
}

// Offset translates the rectangle.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// AngleFromPoint returns the clockwise angle in degrees from center to
// target, where 0 points at 12 o'clock. The result is in [0, 360).
func AngleFromPoint(center, target Point) float64 {
	theta := math.Atan2(target.Y-center.Y, target.X-center.X)
	// Rotate so zero points north instead of east.
	angle := theta*180/math.Pi + 90
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle -= 360
	}
	return angle
}
