/*
Package geom implements the geometry primitives the typesetting engine
is built on: points and axis-aligned rectangles in device units (points
at 72 DPI), with origin at the top-left of the page and Y growing
downward.

Adapted from the teacher's core/dimen package, which modelled TeX-like
scaled-integer stretch units (SP/BP/PT/Fil...) for a Knuth-Plass line
breaker. This engine's breaker is the spec's greedy one and its
coordinates are real page-space values, not fractional glue, so the
scaled-integer unit system is dropped in favor of a plain float64.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package geom

import "fmt"

// PT is a device unit: 1 PT = 1/72 inch, i.e. a PDF/PostScript point.
type PT float64

// Some common paper sizes, in points.
var (
	A4     = Point{595.28, 841.89}
	A5     = Point{419.53, 595.28}
	Letter = Point{612, 792}
	Legal  = Point{612, 1008}
)

func (d PT) String() string {
	return fmt.Sprintf("%.2fpt", float64(d))
}

// Point is a coordinate on a page.
type Point struct {
	X, Y PT
}

// Origin is the top-left corner of a page.
var Origin = Point{0, 0}

// Add returns p shifted by delta.
func (p Point) Add(delta Point) Point {
	return Point{p.X + delta.X, p.Y + delta.Y}
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Rect is an axis-aligned rectangle, Start at the top-left, End at the
// bottom-right.
type Rect struct {
	Start, End Point
}

// NewRect builds a rectangle from an origin and a width/height.
func NewRect(start Point, width, height PT) Rect {
	return Rect{start, Point{start.X + width, start.Y + height}}
}

// Width is the horizontal extent of r.
func (r Rect) Width() PT {
	return r.End.X - r.Start.X
}

// Height is the vertical extent of r.
func (r Rect) Height() PT {
	return r.End.Y - r.Start.Y
}

// IsValid reports whether r has strictly positive width/height, greater
// than the given minima. No epsilon tolerance is applied.
func (r Rect) IsValid(minWidth, minHeight PT) bool {
	return r.Width() > minWidth && r.Height() > minHeight
}

// ContainsPoint uses half-open semantics on the upper bound, i.e. a
// point lying exactly on End is not contained.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Start.X <= p.X && p.X < r.End.X &&
		r.Start.Y <= p.Y && p.Y < r.End.Y
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return r.Start.X <= other.Start.X && r.Start.Y <= other.Start.Y &&
		other.End.X <= r.End.X && other.End.Y <= r.End.Y
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.End.X <= other.Start.X || other.End.X <= r.Start.X {
		return false
	}
	if r.End.Y <= other.Start.Y || other.End.Y <= r.Start.Y {
		return false
	}
	return true
}

// Min returns the smaller of two device units.
func Min(a, b PT) PT {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two device units.
func Max(a, b PT) PT {
	if a > b {
		return a
	}
	return b
}
