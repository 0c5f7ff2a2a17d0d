package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// BBox is an axis-aligned bounding box. The invariant Min.X <= Max.X and
// Min.Y <= Max.Y holds for every box built through NewBBox or BBoxOf;
// degenerate (zero-width or zero-height) boxes are valid.
type BBox struct {
	Min, Max Point
}

// NewBBox returns the box spanned by two opposite corners, sorting the
// coordinates so the min/max invariant holds regardless of input order.
func NewBBox(a, b Point) BBox {
	return BBox{
		Min: Point(a.vec().Min(b.vec())),
		Max: Point(a.vec().Max(b.vec())),
	}
}

// BBoxOf returns the smallest box containing all the given points.
// The zero box is returned for an empty argument list.
func BBoxOf(pts ...Point) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	b := BBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = Point(b.Min.vec().Min(p.vec()))
		b.Max = Point(b.Max.vec().Max(p.vec()))
	}
	return b
}

// Bounds returns the box itself.
func (b BBox) Bounds() BBox { return b }

// Width returns the extent along X.
func (b BBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the extent along Y.
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Size returns (width, height) as a point.
func (b BBox) Size() Point { return b.Max.Sub(b.Min) }

// Center returns the box midpoint.
func (b BBox) Center() Point { return b.Min.Add(b.Max).Scale(0.5) }

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		Min: Point(b.Min.vec().Min(o.Min.vec())),
		Max: Point(b.Max.vec().Max(o.Max.vec())),
	}
}

// Overlaps reports whether the two boxes overlap on both axes. Boxes
// that touch only at a boundary count as overlapping; the same closed
// interval rule is applied to both axes.
func (b BBox) Overlaps(o BBox) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// Intersection returns the overlapping region of the two boxes. The
// second result is false when the boxes fail to overlap on either axis.
func (b BBox) Intersection(o BBox) (BBox, bool) {
	if !b.Overlaps(o) {
		return BBox{}, false
	}
	return BBox{
		Min: Point(b.Min.vec().Max(o.Min.vec())),
		Max: Point(b.Max.vec().Min(o.Max.vec())),
	}, true
}

// Contains reports whether p lies within [min-tol, max+tol] on both
// axes. With strict set, points on (or within tol of) the boundary are
// excluded instead of included.
func (b BBox) Contains(p Point, strict bool, tol float64) bool {
	if strict {
		return p.X > b.Min.X+tol && p.X < b.Max.X-tol &&
			p.Y > b.Min.Y+tol && p.Y < b.Max.Y-tol
	}
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol
}

// ClosestPoint returns the point of the box closest to p. With
// includeInterior set, a point already inside the box is returned
// unchanged; otherwise it is projected onto the nearest edge.
func (b BBox) ClosestPoint(p Point, includeInterior bool) Point {
	clamped := Point{
		X: math.Min(math.Max(p.X, b.Min.X), b.Max.X),
		Y: math.Min(math.Max(p.Y, b.Min.Y), b.Max.Y),
	}
	if includeInterior || clamped != p {
		return clamped
	}
	// p is inside: push the coordinate with the smallest distance to a
	// bound out to that bound.
	dLeft := p.X - b.Min.X
	dRight := b.Max.X - p.X
	dBottom := p.Y - b.Min.Y
	dTop := b.Max.Y - p.Y
	minX := math.Min(dLeft, dRight)
	minY := math.Min(dBottom, dTop)
	if minX <= minY {
		if dLeft <= dRight {
			clamped.X = b.Min.X
		} else {
			clamped.X = b.Max.X
		}
	} else {
		if dBottom <= dTop {
			clamped.Y = b.Min.Y
		} else {
			clamped.Y = b.Max.Y
		}
	}
	return clamped
}

// PointAt maps box-local unit coordinates (0..1 on each axis) to global
// coordinates.
func (b BBox) PointAt(local Point) Point {
	return Point{
		X: b.Min.X + local.X*b.Width(),
		Y: b.Min.Y + local.Y*b.Height(),
	}
}

// Remap maps a global point into box-local unit coordinates; the
// inverse of PointAt up to floating tolerance. A degenerate axis maps
// to 0.
func (b BBox) Remap(global Point) Point {
	var local Point
	if w := b.Width(); w != 0 {
		local.X = (global.X - b.Min.X) / w
	}
	if h := b.Height(); h != 0 {
		local.Y = (global.Y - b.Min.Y) / h
	}
	return local
}

// Corners returns the four corners in the fixed traversal order
// lower-left, lower-right, upper-right, upper-left.
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{b.Min.X, b.Min.Y},
		{b.Max.X, b.Min.Y},
		{b.Max.X, b.Max.Y},
		{b.Min.X, b.Max.Y},
	}
}

// Edges returns the four boundary segments in corner traversal order.
func (b BBox) Edges() [4]Line {
	c := b.Corners()
	return [4]Line{
		{From: c[0], To: c[1]},
		{From: c[1], To: c[2]},
		{From: c[2], To: c[3]},
		{From: c[3], To: c[0]},
	}
}

// Polyline returns the closed 4-vertex boundary polyline in corner
// traversal order. Intersection dispatch for boxes routes through this
// conversion, so the vertex order here determines the segment indices
// reported back to callers.
func (b BBox) Polyline() Polyline {
	c := b.Corners()
	return Polyline{Points: c[:], Closed: true}
}

// Inflate grows the box by d on every side (shrinks for negative d).
// The min/max invariant is restored if a negative d collapses the box
// past its center.
func (b BBox) Inflate(d float64) BBox {
	off := Point{d, d}
	return NewBBox(b.Min.Sub(off), b.Max.Add(off))
}

// WithXRange returns a copy of the box with the given X interval.
func (b BBox) WithXRange(min, max float64) BBox {
	return NewBBox(Point{min, b.Min.Y}, Point{max, b.Max.Y})
}

// WithYRange returns a copy of the box with the given Y interval.
func (b BBox) WithYRange(min, max float64) BBox {
	return NewBBox(Point{b.Min.X, min}, Point{b.Max.X, max})
}

// Transform applies an affine transform to the box corners and returns
// the bounding box of the result.
func (b BBox) Transform(m sdf.M33) BBox {
	c := b.Corners()
	out := make([]Point, len(c))
	for i, p := range c {
		out[i] = Point(m.MulPosition(v2.Vec(p)))
	}
	return BBoxOf(out...)
}
