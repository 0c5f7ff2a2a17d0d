package geom

import "math"

// Rect is an oriented rectangle: a center, a size and a rotation angle
// in radians. Unlike BBox it need not be axis-aligned. Intersection
// dispatch routes rectangles through their boundary polyline.
type Rect struct {
	Center Point
	Size   Point
	Angle  float64
}

// Corners returns the four corners in the same traversal order as
// BBox.Corners (lower-left first, counter-clockwise), rotated about
// the center.
func (r Rect) Corners() [4]Point {
	hw, hh := r.Size.X/2, r.Size.Y/2
	local := [4]Point{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}
	sin, cos := math.Sin(r.Angle), math.Cos(r.Angle)
	var out [4]Point
	for i, p := range local {
		out[i] = Point{
			X: r.Center.X + p.X*cos - p.Y*sin,
			Y: r.Center.Y + p.X*sin + p.Y*cos,
		}
	}
	return out
}

// Polyline returns the closed 4-vertex boundary polyline in corner
// traversal order.
func (r Rect) Polyline() Polyline {
	c := r.Corners()
	return Polyline{Points: c[:], Closed: true}
}

// Bounds returns the axis-aligned box enclosing the corners.
func (r Rect) Bounds() BBox {
	c := r.Corners()
	return BBoxOf(c[:]...)
}
