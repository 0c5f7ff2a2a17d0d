package geom

import "math"

// Circle is a closed-form shape with a center and radius. Line and ray
// intersections against circles use the native solvers; for boolean
// composition a circle is tessellated into a closed polyline.
type Circle struct {
	Center Point
	Radius float64
}

// Bounds returns the box enclosing the circle.
func (c Circle) Bounds() BBox {
	r := Point{c.Radius, c.Radius}
	return BBox{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

// Polyline tessellates the circle into a closed n-gon, counter-
// clockwise starting at angle 0. n values below 3 are raised to 3.
func (c Circle) Polyline(n int) Polyline {
	if n < 3 {
		n = 3
	}
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{
			X: c.Center.X + c.Radius*math.Cos(a),
			Y: c.Center.Y + c.Radius*math.Sin(a),
		}
	}
	return Polyline{Points: pts, Closed: true}
}

// Contains classifies a point against the circle: within tol of the
// rim is Coincident, closer than that is Inside.
func (c Circle) Contains(p Point, tol float64) Containment {
	d := p.Distance(c.Center)
	switch {
	case EqualWithin(d, c.Radius, tol):
		return Coincident
	case d < c.Radius:
		return Inside
	default:
		return Outside
	}
}
