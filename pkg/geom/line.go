package geom

import "github.com/deadsy/sdfx/sdf"

// Line is a bounded segment parameterized by t in [0, 1]: t=0 is From,
// t=1 is To.
type Line struct {
	From, To Point
}

// Dir returns the direction vector To - From (not normalized; its
// length is the segment length, so parameters stay in [0, 1]).
func (l Line) Dir() Point { return l.To.Sub(l.From) }

// Length returns the segment length.
func (l Line) Length() float64 { return l.Dir().Length() }

// PointAt returns the point at parameter t.
func (l Line) PointAt(t float64) Point {
	return l.From.Add(l.Dir().Scale(t))
}

// ClosestParameter returns the parameter in [0, 1] of the point on the
// segment closest to p. A degenerate segment reports 0.
func (l Line) ClosestParameter(p Point) float64 {
	d := l.Dir()
	dd := d.Dot(d)
	if dd == 0 {
		return 0
	}
	t := p.Sub(l.From).Dot(d) / dd
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t
}

// Bounds returns the box spanned by the endpoints.
func (l Line) Bounds() BBox { return BBoxOf(l.From, l.To) }

// Transform applies an affine transform to both endpoints.
func (l Line) Transform(m sdf.M33) Line {
	return Line{From: l.From.Transform(m), To: l.To.Transform(m)}
}

// Reverse swaps the endpoints, mapping parameter t to 1-t.
func (l Line) Reverse() Line { return Line{From: l.To, To: l.From} }

// Ray is a half-line parameterized by t >= 0: t=0 is the origin and the
// parameter advances in units of the direction vector's length.
type Ray struct {
	Origin, Dir Point
}

// PointAt returns the point at parameter t.
func (r Ray) PointAt(t float64) Point {
	return r.Origin.Add(r.Dir.Scale(t))
}

// ClosestParameter returns the parameter t >= 0 of the point on the ray
// closest to p. A degenerate direction reports 0.
func (r Ray) ClosestParameter(p Point) float64 {
	dd := r.Dir.Dot(r.Dir)
	if dd == 0 {
		return 0
	}
	t := p.Sub(r.Origin).Dot(r.Dir) / dd
	if t < 0 {
		t = 0
	}
	return t
}

// Bounds reports only the ray origin; a ray's extent is unbounded and
// is never used for box rejection.
func (r Ray) Bounds() BBox { return BBox{Min: r.Origin, Max: r.Origin} }

// Transform applies an affine transform to the ray. The direction is
// transformed as a vector (translation does not apply to it).
func (r Ray) Transform(m sdf.M33) Ray {
	o := r.Origin.Transform(m)
	tip := r.Origin.Add(r.Dir).Transform(m)
	return Ray{Origin: o, Dir: tip.Sub(o)}
}
