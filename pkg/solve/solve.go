// Package solve implements the pairwise primitive intersection
// solvers: line-line, ray-line, ray-ray, line-circle, ray-circle, and
// the ray-box entry test used for fast rejection. The dispatch engine
// in package intersect treats these results as numerically final.
package solve

import (
	"math"

	"github.com/chazu/planar/pkg/geom"
)

// Hit is a single intersection between two parametric shapes: TA is
// the parameter along the first participant, TB along the second.
type Hit struct {
	TA, TB float64
}

// LineLine intersects two bounded segments. Parallel and collinear
// segments report no intersection.
func LineLine(a, b geom.Line) (Hit, bool) {
	da, db := a.Dir(), b.Dir()
	kross := da.Cross(db)
	if kross == 0 {
		return Hit{}, false
	}
	e := b.From.Sub(a.From)
	s := e.Cross(db) / kross
	t := e.Cross(da) / kross
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return Hit{}, false
	}
	return Hit{TA: s, TB: t}, true
}

// RayLine intersects a ray with a bounded segment. TA is the parameter
// along the ray (>= 0), TB along the segment (in [0, 1]).
func RayLine(r geom.Ray, l geom.Line) (Hit, bool) {
	dl := l.Dir()
	kross := r.Dir.Cross(dl)
	if kross == 0 {
		return Hit{}, false
	}
	e := l.From.Sub(r.Origin)
	s := e.Cross(dl) / kross
	t := e.Cross(r.Dir) / kross
	if s < 0 || t < 0 || t > 1 {
		return Hit{}, false
	}
	return Hit{TA: s, TB: t}, true
}

// RayRay intersects two rays. Both parameters must be non-negative.
func RayRay(a, b geom.Ray) (Hit, bool) {
	kross := a.Dir.Cross(b.Dir)
	if kross == 0 {
		return Hit{}, false
	}
	e := b.Origin.Sub(a.Origin)
	s := e.Cross(b.Dir) / kross
	t := e.Cross(a.Dir) / kross
	if s < 0 || t < 0 {
		return Hit{}, false
	}
	return Hit{TA: s, TB: t}, true
}

// circleParams solves |from + t*dir - center|^2 = r^2 for t, returning
// 0, 1 or 2 roots in ascending order.
func circleParams(from, dir geom.Point, c geom.Circle) []float64 {
	f := from.Sub(c.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return nil
	}
	b := 2 * f.Dot(dir)
	cc := f.Dot(f) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	return []float64{t1, t2}
}

// LineCircle intersects a bounded segment with a circle, returning the
// parameters along the segment in ascending order. Only parameters in
// [0, 1] are reported.
func LineCircle(l geom.Line, c geom.Circle) []float64 {
	var out []float64
	for _, t := range circleParams(l.From, l.Dir(), c) {
		if t >= 0 && t <= 1 {
			out = append(out, t)
		}
	}
	return out
}

// RayCircle intersects a ray with a circle, returning the parameters
// along the ray in ascending order. Only non-negative parameters are
// reported.
func RayCircle(r geom.Ray, c geom.Circle) []float64 {
	var out []float64
	for _, t := range circleParams(r.Origin, r.Dir, c) {
		if t >= 0 {
			out = append(out, t)
		}
	}
	return out
}

// RayBox reports whether the ray's extent enters the box, using the
// slab method. Touching the boundary counts as entering. This is the
// fast-reject primitive for ray queries; a false result guarantees the
// ray intersects nothing inside the box.
func RayBox(r geom.Ray, b geom.BBox) bool {
	tmin, tmax := 0.0, math.Inf(1)

	update := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !update(r.Origin.X, r.Dir.X, b.Min.X, b.Max.X) {
		return false
	}
	return update(r.Origin.Y, r.Dir.Y, b.Min.Y, b.Max.Y)
}
