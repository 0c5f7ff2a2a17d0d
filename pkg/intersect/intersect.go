// Package intersect implements the intersection dispatch engine: given
// a parametric query shape (Line, Ray or Polyline) and a target shape,
// it returns the ascending list of parameters along the query where
// intersections occur.
//
// The target may be any member of the closed shape set (Point, Line,
// Ray, BBox, Circle, Rect, Polyline, Polygon) or a Shapes list. An
// unrecognized target degrades to an empty result rather than an
// error, so "no intersection computable" reads the same as "no
// intersection found".
package intersect

import (
	"sort"

	"github.com/chazu/planar/pkg/geom"
	"github.com/chazu/planar/pkg/solve"
)

// Line returns the parameters along l where it intersects target, in
// ascending order.
func Line(l geom.Line, target geom.Shape) []float64 {
	return dispatch(lineQuery{l}, target)
}

// Ray returns the parameters along r where it intersects target, in
// ascending order.
func Ray(r geom.Ray, target geom.Shape) []float64 {
	return dispatch(rayQuery{r}, target)
}

// Polyline returns the global parameters along pl where it intersects
// target, ascending and deduplicated. Each segment is intersected as a
// bounded line and its local parameter u becomes i+u. Deduplication is
// deliberate here: a target crossing exactly at a shared vertex of
// segments i and i+1 would otherwise be reported twice.
func Polyline(pl geom.Polyline, target geom.Shape) []float64 {
	if !polylineAccept(pl, target) {
		return nil
	}
	n := pl.SegmentCount()
	seen := make(map[float64]struct{})
	for i := 0; i < n; i++ {
		for _, u := range dispatch(lineQuery{pl.Segment(i)}, target) {
			p := float64(i) + u
			if pl.Closed && p == float64(n) {
				p = 0 // the closing vertex belongs to parameter 0
			}
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]float64, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Float64s(out)
	return out
}

// polylineAccept is the bounded-query fast reject: the query
// polyline's own box against the target's extent. Ray targets and
// shape lists are exempt because their extent is not boxed.
func polylineAccept(pl geom.Polyline, target geom.Shape) bool {
	switch t := target.(type) {
	case geom.Point:
		return pl.Bounds().Contains(t, false, geom.Epsilon)
	case geom.BBox:
		return pl.Bounds().Overlaps(t)
	case geom.Ray:
		return true
	case geom.Shapes:
		return true
	case nil:
		return false
	default:
		return pl.Bounds().Overlaps(target.Bounds())
	}
}

// query abstracts the two unbounded-capable query kinds (Line, Ray) so
// the per-target dispatch is written once.
type query interface {
	vsLine(l geom.Line) (float64, bool)
	vsRay(r geom.Ray) (float64, bool)
	vsCircle(c geom.Circle) []float64
	closestParameter(p geom.Point) float64
	pointAt(t float64) geom.Point
	entersBox(b geom.BBox) bool
}

type lineQuery struct{ l geom.Line }

func (q lineQuery) vsLine(l geom.Line) (float64, bool) {
	h, ok := solve.LineLine(q.l, l)
	return h.TA, ok
}

func (q lineQuery) vsRay(r geom.Ray) (float64, bool) {
	// The solver is ray-first; the query's parameter is TB.
	h, ok := solve.RayLine(r, q.l)
	return h.TB, ok
}

func (q lineQuery) vsCircle(c geom.Circle) []float64 {
	return solve.LineCircle(q.l, c)
}

func (q lineQuery) closestParameter(p geom.Point) float64 {
	return q.l.ClosestParameter(p)
}

func (q lineQuery) pointAt(t float64) geom.Point { return q.l.PointAt(t) }

func (q lineQuery) entersBox(b geom.BBox) bool {
	return q.l.Bounds().Overlaps(b)
}

type rayQuery struct{ r geom.Ray }

func (q rayQuery) vsLine(l geom.Line) (float64, bool) {
	h, ok := solve.RayLine(q.r, l)
	return h.TA, ok
}

func (q rayQuery) vsRay(r geom.Ray) (float64, bool) {
	h, ok := solve.RayRay(q.r, r)
	return h.TA, ok
}

func (q rayQuery) vsCircle(c geom.Circle) []float64 {
	return solve.RayCircle(q.r, c)
}

func (q rayQuery) closestParameter(p geom.Point) float64 {
	return q.r.ClosestParameter(p)
}

func (q rayQuery) pointAt(t float64) geom.Point { return q.r.PointAt(t) }

func (q rayQuery) entersBox(b geom.BBox) bool {
	return solve.RayBox(q.r, b)
}

// dispatch resolves one query against one target. Single-segment
// results are trivially ordered; composite cases sort after
// concatenation. Duplicate hits at shared vertices are preserved.
func dispatch(q query, target geom.Shape) []float64 {
	switch t := target.(type) {
	case geom.Shapes:
		var out []float64
		for _, s := range t {
			out = append(out, dispatch(q, s)...)
		}
		sort.Float64s(out)
		return out
	case geom.Point:
		u := q.closestParameter(t)
		if q.pointAt(u) == t {
			return []float64{u}
		}
		return nil
	case geom.Line:
		if u, ok := q.vsLine(t); ok {
			return []float64{u}
		}
		return nil
	case geom.Ray:
		if u, ok := q.vsRay(t); ok {
			return []float64{u}
		}
		return nil
	case geom.BBox:
		return dispatch(q, t.Polyline())
	case geom.Rect:
		return dispatch(q, t.Polyline())
	case geom.Circle:
		return q.vsCircle(t)
	case geom.Polyline:
		return polylineTarget(q, t)
	case geom.Polygon:
		out := polylineTarget(q, t.Boundary)
		for _, h := range t.Holes {
			out = append(out, polylineTarget(q, h)...)
		}
		sort.Float64s(out)
		return out
	default:
		return nil
	}
}

// polylineTarget tests every segment of the target polyline against
// the query, after a bounding-box fast reject on the query side. Two
// numerically equal hits at a shared vertex are both kept.
func polylineTarget(q query, pl geom.Polyline) []float64 {
	if pl.SegmentCount() == 0 || !q.entersBox(pl.Bounds()) {
		return nil
	}
	var out []float64
	for i := 0; i < pl.SegmentCount(); i++ {
		if u, ok := q.vsLine(pl.Segment(i)); ok {
			out = append(out, u)
		}
	}
	sort.Float64s(out)
	return out
}
