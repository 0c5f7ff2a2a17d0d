package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// Containment classifies a point against a closed shape.
type Containment int

const (
	Outside Containment = iota
	Inside
	Coincident
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Coincident:
		return "coincident"
	default:
		return "unknown"
	}
}

// Polyline is an ordered sequence of points, optionally closed. A
// closed polyline has an implicit segment from the last point back to
// the first; the closing point is not repeated.
//
// The polyline parameterization is global: segment i contributes
// parameters in [i, i+1), so a parameter p decomposes into floor(p) =
// segment index and p-floor(p) = local segment parameter.
type Polyline struct {
	Points []Point
	Closed bool
}

// SegmentCount returns the number of derived segments.
func (pl Polyline) SegmentCount() int {
	n := len(pl.Points)
	if n < 2 {
		return 0
	}
	if pl.Closed {
		return n
	}
	return n - 1
}

// Segment returns segment i as a bounded Line. The closing segment of
// a closed polyline wraps back to the first point.
func (pl Polyline) Segment(i int) Line {
	j := i + 1
	if j == len(pl.Points) {
		j = 0
	}
	return Line{From: pl.Points[i], To: pl.Points[j]}
}

// Segments returns all derived segments in order.
func (pl Polyline) Segments() []Line {
	n := pl.SegmentCount()
	segs := make([]Line, n)
	for i := range segs {
		segs[i] = pl.Segment(i)
	}
	return segs
}

// Length returns the total length of all segments.
func (pl Polyline) Length() float64 {
	var sum float64
	for i := 0; i < pl.SegmentCount(); i++ {
		sum += pl.Segment(i).Length()
	}
	return sum
}

// PointAt returns the point at global parameter p. The integer part
// selects the segment, the fractional part the position within it.
// Parameters are clamped to the valid range; for a closed polyline the
// exact end parameter wraps to the start.
func (pl Polyline) PointAt(p float64) Point {
	n := pl.SegmentCount()
	if n == 0 {
		if len(pl.Points) == 1 {
			return pl.Points[0]
		}
		return Point{}
	}
	if p < 0 {
		p = 0
	}
	if p >= float64(n) {
		if pl.Closed {
			p = math.Mod(p, float64(n))
		} else {
			return pl.Points[len(pl.Points)-1]
		}
	}
	i := int(math.Floor(p))
	return pl.Segment(i).PointAt(p - float64(i))
}

// ClosestParameter returns the global parameter of the point on the
// polyline closest to p.
func (pl Polyline) ClosestParameter(p Point) float64 {
	best := 0.0
	bestDist := math.Inf(1)
	for i := 0; i < pl.SegmentCount(); i++ {
		seg := pl.Segment(i)
		u := seg.ClosestParameter(p)
		d := seg.PointAt(u).Distance(p)
		if d < bestDist {
			bestDist = d
			best = float64(i) + u
		}
	}
	return best
}

// Area returns the signed shoelace area over the vertex loop. Positive
// under counter-clockwise winding (Y-up convention). Only meaningful
// for closed polylines.
func (pl Polyline) Area() float64 {
	n := len(pl.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pl.Points[i].Cross(pl.Points[j])
	}
	return sum / 2
}

// IsClockwise reports whether the vertex loop winds clockwise
// (negative signed area).
func (pl Polyline) IsClockwise() bool { return pl.Area() < 0 }

// Reverse returns the polyline with vertex order reversed, flipping
// the winding direction.
func (pl Polyline) Reverse() Polyline {
	pts := make([]Point, len(pl.Points))
	for i, p := range pl.Points {
		pts[len(pts)-1-i] = p
	}
	return Polyline{Points: pts, Closed: pl.Closed}
}

// Bounds returns the box containing all vertices.
func (pl Polyline) Bounds() BBox { return BBoxOf(pl.Points...) }

// Transform applies an affine transform to every vertex.
func (pl Polyline) Transform(m sdf.M33) Polyline {
	pts := make([]Point, len(pl.Points))
	for i, p := range pl.Points {
		pts[i] = p.Transform(m)
	}
	return Polyline{Points: pts, Closed: pl.Closed}
}

// Contains classifies a point against a closed polyline using the
// even-odd rule. Points within tol of any segment are Coincident. An
// open polyline can only report Coincident or Outside.
func (pl Polyline) Contains(p Point, tol float64) Containment {
	for i := 0; i < pl.SegmentCount(); i++ {
		seg := pl.Segment(i)
		u := seg.ClosestParameter(p)
		if seg.PointAt(u).Distance(p) <= tol {
			return Coincident
		}
	}
	if !pl.Closed || len(pl.Points) < 3 {
		return Outside
	}
	inside := false
	n := len(pl.Points)
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := pl.Points[i], pl.Points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	if inside {
		return Inside
	}
	return Outside
}
