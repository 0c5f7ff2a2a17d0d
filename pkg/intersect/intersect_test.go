package intersect

import (
	"math"
	"testing"

	"github.com/chazu/planar/pkg/geom"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func floatsClose(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !almostEqual(got[i], want[i]) {
			return false
		}
	}
	return true
}

func square() geom.Polyline {
	return geom.Polyline{
		Points: []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		Closed: true,
	}
}

// unknownShape is a Shape the dispatcher has no case for.
type unknownShape struct{}

func (unknownShape) Bounds() geom.BBox { return geom.BBox{} }

func TestLineVsBBox(t *testing.T) {
	l := geom.Line{From: geom.Point{X: -1, Y: 1}, To: geom.Point{X: 5, Y: 1}}
	box := geom.NewBBox(geom.Point{X: 0, Y: 0}, geom.Point{X: 4, Y: 4})
	got := Line(l, box)
	if !floatsClose(got, []float64{1.0 / 6, 5.0 / 6}) {
		t.Errorf("params = %v, want [1/6 5/6]", got)
	}
}

func TestLineVsLineAndRay(t *testing.T) {
	l := geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}}

	got := Line(l, geom.Line{From: geom.Point{X: 1, Y: -1}, To: geom.Point{X: 1, Y: 1}})
	if !floatsClose(got, []float64{0.25}) {
		t.Errorf("line target = %v, want [0.25]", got)
	}

	// The ray target's parameter constraint still applies even though
	// the result is reported along the query.
	got = Line(l, geom.Ray{Origin: geom.Point{X: 3, Y: -1}, Dir: geom.Point{X: 0, Y: 1}})
	if !floatsClose(got, []float64{0.75}) {
		t.Errorf("ray target = %v, want [0.75]", got)
	}
	got = Line(l, geom.Ray{Origin: geom.Point{X: 3, Y: -1}, Dir: geom.Point{X: 0, Y: -1}})
	if got != nil {
		t.Errorf("ray pointing away = %v, want none", got)
	}
}

func TestLineVsPoint(t *testing.T) {
	l := geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}}
	if got := Line(l, geom.Point{X: 1, Y: 0}); !floatsClose(got, []float64{0.25}) {
		t.Errorf("point on segment = %v, want [0.25]", got)
	}
	if got := Line(l, geom.Point{X: 1, Y: 1}); got != nil {
		t.Errorf("point off segment = %v, want none", got)
	}
}

func TestLineVsCircle(t *testing.T) {
	l := geom.Line{From: geom.Point{X: -2, Y: 0}, To: geom.Point{X: 2, Y: 0}}
	c := geom.Circle{Center: geom.Point{X: 0, Y: 0}, Radius: 1}
	if got := Line(l, c); !floatsClose(got, []float64{0.25, 0.75}) {
		t.Errorf("params = %v, want [0.25 0.75]", got)
	}
}

func TestLineVsPolygonWithHole(t *testing.T) {
	p, err := geom.NewPolygon(square(), geom.Polyline{
		Points: []geom.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}},
		Closed: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	l := geom.Line{From: geom.Point{X: -1, Y: 2}, To: geom.Point{X: 5, Y: 2}}
	got := Line(l, p)
	want := []float64{1.0 / 6, 1.0 / 3, 2.0 / 3, 5.0 / 6}
	if !floatsClose(got, want) {
		t.Errorf("params = %v, want %v", got, want)
	}
}

func TestLineVsShapesMergesSorted(t *testing.T) {
	l := geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}}
	list := geom.Shapes{
		geom.Line{From: geom.Point{X: 3, Y: -1}, To: geom.Point{X: 3, Y: 1}},
		geom.Line{From: geom.Point{X: 1, Y: -1}, To: geom.Point{X: 1, Y: 1}},
	}
	got := Line(l, list)
	if !floatsClose(got, []float64{0.25, 0.75}) {
		t.Errorf("params = %v, want [0.25 0.75]", got)
	}
}

func TestLineVsSharedVertexKeepsDuplicates(t *testing.T) {
	// The query passes exactly through the square's (4,0) corner, a
	// vertex shared by two segments of the target polyline. Both hits
	// are reported.
	l := geom.Line{From: geom.Point{X: 3, Y: -1}, To: geom.Point{X: 5, Y: 1}}
	got := Line(l, square())
	if !floatsClose(got, []float64{0.5, 0.5}) {
		t.Errorf("params = %v, want the duplicate pair [0.5 0.5]", got)
	}
}

func TestUnknownTargetIsEmpty(t *testing.T) {
	l := geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}}
	if got := Line(l, unknownShape{}); got != nil {
		t.Errorf("unknown target = %v, want none", got)
	}
	if got := Line(l, nil); got != nil {
		t.Errorf("nil target = %v, want none", got)
	}
}

func TestRayVsBBox(t *testing.T) {
	box := geom.NewBBox(geom.Point{X: 0, Y: 0}, geom.Point{X: 4, Y: 4})

	r := geom.Ray{Origin: geom.Point{X: -1, Y: 2}, Dir: geom.Point{X: 1, Y: 0}}
	if got := Ray(r, box); !floatsClose(got, []float64{1, 5}) {
		t.Errorf("crossing ray = %v, want [1 5]", got)
	}

	// A ray started inside only exits once.
	inside := geom.Ray{Origin: geom.Point{X: 2, Y: 2}, Dir: geom.Point{X: 1, Y: 0}}
	if got := Ray(inside, box); !floatsClose(got, []float64{2}) {
		t.Errorf("interior ray = %v, want [2]", got)
	}

	away := geom.Ray{Origin: geom.Point{X: -1, Y: 2}, Dir: geom.Point{X: -1, Y: 0}}
	if got := Ray(away, box); got != nil {
		t.Errorf("ray pointing away = %v, want none", got)
	}
}

func TestRayVsRay(t *testing.T) {
	r := geom.Ray{Origin: geom.Point{X: 0, Y: 0}, Dir: geom.Point{X: 1, Y: 1}}
	got := Ray(r, geom.Ray{Origin: geom.Point{X: 4, Y: 0}, Dir: geom.Point{X: -1, Y: 1}})
	if !floatsClose(got, []float64{2}) {
		t.Errorf("params = %v, want [2]", got)
	}
}

func TestRayVsCircle(t *testing.T) {
	c := geom.Circle{Center: geom.Point{X: 0, Y: 0}, Radius: 1}
	r := geom.Ray{Origin: geom.Point{X: -2, Y: 0}, Dir: geom.Point{X: 1, Y: 0}}
	if got := Ray(r, c); !floatsClose(got, []float64{1, 3}) {
		t.Errorf("params = %v, want [1 3]", got)
	}
}

func TestPolylineQuery(t *testing.T) {
	pl := square()

	// Crossing the right edge: segment 1 at local 0.5 is global 1.5.
	got := Polyline(pl, geom.Line{From: geom.Point{X: 3, Y: 2}, To: geom.Point{X: 5, Y: 2}})
	if !floatsClose(got, []float64{1.5}) {
		t.Errorf("params = %v, want [1.5]", got)
	}

	// A target through the (4,4) corner hits the end of segment 1 and
	// the start of segment 2; the shared vertex is reported once.
	got = Polyline(pl, geom.Line{From: geom.Point{X: 3, Y: 5}, To: geom.Point{X: 5, Y: 3}})
	if !floatsClose(got, []float64{2}) {
		t.Errorf("shared vertex = %v, want [2]", got)
	}
}

func TestPolylineQueryClosingVertexWraps(t *testing.T) {
	// A target through (0,0) hits segment 0 at parameter 0 and the end
	// of the closing segment at parameter 4, which wraps to 0.
	got := Polyline(square(), geom.Line{From: geom.Point{X: -1, Y: 1}, To: geom.Point{X: 1, Y: -1}})
	if !floatsClose(got, []float64{0}) {
		t.Errorf("closing vertex = %v, want [0]", got)
	}
}

func TestPolylineQueryFastReject(t *testing.T) {
	pl := square()
	if got := Polyline(pl, geom.Point{X: 10, Y: 10}); got != nil {
		t.Errorf("distant point = %v, want none", got)
	}
	far := geom.NewBBox(geom.Point{X: 10, Y: 10}, geom.Point{X: 12, Y: 12})
	if got := Polyline(pl, far); got != nil {
		t.Errorf("distant box = %v, want none", got)
	}
	if got := Polyline(pl, nil); got != nil {
		t.Errorf("nil target = %v, want none", got)
	}
}

func TestOpenPolylineQuery(t *testing.T) {
	open := geom.Polyline{Points: []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}}
	got := Polyline(open, geom.Line{From: geom.Point{X: 2, Y: -1}, To: geom.Point{X: 2, Y: 1}})
	if !floatsClose(got, []float64{0.5}) {
		t.Errorf("params = %v, want [0.5]", got)
	}
}
