package solve

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

func TestLineLine(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Line
		want Hit
		hit  bool
	}{
		{
			name: "perpendicular crossing",
			a:    geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}},
			b:    geom.Line{From: geom.Point{X: 2, Y: -2}, To: geom.Point{X: 2, Y: 2}},
			want: Hit{TA: 0.5, TB: 0.5},
			hit:  true,
		},
		{
			name: "parallel",
			a:    geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}},
			b:    geom.Line{From: geom.Point{X: 0, Y: 1}, To: geom.Point{X: 4, Y: 1}},
			hit:  false,
		},
		{
			name: "collinear overlap reports nothing",
			a:    geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 4, Y: 0}},
			b:    geom.Line{From: geom.Point{X: 2, Y: 0}, To: geom.Point{X: 6, Y: 0}},
			hit:  false,
		},
		{
			name: "lines cross but segments do not",
			a:    geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 1, Y: 0}},
			b:    geom.Line{From: geom.Point{X: 2, Y: -2}, To: geom.Point{X: 2, Y: 2}},
			hit:  false,
		},
		{
			name: "endpoint touch",
			a:    geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 2, Y: 0}},
			b:    geom.Line{From: geom.Point{X: 2, Y: 0}, To: geom.Point{X: 2, Y: 2}},
			want: Hit{TA: 1, TB: 0},
			hit:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineLine(tt.a, tt.b)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && (!almostEqual(got.TA, tt.want.TA) || !almostEqual(got.TB, tt.want.TB)) {
				t.Errorf("hit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRayLine(t *testing.T) {
	r := geom.Ray{Origin: geom.Point{X: 0, Y: 0}, Dir: geom.Point{X: 1, Y: 0}}

	h, ok := RayLine(r, geom.Line{From: geom.Point{X: 3, Y: -1}, To: geom.Point{X: 3, Y: 1}})
	if !ok || !almostEqual(h.TA, 3) || !almostEqual(h.TB, 0.5) {
		t.Errorf("forward hit = %+v ok=%v", h, ok)
	}

	// Segment behind the ray origin.
	if _, ok := RayLine(r, geom.Line{From: geom.Point{X: -3, Y: -1}, To: geom.Point{X: -3, Y: 1}}); ok {
		t.Error("segment behind the origin should miss")
	}

	// Unnormalized direction scales the parameter.
	fast := geom.Ray{Origin: geom.Point{X: 0, Y: 0}, Dir: geom.Point{X: 2, Y: 0}}
	h, ok = RayLine(fast, geom.Line{From: geom.Point{X: 3, Y: -1}, To: geom.Point{X: 3, Y: 1}})
	if !ok || !almostEqual(h.TA, 1.5) {
		t.Errorf("unnormalized ray parameter = %v, want 1.5", h.TA)
	}
}

func TestRayRay(t *testing.T) {
	a := geom.Ray{Origin: geom.Point{X: 0, Y: 0}, Dir: geom.Point{X: 1, Y: 1}}
	b := geom.Ray{Origin: geom.Point{X: 4, Y: 0}, Dir: geom.Point{X: -1, Y: 1}}
	h, ok := RayRay(a, b)
	if !ok || !almostEqual(h.TA, 2) || !almostEqual(h.TB, 2) {
		t.Errorf("hit = %+v ok=%v", h, ok)
	}

	// Crossing point lies behind one of the rays.
	c := geom.Ray{Origin: geom.Point{X: 4, Y: 0}, Dir: geom.Point{X: 1, Y: -1}}
	if _, ok := RayRay(a, c); ok {
		t.Error("divergent rays should miss")
	}

	if _, ok := RayRay(a, geom.Ray{Origin: geom.Point{X: 0, Y: 1}, Dir: geom.Point{X: 1, Y: 1}}); ok {
		t.Error("parallel rays should miss")
	}
}

func TestLineCircle(t *testing.T) {
	unit := geom.Circle{Center: geom.Point{X: 0, Y: 0}, Radius: 1}
	tests := []struct {
		name string
		l    geom.Line
		c    geom.Circle
		want []float64
	}{
		{
			name: "secant through the center",
			l:    geom.Line{From: geom.Point{X: -2, Y: 0}, To: geom.Point{X: 2, Y: 0}},
			c:    unit,
			want: []float64{0.25, 0.75},
		},
		{
			name: "tangent",
			l:    geom.Line{From: geom.Point{X: -2, Y: 1}, To: geom.Point{X: 2, Y: 1}},
			c:    unit,
			want: []float64{0.5},
		},
		{
			name: "miss",
			l:    geom.Line{From: geom.Point{X: -2, Y: 2}, To: geom.Point{X: 2, Y: 2}},
			c:    unit,
			want: nil,
		},
		{
			name: "segment ends inside",
			l:    geom.Line{From: geom.Point{X: -2, Y: 0}, To: geom.Point{X: 0, Y: 0}},
			c:    unit,
			want: []float64{0.5},
		},
		{
			name: "segment entirely inside",
			l:    geom.Line{From: geom.Point{X: -0.5, Y: 0}, To: geom.Point{X: 0.5, Y: 0}},
			c:    unit,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineCircle(tt.l, tt.c); !floatsClose(got, tt.want) {
				t.Errorf("LineCircle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRayCircle(t *testing.T) {
	unit := geom.Circle{Center: geom.Point{X: 0, Y: 0}, Radius: 1}

	got := RayCircle(geom.Ray{Origin: geom.Point{X: -2, Y: 0}, Dir: geom.Point{X: 1, Y: 0}}, unit)
	if !floatsClose(got, []float64{1, 3}) {
		t.Errorf("secant ray = %v, want [1 3]", got)
	}

	// A ray started at the center only exits once.
	got = RayCircle(geom.Ray{Origin: geom.Point{X: 0, Y: 0}, Dir: geom.Point{X: 1, Y: 0}}, unit)
	if !floatsClose(got, []float64{1}) {
		t.Errorf("ray from center = %v, want [1]", got)
	}

	// Circle entirely behind the origin.
	got = RayCircle(geom.Ray{Origin: geom.Point{X: 2, Y: 0}, Dir: geom.Point{X: 1, Y: 0}}, unit)
	if len(got) != 0 {
		t.Errorf("circle behind origin = %v, want none", got)
	}
}

func TestRayBox(t *testing.T) {
	box := geom.NewBBox(geom.Point{X: 0, Y: 0}, geom.Point{X: 4, Y: 4})
	tests := []struct {
		name string
		r    geom.Ray
		want bool
	}{
		{"straight through", geom.Ray{Origin: geom.Point{X: -1, Y: 2}, Dir: geom.Point{X: 1, Y: 0}}, true},
		{"pointing away", geom.Ray{Origin: geom.Point{X: -1, Y: 2}, Dir: geom.Point{X: -1, Y: 0}}, false},
		{"origin inside", geom.Ray{Origin: geom.Point{X: 2, Y: 2}, Dir: geom.Point{X: 0, Y: 1}}, true},
		{"grazing a corner", geom.Ray{Origin: geom.Point{X: -1, Y: 5}, Dir: geom.Point{X: 1, Y: -1}}, true},
		{"parallel outside the slab", geom.Ray{Origin: geom.Point{X: -1, Y: 5}, Dir: geom.Point{X: 1, Y: 0}}, false},
		{"axis-parallel inside the slab", geom.Ray{Origin: geom.Point{X: 2, Y: -3}, Dir: geom.Point{X: 0, Y: 1}}, true},
		{"zero direction inside", geom.Ray{Origin: geom.Point{X: 1, Y: 1}, Dir: geom.Point{X: 0, Y: 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RayBox(tt.r, box); got != tt.want {
				t.Errorf("RayBox = %v, want %v", got, tt.want)
			}
		})
	}
}
