package geom

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
)

// ErrInvalidGeometry reports a shape that violates a construction
// invariant, such as a polygon built from a non-closed ring.
var ErrInvalidGeometry = errors.New("invalid geometry")

// ErrEmptyRings reports a polygon construction with no rings at all.
var ErrEmptyRings = errors.New("empty ring list")

// Polygon is one outer boundary polyline plus zero or more holes.
// Construction canonicalizes orientation: the boundary always winds
// counter-clockwise and holes clockwise (Y-up convention), regardless
// of input winding. Boundary and holes must be closed.
type Polygon struct {
	Boundary Polyline
	Holes    []Polyline
}

// NewPolygon builds a polygon from a boundary and optional holes,
// enforcing the closure and orientation invariants.
func NewPolygon(boundary Polyline, holes ...Polyline) (Polygon, error) {
	if !boundary.Closed {
		return Polygon{}, fmt.Errorf("%w: boundary is not closed", ErrInvalidGeometry)
	}
	if len(boundary.Points) < 3 {
		return Polygon{}, fmt.Errorf("%w: boundary has %d points, need at least 3",
			ErrInvalidGeometry, len(boundary.Points))
	}
	if boundary.IsClockwise() {
		boundary = boundary.Reverse()
	}
	canonical := make([]Polyline, 0, len(holes))
	for i, h := range holes {
		if !h.Closed {
			return Polygon{}, fmt.Errorf("%w: hole %d is not closed", ErrInvalidGeometry, i)
		}
		if len(h.Points) < 3 {
			return Polygon{}, fmt.Errorf("%w: hole %d has %d points, need at least 3",
				ErrInvalidGeometry, i, len(h.Points))
		}
		if !h.IsClockwise() {
			h = h.Reverse()
		}
		canonical = append(canonical, h)
	}
	return Polygon{Boundary: boundary, Holes: canonical}, nil
}

// NewPolygonFromRings builds a polygon from raw vertex rings: the
// first ring is the boundary, the rest are holes. Rings are implicitly
// closed and must not repeat their first point.
func NewPolygonFromRings(rings ...[]Point) (Polygon, error) {
	if len(rings) == 0 {
		return Polygon{}, ErrEmptyRings
	}
	boundary := Polyline{Points: rings[0], Closed: true}
	holes := make([]Polyline, 0, len(rings)-1)
	for _, r := range rings[1:] {
		holes = append(holes, Polyline{Points: r, Closed: true})
	}
	return NewPolygon(boundary, holes...)
}

// Rings returns the polygon as raw vertex rings, boundary first, in
// stored (canonical) orientation.
func (p Polygon) Rings() [][]Point {
	rings := make([][]Point, 0, 1+len(p.Holes))
	rings = append(rings, p.Boundary.Points)
	for _, h := range p.Holes {
		rings = append(rings, h.Points)
	}
	return rings
}

// Area returns the boundary area minus the hole areas. Non-negative
// under the canonical orientation.
func (p Polygon) Area() float64 {
	a := p.Boundary.Area()
	for _, h := range p.Holes {
		a += h.Area() // holes wind clockwise, signed area is negative
	}
	return a
}

// Bounds returns the boundary's bounding box.
func (p Polygon) Bounds() BBox { return p.Boundary.Bounds() }

// Transform applies an affine transform to every ring. Orientation is
// re-canonicalized afterwards since a mirroring transform flips the
// winding of every ring.
func (p Polygon) Transform(m sdf.M33) Polygon {
	boundary := p.Boundary.Transform(m)
	holes := make([]Polyline, len(p.Holes))
	for i, h := range p.Holes {
		holes[i] = h.Transform(m)
	}
	out, err := NewPolygon(boundary, holes...)
	if err != nil {
		// Closure and ring sizes are preserved by an affine map, so
		// canonicalization cannot fail here.
		panic(fmt.Sprintf("geom: transform broke polygon invariant: %v", err))
	}
	return out
}

// Contains classifies a point against the polygon: points inside a
// hole are Outside, points on the boundary or a hole edge are
// Coincident. The first hole that claims the point short-circuits the
// scan.
func (p Polygon) Contains(pt Point, tol float64) Containment {
	c := p.Boundary.Contains(pt, tol)
	if c != Inside {
		return c
	}
	for _, h := range p.Holes {
		switch h.Contains(pt, tol) {
		case Inside:
			return Outside
		case Coincident:
			return Coincident
		}
	}
	return Inside
}
