// Package compose implements polygon boolean composition: union,
// intersection and difference of a polygon against polygons, closed
// polylines or lists of them, on top of a clip.Clipper. Each output
// piece is rehydrated into a validated Polygon, re-running the
// orientation canonicalization regardless of the winding the clipper
// emitted.
package compose

import (
	"errors"
	"fmt"

	"github.com/chazu/planar/pkg/clip"
	"github.com/chazu/planar/pkg/geom"
)

// ErrUnsupportedOperand reports an operand shape that cannot be
// converted to a ring set.
var ErrUnsupportedOperand = errors.New("operand cannot be converted to rings")

// circleSegments is the tessellation resolution used when a circle
// participates in boolean composition.
const circleSegments = 64

// Union returns the union of p with the operands. The result may be
// one piece or several disjoint pieces.
func Union(c clip.Clipper, p geom.Polygon, operands ...geom.Shape) ([]geom.Polygon, error) {
	return run(c, clip.Union, p, operands)
}

// Intersection returns the shared area(s) of p and the operands.
func Intersection(c clip.Clipper, p geom.Polygon, operands ...geom.Shape) ([]geom.Polygon, error) {
	return run(c, clip.Intersection, p, operands)
}

// Difference subtracts the operands from p. A fully cancelling
// difference yields an empty, non-error result.
func Difference(c clip.Clipper, p geom.Polygon, operands ...geom.Shape) ([]geom.Polygon, error) {
	return run(c, clip.Difference, p, operands)
}

func run(c clip.Clipper, op clip.Op, p geom.Polygon, operands []geom.Shape) ([]geom.Polygon, error) {
	subject := ringSetOfPolygon(p)
	clippings := make([]clip.RingSet, 0, len(operands))
	for i, s := range operands {
		rs, err := ringSet(s)
		if err != nil {
			return nil, fmt.Errorf("compose: operand %d: %w", i, err)
		}
		clippings = append(clippings, rs)
	}

	pieces, err := c.Clip(op, subject, clippings)
	if err != nil {
		return nil, fmt.Errorf("compose: %s: %w", op, err)
	}

	out := make([]geom.Polygon, 0, len(pieces))
	for _, piece := range pieces {
		if len(piece) == 0 {
			continue // empty piece, not an error
		}
		poly, err := geom.NewPolygonFromRings(ringsOf(piece)...)
		if err != nil {
			return nil, fmt.Errorf("compose: rehydrating piece: %w", err)
		}
		out = append(out, poly)
	}
	return out, nil
}

func ringsOf(set clip.RingSet) [][]geom.Point {
	rings := make([][]geom.Point, len(set))
	for i, r := range set {
		rings[i] = []geom.Point(r)
	}
	return rings
}

func ringSetOfPolygon(p geom.Polygon) clip.RingSet {
	set := make(clip.RingSet, 0, 1+len(p.Holes))
	for _, ring := range p.Rings() {
		set = append(set, clip.Ring(ring))
	}
	return set
}

// ringSet converts an operand shape to its ring-set representation.
// Polygons contribute boundary plus holes; closed polylines, boxes,
// rectangles and circles contribute a single ring. Anything else is an
// unsupported operand.
func ringSet(s geom.Shape) (clip.RingSet, error) {
	switch t := s.(type) {
	case geom.Polygon:
		return ringSetOfPolygon(t), nil
	case geom.Polyline:
		if !t.Closed {
			return nil, fmt.Errorf("%w: open polyline", ErrUnsupportedOperand)
		}
		return clip.RingSet{clip.Ring(t.Points)}, nil
	case geom.BBox:
		return clip.RingSet{clip.Ring(t.Polyline().Points)}, nil
	case geom.Rect:
		return clip.RingSet{clip.Ring(t.Polyline().Points)}, nil
	case geom.Circle:
		return clip.RingSet{clip.Ring(t.Polyline(circleSegments).Points)}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperand, s)
	}
}
