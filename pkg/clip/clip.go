// Package clip defines the abstract ring-clipping interface.
// Implementations (polyclip) perform the raw boolean set operations on
// ring sets behind this interface, so the composition layer never
// depends on a specific clipping library.
package clip

import "github.com/chazu/planar/pkg/geom"

// Op selects the boolean set operation.
type Op int

const (
	Union Op = iota
	Intersection
	Difference
	XOr
)

func (op Op) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	case XOr:
		return "xor"
	default:
		return "unknown"
	}
}

// Ring is a closed loop of vertices. The closing edge is implicit; the
// first point is not repeated at the end.
type Ring []geom.Point

// RingSet is one polygon-like piece: the first ring is the outer
// boundary, the remaining rings are holes. Implementations tolerate
// either winding on input.
type RingSet []Ring

// Clipper performs boolean set operations on ring sets. The subject is
// one piece; the clipping operand may consist of several pieces. The
// result is a collection of disjoint pieces, each a (possibly
// multi-ring) RingSet. An empty result is a normal outcome, not an
// error.
type Clipper interface {
	Clip(op Op, subject RingSet, clippings []RingSet) ([]RingSet, error)
}
