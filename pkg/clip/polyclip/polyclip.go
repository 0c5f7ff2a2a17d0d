// Package polyclip implements the clip.Clipper interface using the
// github.com/ctessum/polyclip-go Vatti clipping library.
//
// The library returns a flat list of contours with no grouping into
// pieces, so this backend also re-nests the output: contours contained
// in an even number of other contours start a new piece, the rest
// become holes of their immediate parent.
package polyclip

import (
	"fmt"

	pc "github.com/ctessum/polyclip-go"

	"github.com/chazu/planar/pkg/clip"
	"github.com/chazu/planar/pkg/geom"
)

// Compile-time interface check.
var _ clip.Clipper = (*Clipper)(nil)

// Clipper implements clip.Clipper using polyclip-go.
type Clipper struct{}

// New returns a new polyclip-backed Clipper.
func New() *Clipper {
	return &Clipper{}
}

// toPolyclip converts ring sets to the library's polygon type. All
// rings of all sets are flattened into one multi-contour polygon.
func toPolyclip(sets []clip.RingSet) pc.Polygon {
	var poly pc.Polygon
	for _, set := range sets {
		for _, ring := range set {
			contour := make(pc.Contour, len(ring))
			for i, p := range ring {
				contour[i] = pc.Point{X: p.X, Y: p.Y}
			}
			poly = append(poly, contour)
		}
	}
	return poly
}

func toOp(op clip.Op) (pc.Op, error) {
	switch op {
	case clip.Union:
		return pc.UNION, nil
	case clip.Intersection:
		return pc.INTERSECTION, nil
	case clip.Difference:
		return pc.DIFFERENCE, nil
	case clip.XOr:
		return pc.XOR, nil
	default:
		return 0, fmt.Errorf("polyclip: unsupported operation %v", op)
	}
}

// Clip performs the boolean operation and regroups the flat contour
// output into nested ring-set pieces.
func (c *Clipper) Clip(op clip.Op, subject clip.RingSet, clippings []clip.RingSet) ([]clip.RingSet, error) {
	pcOp, err := toOp(op)
	if err != nil {
		return nil, err
	}
	result := toPolyclip([]clip.RingSet{subject}).Construct(pcOp, toPolyclip(clippings))

	rings := make([]clip.Ring, 0, len(result))
	for _, contour := range result {
		if len(contour) < 3 {
			continue // degenerate sliver, drop
		}
		ring := make(clip.Ring, len(contour))
		for i, p := range contour {
			ring[i] = geom.Point{X: p.X, Y: p.Y}
		}
		rings = append(rings, ring)
	}
	return regroup(rings), nil
}

// ringLoop views a ring as a closed polyline for containment and area
// tests.
func ringLoop(r clip.Ring) geom.Polyline {
	return geom.Polyline{Points: []geom.Point(r), Closed: true}
}

// contains reports whether ring outer contains ring inner. The first
// inner vertex that classifies cleanly decides; a ring whose vertices
// all lie on the outer ring's edges counts as contained.
func contains(outer geom.Polyline, inner clip.Ring) bool {
	for _, p := range inner {
		switch outer.Contains(p, 0) {
		case geom.Inside:
			return true
		case geom.Outside:
			return false
		}
	}
	return true
}

// regroup nests a flat ring list into pieces. Depth counting handles
// islands inside holes: even depth starts a new piece, odd depth is a
// hole attached to its smallest enclosing ring.
func regroup(rings []clip.Ring) []clip.RingSet {
	if len(rings) == 0 {
		return nil
	}
	loops := make([]geom.Polyline, len(rings))
	areas := make([]float64, len(rings))
	for i, r := range rings {
		loops[i] = ringLoop(r)
		a := loops[i].Area()
		if a < 0 {
			a = -a
		}
		areas[i] = a
	}

	depth := make([]int, len(rings))
	parent := make([]int, len(rings))
	for i := range rings {
		parent[i] = -1
		for j := range rings {
			if i == j || !contains(loops[j], rings[i]) {
				continue
			}
			depth[i]++
			if parent[i] == -1 || areas[j] < areas[parent[i]] {
				parent[i] = j
			}
		}
	}

	piece := make(map[int]int) // ring index -> output piece index
	var out []clip.RingSet
	for i := range rings {
		if depth[i]%2 == 0 {
			piece[i] = len(out)
			out = append(out, clip.RingSet{rings[i]})
		}
	}
	for i := range rings {
		if depth[i]%2 == 1 && parent[i] != -1 {
			if pi, ok := piece[parent[i]]; ok {
				out[pi] = append(out[pi], rings[i])
			}
		}
	}
	return out
}
