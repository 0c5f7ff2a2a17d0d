package geom

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon is the default tolerance used by containment and equality
// predicates when the caller does not supply one.
const Epsilon = 1e-3

// EqualWithin reports whether two scalars are within tol of each other.
func EqualWithin(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// Point is a 2D coordinate pair. Point equality (==) is exact; callers
// that want tolerant comparison use Equals.
type Point struct {
	X, Y float64
}

// vec converts to the sdfx vector type the arithmetic is delegated to.
func (p Point) vec() v2.Vec { return v2.Vec(p) }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point(p.vec().Add(q.vec())) }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point(p.vec().Sub(q.vec())) }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point(p.vec().MulScalar(s)) }

// Dot returns the dot product p · q.
func (p Point) Dot(q Point) float64 { return p.vec().Dot(q.vec()) }

// Cross returns the 2D cross product (z component) p × q.
func (p Point) Cross(q Point) float64 { return p.vec().Cross(q.vec()) }

// Length returns the distance from the origin.
func (p Point) Length() float64 { return p.vec().Length() }

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Equals reports whether p and q coincide within tol on both axes.
func (p Point) Equals(q Point, tol float64) bool {
	return p.vec().Equals(q.vec(), tol)
}

// Transform applies an affine transform to the point.
func (p Point) Transform(m sdf.M33) Point {
	return Point(m.MulPosition(p.vec()))
}

// Bounds returns a degenerate box at the point itself.
func (p Point) Bounds() BBox { return BBox{Min: p, Max: p} }

// Shape is the closed set of planar shape kinds understood by the
// kernel: Point, Line, Ray, BBox, Circle, Rect, Polyline, Polygon and
// Shapes (an ordered list of any of these).
type Shape interface {
	// Bounds returns the axis-aligned extent of the shape. A Ray is
	// unbounded; its Bounds reports only the origin and must not be
	// used for rejection tests.
	Bounds() BBox
}

// Shapes is an ordered list of shapes, itself usable as an intersection
// target.
type Shapes []Shape

// Bounds returns the union of the element bounds. Ray elements
// contribute only their origin.
func (s Shapes) Bounds() BBox {
	if len(s) == 0 {
		return BBox{}
	}
	b := s[0].Bounds()
	for _, e := range s[1:] {
		b = b.Union(e.Bounds())
	}
	return b
}
