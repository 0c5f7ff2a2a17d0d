// Package geom defines the planar shape primitives for the kernel:
// Point, BBox, Line, Ray, Circle, Rect, Polyline and Polygon, together
// with the tolerance helpers and containment predicates the rest of the
// system builds on. All shape values are immutable; operations that
// "change" a shape return a new value.
package geom
