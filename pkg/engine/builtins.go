package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/planar/pkg/clip"
	"github.com/chazu/planar/pkg/compose"
	"github.com/chazu/planar/pkg/geom"
	"github.com/chazu/planar/pkg/intersect"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms shape-script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding the need to register keyword symbols as globals.
//  2. ; line comments become // comments, which is what zygomys parses.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword". Preserve := assignment.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpShape wraps a geom.Shape so shapes can be passed between
// builtins through the zygomys environment.
type sexpShape struct {
	shape geom.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %T)", s.shape)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning
// the keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a parsed mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

func toShape(s zygo.Sexp) (geom.Shape, error) {
	if sh, ok := s.(*sexpShape); ok {
		return sh.shape, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

func toPolyline(s zygo.Sexp) (geom.Polyline, error) {
	sh, err := toShape(s)
	if err != nil {
		return geom.Polyline{}, err
	}
	pl, ok := sh.(geom.Polyline)
	if !ok {
		return geom.Polyline{}, fmt.Errorf("expected polyline, got %T", sh)
	}
	return pl, nil
}

func toPolygon(s zygo.Sexp) (geom.Polygon, error) {
	sh, err := toShape(s)
	if err != nil {
		return geom.Polygon{}, err
	}
	p, ok := sh.(geom.Polygon)
	if !ok {
		return geom.Polygon{}, fmt.Errorf("expected polygon, got %T", sh)
	}
	return p, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go
// slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// coords extracts a flat [x1 y1 x2 y2 ...] number list into points.
func coords(s zygo.Sexp) ([]geom.Point, error) {
	vals, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	if len(vals)%2 != 0 {
		return nil, fmt.Errorf("coordinate list has odd length %d", len(vals))
	}
	pts := make([]geom.Point, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		x, err := toFloat64(vals[i])
		if err != nil {
			return nil, err
		}
		y, err := toFloat64(vals[i+1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	return pts, nil
}

func floats(args []zygo.Sexp, want int, name string) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", name, want, len(args))
	}
	out := make([]float64, want)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

func polygonArray(env *zygo.Zlisp, polys []geom.Polygon) zygo.Sexp {
	vals := make([]zygo.Sexp, len(polys))
	for i, p := range polys {
		vals[i] = &sexpShape{shape: p}
	}
	return &zygo.SexpArray{Val: vals, Env: env}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the shape DSL into a zygomys environment.
// Builtins append emitted shapes to the provided scene. Source must be
// preprocessed with preprocessSource before evaluation so :keyword
// tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene, clipper clip.Clipper) {

	// (point x y)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 2, "point")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: geom.Point{X: f[0], Y: f[1]}}, nil
	})

	// (line x1 y1 x2 y2)
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 4, "line")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: geom.Line{
			From: geom.Point{X: f[0], Y: f[1]},
			To:   geom.Point{X: f[2], Y: f[3]},
		}}, nil
	})

	// (ray ox oy dx dy)
	env.AddFunction("ray", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 4, "ray")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: geom.Ray{
			Origin: geom.Point{X: f[0], Y: f[1]},
			Dir:    geom.Point{X: f[2], Y: f[3]},
		}}, nil
	})

	// (circle cx cy r)
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 3, "circle")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: geom.Circle{
			Center: geom.Point{X: f[0], Y: f[1]},
			Radius: f[2],
		}}, nil
	})

	// (bbox minx miny maxx maxy)
	env.AddFunction("bbox", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floats(args, 4, "bbox")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{shape: geom.NewBBox(
			geom.Point{X: f[0], Y: f[1]},
			geom.Point{X: f[2], Y: f[3]},
		)}, nil
	})

	// (rect cx cy w h :angle a)
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats(pa.positional, 4, "rect")
		if err != nil {
			return zygo.SexpNull, err
		}
		r := geom.Rect{
			Center: geom.Point{X: f[0], Y: f[1]},
			Size:   geom.Point{X: f[2], Y: f[3]},
		}
		if v, ok := pa.kw["angle"]; ok {
			a, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: angle: %w", err)
			}
			r.Angle = a
		}
		return &sexpShape{shape: r}, nil
	})

	// (polyline [x1 y1 x2 y2 ...] :closed true)
	env.AddFunction("polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("polyline requires a coordinate list")
		}
		pts, err := coords(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
		}
		pl := geom.Polyline{Points: pts}
		if v, ok := pa.kw["closed"]; ok {
			closed, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: closed: %w", err)
			}
			pl.Closed = closed
		}
		return &sexpShape{shape: pl}, nil
	})

	// (polygon boundary hole1 hole2 ...)
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("polygon requires a boundary polyline")
		}
		boundary, err := toPolyline(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: boundary: %w", err)
		}
		holes := make([]geom.Polyline, 0, len(args)-1)
		for i, a := range args[1:] {
			h, err := toPolyline(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: hole %d: %w", i, err)
			}
			holes = append(holes, h)
		}
		p, err := geom.NewPolygon(boundary, holes...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpShape{shape: p}, nil
	})

	// (union p operand ...) etc. — each returns an array of polygons.
	boolOp := func(opName string, op func(clip.Clipper, geom.Polygon, ...geom.Shape) ([]geom.Polygon, error)) {
		env.AddFunction(opName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires a polygon and at least one operand", opName)
			}
			p, err := toPolygon(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", opName, err)
			}
			operands := make([]geom.Shape, 0, len(args)-1)
			for i, a := range args[1:] {
				s, err := toShape(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: operand %d: %w", opName, i, err)
				}
				operands = append(operands, s)
			}
			out, err := op(clipper, p, operands...)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", opName, err)
			}
			return polygonArray(env, out), nil
		})
	}
	boolOp("union", compose.Union)
	boolOp("intersection", compose.Intersection)
	boolOp("difference", compose.Difference)

	// (intersect query target) — parameters along the query shape.
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires a query shape and a target")
		}
		q, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: query: %w", err)
		}
		target, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: target: %w", err)
		}
		var params []float64
		switch query := q.(type) {
		case geom.Line:
			params = intersect.Line(query, target)
		case geom.Ray:
			params = intersect.Ray(query, target)
		case geom.Polyline:
			params = intersect.Polyline(query, target)
		default:
			return zygo.SexpNull, fmt.Errorf("intersect: query must be a line, ray or polyline, got %T", q)
		}
		vals := make([]zygo.Sexp, len(params))
		for i, t := range params {
			vals[i] = &zygo.SexpFloat{Val: t}
		}
		return &zygo.SexpArray{Val: vals, Env: env}, nil
	})

	// (contains polygon (point x y)) -> "inside" | "outside" | "coincident"
	env.AddFunction("contains", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("contains requires a polygon and a point")
		}
		p, err := toPolygon(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		s, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		pt, ok := s.(geom.Point)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("contains: expected point, got %T", s)
		}
		return &zygo.SexpStr{S: p.Contains(pt, geom.Epsilon).String()}, nil
	})

	// (area shape) — polygon or closed polyline.
	env.AddFunction("area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("area requires one shape")
		}
		s, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("area: %w", err)
		}
		switch t := s.(type) {
		case geom.Polygon:
			return &zygo.SexpFloat{Val: t.Area()}, nil
		case geom.Polyline:
			return &zygo.SexpFloat{Val: t.Area()}, nil
		default:
			return zygo.SexpNull, fmt.Errorf("area: expected polygon or polyline, got %T", s)
		}
	})

	// (emit shape ...) — append shapes to the scene. Arrays of shapes
	// (as returned by the boolean operations) are flattened.
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for i, a := range args {
			if arr, ok := a.(*zygo.SexpArray); ok {
				for j, el := range arr.Val {
					s, err := toShape(el)
					if err != nil {
						return zygo.SexpNull, fmt.Errorf("emit: argument %d[%d]: %w", i, j, err)
					}
					scene.Shapes = append(scene.Shapes, s)
				}
				continue
			}
			s, err := toShape(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("emit: argument %d: %w", i, err)
			}
			scene.Shapes = append(scene.Shapes, s)
		}
		if len(args) > 0 {
			return args[len(args)-1], nil
		}
		return zygo.SexpNull, nil
	})
}
