package engine

import (
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keyword becomes marker string",
			in:   `(polyline [0 0 1 1] :closed true)`,
			want: `(polyline [0 0 1 1] "__kw_closed" true)`,
		},
		{
			name: "semicolon comment becomes slashes",
			in:   "(point 1 2) ; trailing note",
			want: "(point 1 2) // trailing note",
		},
		{
			name: "double semicolon collapses",
			in:   ";; header\n(point 1 2)",
			want: "// header\n(point 1 2)",
		},
		{
			name: "keyword inside string untouched",
			in:   `(emit "a :closed literal")`,
			want: `(emit "a :closed literal")`,
		},
		{
			name: "semicolon inside string untouched",
			in:   `(emit "a ; b")`,
			want: `(emit "a ; b")`,
		},
		{
			name: "assignment operator preserved",
			in:   `(x := 5)`,
			want: `(x := 5)`,
		},
		{
			name: "escaped quote in string",
			in:   `(emit "say \" :kw")`,
			want: `(emit "say \" :kw")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsKW(t *testing.T) {
	if name, ok := isKW(&zygo.SexpStr{S: "__kw_angle"}); !ok || name != "angle" {
		t.Errorf("isKW = %q, %v", name, ok)
	}
	if _, ok := isKW(&zygo.SexpStr{S: "plain string"}); ok {
		t.Error("plain string treated as keyword")
	}
	if _, ok := isKW(&zygo.SexpInt{Val: 3}); ok {
		t.Error("non-string treated as keyword")
	}
}

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpInt{Val: 1},
		&zygo.SexpStr{S: "__kw_angle"},
		&zygo.SexpFloat{Val: 0.5},
		&zygo.SexpInt{Val: 2},
	}
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		t.Fatalf("got %d positional args, want 2", len(pa.positional))
	}
	v, ok := pa.kw["angle"]
	if !ok {
		t.Fatal("angle keyword missing")
	}
	if f, ok := v.(*zygo.SexpFloat); !ok || f.Val != 0.5 {
		t.Errorf("angle = %#v, want 0.5", v)
	}

	// A trailing keyword with no value maps to null.
	pa = parseArgs([]zygo.Sexp{&zygo.SexpStr{S: "__kw_closed"}})
	if v, ok := pa.kw["closed"]; !ok || v != zygo.SexpNull {
		t.Errorf("trailing keyword = %#v", v)
	}
}
