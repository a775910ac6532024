package reader

import (
	"testing"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/printer"
)

func readString(t *testing.T, src string) ast.Value {
	t.Helper()
	v, err := Read(NewScanner(src))
	if err != nil {
		t.Fatalf("Read(%q) error: %v", src, err)
	}
	return v
}

func TestReadAtoms(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Value
	}{
		{"sym", ast.Sym("sym")},
		{"123", ast.Int(123)},
		{`"str"`, ast.Str("str")},
		{"nil", ast.Nil},
		{"null", ast.Nil},
		{"true", ast.True},
		{"false", ast.False},
	}
	for _, tt := range tests {
		if got := readString(t, tt.src); !ast.Equal(got, tt.want) {
			t.Errorf("Read(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestReadList(t *testing.T) {
	got := readString(t, "(1 2 3)")
	want := ast.List(ast.Int(1), ast.Int(2), ast.Int(3))
	if !ast.Equal(got, want) {
		t.Errorf("Read((1 2 3)) = %v, want %v", got, want)
	}
}

func TestReadQuote(t *testing.T) {
	got := readString(t, "'x")
	want := ast.List(ast.Sym("quote"), ast.Sym("x"))
	if !ast.Equal(got, want) {
		t.Errorf("Read('x) = %v, want %v", got, want)
	}
}

func TestReadComment(t *testing.T) {
	got := readString(t, "; a comment\n42")
	if !ast.Equal(got, ast.Int(42)) {
		t.Errorf("Read with leading comment = %v, want 42", got)
	}
}

func TestUnterminatedList(t *testing.T) {
	_, err := Read(NewScanner("(1 2"))
	if err == nil {
		t.Fatalf("expected an error for an unterminated list")
	}
}

func TestRoundTrip(t *testing.T) {
	forms := []string{
		"sym", "123", `"str"`, "nil", "true", "false",
		"(1)", "(1 2)", "((a) (b c))",
		"(define f (lambda (a b) (plus a b)))",
	}
	for _, src := range forms {
		v := readString(t, src)
		if got := printer.Print(v); got != src {
			t.Errorf("round-trip(%q) = %q", src, got)
		}
	}
}
