package eval

import (
	"strings"
	"testing"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/printer"
	"github.com/tailcall/cpslisp/reader"
)

// evalSource reads and evaluates every form in src in a single fresh
// global environment, returning the final form's result.
func evalSource(t *testing.T, src string) ast.Value {
	t.Helper()
	env := ast.NewEnvironment(nil)
	sc := reader.NewScanner(src)
	var result ast.Value = ast.Nil
	for !sc.AtEnd() {
		form, err := reader.Read(sc)
		if err != nil {
			t.Fatalf("Read(%q): %v", src, err)
		}
		result, err = EvalTop(form, env)
		if err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
	}
	return result
}

func TestEvalTable(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Value
	}{
		{"(cons 1 2)", ast.NewPair(ast.Int(1), ast.Int(2))},
		{"(first (cons 1 2))", ast.Int(1)},
		{"(rest (cons 1 2))", ast.Int(2)},
		{"(plus 1 2)", ast.Int(3)},
		{"(plus 1 2 3 4)", ast.Int(10)},
		{"(minus 2 1 1)", ast.Int(0)},
		{`(plus "hallo" " " "welt")`, ast.Str("hallo welt")},
		{"(eq? 1 1)", ast.True},
		{"(eq? 1 2)", ast.False},
		{"(gt? 2 1)", ast.True},
		{"(gt? 1 2)", ast.False},
		{"(if true 1 2)", ast.Int(1)},
		{"(if false 1 2)", ast.Int(2)},
		{"(if nil 1 2)", ast.Int(2)},
		{"(if 0 1 2)", ast.Int(1)},
		{"(define x 10) x", ast.Int(10)},
		{"(define (double n) (plus n n)) (double 21)", ast.Int(42)},
		{"((lambda (a b) (plus a b)) 3 4)", ast.Int(7)},
		{"(begin 1 2 3)", ast.Int(3)},
		{"(symbol? 'x)", ast.True},
		{"(pair? (cons 1 2))", ast.True},
		{"(nil? nil)", ast.True},
		{"(atom? 1)", ast.True},
		{"(atom? (cons 1 2))", ast.False},
		{"(lambda? (lambda (x) x))", ast.True},
		{"(last (cons 1 (cons 2 (cons 3 nil))))", ast.Int(3)},
		{`(to_s "a\nb")`, ast.Str(`a\nb`)},
		{"(to_s 42)", ast.Str("42")},
	}
	for _, tt := range tests {
		got := evalSource(t, tt.src)
		if !ast.Equal(got, tt.want) {
			t.Errorf("eval(%q) = %s, want %s", tt.src, printer.Print(got), printer.Print(tt.want))
		}
	}
}

func TestMutationVisibleThroughAliases(t *testing.T) {
	got := evalSource(t, `
		(define p (cons 1 2))
		(define q p)
		(set_first q 99)
		(first p)
	`)
	if !ast.Equal(got, ast.Int(99)) {
		t.Errorf("mutation through alias = %s, want 99", printer.Print(got))
	}
}

func TestLexicalScoping(t *testing.T) {
	got := evalSource(t, `
		(define x 1)
		(define (f) x)
		(define (g x) (f))
		(g 2)
	`)
	if !ast.Equal(got, ast.Int(1)) {
		t.Errorf("lexical scoping violated: got %s, want 1", printer.Print(got))
	}
}

func TestOrEvaluatesEveryArgument(t *testing.T) {
	var buf strings.Builder
	old := Stdout
	Stdout = &buf
	defer func() { Stdout = old }()

	got := evalSource(t, `(or true (puts "side-effect"))`)
	if !ast.Equal(got, ast.True) {
		t.Errorf("or result = %s, want true", printer.Print(got))
	}
	if buf.String() != "side-effect\n" {
		t.Errorf("or did not evaluate its second argument: buf = %q", buf.String())
	}
}

func TestCallCCWithoutCapture(t *testing.T) {
	got := evalSource(t, `
		(define (f return) (return 2) 3)
		(f (lambda (x) x))
	`)
	if !ast.Equal(got, ast.Int(3)) {
		t.Errorf("ordinary call through the lambda = %s, want 3", printer.Print(got))
	}
}

func TestCallCCWithCapture(t *testing.T) {
	got := evalSource(t, `
		(define (f return) (return 2) 3)
		(callcc f)
	`)
	if !ast.Equal(got, ast.Int(2)) {
		t.Errorf("callcc jump = %s, want 2", printer.Print(got))
	}
}

func TestCycleDoesNotHang(t *testing.T) {
	got := evalSource(t, `
		(define p (cons 1 nil))
		(set_rest p p)
		p
	`)
	text := printer.Print(got)
	if !strings.Contains(text, "...") {
		t.Errorf("printed cyclic pair %q does not contain the cycle marker", text)
	}
}

func TestErrorRoutingDoesNotPanic(t *testing.T) {
	env := ast.NewEnvironment(nil)
	form, err := reader.Read(reader.NewScanner(`(plus 1 "a")`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	_, err = EvalTop(form, env)
	if err == nil {
		t.Fatalf("expected an error evaluating (plus 1 \"a\")")
	}
	if !strings.HasPrefix(err.Error(), "error:") {
		t.Errorf("error text %q does not start with \"error:\"", err.Error())
	}
}

func TestUnresolvedSymbolErrors(t *testing.T) {
	env := ast.NewEnvironment(nil)
	form, _ := reader.Read(reader.NewScanner("never_defined"))
	if _, err := EvalTop(form, env); err == nil {
		t.Fatalf("expected an error for an unresolved symbol")
	}
}

func TestWrongArityErrors(t *testing.T) {
	env := ast.NewEnvironment(nil)
	sc := reader.NewScanner("(define (f a b) (plus a b)) (f 1)")
	form, _ := reader.Read(sc)
	if _, err := EvalTop(form, env); err != nil {
		t.Fatalf("defining f: %v", err)
	}
	form, _ = reader.Read(sc)
	if _, err := EvalTop(form, env); err == nil {
		t.Fatalf("expected an arity error calling f with 1 argument")
	}
}
