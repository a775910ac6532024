package eval

import (
	"strconv"
	"strings"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/printer"
)

func builtinSymbolP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("symbol?", evaled, 1); err != nil {
		return nil, err
	}
	_, ok := evaled[0].(ast.Sym)
	return boolVal(ok), nil
}

func builtinPairP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("pair?", evaled, 1); err != nil {
		return nil, err
	}
	_, ok := evaled[0].(*ast.Pair)
	return boolVal(ok), nil
}

func builtinNilP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("nil?", evaled, 1); err != nil {
		return nil, err
	}
	_, ok := evaled[0].(ast.Nilv)
	return boolVal(ok), nil
}

func builtinAtomP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("atom?", evaled, 1); err != nil {
		return nil, err
	}
	return boolVal(ast.IsAtom(evaled[0])), nil
}

func builtinLambdaP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("lambda?", evaled, 1); err != nil {
		return nil, err
	}
	_, ok := evaled[0].(*ast.Lambda)
	return boolVal(ok), nil
}

// displayText renders a value-bearing atom (string, symbol, int) as the
// raw text print/puts emit, interpreting \n and \t escapes in strings;
// anything else falls back to the printer's source-syntax rendering.
func displayText(v ast.Value) string {
	switch x := v.(type) {
	case ast.Str:
		return interpretEscapes(string(x))
	case ast.Sym:
		return string(x)
	case ast.Int:
		return strconv.FormatInt(int64(x), 10)
	default:
		return printer.Print(v)
	}
}

func interpretEscapes(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

// stringValue renders v as a Str of its value, per spec §4.5's `to_s`:
// unlike displayText (used by print/puts) it never interprets \n/\t
// escapes — a Str argument passes through unchanged.
func stringValue(v ast.Value) string {
	switch x := v.(type) {
	case ast.Str:
		return string(x)
	case ast.Sym:
		return string(x)
	case ast.Int:
		return strconv.FormatInt(int64(x), 10)
	default:
		return printer.Print(v)
	}
}

func builtinToS(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("to_s", evaled, 1); err != nil {
		return nil, err
	}
	return ast.Str(stringValue(evaled[0])), nil
}

func builtinPrint(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	var last ast.Value = ast.Nil
	for _, v := range evaled {
		_, _ = Stdout.Write([]byte(displayText(v)))
		last = v
	}
	return last, nil
}

func builtinPuts(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	var last ast.Value = ast.Nil
	for _, v := range evaled {
		_, _ = Stdout.Write([]byte(displayText(v)))
		_, _ = Stdout.Write([]byte{'\n'})
		last = v
	}
	return last, nil
}
