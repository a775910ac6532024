package eval

import (
	"fmt"

	"github.com/tailcall/cpslisp/ast"
)

// foldArith left-folds evaled under op ("plus" or "minus"). A single
// operand passes through unchanged — minus with one operand is not a
// negation, it is the same two-operand fold with nothing to fold against.
func foldArith(op string, evaled []ast.Value, isPlus bool) (ast.Value, error) {
	if len(evaled) == 0 {
		return nil, fmt.Errorf("%s: expected at least 1 argument", op)
	}
	result := evaled[0]
	for _, v := range evaled[1:] {
		next, err := combine(op, result, v, isPlus)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}

func combine(op string, a, b ast.Value, isPlus bool) (ast.Value, error) {
	switch x := a.(type) {
	case ast.Int:
		y, ok := b.(ast.Int)
		if !ok {
			return nil, fmt.Errorf("%s: operand kind mismatch", op)
		}
		if isPlus {
			return ast.Int(int64(x) + int64(y)), nil
		}
		return ast.Int(int64(x) - int64(y)), nil
	case ast.Str:
		if !isPlus {
			return nil, fmt.Errorf("minus: strings are not subtractable")
		}
		y, ok := b.(ast.Str)
		if !ok {
			return nil, fmt.Errorf("plus: operand kind mismatch")
		}
		return ast.Str(string(x) + string(y)), nil
	default:
		return nil, fmt.Errorf("%s: operands must be int or string", op)
	}
}

func builtinPlus(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	return foldArith("plus", evaled, true)
}

func builtinMinus(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	return foldArith("minus", evaled, false)
}

// builtinTruthy is the stricter truthiness and/or/not use: only the exact
// True value counts as true, unlike if's broader falsy set (False or Nil).
func builtinTruthy(v ast.Value) bool {
	b, ok := v.(ast.Boolv)
	return ok && bool(b)
}

func builtinNot(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("not", evaled, 1); err != nil {
		return nil, err
	}
	return boolVal(!builtinTruthy(evaled[0])), nil
}

// builtinAnd and builtinOr evaluate every argument (already guaranteed by
// evalFunctionArgsStep before this runs) and are deliberately
// non-short-circuiting: every argument expression's side effects happen
// regardless of earlier results.
func builtinAnd(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	result := true
	for _, v := range evaled {
		if !builtinTruthy(v) {
			result = false
		}
	}
	return boolVal(result), nil
}

func builtinOr(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	result := false
	for _, v := range evaled {
		if builtinTruthy(v) {
			result = true
		}
	}
	return boolVal(result), nil
}

func builtinEqP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("eq?", evaled, 2); err != nil {
		return nil, err
	}
	return boolVal(ast.Equal(evaled[0], evaled[1])), nil
}

func builtinGtP(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("gt?", evaled, 2); err != nil {
		return nil, err
	}
	r, err := ast.Greater(evaled[0], evaled[1])
	if err != nil {
		return nil, err
	}
	return boolVal(r), nil
}
