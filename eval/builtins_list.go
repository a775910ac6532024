package eval

import (
	"fmt"

	"github.com/tailcall/cpslisp/ast"
)

func requireArity(op string, evaled []ast.Value, n int) error {
	if len(evaled) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", op, n, len(evaled))
	}
	return nil
}

func requirePair(op string, v ast.Value) (*ast.Pair, error) {
	p, ok := v.(*ast.Pair)
	if !ok {
		return nil, fmt.Errorf("%s: expected a pair", op)
	}
	return p, nil
}

func builtinCons(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("cons", evaled, 2); err != nil {
		return nil, err
	}
	return ast.NewPair(evaled[0], evaled[1]), nil
}

func builtinFirst(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("first", evaled, 1); err != nil {
		return nil, err
	}
	p, err := requirePair("first", evaled[0])
	if err != nil {
		return nil, err
	}
	return p.First, nil
}

func builtinRest(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("rest", evaled, 1); err != nil {
		return nil, err
	}
	p, err := requirePair("rest", evaled[0])
	if err != nil {
		return nil, err
	}
	return p.Rest, nil
}

func builtinSetFirst(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("set_first", evaled, 2); err != nil {
		return nil, err
	}
	p, err := requirePair("set_first", evaled[0])
	if err != nil {
		return nil, err
	}
	p.SetFirst(evaled[1])
	return p, nil
}

func builtinSetRest(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("set_rest", evaled, 2); err != nil {
		return nil, err
	}
	p, err := requirePair("set_rest", evaled[0])
	if err != nil {
		return nil, err
	}
	p.SetRest(evaled[1])
	return p, nil
}

func builtinLast(evaled []ast.Value, _ *ast.Environment) (ast.Value, error) {
	if err := requireArity("last", evaled, 1); err != nil {
		return nil, err
	}
	p, err := requirePair("last", evaled[0])
	if err != nil {
		return nil, err
	}
	for {
		switch rest := p.Rest.(type) {
		case ast.Nilv:
			return p.First, nil
		case *ast.Pair:
			p = rest
		default:
			return p.Rest, nil
		}
	}
}
