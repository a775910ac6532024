package eval

import (
	"fmt"

	"github.com/tailcall/cpslisp/ast"
)

// Built-ins that need more than "evaluate every argument, then compute" —
// quote, define, set, lambda, begin, if and callcc — each get a
// hand-written step. Those that need a second visit (define, set, begin,
// if, callcc) follow the same two-entry idiom as eval_lambda: mutate the node's own Args in place to stash what the second visit
// needs, and tell entries apart by a field that is nil only on the first.

func firstOf(v ast.Value) (first, rest ast.Value, ok bool) {
	p, isPair := v.(*ast.Pair)
	if !isPair {
		return nil, nil, false
	}
	return p.First, p.Rest, true
}

func symbolList(v ast.Value) ([]ast.Sym, error) {
	var out []ast.Sym
	for {
		switch x := v.(type) {
		case ast.Nilv:
			return out, nil
		case *ast.Pair:
			sym, ok := x.First.(ast.Sym)
			if !ok {
				return nil, fmt.Errorf("expected a symbol in parameter list, got %v", x.First)
			}
			out = append(out, sym)
			v = x.Rest
		default:
			return nil, fmt.Errorf("malformed parameter list")
		}
	}
}

// bodyOf turns a list of body expressions into a single expression,
// wrapping more than one in an implicit (begin ...).
func bodyOf(rest ast.Value) ast.Value {
	p, ok := rest.(*ast.Pair)
	if !ok {
		return ast.Nil
	}
	if _, ok := p.Rest.(ast.Nilv); ok {
		return p.First
	}
	return ast.NewPair(ast.Sym("begin"), rest)
}

func builtinQuote(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	first, _, ok := firstOf(args.ArgAST)
	if !ok {
		first = ast.Nil
	}
	return self.NextWith(func(a *ast.Args) { a.AST = first })
}

func builtinLambda(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	first, rest, ok := firstOf(args.ArgAST)
	if !ok {
		return self.Raise("lambda: missing parameter list", args.ArgAST)
	}
	params, err := symbolList(first)
	if err != nil {
		return self.Raise("lambda: "+err.Error(), args.ArgAST)
	}
	lambda := &ast.Lambda{Params: params, Body: bodyOf(rest), Env: args.Env}
	return self.NextWith(func(a *ast.Args) { a.AST = lambda })
}

// builtinDefine handles both (define name value) and the function-sugar
// (define (name p1 p2 ...) body...). The first form evaluates its value
// expression before binding; re-entry is detected via args.AST != nil,
// the same convention eval_function_args uses for "a producer just
// delivered a value".
func builtinDefine(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.AST != nil {
		name := args.Name
		value := args.AST
		args.Env.Define(name, value)
		return self.NextWith(func(a *ast.Args) { a.AST = value })
	}
	first, rest, ok := firstOf(args.ArgAST)
	if !ok {
		return self.Raise("define: missing target", args.ArgAST)
	}
	switch target := first.(type) {
	case ast.Sym:
		valueExpr, _, ok := firstOf(rest)
		if !ok {
			return self.Raise("define: missing value", args.ArgAST)
		}
		args.Name = target
		return self.CreateBefore(evalStep, ast.Args{AST: valueExpr, Env: args.Env})
	case *ast.Pair:
		nameSym, ok := target.First.(ast.Sym)
		if !ok {
			return self.Raise("define: invalid function name", args.ArgAST)
		}
		params, err := symbolList(target.Rest)
		if err != nil {
			return self.Raise("define: "+err.Error(), args.ArgAST)
		}
		lambda := &ast.Lambda{Params: params, Body: bodyOf(rest), Env: args.Env}
		args.Env.Define(nameSym, lambda)
		return self.NextWith(func(a *ast.Args) { a.AST = lambda })
	default:
		return self.Raise("define: invalid target", args.ArgAST)
	}
}

// builtinSet evaluates the value expression first, then searches the
// environment chain for an existing binding to mutate — so a missing
// binding is reported only after the value expression's side effects
// have already happened.
func builtinSet(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.AST != nil {
		name := args.Name
		value := args.AST
		if !args.Env.Set(name, value) {
			return self.Raise("set: unbound variable", name)
		}
		return self.NextWith(func(a *ast.Args) { a.AST = value })
	}
	first, rest, ok := firstOf(args.ArgAST)
	if !ok {
		return self.Raise("set: missing target", args.ArgAST)
	}
	name, ok := first.(ast.Sym)
	if !ok {
		return self.Raise("set: target must be a symbol", first)
	}
	valueExpr, _, ok := firstOf(rest)
	if !ok {
		return self.Raise("set: missing value", args.ArgAST)
	}
	args.Name = name
	return self.CreateBefore(evalStep, ast.Args{AST: valueExpr, Env: args.Env})
}

// builtinBegin threads args.Unevaled as the remaining expressions to run
// and keeps overwriting args.AST with the most recent result, returning
// it once the list is exhausted (or Nil if it was empty).
func builtinBegin(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.Unevaled == nil {
		args.Unevaled = args.ArgAST
	}
	p, ok := args.Unevaled.(*ast.Pair)
	if !ok {
		result := args.AST
		if result == nil {
			result = ast.Nil
		}
		return self.NextWith(func(a *ast.Args) { a.AST = result })
	}
	args.Unevaled = p.Rest
	args.AST = nil
	return self.CreateBefore(evalStep, ast.Args{AST: p.First, Env: args.Env})
}

func ifBranches(argAST ast.Value) (thenExpr, elseExpr ast.Value, hasElse, ok bool) {
	p, isPair := argAST.(*ast.Pair)
	if !isPair {
		return nil, nil, false, false
	}
	rest, isPair := p.Rest.(*ast.Pair)
	if !isPair {
		return nil, nil, false, false
	}
	thenExpr = rest.First
	if p2, isPair := rest.Rest.(*ast.Pair); isPair {
		return thenExpr, p2.First, true, true
	}
	return thenExpr, nil, false, true
}

func builtinIf(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.AST != nil {
		cond := args.AST
		thenExpr, elseExpr, hasElse, ok := ifBranches(args.ArgAST)
		if !ok {
			return self.Raise("if: malformed", args.ArgAST)
		}
		branch := thenExpr
		if ast.IsFalsy(cond) {
			if !hasElse {
				return self.NextWith(func(a *ast.Args) { a.AST = ast.Nil })
			}
			branch = elseExpr
		}
		return self.CreateAfter(evalStep, ast.Args{AST: branch, Env: args.Env})
	}
	condExpr, _, ok := firstOf(args.ArgAST)
	if !ok {
		return self.Raise("if: missing condition", args.ArgAST)
	}
	return self.CreateBefore(evalStep, ast.Args{AST: condExpr, Env: args.Env})
}

// builtinCallCC evaluates its single argument (must be a lambda), snapshots
// the successor of this step via Dup, then applies the lambda to that
// snapshot as if it were an ordinary evaluated argument — bypassing
// evalLambdaStep's argument-evaluation phase since the sole argument is
// already in hand.
func builtinCallCC(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.AST != nil {
		lambda, ok := args.AST.(*ast.Lambda)
		if !ok {
			return self.Raise("callcc: argument must be a lambda", args.AST)
		}
		captured := self.Next.Dup()
		contVal := &ast.Cont{Chain: captured}
		return self.CreateAfter(evalLambdaStep, ast.Args{
			Lambda: lambda,
			ArgAST: args.ArgAST,
			Env:    args.Env,
			Evaled: []ast.Value{contVal},
		})
	}
	first, _, ok := firstOf(args.ArgAST)
	if !ok {
		return self.Raise("callcc: missing argument", args.ArgAST)
	}
	return self.CreateBefore(evalStep, ast.Args{AST: first, Env: args.Env})
}
