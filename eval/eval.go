// Package eval implements the CPS evaluator: the core steps (eval,
// eval_binding, eval_function_call, eval_function_args, eval_lambda), the
// built-in table, callcc, and the outer trampoline that drives them.
package eval

import (
	"fmt"

	"github.com/tailcall/cpslisp/ast"
)

// Run pumps the continuation chain starting at start until it reaches the
// terminal continuation or a step returns nil, per spec §4.6.
func Run(start *ast.Continuation) (ast.Value, error) {
	cont := start
	n := 0
	for cont != nil && !cont.Terminal() {
		traceStep(n, cont)
		n++
		cont = cont.Func(&cont.Args, cont)
	}
	if start.Heap != nil && start.Heap.Err != nil {
		return nil, start.Heap.Err
	}
	if cont == nil {
		return ast.Nil, nil
	}
	return cont.Args.AST, nil
}

// EvalTop evaluates one top-level form in env: it installs a fresh heap
// and error handler, seeds a continuation chain at evalStep, and drives
// it with Run. This is the entry point both the REPL driver and the
// `load` built-in use.
func EvalTop(form ast.Value, env *ast.Environment) (ast.Value, error) {
	heap := &ast.Heap{StatementAST: form}
	heap.ErrorHandler = installErrorHandler(heap)
	chain := ast.NewChain(evalStep, ast.Args{AST: form, Env: env}, heap)
	return Run(chain)
}

// evalStep implements spec §4.4's `eval`. args.AST is the expression to
// evaluate, args.Env its environment.
func evalStep(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	switch x := args.AST.(type) {
	case ast.Sym:
		return self.CreateAfter(evalBindingStep, ast.Args{Name: x, Env: args.Env})
	case *ast.Pair:
		fnSlot := x.First
		fnArgs := x.Rest
		env := args.Env
		call := self.CreateAfter(evalFunctionCallStep, ast.Args{ArgAST: fnArgs, Env: env})
		// A built-in name that env does not bind goes straight to the
		// built-ins table instead of failing as an unresolved symbol.
		if sym, ok := fnSlot.(ast.Sym); ok {
			if _, bound := env.Lookup(sym); !bound {
				if _, isBuiltin := builtins[sym]; isBuiltin {
					return call.With(func(a *ast.Args) { a.AST = sym })
				}
			}
		}
		return self.CopyWith(call, func(a *ast.Args) {
			a.AST = fnSlot
			a.Env = env
		})
	default:
		v := args.AST
		return self.NextWith(func(a *ast.Args) { a.AST = v })
	}
}

// evalBindingStep implements spec §4.4's `eval_binding`: walk args.Env and
// its parents for args.Name.
func evalBindingStep(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if v, ok := args.Env.Lookup(args.Name); ok {
		return self.NextWith(func(a *ast.Args) { a.AST = v })
	}
	return self.Raise("unresolved symbol:", args.Name)
}

// evalFunctionCallStep implements spec §4.4's `eval_function_call`.
// args.AST holds the already-evaluated function slot; args.ArgAST the
// unevaluated argument list; args.Env the calling environment.
func evalFunctionCallStep(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	switch fn := args.AST.(type) {
	case ast.Sym:
		b, ok := builtins[fn]
		if !ok {
			return self.Raise("unknown built-in:", fn)
		}
		return self.CreateAfter(b, ast.Args{ArgAST: args.ArgAST, Env: args.Env})
	case *ast.Cont:
		argExpr := firstArg(args.ArgAST)
		return fn.Chain.CreateBefore(evalStep, ast.Args{AST: argExpr, Env: args.Env})
	case *ast.Lambda:
		return self.CreateAfter(evalLambdaStep, ast.Args{Lambda: fn, ArgAST: args.ArgAST, Env: args.Env})
	default:
		return self.Raise("not a function:", args.AST)
	}
}

// evalFunctionArgsStep implements spec §4.4's `eval_function_args`:
// iteratively evaluate args.Unevaled left-to-right into args.Evaled.
func evalFunctionArgsStep(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.AST != nil {
		args.Evaled = append(args.Evaled, args.AST)
		args.AST = nil
		return self
	}
	if p, ok := args.Unevaled.(*ast.Pair); ok {
		head := p.First
		args.Unevaled = p.Rest
		return self.CreateBefore(evalStep, ast.Args{AST: head, Env: args.Env})
	}
	evaled := args.Evaled
	if evaled == nil {
		evaled = []ast.Value{}
	}
	return self.NextWith(func(a *ast.Args) { a.Evaled = evaled })
}

// evalLambdaStep implements spec §4.4's `eval_lambda`. The first entry
// (args.Evaled == nil) checks arity and kicks off argument evaluation;
// the second entry (args.Evaled != nil, normalized to a non-nil slice by
// evalFunctionArgsStep even for zero-arity calls) binds and runs the body.
func evalLambdaStep(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	lambda := args.Lambda
	if args.Evaled == nil {
		count, err := listLength(args.ArgAST)
		if err != nil {
			return self.Raise(err.Error(), args.ArgAST)
		}
		if count != len(lambda.Params) {
			return self.Raise(arityMessage(lambda, count), args.ArgAST)
		}
		return self.CreateBefore(evalFunctionArgsStep, ast.Args{Unevaled: args.ArgAST, Env: args.Env})
	}
	if len(args.Evaled) != len(lambda.Params) {
		return self.Raise(arityMessage(lambda, len(args.Evaled)), args.ArgAST)
	}
	childEnv := lambda.Env.Bind(lambda.Params, args.Evaled)
	return self.CreateAfter(evalStep, ast.Args{AST: lambda.Body, Env: childEnv})
}

func arityMessage(lambda *ast.Lambda, got int) string {
	return fmt.Sprintf("wrong number of arguments: want %d, got %d", len(lambda.Params), got)
}

// firstArg returns the first unevaluated argument expression in argAST,
// or ast.Nil if there is none (a continuation invoked with no argument).
func firstArg(argAST ast.Value) ast.Value {
	if p, ok := argAST.(*ast.Pair); ok {
		return p.First
	}
	return ast.Nil
}

// listLength counts the elements of a proper list, failing on a dotted
// tail (not a valid call form).
func listLength(v ast.Value) (int, error) {
	n := 0
	for {
		switch x := v.(type) {
		case ast.Nilv:
			return n, nil
		case *ast.Pair:
			n++
			v = x.Rest
		default:
			return 0, fmt.Errorf("malformed argument list")
		}
	}
}
