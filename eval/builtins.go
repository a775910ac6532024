package eval

import "github.com/tailcall/cpslisp/ast"

// builtinEvaled adapts a pure function over already-evaluated arguments
// into the continuation-step protocol: on the first visit (args.Evaled ==
// nil) it hands off to evalFunctionArgsStep to evaluate every argument
// left to right; on the second visit it runs f and routes a returned
// error through Raise.
func builtinEvaled(f func(evaled []ast.Value, env *ast.Environment) (ast.Value, error)) ast.StepFunc {
	return func(args *ast.Args, self *ast.Continuation) *ast.Continuation {
		if args.Evaled == nil {
			return self.CreateBefore(evalFunctionArgsStep, ast.Args{Unevaled: args.ArgAST, Env: args.Env})
		}
		result, err := f(args.Evaled, args.Env)
		if err != nil {
			return self.Raise(err.Error(), args.ArgAST)
		}
		return self.NextWith(func(a *ast.Args) { a.AST = result })
	}
}

// builtins is the dispatch table eval_function_call looks a symbol up in.
// Every operation named in the language lives here, including the forms
// with hand-written steps defined in forms.go (callcc among them).
//
// Declared without an initializer and populated in init() below: a map
// literal referencing builtinCallCC (which transitively calls back into
// evalFunctionCallStep, which indexes builtins) would otherwise form an
// initialization cycle.
var builtins map[ast.Sym]ast.StepFunc

func init() {
	builtins = map[ast.Sym]ast.StepFunc{
		"quote":  builtinQuote,
		"define": builtinDefine,
		"set":    builtinSet,
		"lambda": builtinLambda,
		"begin":  builtinBegin,
		"if":     builtinIf,
		"load":   builtinEvaled(builtinLoad),
		"callcc": builtinCallCC,

		"cons":      builtinEvaled(builtinCons),
		"first":     builtinEvaled(builtinFirst),
		"rest":      builtinEvaled(builtinRest),
		"set_first": builtinEvaled(builtinSetFirst),
		"set_rest":  builtinEvaled(builtinSetRest),
		"last":      builtinEvaled(builtinLast),

		"plus":  builtinEvaled(builtinPlus),
		"minus": builtinEvaled(builtinMinus),

		"not": builtinEvaled(builtinNot),
		"and": builtinEvaled(builtinAnd),
		"or":  builtinEvaled(builtinOr),

		"eq?": builtinEvaled(builtinEqP),
		"gt?": builtinEvaled(builtinGtP),

		"symbol?": builtinEvaled(builtinSymbolP),
		"pair?":   builtinEvaled(builtinPairP),
		"nil?":    builtinEvaled(builtinNilP),
		"atom?":   builtinEvaled(builtinAtomP),
		"lambda?": builtinEvaled(builtinLambdaP),

		"print": builtinEvaled(builtinPrint),
		"puts":  builtinEvaled(builtinPuts),
		"to_s":  builtinEvaled(builtinToS),
		"error": builtinError,

		"file_open":  builtinEvaled(builtinFileOpen),
		"file_close": builtinEvaled(builtinFileClose),
		"file_write": builtinEvaled(builtinFileWrite),
		"file_read":  builtinEvaled(builtinFileRead),
	}
}

func boolVal(b bool) ast.Value {
	if b {
		return ast.True
	}
	return ast.False
}

// builtinError evaluates its single message argument, then routes it to
// the error handler rather than ever completing normally.
func builtinError(args *ast.Args, self *ast.Continuation) *ast.Continuation {
	if args.Evaled == nil {
		return self.CreateBefore(evalFunctionArgsStep, ast.Args{Unevaled: args.ArgAST, Env: args.Env})
	}
	msg := "user error"
	if len(args.Evaled) > 0 {
		msg = displayText(args.Evaled[0])
	}
	return self.Raise(msg, args.ArgAST)
}
