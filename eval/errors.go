package eval

import (
	"fmt"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/printer"
)

// LispError is a fatal, in-chain failure routed through the heap's error
// handler: a message plus the offending form, optionally a backtrace.
// Its Error() text matches spec §7's "one line beginning error: followed
// by the message, optionally followed by the form's pretty-printed AST".
type LispError struct {
	Message   string
	AST       ast.Value
	Backtrace string
}

func (e *LispError) Error() string {
	if e.AST == nil {
		return "error: " + e.Message
	}
	return fmt.Sprintf("error: %s %s", e.Message, printer.Print(e.AST))
}

// installErrorHandler builds the terminal error-handling continuation
// that every top-level evaluation installs into its chain's heap: it
// records the failure on the heap and stops the trampoline.
func installErrorHandler(heap *ast.Heap) *ast.Continuation {
	return &ast.Continuation{
		Func: func(args *ast.Args, self *ast.Continuation) *ast.Continuation {
			self.Heap.Err = &LispError{
				Message:   args.Message,
				AST:       args.ErrAST,
				Backtrace: args.Backtrace,
			}
			return nil
		},
		Heap: heap,
	}
}
