package eval

import (
	"log/slog"

	"github.com/tailcall/cpslisp/ast"
	"github.com/tailcall/cpslisp/printer"
)

// TraceContinuations, when true, makes Run log.Debug every step it takes:
// a depth-bounded rendering of the value currently being threaded through
// the chain. This is the --log-conts CLI flag's implementation, a
// promoted, leveled version of the teacher's commented-out step counter.
var TraceContinuations = false

// TraceDepth bounds how much of a traced value's printed form is logged.
var TraceDepth = 40

func traceStep(n int, c *ast.Continuation) {
	if !TraceContinuations {
		return
	}
	text := "<nil>"
	if c.Args.AST != nil {
		text = printer.Print(c.Args.AST)
	}
	if len(text) > TraceDepth {
		text = text[:TraceDepth] + "..."
	}
	slog.Debug("step", "n", n, "ast", text)
}
