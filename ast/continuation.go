package ast

// Args is the per-step argument bag threaded through a continuation chain.
// It is a typed struct rather than a generic map — per the design note
// that a tagged-variant/typed-payload shape gives better static checking
// than reflection over field names while preserving the same semantics.
// Not every step uses every field; each step function documents which
// ones it reads and writes.
type Args struct {
	AST       Value       // the value most recently produced, or the expression to evaluate
	Env       *Environment
	Name      Sym         // symbol under resolution (eval_binding) or being bound (define)
	Lambda    *Lambda      // callee being applied (eval_lambda)
	ArgAST    Value       // unevaluated argument list as written in source
	Unevaled  Value       // eval_function_args: remaining unevaluated expressions
	Evaled    []Value     // eval_function_args: accumulator, left-to-right
	Message   string      // error_handler: diagnostic text
	ErrAST    Value       // error_handler: offending form, if any
	Backtrace string      // error_handler: optional trace text
	Extra     interface{} // escape hatch for a built-in's private fold/IO state
}

// Patch is a function that mutates a subset of an Args in place, leaving
// every other field untouched — the Go stand-in for "merge these named
// keys into the args bag" the original design describes.
type Patch func(*Args)

// Heap is the chain-global state shared by reference among every
// continuation created from a common root via the chain-mutation helpers:
// the installed error handler, and the current top-level form for
// diagnostics.
type Heap struct {
	ErrorHandler *Continuation
	StatementAST Value
	Err          error // set by the installed error handler when it fires
}

// StepFunc is the function a continuation node runs. It receives a
// pointer to its own Args (so it can mutate its own state and re-enter
// itself just by returning self) and returns the next continuation the
// trampoline should invoke.
type StepFunc func(args *Args, self *Continuation) *Continuation

// Continuation is one node of the singly-linked chain the trampoline
// drives. Func == nil marks the terminal sentinel.
type Continuation struct {
	Func StepFunc
	Args Args
	Next *Continuation
	Heap *Heap
}

// NewChain builds one real step followed by the terminal sentinel, ready
// to hand to the trampoline.
func NewChain(f StepFunc, args Args, heap *Heap) *Continuation {
	terminal := &Continuation{Heap: heap}
	return &Continuation{Func: f, Args: args, Next: terminal, Heap: heap}
}

// Terminal reports whether c is the sentinel the trampoline stops at.
func (c *Continuation) Terminal() bool {
	return c == nil || c.Func == nil
}

// With applies patch to c's own args in place and returns c — used when a
// step re-enters itself to keep draining work (eval_function_args' loop).
func (c *Continuation) With(patch Patch) *Continuation {
	patch(&c.Args)
	return c
}

// CreateBefore allocates a new node that runs before c: its Next is c,
// and it shares c's heap.
func (c *Continuation) CreateBefore(f StepFunc, args Args) *Continuation {
	return &Continuation{Func: f, Args: args, Next: c, Heap: c.Heap}
}

// CreateAfter allocates a new node whose Next is c.Next, sharing c's heap.
// c itself is not modified; the new node runs only if the caller returns it.
func (c *Continuation) CreateAfter(f StepFunc, args Args) *Continuation {
	return &Continuation{Func: f, Args: args, Next: c.Next, Heap: c.Heap}
}

// CopyWith allocates a fresh continuation sharing c's heap and func: a
// copy of c's args with patch applied on top, and an optional override
// for Next (nil keeps c.Next). This is "retry this step with patched
// state" — patch only needs to touch the fields that actually change.
func (c *Continuation) CopyWith(nextOverride *Continuation, patch Patch) *Continuation {
	args := c.Args
	if patch != nil {
		patch(&args)
	}
	next := c.Next
	if nextOverride != nil {
		next = nextOverride
	}
	return &Continuation{Func: c.Func, Args: args, Next: next, Heap: c.Heap}
}

// NextWith applies patch to c.Next's args in place and returns c.Next —
// "hand the successor its input" without disturbing whatever other state
// that successor already has queued up in its Args.
func (c *Continuation) NextWith(patch Patch) *Continuation {
	patch(&c.Next.Args)
	return c.Next
}

// Dup shallow-clones c for callcc capture: same func, a copy of args
// (including the Evaled slice, since slices alias their backing array),
// the same next pointer, and a copy of heap so later mutation of the
// error handler along one branch does not leak into the other.
func (c *Continuation) Dup() *Continuation {
	argsCopy := c.Args
	if c.Args.Evaled != nil {
		argsCopy.Evaled = append([]Value(nil), c.Args.Evaled...)
	}
	var heapCopy *Heap
	if c.Heap != nil {
		h := *c.Heap
		heapCopy = &h
	}
	return &Continuation{Func: c.Func, Args: argsCopy, Next: c.Next, Heap: heapCopy}
}

// Raise routes a failure to the heap's installed error handler, patching
// in the message and the offending form. It is the single path every
// built-in and evaluator step uses on failure (spec §7's "every in-chain
// failure routes to heap[error_handler]").
func (c *Continuation) Raise(message string, offending Value) *Continuation {
	handler := c.Heap.ErrorHandler
	return handler.CopyWith(nil, func(a *Args) {
		a.Message = message
		a.ErrAST = offending
	})
}
