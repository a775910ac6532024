// Package ast defines the value model this interpreter evaluates: the
// tagged union of Lisp values, the lexical environment chain, and the
// continuation record the evaluator drives.
package ast

import "fmt"

// Value is the marker interface implemented by every Lisp value. Concrete
// types are Nilv, Boolv, Sym, Str, Int, *Pair, *Lambda, *Resource and *Cont.
type Value interface {
	value()
}

// Nilv is the unique empty-list / "no value" singleton.
type Nilv struct{}

func (Nilv) value() {}

// Nil is the sole Nilv instance.
var Nil Value = Nilv{}

// Boolv is the True/False singleton pair. Only the literal True counts as
// true for most built-ins; if-style falsiness additionally treats Nil as
// false (see IsFalsy).
type Boolv bool

func (Boolv) value() {}

// True and False are the sole Boolv instances in normal use; built-ins
// should return these rather than constructing new Boolv values so that
// identity-minded callers (there are none in this interpreter, but the
// spec calls it out) still see a consistent pair of singletons.
var True Value = Boolv(true)
var False Value = Boolv(false)

// Sym is an interned-by-value identifier. Two Syms are equal iff their
// names match; no interning table is required since string equality is
// cheap and Go strings are already immutable.
type Sym string

func (Sym) value() {}

// Str is a string literal.
type Str string

func (Str) value() {}

// Int is a machine 64-bit signed integer. The spec's Non-goals exclude a
// numeric tower beyond this; arithmetic built-ins use plain int64 ops.
type Int int64

func (Int) value() {}

// Pair is the sole compound structure: a mutable two-field cell. Identity
// matters — SetFirst/SetRest mutate in place and aliasing (including
// self-reference, via SetRest onto an ancestor) is observable.
type Pair struct {
	First Value
	Rest  Value
}

func (*Pair) value() {}

// NewPair builds a two-element list cell (a . rest).
func NewPair(first, rest Value) *Pair {
	return &Pair{First: first, Rest: rest}
}

// SetFirst mutates the pair's first field in place.
func (p *Pair) SetFirst(v Value) { p.First = v }

// SetRest mutates the pair's rest field in place.
func (p *Pair) SetRest(v Value) { p.Rest = v }

// List builds a proper list from the given values, terminated by Nil.
func List(vs ...Value) Value {
	var result Value = Nil
	for i := len(vs) - 1; i >= 0; i-- {
		result = NewPair(vs[i], result)
	}
	return result
}

// Lambda is a closure: a parameter list, a body expression, and the
// environment captured at the point of (lambda ...) or (define (f ...) ...).
type Lambda struct {
	Params []Sym
	Body   Value
	Env    *Environment
}

func (*Lambda) value() {}

// Resource wraps a host-owned handle (currently: an open file) so that
// file_open/file_close/file_read/file_write can thread it through Lisp
// code as an opaque value.
type Resource struct {
	Name   string
	Handle interface{ Close() error }
	Reader interface{ Read([]byte) (int, error) }
	Writer interface{ Write([]byte) (int, error) }
	Closed bool
}

func (*Resource) value() {}

// Cont is a first-class continuation: a captured snapshot of a
// continuation chain, produced by Continuation.Dup inside callcc.
type Cont struct {
	Chain *Continuation
}

func (*Cont) value() {}

// IsFalsy reports whether v counts as false for `if`: only False and Nil
// do. Every other value, including Int(0) and Str(""), is truthy.
func IsFalsy(v Value) bool {
	switch x := v.(type) {
	case Boolv:
		return !bool(x)
	case Nilv:
		return true
	default:
		return false
	}
}

// Equal implements structural equality (the `=`/`eq?` built-in semantics):
// recursive on Pair.First/Pair.Rest, value equality for atoms, identity
// (tag match) for singletons, false across mismatched tags.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Nilv:
		_, ok := b.(Nilv)
		return ok
	case Boolv:
		y, ok := b.(Boolv)
		return ok && x == y
	case Sym:
		y, ok := b.(Sym)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case *Pair:
		y, ok := b.(*Pair)
		return ok && Equal(x.First, y.First) && Equal(x.Rest, y.Rest)
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x == y
	case *Resource:
		y, ok := b.(*Resource)
		return ok && x == y
	case *Cont:
		y, ok := b.(*Cont)
		return ok && x == y
	default:
		return false
	}
}

// Greater implements the `gt?` built-in: defined only between two atoms of
// the same value-bearing kind (Int, Str). Any other pairing returns an
// ErrType error for the caller to report.
func Greater(a, b Value) (bool, error) {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		if !ok {
			return false, ErrType("gt?", "int", b)
		}
		return x > y, nil
	case Str:
		y, ok := b.(Str)
		if !ok {
			return false, ErrType("gt?", "string", b)
		}
		return x > y, nil
	default:
		return false, ErrType("gt?", "comparable atom", a)
	}
}

// IsAtom reports whether v is a leaf value: a singleton, symbol, string or
// integer — anything that is not a Pair.
func IsAtom(v Value) bool {
	_, isPair := v.(*Pair)
	return !isPair
}

// ErrType formats a type-mismatch diagnostic for a built-in.
func ErrType(op, want string, got Value) error {
	return fmt.Errorf("%s: expected %s, got %T", op, want, got)
}
