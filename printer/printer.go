// Package printer renders ast.Value back to the source syntax the reader
// accepts, guarding against cycles created by set_first/set_rest.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tailcall/cpslisp/ast"
)

// Print renders v as source text.
func Print(v ast.Value) string {
	var b strings.Builder
	print1(&b, v, nil)
	return b.String()
}

func print1(b *strings.Builder, v ast.Value, inProgress []*ast.Pair) {
	switch x := v.(type) {
	case ast.Nilv:
		b.WriteString("nil")
	case ast.Boolv:
		if bool(x) {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case ast.Sym:
		b.WriteString(string(x))
	case ast.Str:
		b.WriteString(strconv.Quote(string(x)))
	case ast.Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case *ast.Pair:
		printPair(b, x, inProgress)
	case *ast.Lambda:
		printLambda(b, x, inProgress)
	case *ast.Resource:
		fmt.Fprintf(b, "#<resource %s>", x.Name)
	case *ast.Cont:
		b.WriteString("#<continuation>")
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func printPair(b *strings.Builder, p *ast.Pair, inProgress []*ast.Pair) {
	for _, seen := range inProgress {
		if seen == p {
			b.WriteString("...")
			return
		}
	}
	inProgress = append(inProgress, p)

	b.WriteByte('(')
	cur := p
	first := true
	for {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		print1(b, cur.First, inProgress)

		switch rest := cur.Rest.(type) {
		case ast.Nilv:
			b.WriteByte(')')
			return
		case *ast.Pair:
			for _, seen := range inProgress {
				if seen == rest {
					b.WriteString(" ...)")
					return
				}
			}
			inProgress = append(inProgress, rest)
			cur = rest
		default:
			b.WriteString(" . ")
			print1(b, cur.Rest, inProgress)
			b.WriteByte(')')
			return
		}
	}
}

func printLambda(b *strings.Builder, l *ast.Lambda, inProgress []*ast.Pair) {
	b.WriteString("(lambda (")
	for i, p := range l.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(p))
	}
	b.WriteString(") ")
	print1(b, l.Body, inProgress)
	b.WriteByte(')')
}
