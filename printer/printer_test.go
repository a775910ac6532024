package printer

import (
	"strings"
	"testing"

	"github.com/tailcall/cpslisp/ast"
)

func TestPrintSelfCycle(t *testing.T) {
	p := ast.NewPair(ast.Int(1), ast.Nil)
	p.SetRest(p)
	got := Print(p)
	if !strings.Contains(got, "...") {
		t.Fatalf("Print(self-cycle) = %q, want it to contain \"...\"", got)
	}
}

// TestPrintInteriorAncestorCycle builds p1->p2->p3->Nil, then mutates p3's
// rest to point at p2 (an interior ancestor, not the spine's first pair) —
// a cycle set_rest is explicitly allowed to create per the data model.
// Print must still terminate and mark the re-entered pair with "...".
func TestPrintInteriorAncestorCycle(t *testing.T) {
	p3 := ast.NewPair(ast.Int(3), ast.Nil)
	p2 := ast.NewPair(ast.Int(2), p3)
	p1 := ast.NewPair(ast.Int(1), p2)
	p3.SetRest(p2)

	got := Print(p1)
	if !strings.Contains(got, "...") {
		t.Fatalf("Print(interior cycle) = %q, want it to contain \"...\"", got)
	}
}
