package ast

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil=nil", Nil, Nil, true},
		{"true!=false", True, False, false},
		{"sym match", Sym("x"), Sym("x"), true},
		{"sym mismatch", Sym("x"), Sym("y"), false},
		{"str match", Str("hi"), Str("hi"), true},
		{"int match", Int(3), Int(3), true},
		{"int mismatch kind", Int(3), Str("3"), false},
		{"pair structural", NewPair(Int(1), Int(2)), NewPair(Int(1), Int(2)), true},
		{"pair structural mismatch", NewPair(Int(1), Int(2)), NewPair(Int(1), Int(3)), false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsFalsy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{False, true},
		{Nil, true},
		{True, false},
		{Int(0), false},
		{Str(""), false},
	}
	for _, tt := range tests {
		if got := IsFalsy(tt.v); got != tt.want {
			t.Errorf("IsFalsy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestPairMutation(t *testing.T) {
	p := NewPair(Int(1), Int(2))
	p.SetFirst(Int(9))
	if !Equal(p.First, Int(9)) {
		t.Fatalf("SetFirst did not mutate in place: %v", p.First)
	}
	p.SetRest(p) // self-cycle
	rest, ok := p.Rest.(*Pair)
	if !ok || rest != p {
		t.Fatalf("SetRest did not create the expected cycle")
	}
}

func TestEnvironmentScoping(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Int(1))

	child := NewEnvironment(global)
	if v, ok := child.Lookup("x"); !ok || !Equal(v, Int(1)) {
		t.Fatalf("child did not see parent binding: %v %v", v, ok)
	}

	child.Define("x", Int(2))
	if v, _ := child.Lookup("x"); !Equal(v, Int(2)) {
		t.Fatalf("child shadow failed: %v", v)
	}
	if v, _ := global.Lookup("x"); !Equal(v, Int(1)) {
		t.Fatalf("shadowing leaked into parent: %v", v)
	}

	if !global.Set("x", Int(5)) {
		t.Fatalf("Set on existing global binding failed")
	}
	if v, _ := global.Lookup("x"); !Equal(v, Int(5)) {
		t.Fatalf("Set did not mutate: %v", v)
	}
	if global.Set("never-defined", Int(0)) {
		t.Fatalf("Set on missing binding should fail")
	}
}
