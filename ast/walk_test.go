package ast

import (
	"testing"

	"pythia/lexer"
)

func nameExpr(id string) *Name {
	return &Name{Id: id, Ctx: Load}
}

func TestWalkPreOrderIncludesSelf(t *testing.T) {
	mod := &Module{Body: []Stmt{
		&ExprStmt{Value: nameExpr("x")},
	}}

	var kinds []string
	for n := range Walk(mod) {
		switch n.(type) {
		case *Module:
			kinds = append(kinds, "Module")
		case *ExprStmt:
			kinds = append(kinds, "ExprStmt")
		case *Name:
			kinds = append(kinds, "Name")
		}
	}

	want := []string{"Module", "ExprStmt", "Name"}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestWalkStopsEarly(t *testing.T) {
	mod := &Module{Body: []Stmt{
		&ExprStmt{Value: nameExpr("a")},
		&ExprStmt{Value: nameExpr("b")},
		&ExprStmt{Value: nameExpr("c")},
	}}

	count := 0
	for range Walk(mod) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected early break at 2, got %d", count)
	}
}

func TestWalkSkipsNilInterfaceWrappedPointers(t *testing.T) {
	ret := &Return{Value: nil}
	var saw int
	for range Walk(ret) {
		saw++
	}
	if saw != 1 {
		t.Fatalf("expected only the Return node itself, got %d nodes", saw)
	}
}

func TestWalkSkipsNilTypedValueField(t *testing.T) {
	// A nil *Name assigned through the Expr field is a non-nil interface
	// wrapping a nil pointer; Children must not try to recurse into it.
	var nilName *Name
	ret := &Return{Value: nilName}
	count := 0
	for range Walk(ret) {
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 node (Return only), got %d", count)
	}
}

func TestChildrenUnwrapsStatementLists(t *testing.T) {
	mod := &Module{Body: []Stmt{
		&Pass{},
		&Break{},
	}}
	var got []Node
	for c := range Children(mod) {
		got = append(got, c)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 children, got %d", len(got))
	}
}

func TestChildrenWalksArguments(t *testing.T) {
	args := &Arguments{
		Args:    []*Arg{{Arg: "x"}, {Arg: "y"}},
		Vararg:  &Arg{Arg: "rest"},
		Kwarg:   &Arg{Arg: "kw"},
		Defaults: []Expr{nameExpr("default")},
	}
	fn := &FunctionDef{Name: "f", Args: args, Body: []Stmt{&Pass{}}}

	var argNames []string
	for n := range Walk(fn) {
		if a, ok := n.(*Arg); ok {
			argNames = append(argNames, a.Arg)
		}
	}
	want := []string{"x", "y", "rest", "kw"}
	if len(argNames) != len(want) {
		t.Fatalf("got args %v, want %v", argNames, want)
	}
	for i := range want {
		if argNames[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, argNames[i], want[i])
		}
	}
}

func TestChildrenWalksComprehension(t *testing.T) {
	comp := &ListComp{
		Elt: nameExpr("x"),
		Generators: []*Comprehension{
			{Target: nameExpr("x"), Iter: nameExpr("xs"), Ifs: []Expr{nameExpr("cond")}},
		},
	}
	count := 0
	for range Walk(comp) {
		count++
	}
	// ListComp, Elt(Name), Comprehension is not itself a Node so is not
	// yielded, Target(Name), Iter(Name), cond(Name) -> 5 total
	if count != 5 {
		t.Fatalf("expected 5 nodes, got %d", count)
	}
}

func TestChildrenWalksWithItems(t *testing.T) {
	w := &With{Items: []*WithItem{
		{ContextExpr: nameExpr("ctx"), OptionalVars: nameExpr("v")},
	}, Body: []Stmt{&Pass{}}}
	count := 0
	for range Walk(w) {
		count++
	}
	// With, ctx(Name), v(Name), Pass -> 4
	if count != 4 {
		t.Fatalf("expected 4 nodes, got %d", count)
	}
}

func TestFieldsOrderMatchesDeclaration(t *testing.T) {
	n := &BinOp{Left: nameExpr("a"), Op: Add, Right: nameExpr("b")}
	var names []string
	for name := range Fields(n) {
		names = append(names, name)
	}
	want := []string{"Left", "Op", "Right"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestDocstringFromModule(t *testing.T) {
	mod := &Module{Body: []Stmt{
		&ExprStmt{Value: &Constant{Value: "module doc"}},
		&Pass{},
	}}
	doc, ok := Docstring(mod)
	if !ok || doc != "module doc" {
		t.Fatalf("got (%q, %v), want (%q, true)", doc, ok, "module doc")
	}
}

func TestDocstringAbsentWhenFirstStatementIsNotAStringExpr(t *testing.T) {
	mod := &Module{Body: []Stmt{
		&Pass{},
		&ExprStmt{Value: &Constant{Value: "too late"}},
	}}
	if _, ok := Docstring(mod); ok {
		t.Fatal("expected no docstring")
	}
}

func TestDocstringFromFunctionAndClass(t *testing.T) {
	fn := &FunctionDef{Name: "f", Body: []Stmt{
		&ExprStmt{Value: &Constant{Value: "fn doc"}},
	}}
	if doc, ok := Docstring(fn); !ok || doc != "fn doc" {
		t.Fatalf("got (%q, %v)", doc, ok)
	}

	cls := &ClassDef{Name: "C", Body: []Stmt{
		&ExprStmt{Value: &Constant{Value: "cls doc"}},
	}}
	if doc, ok := Docstring(cls); !ok || doc != "cls doc" {
		t.Fatalf("got (%q, %v)", doc, ok)
	}
}

func TestLocGetSpan(t *testing.T) {
	s := lexer.Span{Start: lexer.Position{Line: 1, Column: 1}, End: lexer.Position{Line: 1, Column: 5}}
	loc := NewLoc(s)
	if loc.GetSpan() != s {
		t.Fatalf("GetSpan mismatch: got %v, want %v", loc.GetSpan(), s)
	}
}

func TestExprContextString(t *testing.T) {
	cases := map[ExprContext]string{Load: "Load", Store: "Store", Del: "Del"}
	for ctx, want := range cases {
		if got := ctx.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ctx, got, want)
		}
	}
}
