package unparser

import (
	"strings"
	"testing"

	"pythia/ast"
	"pythia/lexer"
	"pythia/parser"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	scanner := lexer.NewScanner([]byte(src + "\n"))
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		t.Fatalf("lex error: %v", scanner.Errors[0])
	}
	p := parser.New(tokens, parser.DefaultOptions())
	mod, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error parsing %q: %v", src, err)
	}
	es, ok := mod.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", mod.Body[0])
	}
	return es.Value
}

func unparseExpr(t *testing.T, e ast.Expr) string {
	t.Helper()
	out, err := Unparse(e, DefaultOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	return out
}

func roundTripExpr(t *testing.T, src string) string {
	t.Helper()
	return unparseExpr(t, parseExpr(t, src))
}

func TestUnparseBinOpNoRedundantParensOnLeftChain(t *testing.T) {
	got := roundTripExpr(t, "a - b - c")
	if got != "a - b - c" {
		t.Fatalf("got %q, want %q", got, "a - b - c")
	}
}

func TestUnparseBinOpAddsParensToPreserveRightGrouping(t *testing.T) {
	got := roundTripExpr(t, "a - (b - c)")
	if got != "a - (b - c)" {
		t.Fatalf("got %q, want %q", got, "a - (b - c)")
	}
}

func TestUnparsePowerFlatRightChain(t *testing.T) {
	got := roundTripExpr(t, "a ** b ** c")
	if got != "a ** b ** c" {
		t.Fatalf("got %q, want %q", got, "a ** b ** c")
	}
}

func TestUnparsePowerParenthesizesLeftOperand(t *testing.T) {
	got := roundTripExpr(t, "(-2) ** 2")
	if got != "(-2) ** 2" {
		t.Fatalf("got %q, want %q", got, "(-2) ** 2")
	}
}

func TestUnparseTernaryOrBodyNoExtraParens(t *testing.T) {
	got := roundTripExpr(t, "a or b if c else d")
	if got != "a or b if c else d" {
		t.Fatalf("got %q, want %q", got, "a or b if c else d")
	}
}

func TestUnparseChainedTernaryOnTheRight(t *testing.T) {
	got := roundTripExpr(t, "a if b else c if d else e")
	if got != "a if b else c if d else e" {
		t.Fatalf("got %q, want %q", got, "a if b else c if d else e")
	}
}

func TestUnparseWalrusTernaryValueNoParens(t *testing.T) {
	got := roundTripExpr(t, "(n := (1 if c else 2))")
	if got != "n := 1 if c else 2" {
		t.Fatalf("got %q, want %q", got, "n := 1 if c else 2")
	}
}

func TestUnparseUnaryStacking(t *testing.T) {
	got := roundTripExpr(t, "--x")
	if got != "--x" {
		t.Fatalf("got %q, want %q", got, "--x")
	}
	got2 := roundTripExpr(t, "not not x")
	if got2 != "not not x" {
		t.Fatalf("got %q, want %q", got2, "not not x")
	}
}

func TestUnparseComparisonNeverSelfNests(t *testing.T) {
	got := roundTripExpr(t, "a < b <= c")
	if got != "a < b <= c" {
		t.Fatalf("got %q, want %q", got, "a < b <= c")
	}
}

func TestUnparseSingleElementTupleTrailingComma(t *testing.T) {
	got := roundTripExpr(t, "(1,)")
	if got != "(1,)" {
		t.Fatalf("got %q, want %q", got, "(1,)")
	}
}

func TestUnparseSliceDropsTupleParensInSubscript(t *testing.T) {
	got := roundTripExpr(t, "a[1, 2]")
	if got != "a[1, 2]" {
		t.Fatalf("got %q, want %q", got, "a[1, 2]")
	}
}

func TestUnparseStringPreservesQuoteStyle(t *testing.T) {
	cases := []string{
		`'single'`,
		`"double"`,
		`'''triple single'''`,
		`"""triple double"""`,
		`r"raw"`,
		`rb"rawbytes"`,
		`b"bytes"`,
	}
	for _, src := range cases {
		got := roundTripExpr(t, src)
		if got != src {
			t.Errorf("roundtrip %q: got %q", src, got)
		}
	}
}

func TestUnparseFloatConstantKeepsDecimalPoint(t *testing.T) {
	got := roundTripExpr(t, "3.0")
	if got != "3.0" {
		t.Fatalf("got %q, want %q", got, "3.0")
	}
}

func TestUnparseFloatConstantNonWhole(t *testing.T) {
	got := roundTripExpr(t, "3.5")
	if got != "3.5" {
		t.Fatalf("got %q, want %q", got, "3.5")
	}
}

func TestUnparseImaginaryConstant(t *testing.T) {
	got := roundTripExpr(t, "2.5j")
	if got != "2.5j" {
		t.Fatalf("got %q, want %q", got, "2.5j")
	}
}

func TestUnparseIntConstantStaysInt(t *testing.T) {
	got := roundTripExpr(t, "3")
	if got != "3" {
		t.Fatalf("got %q, want %q", got, "3")
	}
}

func TestUnparseFString(t *testing.T) {
	got := roundTripExpr(t, `f"hello {name!r:>10}"`)
	if got != `f"hello {name!r:>10}"` {
		t.Fatalf("got %q", got)
	}
}

func TestUnparseCallWithStarAndKeywords(t *testing.T) {
	got := roundTripExpr(t, "f(1, *rest, key=2, **extra)")
	if got != "f(1, *rest, key=2, **extra)" {
		t.Fatalf("got %q", got)
	}
}

func TestUnparseLambdaWithDefault(t *testing.T) {
	got := roundTripExpr(t, "lambda x, y=1: x + y")
	if got != "lambda x, y=1: x + y" {
		t.Fatalf("got %q", got)
	}
}

func TestUnparseDictAndDictUnpack(t *testing.T) {
	got := roundTripExpr(t, "{'a': 1, **rest}")
	if got != `{'a': 1, **rest}` {
		t.Fatalf("got %q", got)
	}
}

func parseModuleSrc(t *testing.T, src string) *ast.Module {
	t.Helper()
	scanner := lexer.NewScanner([]byte(src))
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		t.Fatalf("lex error: %v", scanner.Errors[0])
	}
	p := parser.New(tokens, parser.DefaultOptions())
	mod, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error parsing %q: %v", src, err)
	}
	return mod
}

func TestUnparseModuleRoundTrip(t *testing.T) {
	src := "def f(x, y=1, *args, z, **kwargs):\n" +
		"    if x:\n" +
		"        return x\n" +
		"    elif y:\n" +
		"        return y\n" +
		"    else:\n" +
		"        return z\n"
	mod := parseModuleSrc(t, src)
	out, err := Unparse(mod, DefaultOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	// reparse the unparsed text and compare statement shapes, since exact
	// whitespace is not guaranteed to match the original byte for byte.
	mod2 := parseModuleSrc(t, out+"\n")
	if len(mod.Body) != len(mod2.Body) {
		t.Fatalf("statement count changed across round trip: %d vs %d", len(mod.Body), len(mod2.Body))
	}
	fn2, ok := mod2.Body[0].(*ast.FunctionDef)
	if !ok || fn2.Name != "f" {
		t.Fatalf("expected FunctionDef f to survive round trip, got %#v", mod2.Body[0])
	}
	if !strings.Contains(out, "elif y:") {
		t.Fatalf("expected elif reconstruction in output, got:\n%s", out)
	}
}

func TestUnparseAsyncFunctionForWith(t *testing.T) {
	src := "async def f():\n" +
		"    async for x in xs:\n" +
		"        pass\n" +
		"    async with ctx() as c:\n" +
		"        pass\n"
	mod := parseModuleSrc(t, src)
	fn, ok := mod.Body[0].(*ast.AsyncFunctionDef)
	if !ok {
		t.Fatalf("expected *ast.AsyncFunctionDef, got %T", mod.Body[0])
	}
	if _, ok := fn.Body[0].(*ast.AsyncFor); !ok {
		t.Fatalf("expected *ast.AsyncFor, got %T", fn.Body[0])
	}
	if _, ok := fn.Body[1].(*ast.AsyncWith); !ok {
		t.Fatalf("expected *ast.AsyncWith, got %T", fn.Body[1])
	}
	out, err := Unparse(mod, DefaultOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if !strings.Contains(out, "async def f():") {
		t.Fatalf("expected async def heading preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "async for x in xs:") {
		t.Fatalf("expected async for heading preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "async with ctx() as c:") {
		t.Fatalf("expected async with heading preserved, got:\n%s", out)
	}
}

func TestUnparseForElse(t *testing.T) {
	mod := parseModuleSrc(t, "for x in xs:\n    pass\nelse:\n    pass\n")
	out, err := Unparse(mod, DefaultOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if !strings.Contains(out, "else:") {
		t.Fatalf("expected else clause preserved, got:\n%s", out)
	}
}

func TestUnparseTryStar(t *testing.T) {
	mod := parseModuleSrc(t, "try:\n    a()\nexcept* ValueError as e:\n    b()\n")
	out, err := Unparse(mod, DefaultOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if !strings.Contains(out, "except* ValueError as e:") {
		t.Fatalf("expected except* preserved, got:\n%s", out)
	}
}

func TestUnparseMatchStatement(t *testing.T) {
	mod := parseModuleSrc(t, "match point:\n    case Point(x=0, y=0):\n        pass\n    case _:\n        pass\n")
	out, err := Unparse(mod, DefaultOptions())
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if !strings.Contains(out, "case Point(x=0, y=0):") {
		t.Fatalf("expected MatchClass pattern preserved, got:\n%s", out)
	}
	if !strings.Contains(out, "case _:") {
		t.Fatalf("expected wildcard pattern preserved, got:\n%s", out)
	}
}

func TestUnparseMatchPatternKinds(t *testing.T) {
	cases := []string{
		"case [1, 2, *rest]:",
		"case {'a': 1, **rest}:",
		"case 1 | 2 | 3:",
		"case Point() as p:",
	}
	for _, want := range cases {
		src := "match x:\n    " + want + "\n        pass\n"
		mod := parseModuleSrc(t, src)
		out, err := Unparse(mod, DefaultOptions())
		if err != nil {
			t.Fatalf("unparse error for %q: %v", src, err)
		}
		if !strings.Contains(out, want) {
			t.Errorf("expected %q preserved, got:\n%s", want, out)
		}
	}
}

func TestUnparseMalformedTreeFallsBackToQuestionMark(t *testing.T) {
	// A BinOp with a nil Right operand is structurally malformed; the
	// unparser is total and falls back to "?" rather than panicking.
	bad := &ast.BinOp{Left: &ast.Name{Id: "a"}, Op: ast.Add, Right: nil}
	out, err := Unparse(bad, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "?") {
		t.Fatalf("expected ? fallback in output, got %q", out)
	}
}

func TestUnparseEmptySuiteIsAStructuralError(t *testing.T) {
	bad := &ast.FunctionDef{Name: "f", Args: &ast.Arguments{}, Body: nil}
	_, err := Unparse(bad, DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for an empty function body")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *unparser.Error, got %T", err)
	}
}

func TestUnparseIndentOption(t *testing.T) {
	mod := parseModuleSrc(t, "if x:\n    pass\n")
	out, err := Unparse(mod, Options{Indent: "  "})
	if err != nil {
		t.Fatalf("unparse error: %v", err)
	}
	if !strings.Contains(out, "\n  pass") {
		t.Fatalf("expected custom 2-space indent, got:\n%q", out)
	}
}
