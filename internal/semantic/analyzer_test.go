package semantic

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/errors"
	"github.com/cwbudde/go-slate/internal/lexer"
	"github.com/cwbudde/go-slate/internal/parser"
)

// analyze parses and analyzes input, returning the analysis error.
func analyze(t *testing.T, input string) error {
	t.Helper()
	prog, err := parser.New(lexer.New(input).Tokenize()).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return NewAnalyzer().Analyze(prog)
}

// expectOK asserts the program passes analysis.
func expectOK(t *testing.T, input string) {
	t.Helper()
	if err := analyze(t, input); err != nil {
		t.Errorf("expected analysis to pass, got: %v", err)
	}
}

// expectError asserts analysis fails with a message containing want.
func expectError(t *testing.T, input, want string) {
	t.Helper()
	err := analyze(t, input)
	if err == nil {
		t.Errorf("expected analysis error containing %q, got none", want)
		return
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err.Error(), want)
	}
	if ce, ok := err.(*errors.CompilerError); ok {
		if ce.Stage != errors.StageSemantic && ce.Stage != errors.StageSyntax {
			t.Errorf("unexpected error stage %q", ce.Stage)
		}
		if ce.Pos.Line < 1 {
			t.Errorf("error position outside source: %+v", ce.Pos)
		}
	}
}

func TestAcceptsWellTypedPrograms(t *testing.T) {
	programs := []string{
		`fn main() -> int { return 1 + 2 * 3; }`,
		`fn main() -> int { int s = 0; for (int i = 1; i <= 5; i++) { s += i; } return s; }`,
		`fn main() -> int { list<int> xs = [10, 20, 30]; return xs[0] + xs[2]; }`,
		`fn main() -> str { tuple<int,str> t = (1, "hi"); return t[1]; }`,
		`fn fib(n:int) -> int { if (n < 2) { return n; } return fib(n-1) + fib(n-2); }
		 fn main() -> int { return fib(10); }`,
		`fn main() -> int { list<int> xs = [1,2,3]; xs[1] = 9; return xs[1]; }`,
		`fn main() -> void { print("x = {}", 1); print(); }`,
		`fn main() -> void { str name = input("? "); print(name); }`,
		`fn main() -> float { float f = 1; return f + 2; }`,
		`fn main() -> void { bool b = 1 < 2 && 3 >= 2; if (b) { } }`,
		`fn main() -> void { if (true) { int x = 1; } elif (false) { } else { } }`,
	}
	for _, src := range programs {
		expectOK(t, src)
	}
}

func TestRejectsTupleElementAssignment(t *testing.T) {
	expectError(t,
		`fn main() -> void { tuple<int,int> t = (1, 2); t[0] = 3; }`,
		"immutable")
}

func TestRejectsUndefinedFunction(t *testing.T) {
	expectError(t, `fn main() -> void { missing(1); }`, "undefined function 'missing'")
}

func TestRejectsNonConstantTupleIndex(t *testing.T) {
	expectError(t,
		`fn main() -> int { tuple<int,int> t = (1, 2); int i = 0; return t[i]; }`,
		"tuple index must be a constant integer")
}

func TestRejectsTupleIndexOutOfRange(t *testing.T) {
	expectError(t,
		`fn main() -> int { tuple<int,int> t = (1, 2); return t[5]; }`,
		"out of range")
}

func TestRejectsNonBoolCondition(t *testing.T) {
	expectError(t, `fn main() -> void { if (1) { } }`, "must be 'bool'")
	expectError(t, `fn main() -> void { for (; 1;) { } }`, "must be 'bool'")
	expectError(t, `fn main() -> void { if (true) { } elif (2) { } }`, "must be 'bool'")
}

func TestRejectsUndefinedVariable(t *testing.T) {
	expectError(t, `fn main() -> int { return x; }`, "undefined variable 'x'")
}

func TestRejectsDuplicateDefinitionInSameScope(t *testing.T) {
	expectError(t, `fn main() -> void { int x = 1; int x = 2; }`, "already defined")
	expectError(t, `fn f() -> void { } fn f() -> void { } fn main() -> void { }`, "already defined")
}

func TestAllowsShadowingInInnerScope(t *testing.T) {
	expectOK(t, `fn main() -> void { int x = 1; if (true) { int x = 2; } }`)
}

func TestScopeEndsWithBlock(t *testing.T) {
	expectError(t,
		`fn main() -> void { if (true) { int inner = 1; } inner = 2; }`,
		"undefined variable 'inner'")
}

func TestRejectsArityMismatch(t *testing.T) {
	expectError(t,
		`fn add(a:int, b:int) -> int { return a + b; } fn main() -> int { return add(1); }`,
		"expects 2 parameters, got 1")
}

func TestRejectsArgumentTypeMismatch(t *testing.T) {
	expectError(t,
		`fn twice(x:int) -> int { return x * 2; } fn main() -> int { return twice("no"); }`,
		"type mismatch")
}

func TestRejectsReturnTypeMismatch(t *testing.T) {
	expectError(t, `fn main() -> int { return "hi"; }`, "return type mismatch")
	expectError(t, `fn main() -> int { return; }`, "return type mismatch")
}

func TestAllowsBareReturnForVoid(t *testing.T) {
	expectOK(t, `fn log() -> void { return; } fn main() -> void { log(); }`)
}

func TestRejectsEmptyListLiteral(t *testing.T) {
	expectError(t, `fn main() -> void { list<int> xs = []; }`, "list cannot be empty")
}

func TestRejectsMixedListLiteral(t *testing.T) {
	expectError(t, `fn main() -> void { list<int> xs = [1, "a"]; }`, "same type")
}

func TestRejectsArithmeticOnNonNumeric(t *testing.T) {
	expectError(t, `fn main() -> void { str s = "a" * "b"; }`, "numeric operands")
}

func TestRejectsComparisonAcrossTypes(t *testing.T) {
	expectError(t, `fn main() -> void { bool b = 1 == "a"; }`, "same type")
}

func TestRejectsLogicalOnNonBool(t *testing.T) {
	expectError(t, `fn main() -> void { bool b = 1 && true; }`, "boolean operands")
}

func TestRejectsIndexingNonCollection(t *testing.T) {
	expectError(t, `fn main() -> void { int x = 1; int y = x[0]; }`, "only supported on 'list' and 'tuple'")
}

func TestIntWidensToFloat(t *testing.T) {
	expectOK(t, `fn main() -> float { return 1; }`)
	expectError(t, `fn main() -> int { return 1.5; }`, "return type mismatch")
}

func TestIncrementRequiresAssignableNumericOperand(t *testing.T) {
	expectOK(t, `fn main() -> void { int i = 0; ++i; }`)
	expectError(t, `fn main() -> void { ++5; }`, "assignable operand")
	expectError(t, `fn main() -> void { str s = "a"; ++s; }`, "numeric operand")
}

func TestBreakAndContinueAreNotCheckedHere(t *testing.T) {
	// Loop containment is the IR generator's job; the analyzer accepts
	// these unconditionally.
	expectOK(t, `fn main() -> void { break; }`)
	expectOK(t, `fn main() -> void { continue; }`)
}

func TestClassesAreCheckedButInert(t *testing.T) {
	expectOK(t, `
		class Point {
			int x
			int Y = 0
			fn Sum(a:int) -> int { return a + 1; }
		}
		fn main() -> void { }`)

	expectError(t, `
		class Point { int x int x }
		fn main() -> void { }`,
		"already defined")

	expectError(t, `
		class Point { }
		class Point { }
		fn main() -> void { }`,
		"already defined")
}

func TestVariadicPrintSkipsArityChecks(t *testing.T) {
	expectOK(t, `fn main() -> void { print("a", 1, 2.5, true); }`)
	expectError(t, `fn main() -> void { input(); }`, "expects 1 parameters, got 0")
}

func TestSymbolTableBasics(t *testing.T) {
	global := NewSymbolTable()
	if err := global.Define(&Symbol{Name: "x", Kind: SymbolVariable}); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := global.Define(&Symbol{Name: "x", Kind: SymbolVariable}); err == nil {
		t.Error("redefinition in same scope should fail")
	}

	inner := NewEnclosedSymbolTable(global)
	if err := inner.Define(&Symbol{Name: "x", Kind: SymbolVariable}); err != nil {
		t.Errorf("shadowing in inner scope should succeed: %v", err)
	}
	if _, ok := inner.Resolve("x"); !ok {
		t.Error("inner resolve failed")
	}
	if !global.IsDeclaredInCurrentScope("x") {
		t.Error("outer scope lost its symbol")
	}
	if inner.Outer() != global {
		t.Error("outer link broken")
	}

	if _, ok := inner.Resolve("missing"); ok {
		t.Error("resolve of unknown name should fail")
	}
}

// guard against the analyzer mutating the tree
func TestAnalyzeLeavesTreeUsable(t *testing.T) {
	src := `fn main() -> int { return 1; }`
	prog, err := parser.New(lexer.New(src).Tokenize()).Parse()
	if err != nil {
		t.Fatal(err)
	}
	if err := NewAnalyzer().Analyze(prog); err != nil {
		t.Fatal(err)
	}
	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	if !ok || fn.Name != "main" {
		t.Error("tree changed during analysis")
	}
}
