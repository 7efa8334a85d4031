package tac

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and executes source, returning the program result and
// captured output.
func run(t *testing.T, source string) (Value, string) {
	t.Helper()
	value, out, err := tryRun(t, source, "")
	require.NoError(t, err)
	return value, out
}

// tryRun is run without the error requirement, with optional stdin.
func tryRun(t *testing.T, source, stdin string) (Value, string, error) {
	t.Helper()
	code := compileSource(t, source)

	var out bytes.Buffer
	vm := NewVM(&out)
	if stdin != "" {
		vm.SetInput(strings.NewReader(stdin))
	}
	require.NoError(t, vm.Load(code))
	value, err := vm.Run()
	return value, out.String(), err
}

func TestScenarioArithmetic(t *testing.T) {
	value, _ := run(t, `fn main() -> int { return 1 + 2 * 3; }`)
	assert.Equal(t, int64(7), value)
}

func TestScenarioForLoopSum(t *testing.T) {
	value, _ := run(t, `fn main() -> int {
		int s = 0;
		for (int i = 1; i <= 5; i++) { s += i; }
		return s;
	}`)
	assert.Equal(t, int64(15), value)
}

func TestScenarioListIndexing(t *testing.T) {
	value, _ := run(t, `fn main() -> int {
		list<int> xs = [10, 20, 30];
		return xs[0] + xs[2];
	}`)
	assert.Equal(t, int64(40), value)
}

func TestScenarioTupleElement(t *testing.T) {
	value, _ := run(t, `fn main() -> str {
		tuple<int,str> t = (1, "hi");
		return t[1];
	}`)
	assert.Equal(t, "hi", value)
}

func TestScenarioFibonacci(t *testing.T) {
	value, _ := run(t, `
		fn fib(n:int) -> int {
			if (n < 2) { return n; }
			return fib(n-1) + fib(n-2);
		}
		fn main() -> int { return fib(10); }
	`)
	assert.Equal(t, int64(55), value)
}

func TestScenarioListElementAssignment(t *testing.T) {
	value, _ := run(t, `fn main() -> int {
		list<int> xs = [1, 2, 3];
		xs[1] = 9;
		return xs[1];
	}`)
	assert.Equal(t, int64(9), value)
}

func TestComparisonSemantics(t *testing.T) {
	// Each comparison round-trips through the inversion pair; the net
	// predicate must equal the source predicate, equality included.
	cases := []struct {
		expr string
		want bool
	}{
		{"1 < 2", true}, {"2 < 2", false},
		{"2 <= 2", true}, {"3 <= 2", false},
		{"3 > 2", true}, {"2 > 2", false},
		{"2 >= 2", true}, {"1 >= 2", false},
		{"2 == 2", true}, {"1 == 2", false},
		{"1 != 2", true}, {"2 != 2", false},
	}
	for _, tt := range cases {
		value, _ := run(t, "fn main() -> bool { return "+tt.expr+"; }")
		assert.Equal(t, tt.want, value, tt.expr)
	}
}

func TestBranchTakesCorrectPath(t *testing.T) {
	value, _ := run(t, `fn main() -> int {
		int x = 3;
		if (x > 2) { return 1; } elif (x > 1) { return 2; } else { return 3; }
		return 0;
	}`)
	assert.Equal(t, int64(1), value)

	value, _ = run(t, `fn main() -> int {
		int x = 2;
		if (x > 2) { return 1; } elif (x > 1) { return 2; } else { return 3; }
		return 0;
	}`)
	assert.Equal(t, int64(2), value)

	value, _ = run(t, `fn main() -> int {
		int x = 0;
		if (x > 2) { return 1; } elif (x > 1) { return 2; } else { return 3; }
		return 0;
	}`)
	assert.Equal(t, int64(3), value)
}

func TestLoopControlFlow(t *testing.T) {
	value, _ := run(t, `fn main() -> int {
		int n = 0;
		for (int i = 0; i < 10; i++) {
			if (i == 3) { continue; }
			if (i == 6) { break; }
			n += i;
		}
		return n;
	}`)
	// 0+1+2+4+5
	assert.Equal(t, int64(12), value)
}

func TestBooleanLoopCondition(t *testing.T) {
	value, _ := run(t, `fn main() -> int {
		int i = 0;
		bool going = true;
		for (; going;) {
			++i;
			if (i >= 4) { going = false; }
		}
		return i;
	}`)
	assert.Equal(t, int64(4), value)
}

func TestFloatPromotion(t *testing.T) {
	value, _ := run(t, `fn main() -> float { return 1 + 2.5; }`)
	assert.Equal(t, 3.5, value)
}

func TestIntegerDivision(t *testing.T) {
	value, _ := run(t, `fn main() -> int { return 7 / 2; }`)
	assert.Equal(t, int64(3), value)

	value, _ = run(t, `fn main() -> int { return 7 % 3; }`)
	assert.Equal(t, int64(1), value)
}

func TestUnaryOperators(t *testing.T) {
	value, _ := run(t, `fn main() -> int { int x = 5; return -x; }`)
	assert.Equal(t, int64(-5), value)

	value, _ = run(t, `fn main() -> bool { bool b = false; return !b; }`)
	assert.Equal(t, true, value)
}

func TestPrefixIncrementYieldsNewValue(t *testing.T) {
	value, _ := run(t, `fn main() -> int { int x = 5; int y = ++x; return x + y; }`)
	assert.Equal(t, int64(12), value)
}

func TestNestedCallsSequenceCorrectly(t *testing.T) {
	value, _ := run(t, `
		fn sub(a:int, b:int) -> int { return a - b; }
		fn main() -> int { return sub(sub(10, 3), sub(4, 2)); }
	`)
	assert.Equal(t, int64(5), value)
}

func TestGlobalFallbackResolution(t *testing.T) {
	// main runs in the bottom frame, so its bindings act as globals:
	// a callee that misses in its own frame falls back to them.
	code := &Program{}
	code.Add(&Label{Name: "main", Params: []string{}})
	code.Add(&Instruction{Opcode: OpAssign, Arg1: "42", Result: "x"})
	code.Add(&Instruction{Opcode: OpCall, Arg1: "helper", Arg2: "0", Result: "t0"})
	code.Add(&Instruction{Opcode: OpReturn, Arg1: "t0"})
	code.Add(&Label{Name: "helper", Params: []string{}})
	code.Add(&Instruction{Opcode: OpReturn, Arg1: "x"})

	vm := NewVM(&bytes.Buffer{})
	require.NoError(t, vm.Load(code))
	value, err := vm.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)
}

func TestCallStackBalance(t *testing.T) {
	code := compileSource(t, `
		fn fib(n:int) -> int {
			if (n < 2) { return n; }
			return fib(n-1) + fib(n-2);
		}
		fn main() -> int { return fib(8); }
	`)

	var out bytes.Buffer
	vm := NewVM(&out)
	require.NoError(t, vm.Load(code))
	_, err := vm.Run()
	require.NoError(t, err)

	returns, results, frames := vm.stackDepths()
	assert.Zero(t, returns, "return stack must drain")
	assert.Zero(t, results, "call-result stack must drain")
	assert.Equal(t, 1, frames, "only the global frame survives")
}

func TestTupleOverwriteIsTrapped(t *testing.T) {
	code := &Program{}
	code.Add(&Label{Name: "main", Params: []string{}})
	code.Add(&Instruction{Opcode: OpAllocTuple, Arg1: "1", Result: "t0"})
	code.Add(&Instruction{Opcode: OpTupleStore, Arg1: "t0", Arg2: "0,1"})
	code.Add(&Instruction{Opcode: OpTupleStore, Arg1: "t0", Arg2: "0,2"})
	code.Add(&Instruction{Opcode: OpReturn})

	vm := NewVM(&bytes.Buffer{})
	require.NoError(t, vm.Load(code))
	_, err := vm.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "immutable")
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := tryRun(t, `fn main() -> int { int z = 0; return 1 / z; }`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")

	_, _, err = tryRun(t, `fn main() -> int { int z = 0; return 1 % z; }`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestIndexOutOfRange(t *testing.T) {
	_, _, err := tryRun(t, `fn main() -> int {
		list<int> xs = [1];
		int i = 5;
		return xs[i];
	}`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoadRejectsMissingLabel(t *testing.T) {
	code := &Program{}
	code.Add(&Label{Name: "main", Params: []string{}})
	code.Add(&Instruction{Opcode: OpGoto, Arg1: "L9"})

	vm := NewVM(&bytes.Buffer{})
	err := vm.Load(code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "L9")
}

func TestLoadRejectsMissingMain(t *testing.T) {
	code := &Program{}
	code.Add(&Label{Name: "other", Params: []string{}})
	code.Add(&Instruction{Opcode: OpReturn})

	vm := NewVM(&bytes.Buffer{})
	err := vm.Load(code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main")
}

func TestLoadRejectsDuplicateLabels(t *testing.T) {
	code := &Program{}
	code.Add(&Label{Name: "main", Params: []string{}})
	code.Add(&Label{Name: "main", Params: []string{}})

	vm := NewVM(&bytes.Buffer{})
	require.Error(t, vm.Load(code))
}

func TestValueStackUnderflow(t *testing.T) {
	code := &Program{}
	code.Add(&Label{Name: "f", Params: []string{"x"}})
	code.Add(&Instruction{Opcode: OpReturn, Arg1: "x"})
	code.Add(&Label{Name: "main", Params: []string{}})
	code.Add(&Instruction{Opcode: OpCall, Arg1: "f", Arg2: "1", Result: "t0"})
	code.Add(&Instruction{Opcode: OpReturn, Arg1: "t0"})

	vm := NewVM(&bytes.Buffer{})
	require.NoError(t, vm.Load(code))
	_, err := vm.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "underflow")
}

func TestAggregateIdsAreNeverReused(t *testing.T) {
	code := compileSource(t, `fn main() -> int {
		int n = 0;
		for (int i = 0; i < 4; i++) {
			list<int> xs = [i];
			n += xs[0];
		}
		return n;
	}`)

	var out bytes.Buffer
	vm := NewVM(&out)
	require.NoError(t, vm.Load(code))
	value, err := vm.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(6), value)
	assert.Len(t, vm.arrays, 4, "each allocation gets a fresh id")
}

func TestUndefinedVariableAtRuntime(t *testing.T) {
	code := &Program{}
	code.Add(&Label{Name: "main", Params: []string{}})
	code.Add(&Instruction{Opcode: OpAssign, Arg1: "ghost", Result: "x"})
	code.Add(&Instruction{Opcode: OpReturn})

	vm := NewVM(&bytes.Buffer{})
	require.NoError(t, vm.Load(code))
	_, err := vm.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestDebugTraceWritesInstructions(t *testing.T) {
	code := compileSource(t, `fn main() -> int { return 1; }`)

	var out, trace bytes.Buffer
	vm := NewVM(&out)
	vm.SetDebug(true)
	vm.SetTrace(&trace)
	require.NoError(t, vm.Load(code))
	_, err := vm.Run()
	require.NoError(t, err)
	assert.Contains(t, trace.String(), "return 1")
}

func TestMainsReturnHaltsProgram(t *testing.T) {
	// Code lowered after main must not run once main returns.
	value, out := run(t, `
		fn noisy() -> void { print("never"); }
		fn main() -> int { return 3; }
	`)
	assert.Equal(t, int64(3), value)
	assert.Empty(t, out)
}
