package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the root command with args, capturing stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// reset flag state between runs
	showTokens, showAST, showIR, debugTrace = false, false, false, false
	rootCmd.SetArgs(args)

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	runErr := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil {
		t.Fatal(err)
	}
	return out.String(), runErr
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.sl")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExecutesProgram(t *testing.T) {
	path := writeScript(t, `fn main() -> void { print("out = {}", 6 * 7); }`)
	out, err := runCommand(t, path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "out = 42") {
		t.Errorf("program output missing: %q", out)
	}
}

func TestLexFlagPrintsTokensAndHalts(t *testing.T) {
	path := writeScript(t, `fn main() -> void { print("x"); }`)
	out, err := runCommand(t, "-l", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "KEYWORD") || !strings.Contains(out, `"fn"`) {
		t.Errorf("token listing missing: %q", out)
	}
	if strings.Contains(out, "x\n") && strings.Contains(out, "param") {
		t.Errorf("pipeline should halt after lexing: %q", out)
	}
}

func TestASTFlagPrintsTree(t *testing.T) {
	path := writeScript(t, `fn main() -> int { return 1; }`)
	out, err := runCommand(t, "-a", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "FunctionDecl:") || !strings.Contains(out, "ReturnStmt:") {
		t.Errorf("AST listing missing: %q", out)
	}
}

func TestGenFlagPrintsIR(t *testing.T) {
	path := writeScript(t, `fn main() -> int { return 1 + 2; }`)
	out, err := runCommand(t, "-g", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "main:") || !strings.Contains(out, "t0 = 1 + 2") {
		t.Errorf("IR listing missing: %q", out)
	}
}

func TestErrorsExitNonZero(t *testing.T) {
	path := writeScript(t, `fn main() -> void { missing(); }`)
	if _, err := runCommand(t, path); err == nil {
		t.Error("semantic failure must surface as a command error")
	}

	if _, err := runCommand(t, filepath.Join(t.TempDir(), "absent.sl")); err == nil {
		t.Error("unreadable file must surface as a command error")
	}
}
