package chaincli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// stubSolc writes an executable that emits canned standard-JSON output,
// standing in for the real compiler binary.
func stubSolc(t *testing.T, output string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "solc")
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

const solcOK = `{
	"errors": [
		{"severity": "warning", "message": "unused variable", "formattedMessage": "Warning: unused variable", "sourceLocation": {"file": "Greeter.sol"}}
	],
	"contracts": {
		"Greeter.sol": {
			"Greeter": {
				"abi": [{"name": "greet", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "string"}]}],
				"evm": {"bytecode": {"object": "6080604052"}}
			}
		}
	}
}`

const solcFailed = `{
	"errors": [
		{"severity": "error", "message": "expected ';'", "formattedMessage": "Error: expected ';'", "sourceLocation": {"file": "Broken.sol"}}
	]
}`

func TestCompile(t *testing.T) {
	ctx := context.Background()
	sources := map[string]string{"Greeter.sol": "contract Greeter {}"}

	t.Run("returns contracts and passes warnings through", func(t *testing.T) {
		compiler := NewCompiler(WithSolcPath(stubSolc(t, solcOK)))
		out, err := compiler.Compile(ctx, sources)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}

		greeter, ok := out.Contracts["Greeter"]
		if !ok {
			t.Fatalf("Greeter missing from output: %v", out.Contracts)
		}
		if greeter.File != "Greeter.sol" {
			t.Errorf("source file %q", greeter.File)
		}
		if len(greeter.Bytecode) != 5 {
			t.Errorf("bytecode length %d, want 5", len(greeter.Bytecode))
		}
		if !greeter.ABI.Methods["greet"].IsConstant() {
			t.Error("ABI lost the greet view method")
		}

		if len(out.Diagnostics) != 1 || out.Diagnostics[0].Severity != SeverityWarning {
			t.Errorf("diagnostics %v, want one warning", out.Diagnostics)
		}
	})

	t.Run("error diagnostics fail the compile but keep the output", func(t *testing.T) {
		compiler := NewCompiler(WithSolcPath(stubSolc(t, solcFailed)))
		out, err := compiler.Compile(ctx, map[string]string{"Broken.sol": "contract {"})

		var ce *CompileError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *CompileError, got %v", err)
		}
		if out == nil || len(out.Diagnostics) != 1 {
			t.Fatal("diagnostics should survive a failed compile")
		}
		if out.Diagnostics[0].File != "Broken.sol" {
			t.Errorf("diagnostic file %q", out.Diagnostics[0].File)
		}
	})

	t.Run("missing compiler binary surfaces the exec error", func(t *testing.T) {
		compiler := NewCompiler(WithSolcPath(filepath.Join(t.TempDir(), "no-such-solc")))
		if _, err := compiler.Compile(ctx, sources); err == nil {
			t.Fatal("expected an exec error")
		}
	})
}
