package chaincli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Severity grades a compiler diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one compiler message.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
}

// CompiledContract is one contract's compilation artifacts.
type CompiledContract struct {
	Name     string
	File     string
	Bytecode []byte
	ABI      abi.ABI
	ABIJSON  json.RawMessage
}

// CompileOutput collects every contract and diagnostic the compiler
// produced. Contracts are keyed by contract name.
type CompileOutput struct {
	Contracts   map[string]*CompiledContract
	Diagnostics []Diagnostic
}

// Compiler drives the Solidity compiler through its standard-JSON
// interface. The compiler binary is an external collaborator; nothing is
// interpreted here beyond its input and output envelopes.
type Compiler struct {
	path         string
	optimize     bool
	optimizeRuns int
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithSolcPath overrides the compiler binary path (default "solc").
func WithSolcPath(path string) CompilerOption {
	return func(c *Compiler) {
		c.path = path
	}
}

// WithOptimizer enables the optimizer with the given run count.
func WithOptimizer(runs int) CompilerOption {
	return func(c *Compiler) {
		c.optimize = true
		c.optimizeRuns = runs
	}
}

// NewCompiler creates a Compiler with the given options.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{path: "solc", optimizeRuns: 200}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// standard-JSON envelopes, trimmed to the fields this facade consumes.
type solcInput struct {
	Language string                `json:"language"`
	Sources  map[string]solcSource `json:"sources"`
	Settings solcSettings          `json:"settings"`
}

type solcSource struct {
	Content string `json:"content"`
}

type solcSettings struct {
	Optimizer       solcOptimizer                  `json:"optimizer"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type solcOptimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

type solcOutput struct {
	Errors []struct {
		Severity         string `json:"severity"`
		FormattedMessage string `json:"formattedMessage"`
		Message          string `json:"message"`
		SourceLocation   struct {
			File string `json:"file"`
		} `json:"sourceLocation"`
	} `json:"errors"`
	Contracts map[string]map[string]struct {
		ABI json.RawMessage `json:"abi"`
		EVM struct {
			Bytecode struct {
				Object string `json:"object"`
			} `json:"bytecode"`
		} `json:"evm"`
	} `json:"contracts"`
}

// Compile runs the compiler over a map of file name to source text.
// Warnings pass through on the output; an error-severity diagnostic makes
// Compile return a *CompileError alongside the partial output, so callers
// can still render the full diagnostic list.
func (c *Compiler) Compile(ctx context.Context, sources map[string]string) (*CompileOutput, error) {
	input := solcInput{
		Language: "Solidity",
		Sources:  make(map[string]solcSource, len(sources)),
		Settings: solcSettings{
			Optimizer: solcOptimizer{Enabled: c.optimize, Runs: c.optimizeRuns},
			OutputSelection: map[string]map[string][]string{
				"*": {"*": {"abi", "evm.bytecode.object"}},
			},
		},
	}
	for name, content := range sources {
		input.Sources[name] = solcSource{Content: content}
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.path, "--standard-json")
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("chaincli: %s: %w", c.path, err)
	}

	var raw solcOutput
	if err := json.Unmarshal(stdout.Bytes(), &raw); err != nil {
		return nil, fmt.Errorf("chaincli: decode compiler output: %w", err)
	}

	out := &CompileOutput{Contracts: make(map[string]*CompiledContract)}
	failed := false
	for _, e := range raw.Errors {
		msg := e.FormattedMessage
		if msg == "" {
			msg = e.Message
		}
		sev := Severity(e.Severity)
		if sev == SeverityError {
			failed = true
		}
		out.Diagnostics = append(out.Diagnostics, Diagnostic{
			Severity: sev,
			Message:  msg,
			File:     e.SourceLocation.File,
		})
	}

	for file, byName := range raw.Contracts {
		for name, artifact := range byName {
			parsed, err := ParseABI(string(artifact.ABI))
			if err != nil {
				return nil, fmt.Errorf("chaincli: contract %s: decode ABI: %w", name, err)
			}
			code, err := hexutil.Decode("0x" + artifact.EVM.Bytecode.Object)
			if err != nil {
				return nil, fmt.Errorf("chaincli: contract %s: decode bytecode: %w", name, err)
			}
			out.Contracts[name] = &CompiledContract{
				Name:     name,
				File:     file,
				Bytecode: code,
				ABI:      parsed,
				ABIJSON:  artifact.ABI,
			}
		}
	}

	if failed {
		return out, &CompileError{Diagnostics: out.Diagnostics}
	}
	return out, nil
}
