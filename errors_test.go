package chaincli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestAliasError(t *testing.T) {
	err := &AliasError{Input: "tresaury"}

	if !errors.Is(err, ErrUnknownAlias) {
		t.Error("AliasError should unwrap to ErrUnknownAlias")
	}
	if !strings.Contains(err.Error(), `"tresaury"`) {
		t.Errorf("message should echo the input: %s", err)
	}
}

func TestDispatchError(t *testing.T) {
	cause := errors.New("nonce too low")
	err := &DispatchError{
		Index:  2,
		Sender: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Nonce:  7,
		Err:    cause,
	}

	if !errors.Is(err, cause) {
		t.Error("DispatchError should unwrap to its cause")
	}
	msg := err.Error()
	for _, want := range []string{"transaction 2", "nonce 7", "nonce too low"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestArgumentError(t *testing.T) {
	cause := fmt.Errorf("invalid integer %q", "lots")
	err := &ArgumentError{Method: "transfer", Index: 1, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ArgumentError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), `"transfer"`) {
		t.Errorf("message should name the method: %s", err)
	}
}

func TestTableMissingError(t *testing.T) {
	err := &TableMissingError{Table: AccountsFile}
	if !strings.Contains(err.Error(), AccountsFile) {
		t.Errorf("message should name the table: %s", err)
	}
}

func TestCompileErrorCountsErrors(t *testing.T) {
	err := &CompileError{Diagnostics: []Diagnostic{
		{Severity: SeverityWarning, Message: "unused variable"},
		{Severity: SeverityError, Message: "expected ';'"},
		{Severity: SeverityError, Message: "undeclared identifier"},
	}}
	if !strings.Contains(err.Error(), "2 error(s)") {
		t.Errorf("message should count error diagnostics only: %s", err)
	}
}
