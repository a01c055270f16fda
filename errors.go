package chaincli

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoNetwork indicates a chain interaction was attempted before a
	// network was selected on the session.
	ErrNoNetwork = errors.New("chaincli: no network selected")

	// ErrUnknownAlias indicates a string resolved to neither an address
	// nor an entry in the accounts or contracts tables.
	ErrUnknownAlias = errors.New("chaincli: unknown alias or invalid address")

	// ErrWatchOnly indicates the account has no private key and cannot sign.
	ErrWatchOnly = errors.New("chaincli: account is watch-only (no private key)")

	// ErrConfirmationDeclined indicates the user rejected the batch
	// confirmation prompt; nothing was dispatched.
	ErrConfirmationDeclined = errors.New("chaincli: confirmation declined")

	// ErrUnknownUnit indicates an unrecognized denomination name.
	ErrUnknownUnit = errors.New("chaincli: unknown denomination")

	// ErrFractionalWei indicates a conversion produced a sub-wei remainder.
	ErrFractionalWei = errors.New("chaincli: amount is not a whole number of wei")
)

// TableMissingError indicates a required configuration table was never
// found during registry discovery. Raised at first use, not at load time.
type TableMissingError struct {
	Table string
}

func (e *TableMissingError) Error() string {
	return fmt.Sprintf("chaincli: required table %q not found in this or any parent directory", e.Table)
}

// AliasError wraps ErrUnknownAlias with the offending input echoed.
type AliasError struct {
	Input string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("chaincli: cannot resolve %q: unknown alias or invalid address", e.Input)
}

func (e *AliasError) Unwrap() error {
	return ErrUnknownAlias
}

// NetworkScopeError indicates a contract alias exists but has no address
// deployed on the given network.
type NetworkScopeError struct {
	Alias   string
	Network string
}

func (e *NetworkScopeError) Error() string {
	return fmt.Sprintf("chaincli: contract %q has no address on network %q", e.Alias, e.Network)
}

// MethodNotFoundError indicates the contract ABI has no such method.
type MethodNotFoundError struct {
	Contract common.Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("chaincli: method %q not found in contract %s", e.Method, e.Contract.Hex())
}

// ArgumentError indicates an issue with a call argument.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("chaincli: argument %d for method %q: %v", e.Index, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// DispatchError indicates the chain rejected a single transaction in a
// batch. It is routed to that transaction's failure callback and never
// escalated to sibling dispatches.
type DispatchError struct {
	Index  int
	Sender common.Address
	Nonce  uint64
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("chaincli: transaction %d (from %s, nonce %d): %v", e.Index, e.Sender.Hex(), e.Nonce, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// CompileError indicates the compiler reported at least one error-severity
// diagnostic. The full diagnostic list remains available on the output.
type CompileError struct {
	Diagnostics []Diagnostic
}

func (e *CompileError) Error() string {
	n := 0
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return fmt.Sprintf("chaincli: compilation failed with %d error(s)", n)
}
