package chaincli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallArg represents an argument for a contract call or constructor.
// This is a sealed interface with exactly two shapes: a single typed
// argument (Arg) or an ordered list (Args). The shape is declared at the
// call boundary instead of inferred from the input's runtime structure.
type CallArg interface {
	// isCallArg is unexported to seal the interface.
	isCallArg()
}

// SingleArg is one typed argument: an ABI type name plus a value.
type SingleArg struct {
	TypeName string
	Value    any
}

func (*SingleArg) isCallArg() {}

// ArgList is an ordered list of arguments.
type ArgList struct {
	Elems []*SingleArg
}

func (*ArgList) isCallArg() {}

// Arg builds a single typed argument. The value may be a native Go value
// (*big.Int, common.Address, bool, []byte, string) or a string rendering
// coerced to the ABI type (decimal for integers, hex for addresses and
// bytes).
func Arg(typeName string, value any) *SingleArg {
	return &SingleArg{TypeName: typeName, Value: value}
}

// Args builds an argument list.
func Args(elems ...*SingleArg) *ArgList {
	return &ArgList{Elems: elems}
}

// flatten normalizes either variant to a slice of single arguments.
func flatten(arg CallArg) []*SingleArg {
	switch a := arg.(type) {
	case *SingleArg:
		return []*SingleArg{a}
	case *ArgList:
		return a.Elems
	default:
		return nil
	}
}

// EncodeArgs ABI-encodes an argument or argument list without a method
// context, e.g. for constructor parameters appended to deploy bytecode.
func EncodeArgs(arg CallArg) ([]byte, error) {
	singles := flatten(arg)

	arguments := make(abi.Arguments, len(singles))
	values := make([]any, len(singles))
	for i, s := range singles {
		abiType, err := abi.NewType(s.TypeName, "", nil)
		if err != nil {
			return nil, &ArgumentError{Index: i, Err: err}
		}
		arguments[i] = abi.Argument{Type: abiType}
		v, err := coerce(s.Value, abiType)
		if err != nil {
			return nil, &ArgumentError{Index: i, Err: err}
		}
		values[i] = v
	}

	return arguments.Pack(values...)
}

// packMethodArgs coerces arguments against a method's declared inputs and
// packs full calldata (selector plus encoded arguments).
func packMethodArgs(contractABI abi.ABI, method abi.Method, singles []*SingleArg) ([]byte, error) {
	if len(singles) != len(method.Inputs) {
		return nil, &ArgumentError{
			Method: method.Name,
			Index:  len(singles),
			Err:    fmt.Errorf("expected %d arguments, got %d", len(method.Inputs), len(singles)),
		}
	}

	values := make([]any, len(singles))
	for i, s := range singles {
		want := method.Inputs[i].Type
		if s.TypeName != "" && s.TypeName != want.String() {
			return nil, &ArgumentError{
				Method: method.Name,
				Index:  i,
				Err:    fmt.Errorf("declared type %s, method expects %s", s.TypeName, want.String()),
			}
		}
		v, err := coerce(s.Value, want)
		if err != nil {
			return nil, &ArgumentError{Method: method.Name, Index: i, Err: err}
		}
		values[i] = v
	}

	return contractABI.Pack(method.Name, values...)
}

// coerce converts a supplied value into the Go representation the abi
// package expects for the target type. String inputs are parsed per type
// so table-file and CLI-supplied arguments round-trip cleanly.
func coerce(value any, abiType abi.Type) (any, error) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		return coerceString(v, abiType)
	default:
		return value, nil
	}
}

func coerceString(v string, abiType abi.Type) (any, error) {
	switch abiType.T {
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		return n, nil
	case abi.AddressTy:
		if !common.IsHexAddress(v) {
			return nil, fmt.Errorf("invalid address %q", v)
		}
		return common.HexToAddress(v), nil
	case abi.BoolTy:
		switch strings.ToLower(v) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid bool %q", v)
	case abi.BytesTy:
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", v, err)
		}
		return b, nil
	case abi.FixedBytesTy:
		if abiType.Size == 32 {
			b, err := hexutil.Decode(v)
			if err != nil {
				return nil, fmt.Errorf("invalid bytes32 %q: %w", v, err)
			}
			return common.BytesToHash(b), nil
		}
		return nil, fmt.Errorf("unsupported fixed bytes size %d for string input", abiType.Size)
	case abi.StringTy:
		return v, nil
	default:
		return nil, fmt.Errorf("cannot coerce string to %s", abiType.String())
	}
}
