package chaincli

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract pairs a deployed address with its ABI so calls can be encoded
// into transaction payloads.
type Contract struct {
	address common.Address
	abi     abi.ABI
}

// NewContract wraps an address and ABI.
func NewContract(address common.Address, contractABI abi.ABI) *Contract {
	return &Contract{address: address, abi: contractABI}
}

// ContractAt resolves a contract alias on the session's selected network
// and wraps it with the given ABI. The input may also be an address-shaped
// string, checksummed or not. An alias that is deployed, but only on other
// networks, fails with a NetworkScopeError naming the current one.
func (s *Session) ContractAt(aliasOrAddress string, contractABI abi.ABI) (*Contract, error) {
	addr, err := s.Resolve(aliasOrAddress, ContractsFirst)
	if err != nil {
		var ae *AliasError
		if errors.As(err, &ae) && s.network != "" && len(s.registry.ContractNetworks(aliasOrAddress)) > 0 {
			return nil, &NetworkScopeError{Alias: aliasOrAddress, Network: s.network}
		}
		return nil, err
	}
	return NewContract(addr, contractABI), nil
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// HasMethod returns true if the contract has a method with the given name.
func (c *Contract) HasMethod(methodName string) bool {
	_, ok := c.abi.Methods[methodName]
	return ok
}

// MethodNames returns all method names in the contract ABI.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}
	return names
}

// EncodeCall packs calldata (selector plus arguments) for the named
// method. Arguments are coerced against the method's declared input types;
// a declared type that disagrees with the ABI is an ArgumentError.
func (c *Contract) EncodeCall(methodName string, args ...*SingleArg) ([]byte, error) {
	method, ok := c.abi.Methods[methodName]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.address, Method: methodName}
	}
	return packMethodArgs(c.abi, method, args)
}

// Transaction builds a prepared transaction invoking the named method,
// ready to hand to a Sequencer. The nonce is left for the sequencer to
// assign; value may be nil for non-payable calls.
func (c *Contract) Transaction(sender *AccountEntry, methodName string, gas uint64, value *big.Int, args ...*SingleArg) (*PreparedTransaction, error) {
	data, err := c.EncodeCall(methodName, args...)
	if err != nil {
		return nil, err
	}
	return &PreparedTransaction{
		Sender: sender,
		To:     c.address,
		Gas:    gas,
		Value:  value,
		Data:   data,
	}, nil
}

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}
