package chaincli

import (
	"github.com/ethereum/go-ethereum/common"
)

// ResolveOrder controls which alias table is probed first.
type ResolveOrder uint8

const (
	// AccountsFirst probes the accounts table before the contracts table.
	AccountsFirst ResolveOrder = iota

	// ContractsFirst probes the contracts table before the accounts table.
	ContractsFirst
)

// Resolve maps a human-supplied string to a validated address.
//
// Address-shaped input (20 hex-encoded bytes, optional 0x prefix) is
// accepted directly regardless of checksum; a malformed checksum is
// silently repaired, never rejected. Anything else is probed against the
// accounts and contracts tables in the given order, first hit wins.
//
// Contract aliases are network-scoped: without a selected network the
// contracts table is skipped entirely, and the same alias may map to
// different addresses per network.
//
// A total miss returns an AliasError wrapping ErrUnknownAlias with the
// offending input echoed; a probed table that was never found on disk
// fails with TableMissingError.
func (s *Session) Resolve(input string, order ResolveOrder) (common.Address, error) {
	if common.IsHexAddress(input) {
		return common.HexToAddress(input), nil
	}

	probes := []func(string) (common.Address, bool, error){
		s.probeAccounts,
		s.probeContracts,
	}
	if order == ContractsFirst {
		probes[0], probes[1] = probes[1], probes[0]
	}

	for _, probe := range probes {
		addr, ok, err := probe(input)
		if err != nil {
			return common.Address{}, err
		}
		if ok {
			return addr, nil
		}
	}
	return common.Address{}, &AliasError{Input: input}
}

func (s *Session) probeAccounts(alias string) (common.Address, bool, error) {
	a, ok, err := s.registry.Account(alias)
	if err != nil || !ok {
		return common.Address{}, false, err
	}
	return a.Address, true, nil
}

func (s *Session) probeContracts(alias string) (common.Address, bool, error) {
	if s.network == "" {
		return common.Address{}, false, nil
	}
	return s.registry.Contract(alias, s.network)
}

// ChecksumAddress returns the EIP-55 checksummed rendering of an
// address-shaped string, repairing any malformed checksum.
// Non-address input fails with an AliasError.
func ChecksumAddress(input string) (string, error) {
	if !common.IsHexAddress(input) {
		return "", &AliasError{Input: input}
	}
	return common.HexToAddress(input).Hex(), nil
}
