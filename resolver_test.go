package chaincli

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// EIP-55 test vector.
const (
	checksummed   = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	unchecksummed = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	badChecksum   = "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"
)

func resolverSession(t *testing.T, network string) *Session {
	t.Helper()
	registry := NewRegistry(
		map[string]ProviderEntry{
			"mainnet": {URL: "http://localhost:8545", ChainID: 1},
			"sepolia": {URL: "http://localhost:8546", ChainID: 11155111},
		},
		[]*AccountEntry{
			NewAccountEntry("alice", common.HexToAddress("0x00000000000000000000000000000000000000a1"), ""),
			NewAccountEntry("shared", common.HexToAddress("0x00000000000000000000000000000000000000a2"), ""),
		},
		map[string]map[string]common.Address{
			"token": {
				"mainnet": common.HexToAddress("0x00000000000000000000000000000000000000c1"),
				"sepolia": common.HexToAddress("0x00000000000000000000000000000000000000c2"),
			},
			"shared": {
				"mainnet": common.HexToAddress("0x00000000000000000000000000000000000000c3"),
			},
			"bridge": {
				"mainnet": common.HexToAddress("0x00000000000000000000000000000000000000c4"),
			},
		},
	)
	opts := []SessionOption{WithClient(newFakeClient())}
	if network != "" {
		opts = append(opts, WithNetwork(network))
	}
	session, err := NewSession(registry, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

func TestResolveAddressInput(t *testing.T) {
	session := resolverSession(t, "mainnet")

	t.Run("unchecksummed input normalizes to the checksummed form", func(t *testing.T) {
		addr, err := session.Resolve(unchecksummed, AccountsFirst)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if addr.Hex() != checksummed {
			t.Errorf("got %s, want %s", addr.Hex(), checksummed)
		}
	})

	t.Run("malformed checksum is silently repaired", func(t *testing.T) {
		addr, err := session.Resolve(badChecksum, AccountsFirst)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if addr.Hex() != checksummed {
			t.Errorf("got %s, want %s", addr.Hex(), checksummed)
		}
	})

	t.Run("prefix is optional", func(t *testing.T) {
		addr, err := session.Resolve(unchecksummed[2:], AccountsFirst)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if addr.Hex() != checksummed {
			t.Errorf("got %s, want %s", addr.Hex(), checksummed)
		}
	})
}

func TestResolveAliases(t *testing.T) {
	session := resolverSession(t, "mainnet")

	t.Run("account-only alias resolves regardless of order", func(t *testing.T) {
		want := common.HexToAddress("0x00000000000000000000000000000000000000a1")
		for _, order := range []ResolveOrder{AccountsFirst, ContractsFirst} {
			addr, err := session.Resolve("alice", order)
			if err != nil {
				t.Fatalf("order %d: %v", order, err)
			}
			if addr != want {
				t.Errorf("order %d: got %s, want %s", order, addr.Hex(), want.Hex())
			}
		}
	})

	t.Run("contract-only alias resolves regardless of order", func(t *testing.T) {
		want := common.HexToAddress("0x00000000000000000000000000000000000000c1")
		for _, order := range []ResolveOrder{AccountsFirst, ContractsFirst} {
			addr, err := session.Resolve("token", order)
			if err != nil {
				t.Fatalf("order %d: %v", order, err)
			}
			if addr != want {
				t.Errorf("order %d: got %s, want %s", order, addr.Hex(), want.Hex())
			}
		}
	})

	t.Run("alias in both tables follows the probe order", func(t *testing.T) {
		asAccount, err := session.Resolve("shared", AccountsFirst)
		if err != nil {
			t.Fatalf("AccountsFirst: %v", err)
		}
		if asAccount != common.HexToAddress("0x00000000000000000000000000000000000000a2") {
			t.Errorf("AccountsFirst resolved %s", asAccount.Hex())
		}

		asContract, err := session.Resolve("shared", ContractsFirst)
		if err != nil {
			t.Fatalf("ContractsFirst: %v", err)
		}
		if asContract != common.HexToAddress("0x00000000000000000000000000000000000000c3") {
			t.Errorf("ContractsFirst resolved %s", asContract.Hex())
		}
	})

	t.Run("contract resolution is network-scoped", func(t *testing.T) {
		sepolia := resolverSession(t, "sepolia")
		addr, err := sepolia.Resolve("token", ContractsFirst)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if addr != common.HexToAddress("0x00000000000000000000000000000000000000c2") {
			t.Errorf("got %s, want the sepolia deployment", addr.Hex())
		}
	})

	t.Run("contract alias without a selected network misses", func(t *testing.T) {
		detached := resolverSession(t, "")
		_, err := detached.Resolve("token", ContractsFirst)
		if !errors.Is(err, ErrUnknownAlias) {
			t.Fatalf("expected ErrUnknownAlias, got %v", err)
		}
	})

	t.Run("total miss echoes the input", func(t *testing.T) {
		_, err := session.Resolve("nobody", AccountsFirst)
		if !errors.Is(err, ErrUnknownAlias) {
			t.Fatalf("expected ErrUnknownAlias, got %v", err)
		}
		var ae *AliasError
		if !errors.As(err, &ae) || ae.Input != "nobody" {
			t.Errorf("expected AliasError echoing %q, got %v", "nobody", err)
		}
	})
}

func TestChecksumAddress(t *testing.T) {
	t.Run("repairs case", func(t *testing.T) {
		got, err := ChecksumAddress(badChecksum)
		if err != nil {
			t.Fatalf("ChecksumAddress: %v", err)
		}
		if got != checksummed {
			t.Errorf("got %s, want %s", got, checksummed)
		}
	})

	t.Run("rejects non-address input", func(t *testing.T) {
		if _, err := ChecksumAddress("not-an-address"); !errors.Is(err, ErrUnknownAlias) {
			t.Fatalf("expected ErrUnknownAlias, got %v", err)
		}
	})
}
