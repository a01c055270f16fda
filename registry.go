package chaincli

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"
)

// Table file names discovered by LoadRegistry.
const (
	ProvidersFile = "providers.json"
	AccountsFile  = "accounts.json"
	ContractsFile = "contracts.json"
)

// ProviderEntry describes an RPC endpoint for a named network.
type ProviderEntry struct {
	URL     string `mapstructure:"url"`
	ChainID int64  `mapstructure:"chain_id"`
}

// AccountEntry is a named account from the accounts table. The private key
// stays unexported; it is only reachable through Signer, and only for
// accounts that carry one.
type AccountEntry struct {
	Alias   string
	Address common.Address

	key string
}

// HasKey reports whether the account can sign, or is watch-only.
func (a *AccountEntry) HasKey() bool {
	return a.key != ""
}

// Signer parses and returns the account's private key.
// Watch-only accounts return ErrWatchOnly.
func (a *AccountEntry) Signer() (*ecdsa.PrivateKey, error) {
	if a.key == "" {
		return nil, ErrWatchOnly
	}
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(a.key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("chaincli: account %q: %w", a.Alias, err)
	}
	return pk, nil
}

// Registry holds the three static lookup tables. Tables are loaded once and
// read-only thereafter. A table whose file was never found is recorded as
// missing; lookups against it fail with TableMissingError at first use.
//
// Table keys are normalized to lower case on load, so alias lookup is
// case-insensitive.
type Registry struct {
	providers map[string]ProviderEntry
	accounts  map[string]*AccountEntry
	contracts map[string]map[string]common.Address

	missing map[string]bool
}

// rawAccount mirrors one accounts.json entry before validation.
type rawAccount struct {
	Address string `mapstructure:"address"`
	Key     string `mapstructure:"key"`
}

// LoadRegistry discovers and loads the three tables, searching startDir and
// then each parent directory in turn; the nearest file wins. Missing files
// are not an error here - the affected functionality degrades instead, and
// the absence surfaces at first use of that table.
func LoadRegistry(startDir string) (*Registry, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		providers: make(map[string]ProviderEntry),
		accounts:  make(map[string]*AccountEntry),
		contracts: make(map[string]map[string]common.Address),
		missing:   make(map[string]bool),
	}

	if path, ok := findUp(abs, ProvidersFile); ok {
		if err := loadTable(path, &r.providers); err != nil {
			return nil, fmt.Errorf("chaincli: %s: %w", path, err)
		}
	} else {
		r.missing[ProvidersFile] = true
	}

	if path, ok := findUp(abs, AccountsFile); ok {
		raw := make(map[string]rawAccount)
		if err := loadTable(path, &raw); err != nil {
			return nil, fmt.Errorf("chaincli: %s: %w", path, err)
		}
		for alias, entry := range raw {
			if !common.IsHexAddress(entry.Address) {
				return nil, fmt.Errorf("chaincli: %s: account %q: invalid address %q", path, alias, entry.Address)
			}
			r.accounts[alias] = &AccountEntry{
				Alias:   alias,
				Address: common.HexToAddress(entry.Address),
				key:     entry.Key,
			}
		}
	} else {
		r.missing[AccountsFile] = true
	}

	if path, ok := findUp(abs, ContractsFile); ok {
		raw := make(map[string]map[string]string)
		if err := loadTable(path, &raw); err != nil {
			return nil, fmt.Errorf("chaincli: %s: %w", path, err)
		}
		for alias, byNetwork := range raw {
			r.contracts[alias] = make(map[string]common.Address, len(byNetwork))
			for network, addr := range byNetwork {
				if !common.IsHexAddress(addr) {
					return nil, fmt.Errorf("chaincli: %s: contract %q on %q: invalid address %q", path, alias, network, addr)
				}
				r.contracts[alias][network] = common.HexToAddress(addr)
			}
		}
	} else {
		r.missing[ContractsFile] = true
	}

	return r, nil
}

// NewRegistry builds a registry directly from in-memory tables.
// Intended for tests and embedding callers that manage their own config.
func NewRegistry(providers map[string]ProviderEntry, accounts []*AccountEntry, contracts map[string]map[string]common.Address) *Registry {
	r := &Registry{
		providers: make(map[string]ProviderEntry, len(providers)),
		accounts:  make(map[string]*AccountEntry, len(accounts)),
		contracts: make(map[string]map[string]common.Address, len(contracts)),
		missing:   make(map[string]bool),
	}
	for name, p := range providers {
		r.providers[strings.ToLower(name)] = p
	}
	for _, a := range accounts {
		r.accounts[strings.ToLower(a.Alias)] = a
	}
	for alias, byNetwork := range contracts {
		m := make(map[string]common.Address, len(byNetwork))
		for network, addr := range byNetwork {
			m[strings.ToLower(network)] = addr
		}
		r.contracts[strings.ToLower(alias)] = m
	}
	return r
}

// NewAccountEntry builds an account entry. The key may be empty for a
// watch-only account, or a hex private key with optional 0x prefix.
func NewAccountEntry(alias string, address common.Address, key string) *AccountEntry {
	return &AccountEntry{Alias: alias, Address: address, key: key}
}

// Provider returns the RPC provider for a named network.
func (r *Registry) Provider(network string) (ProviderEntry, error) {
	if r.missing[ProvidersFile] {
		return ProviderEntry{}, &TableMissingError{Table: ProvidersFile}
	}
	p, ok := r.providers[strings.ToLower(network)]
	if !ok {
		return ProviderEntry{}, fmt.Errorf("chaincli: network %q not in providers table", network)
	}
	return p, nil
}

// Networks returns the names of all configured networks, unordered.
func (r *Registry) Networks() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Account looks up an account alias. A false return is a plain miss;
// the error is non-nil only when the accounts table itself is absent.
func (r *Registry) Account(alias string) (*AccountEntry, bool, error) {
	if r.missing[AccountsFile] {
		return nil, false, &TableMissingError{Table: AccountsFile}
	}
	a, ok := r.accounts[strings.ToLower(alias)]
	return a, ok, nil
}

// MustAccount is like Account but panics on a miss or a missing table.
func (r *Registry) MustAccount(alias string) *AccountEntry {
	a, ok, err := r.Account(alias)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(&AliasError{Input: alias})
	}
	return a
}

// Contract looks up a contract alias on the given network. A false return
// means either the alias or its entry for this network is absent.
func (r *Registry) Contract(alias, network string) (common.Address, bool, error) {
	if r.missing[ContractsFile] {
		return common.Address{}, false, &TableMissingError{Table: ContractsFile}
	}
	byNetwork, ok := r.contracts[strings.ToLower(alias)]
	if !ok {
		return common.Address{}, false, nil
	}
	addr, ok := byNetwork[strings.ToLower(network)]
	if !ok {
		return common.Address{}, false, nil
	}
	return addr, true, nil
}

// ContractNetworks returns the networks a contract alias has deployments
// on, unordered. Nil when the alias (or the table) is absent.
func (r *Registry) ContractNetworks(alias string) []string {
	byNetwork, ok := r.contracts[strings.ToLower(alias)]
	if !ok {
		return nil
	}
	networks := make([]string, 0, len(byNetwork))
	for network := range byNetwork {
		networks = append(networks, network)
	}
	return networks
}

// findUp walks from dir toward the filesystem root looking for name.
func findUp(dir, name string) (string, bool) {
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// loadTable reads one JSON table file into out via viper.
func loadTable(path string, out any) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(out)
}
