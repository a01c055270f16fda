package chaincli

import (
	"context"
	"fmt"
	"math/big"
)

// Session carries everything that was ambient state in older tooling of
// this kind: the registry, the selected network and its chain client, the
// display denomination, and the confirmation policy. It is constructed
// once and threaded through calls; there are no package-level singletons.
//
// A Session is not safe for concurrent use from independent call sites;
// this is a single-user command-style facade.
type Session struct {
	registry *Registry
	network  string
	chainID  *big.Int
	client   ChainClient
	unit     Unit
	confirm  ConfirmFunc
}

// NewSession creates a session over the given registry.
// With WithNetwork, the provider entry is resolved immediately and the RPC
// URL dialed unless WithClient supplies a client.
func NewSession(registry *Registry, opts ...SessionOption) (*Session, error) {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		registry: registry,
		client:   cfg.client,
		unit:     cfg.unit,
		confirm:  cfg.confirm,
	}

	if cfg.network != "" {
		if err := s.SelectNetwork(cfg.network); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SelectNetwork switches the session to the named network. The provider
// table entry must exist. An externally supplied client is kept; otherwise
// the provider URL is dialed.
func (s *Session) SelectNetwork(name string) error {
	p, err := s.registry.Provider(name)
	if err != nil {
		return err
	}

	if s.client == nil {
		client, err := DialClient(p.URL)
		if err != nil {
			return fmt.Errorf("chaincli: dial %s: %w", p.URL, err)
		}
		s.client = client
	}

	s.network = name
	if p.ChainID != 0 {
		s.chainID = big.NewInt(p.ChainID)
	} else {
		s.chainID = nil // fetched from the client on first use
	}
	return nil
}

// Registry returns the session's registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Network returns the selected network name, or "" if none is selected.
func (s *Session) Network() string {
	return s.network
}

// DefaultUnit returns the denomination used for rendering amounts.
func (s *Session) DefaultUnit() Unit {
	return s.unit
}

// Client returns the bound chain client.
// Fails with ErrNoNetwork before a network is selected.
func (s *Session) Client() (ChainClient, error) {
	if s.network == "" || s.client == nil {
		return nil, ErrNoNetwork
	}
	return s.client, nil
}

// ChainID returns the chain ID for the selected network, preferring the
// providers table and falling back to asking the client once.
func (s *Session) ChainID(ctx context.Context) (*big.Int, error) {
	if s.chainID != nil {
		return s.chainID, nil
	}
	client, err := s.Client()
	if err != nil {
		return nil, err
	}
	id, err := client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	s.chainID = id
	return id, nil
}

// confirmBatch runs the confirmation policy, if any. With no policy
// installed every operation is authorized.
func (s *Session) confirmBatch(summary string) (bool, error) {
	if s.confirm == nil {
		return true, nil
	}
	return s.confirm(summary)
}

// Close releases the underlying client connection, if any.
func (s *Session) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
