package chaincli

// SessionOption configures a Session at construction time.
type SessionOption func(*sessionConfig)

// ConfirmFunc is asked once per pending send or batch. Returning false
// abandons the whole operation; no transactions are dispatched.
type ConfirmFunc func(summary string) (bool, error)

// sessionConfig holds configuration collected from SessionOptions.
type sessionConfig struct {
	network string
	client  ChainClient
	unit    Unit
	confirm ConfirmFunc
}

// defaultSessionConfig returns the default session configuration:
// no network selected, amounts displayed in ether, no confirmation gate.
func defaultSessionConfig() *sessionConfig {
	return &sessionConfig{
		unit: Ether,
	}
}

// WithNetwork selects the named network from the providers table.
// The session dials the provider's RPC URL unless WithClient is also given.
func WithNetwork(name string) SessionOption {
	return func(c *sessionConfig) {
		c.network = name
	}
}

// WithClient binds an already-constructed chain client instead of dialing
// the provider URL. Used by tests and callers with custom transports.
func WithClient(client ChainClient) SessionOption {
	return func(c *sessionConfig) {
		c.client = client
	}
}

// WithDefaultUnit sets the denomination used when rendering amounts.
// Default is Ether.
func WithDefaultUnit(unit Unit) SessionOption {
	return func(c *sessionConfig) {
		c.unit = unit
	}
}

// WithConfirmation installs a confirmation gate. The sequencer calls it
// once per batch after signing and before any dispatch.
func WithConfirmation(fn ConfirmFunc) SessionOption {
	return func(c *sessionConfig) {
		c.confirm = fn
	}
}
