// Package chaincli is a convenience facade over an Ethereum client for
// command-style tooling: it resolves human-readable aliases to addresses,
// assembles, signs, and dispatches transactions in batches, converts
// between denominations, and drives the Solidity compiler.
//
// All cryptographic and network primitives (signing, hashing, checksum,
// RPC transport, ABI encoding) are delegated to go-ethereum. The package
// itself only adds the bookkeeping around them: alias tables, per-sender
// nonce assignment, and unit arithmetic.
//
// # Basic Usage
//
// Load the registry tables, open a session on a network, and send:
//
//	reg, err := chaincli.LoadRegistry(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := chaincli.NewSession(reg,
//	    chaincli.WithNetwork("mainnet"),
//	    chaincli.WithDefaultUnit(chaincli.Ether),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	to, err := session.Resolve("treasury", chaincli.AccountsFirst)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	value, _ := chaincli.ToWei("0.5", chaincli.Ether)
//	tx := &chaincli.PreparedTransaction{
//	    Sender: reg.MustAccount("deployer"),
//	    To:     to,
//	    Gas:    21000,
//	    Value:  value,
//	}
//
//	seq := chaincli.NewSequencer(session)
//	sent, err := seq.Send(context.Background(), tx)
//
// # Registry
//
// Three JSON tables configure the facade, discovered by walking from the
// working directory up through its parents (nearest file wins):
//
//   - providers.json: network name -> RPC endpoint and chain ID
//   - accounts.json:  alias -> address and optional private key
//   - contracts.json: alias -> per-network deployed address
//
// A missing table is not a load error; functionality depending on it fails
// at first use instead.
//
// # Alias Resolution
//
// Resolve accepts either an address-shaped hex string (checksummed or not;
// a malformed checksum is repaired, never rejected) or an alias probed
// against the accounts and contracts tables in a caller-chosen order.
// Contract aliases are scoped to the session's selected network.
//
// # Batch Sending
//
// SendBatch assigns nonces per sender in input order: an absolute nonce is
// trusted as given, a relative nonce offsets the sender's pending count
// (fetched once per sender per batch), and an unspecified nonce chains off
// the sender's previous assignment in the batch, falling back to the
// pending count. Every computed nonce is recorded immediately, so mixing
// relative and unspecified nonces for one sender cannot collide. Signing
// is sequential; dispatch of the signed batch is concurrent, and one
// transaction's rejection never blocks its siblings.
package chaincli
