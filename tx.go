package chaincli

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// NonceSpec declares how the sequencer assigns a transaction's nonce.
// This is a sealed interface; a nil NonceSpec means automatic assignment
// (chain off the sender's previous nonce in the batch, or the pending
// count for the sender's first transaction).
type NonceSpec interface {
	// isNonceSpec is unexported to seal the interface.
	isNonceSpec()
}

// absoluteNonce is a caller-supplied nonce used verbatim.
type absoluteNonce uint64

func (absoluteNonce) isNonceSpec() {}

// relativeNonce is an offset added to the sender's pending count.
type relativeNonce uint64

func (relativeNonce) isNonceSpec() {}

// AbsoluteNonce fixes the nonce to n. The sequencer trusts it without
// validation and never checks it against the chain.
func AbsoluteNonce(n uint64) NonceSpec {
	return absoluteNonce(n)
}

// RelativeNonce offsets the sender's current pending transaction count,
// fetched once per sender at batch-dispatch time.
func RelativeNonce(offset uint64) NonceSpec {
	return relativeNonce(offset)
}

// PreparedTransaction is an unsigned transaction owned by the caller until
// handed to the sequencer. The sequencer fills From and AssignedNonce in
// place before signing.
type PreparedTransaction struct {
	Sender   *AccountEntry
	To       common.Address
	Gas      uint64
	Data     []byte
	Value    *big.Int // wei; nil means zero
	GasPrice *big.Int // wei; nil asks the client for an estimate
	Nonce    NonceSpec

	// From is the sender's address, filled by the sequencer.
	From common.Address

	// AssignedNonce is the nonce the sequencer computed, filled before
	// signing.
	AssignedNonce uint64
}
