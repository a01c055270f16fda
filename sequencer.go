package chaincli

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SuccessFunc is invoked when a transaction's dispatch was accepted by the
// node. It receives the transaction's index in the batch and the signed
// transaction (whose hash identifies it on chain).
type SuccessFunc func(index int, tx *types.Transaction)

// FailureFunc is invoked when a transaction's dispatch was rejected. The
// error is a *DispatchError; sibling dispatches are unaffected.
type FailureFunc func(index int, err error)

// Sequencer assigns nonces to prepared transactions, signs them, and
// dispatches them through the session's chain client.
//
// Nonce fetching and signing happen strictly in input order; this makes
// the chain-off-previous rule for unspecified nonces well-defined.
// Dispatch of the signed batch is concurrent and unordered. Once a
// transaction is submitted it cannot be withdrawn.
type Sequencer struct {
	session *Session
	wg      sync.WaitGroup
}

// NewSequencer creates a sequencer bound to a session.
func NewSequencer(session *Session) *Sequencer {
	return &Sequencer{session: session}
}

// SendBatch signs and dispatches a batch of prepared transactions.
//
// Per transaction, in input order: the sender is replaced by its address
// and the nonce assigned per its NonceSpec - absolute nonces are used
// verbatim; relative nonces offset the sender's pending count, fetched
// once per sender per batch; an unspecified nonce continues from the
// sender's previous assignment in this batch, or starts at the pending
// count. Every computed nonce is recorded as the sender's last assignment
// immediately, whatever the branch, so transactions sharing a sender get
// strictly increasing, gap-free nonces unless an absolute nonce overrides
// them.
//
// After everything is signed the session's confirmation policy gates the
// whole batch: declined means ErrConfirmationDeclined and zero dispatches.
// Authorized transactions are dispatched on their own goroutines; a
// rejection goes to that transaction's failure callback only. Use Wait to
// join outstanding dispatches.
//
// An error during preparation or signing aborts the batch before anything
// is sent.
func (q *Sequencer) SendBatch(ctx context.Context, txs []*PreparedTransaction, onSuccess SuccessFunc, onFailure FailureFunc) error {
	client, err := q.session.Client()
	if err != nil {
		return err
	}
	chainID, err := q.session.ChainID(ctx)
	if err != nil {
		return err
	}
	signer := types.NewEIP155Signer(chainID)

	var (
		pendingBase = make(map[common.Address]uint64)
		lastNonce   = make(map[common.Address]uint64)
		haveLast    = make(map[common.Address]bool)
		gasPrice    *big.Int
		signed      = make([]*types.Transaction, len(txs))
	)

	for i, ptx := range txs {
		if ptx.Sender == nil {
			return fmt.Errorf("chaincli: transaction %d has no sender", i)
		}
		ptx.From = ptx.Sender.Address

		var nonce uint64
		switch n := ptx.Nonce.(type) {
		case absoluteNonce:
			nonce = uint64(n)
		case relativeNonce:
			base, err := fetchPending(ctx, client, pendingBase, ptx.From)
			if err != nil {
				return err
			}
			nonce = base + uint64(n)
		default: // nil: automatic
			if haveLast[ptx.From] {
				nonce = lastNonce[ptx.From] + 1
			} else {
				base, err := fetchPending(ctx, client, pendingBase, ptx.From)
				if err != nil {
					return err
				}
				nonce = base
			}
		}
		// Record unconditionally. Updating only the automatic branch lets
		// a relative assignment collide with a later automatic one for the
		// same sender.
		lastNonce[ptx.From] = nonce
		haveLast[ptx.From] = true
		ptx.AssignedNonce = nonce

		price := ptx.GasPrice
		if price == nil {
			if gasPrice == nil {
				gasPrice, err = client.SuggestGasPrice(ctx)
				if err != nil {
					return err
				}
			}
			price = gasPrice
		}
		value := ptx.Value
		if value == nil {
			value = new(big.Int)
		}

		key, err := ptx.Sender.Signer()
		if err != nil {
			return fmt.Errorf("chaincli: transaction %d: %w", i, err)
		}
		tx := types.NewTransaction(nonce, ptx.To, value, ptx.Gas, price, ptx.Data)
		signed[i], err = types.SignTx(tx, signer, key)
		if err != nil {
			return fmt.Errorf("chaincli: transaction %d: sign: %w", i, err)
		}
	}

	ok, err := q.session.confirmBatch(batchSummary(q.session, txs))
	if err != nil {
		return err
	}
	if !ok {
		return ErrConfirmationDeclined
	}

	for i := range signed {
		q.wg.Add(1)
		go func(index int, tx *types.Transaction, from common.Address) {
			defer q.wg.Done()
			if err := client.SendTransaction(ctx, tx); err != nil {
				if onFailure != nil {
					onFailure(index, &DispatchError{
						Index:  index,
						Sender: from,
						Nonce:  tx.Nonce(),
						Err:    err,
					})
				}
				return
			}
			if onSuccess != nil {
				onSuccess(index, tx)
			}
		}(i, signed[i], txs[i].From)
	}
	return nil
}

// Send signs and dispatches a single transaction, waiting for the node's
// accept/reject verdict. It shares the batch path, including the
// confirmation gate.
func (q *Sequencer) Send(ctx context.Context, ptx *PreparedTransaction) (*types.Transaction, error) {
	var (
		sent    *types.Transaction
		sendErr error
	)
	err := q.SendBatch(ctx, []*PreparedTransaction{ptx},
		func(_ int, tx *types.Transaction) { sent = tx },
		func(_ int, err error) { sendErr = err },
	)
	if err != nil {
		return nil, err
	}
	q.Wait()
	if sendErr != nil {
		return nil, sendErr
	}
	return sent, nil
}

// Wait blocks until all dispatch goroutines from previous SendBatch calls
// have finished. Callbacks are complete when it returns.
func (q *Sequencer) Wait() {
	q.wg.Wait()
}

// fetchPending returns the sender's pending transaction count, fetching it
// at most once per batch.
func fetchPending(ctx context.Context, client ChainClient, cache map[common.Address]uint64, from common.Address) (uint64, error) {
	if base, ok := cache[from]; ok {
		return base, nil
	}
	base, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return 0, err
	}
	cache[from] = base
	return base, nil
}

// batchSummary renders the one-shot confirmation text for a batch.
func batchSummary(s *Session, txs []*PreparedTransaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d transaction(s) on %s:\n", len(txs), s.Network())
	for i, ptx := range txs {
		value := ptx.Value
		if value == nil {
			value = new(big.Int)
		}
		amount, err := FromWei(value, s.DefaultUnit())
		if err != nil {
			amount = value.String() + " wei"
		} else {
			amount += " " + string(s.DefaultUnit())
		}
		fmt.Fprintf(&b, "  [%d] %s -> %s  %s  nonce %d\n", i, ptx.From.Hex(), ptx.To.Hex(), amount, ptx.AssignedNonce)
	}
	return b.String()
}
