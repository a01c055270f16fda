package chaincli

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ChainClient is the slice of the Ethereum client surface this package
// consumes. *ethclient.Client satisfies it directly; tests substitute an
// in-memory fake.
type ChainClient interface {
	// PendingNonceAt returns the account's transaction count including
	// pending transactions. This is the base for nonce assignment.
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// SendTransaction submits a signed transaction to the network.
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	// BalanceAt returns the account balance in wei at the given block,
	// or at the latest block when blockNumber is nil.
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)

	// ChainID returns the network's chain ID.
	ChainID(ctx context.Context) (*big.Int, error)

	// SuggestGasPrice returns the node's gas price estimate.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// Close releases the underlying connection.
	Close()
}

// DialClient connects to an RPC endpoint and returns it as a ChainClient.
func DialClient(url string) (ChainClient, error) {
	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, err
	}
	return client, nil
}
