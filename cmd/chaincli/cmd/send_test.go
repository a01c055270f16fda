package cmd

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chaincli "github.com/branched-services/go-chaincli"
)

func prepareSession(t *testing.T) *chaincli.Session {
	t.Helper()
	registry := chaincli.NewRegistry(
		nil,
		[]*chaincli.AccountEntry{
			chaincli.NewAccountEntry("alice", common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), ""),
			chaincli.NewAccountEntry("bob", common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), ""),
		},
		nil,
	)
	session, err := chaincli.NewSession(registry)
	require.NoError(t, err)
	return session
}

func TestPrepare(t *testing.T) {
	session := prepareSession(t)

	t.Run("resolves aliases and converts the value", func(t *testing.T) {
		ptx, err := prepare(session, &batchEntry{
			From:  "alice",
			To:    "bob",
			Gas:   21000,
			Value: "1.5",
			Unit:  "gwei",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice", ptx.Sender.Alias)
		assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), ptx.To)
		assert.Equal(t, uint64(21000), ptx.Gas)
		assert.Equal(t, big.NewInt(1_500_000_000), ptx.Value)
		assert.Nil(t, ptx.Nonce)
	})

	t.Run("value defaults to the session unit", func(t *testing.T) {
		ptx, err := prepare(session, &batchEntry{From: "alice", To: "bob", Gas: 21000, Value: "2"})
		require.NoError(t, err)
		want, _ := new(big.Int).SetString("2000000000000000000", 10)
		assert.Equal(t, want, ptx.Value)
	})

	t.Run("nonce modes", func(t *testing.T) {
		abs, rel := uint64(7), uint64(2)

		ptx, err := prepare(session, &batchEntry{From: "alice", To: "bob", Gas: 21000, Nonce: &nonceEntry{Absolute: &abs}})
		require.NoError(t, err)
		assert.Equal(t, chaincli.AbsoluteNonce(7), ptx.Nonce)

		ptx, err = prepare(session, &batchEntry{From: "alice", To: "bob", Gas: 21000, Nonce: &nonceEntry{Relative: &rel}})
		require.NoError(t, err)
		assert.Equal(t, chaincli.RelativeNonce(2), ptx.Nonce)

		_, err = prepare(session, &batchEntry{From: "alice", To: "bob", Gas: 21000, Nonce: &nonceEntry{Absolute: &abs, Relative: &rel}})
		assert.Error(t, err)
	})

	t.Run("gas price and calldata parsing", func(t *testing.T) {
		ptx, err := prepare(session, &batchEntry{
			From:     "alice",
			To:       "bob",
			Gas:      60000,
			GasPrice: "1000000000",
			Data:     "0xa9059cbb",
		})
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1_000_000_000), ptx.GasPrice)
		assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, ptx.Data)

		_, err = prepare(session, &batchEntry{From: "alice", To: "bob", Gas: 60000, GasPrice: "cheap"})
		assert.Error(t, err)

		_, err = prepare(session, &batchEntry{From: "alice", To: "bob", Gas: 60000, Data: "deadbeef"})
		assert.Error(t, err, "calldata must carry the 0x prefix")
	})

	t.Run("unknown aliases fail", func(t *testing.T) {
		_, err := prepare(session, &batchEntry{From: "mallory", To: "bob", Gas: 21000})
		assert.Error(t, err)

		_, err = prepare(session, &batchEntry{From: "alice", To: "mallory", Gas: 21000})
		assert.ErrorIs(t, err, chaincli.ErrUnknownAlias)
	})
}
