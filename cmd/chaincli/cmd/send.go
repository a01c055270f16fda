package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chaincli "github.com/branched-services/go-chaincli"
	"github.com/branched-services/go-chaincli/internal/cli"
)

// batchEntry is one transaction in the --file batch document.
type batchEntry struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Gas      uint64      `json:"gas"`
	Value    string      `json:"value,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	GasPrice string      `json:"gas_price,omitempty"` // wei
	Data     string      `json:"data,omitempty"`      // hex calldata
	Nonce    *nonceEntry `json:"nonce,omitempty"`
}

// nonceEntry selects a nonce mode; omitting it entirely chains off the
// sender's previous transaction in the batch.
type nonceEntry struct {
	Absolute *uint64 `json:"absolute,omitempty"`
	Relative *uint64 `json:"relative,omitempty"`
}

var flagBatchFile string

var sendCmd = &cobra.Command{
	Use:   "send --file <batch.json>",
	Short: "Sign and dispatch a batch of transactions",
	Long: `Read a JSON array of prepared transactions, assign nonces per sender,
sign, and dispatch. "from" must be an account alias with a key; "to" may be
an alias or address. A single confirmation covers the whole batch; once
authorized, each transaction is dispatched independently and one rejection
does not hold back the others.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		raw, err := os.ReadFile(flagBatchFile)
		if err != nil {
			return err
		}
		var entries []batchEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return fmt.Errorf("%s: %w", flagBatchFile, err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("%s: empty batch", flagBatchFile)
		}

		txs := make([]*chaincli.PreparedTransaction, len(entries))
		for i, e := range entries {
			txs[i], err = prepare(session, &e)
			if err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
		}

		log := cli.Logger()
		seq := chaincli.NewSequencer(session)
		err = seq.SendBatch(context.Background(), txs,
			func(index int, tx *types.Transaction) {
				log.Info("dispatched",
					zap.Int("index", index),
					zap.String("hash", tx.Hash().Hex()),
					zap.Uint64("nonce", tx.Nonce()))
			},
			func(index int, err error) {
				log.Error("dispatch failed", zap.Int("index", index), zap.Error(err))
			},
		)
		if errors.Is(err, chaincli.ErrConfirmationDeclined) {
			log.Warn("batch declined, nothing dispatched")
			return err
		}
		if err != nil {
			return err
		}
		seq.Wait()
		return nil
	},
}

// prepare turns a batch file entry into a PreparedTransaction, resolving
// aliases and parsing amounts.
func prepare(session *chaincli.Session, e *batchEntry) (*chaincli.PreparedTransaction, error) {
	sender, ok, err := session.Registry().Account(e.From)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("unknown account alias %q", e.From)
	}

	to, err := session.Resolve(e.To, chaincli.AccountsFirst)
	if err != nil {
		return nil, err
	}

	ptx := &chaincli.PreparedTransaction{
		Sender: sender,
		To:     to,
		Gas:    e.Gas,
	}

	if e.Value != "" {
		unit := session.DefaultUnit()
		if e.Unit != "" {
			if unit, err = chaincli.ParseUnit(e.Unit); err != nil {
				return nil, err
			}
		}
		if ptx.Value, err = chaincli.ToWei(e.Value, unit); err != nil {
			return nil, err
		}
	}
	if e.GasPrice != "" {
		price, ok := new(big.Int).SetString(e.GasPrice, 10)
		if !ok {
			return nil, fmt.Errorf("invalid gas_price %q", e.GasPrice)
		}
		ptx.GasPrice = price
	}
	if e.Data != "" {
		if ptx.Data, err = hexutil.Decode(e.Data); err != nil {
			return nil, fmt.Errorf("invalid data: %w", err)
		}
	}
	if e.Nonce != nil {
		switch {
		case e.Nonce.Absolute != nil && e.Nonce.Relative != nil:
			return nil, fmt.Errorf("nonce cannot be both absolute and relative")
		case e.Nonce.Absolute != nil:
			ptx.Nonce = chaincli.AbsoluteNonce(*e.Nonce.Absolute)
		case e.Nonce.Relative != nil:
			ptx.Nonce = chaincli.RelativeNonce(*e.Nonce.Relative)
		}
	}
	return ptx, nil
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&flagBatchFile, "file", "f", "batch.json", "batch file path")
}
