package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	chaincli "github.com/branched-services/go-chaincli"
)

var flagBalanceUnit string

var balanceCmd = &cobra.Command{
	Use:   "balance <alias-or-address>...",
	Short: "Show account balances",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		unit := session.DefaultUnit()
		if flagBalanceUnit != "" {
			unit, err = chaincli.ParseUnit(flagBalanceUnit)
			if err != nil {
				return err
			}
		}

		client, err := session.Client()
		if err != nil {
			return err
		}

		ctx := context.Background()
		for _, input := range args {
			addr, err := session.Resolve(input, chaincli.AccountsFirst)
			if err != nil {
				return err
			}
			wei, err := client.BalanceAt(ctx, addr, nil)
			if err != nil {
				return err
			}
			amount, err := chaincli.FromWei(wei, unit)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\t%s %s\n", input, addr.Hex(), amount, unit)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&flagBalanceUnit, "unit", "u", "", "denomination for display (default ether)")
}
