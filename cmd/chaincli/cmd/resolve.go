package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	chaincli "github.com/branched-services/go-chaincli"
)

var flagContractsFirst bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <alias-or-address>...",
	Short: "Resolve aliases to checksummed addresses",
	Long: `Resolve each argument to an EIP-55 checksummed address. Address-shaped
input is normalized (a wrong checksum is repaired); anything else is looked
up in accounts.json and then contracts.json. Contract aliases need a
selected network.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		order := chaincli.AccountsFirst
		if flagContractsFirst {
			order = chaincli.ContractsFirst
		}

		for _, input := range args {
			addr, err := session.Resolve(input, order)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", input, addr.Hex())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&flagContractsFirst, "contracts-first", false, "probe contracts.json before accounts.json")
}
