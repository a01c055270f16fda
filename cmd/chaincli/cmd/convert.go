package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	chaincli "github.com/branched-services/go-chaincli"
)

var convertCmd = &cobra.Command{
	Use:   "convert <amount> <from-unit> <to-unit>",
	Short: "Convert between denominations",
	Long:  `Convert an amount between denominations (wei, gwei, ether, ...) via wei.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := chaincli.ParseUnit(args[1])
		if err != nil {
			return fmt.Errorf("%q: %w", args[1], err)
		}
		to, err := chaincli.ParseUnit(args[2])
		if err != nil {
			return fmt.Errorf("%q: %w", args[2], err)
		}

		wei, err := chaincli.ToWei(args[0], from)
		if err != nil {
			return err
		}
		out, err := chaincli.FromWei(wei, to)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s = %s %s\n", args[0], from, out, to)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
