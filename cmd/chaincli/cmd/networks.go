package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chaincli "github.com/branched-services/go-chaincli"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List networks from providers.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		registry, err := chaincli.LoadRegistry(wd)
		if err != nil {
			return err
		}

		names := registry.Networks()
		sort.Strings(names)
		selected := viper.GetString("network")
		for _, name := range names {
			p, err := registry.Provider(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == selected {
				marker = "*"
			}
			fmt.Printf("%s %s\tchain %d\t%s\n", marker, name, p.ChainID, p.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
