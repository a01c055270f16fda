package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chaincli "github.com/branched-services/go-chaincli"
	"github.com/branched-services/go-chaincli/internal/cli"
)

var (
	flagNetwork string
	flagYes     bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chaincli",
	Short: "Alias-aware Ethereum transaction tool",
	Long: `chaincli resolves human-readable aliases to addresses, assembles and
signs transactions (individually or in nonce-sequenced batches), converts
between denominations, and drives the Solidity compiler.

Networks, accounts, and contracts come from providers.json, accounts.json,
and contracts.json, discovered in the working directory or any parent.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.InitLogger(flagVerbose)
	},
}

// Execute runs the root command.
func Execute() {
	defer cli.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagNetwork, "network", "n", "", "network name from providers.json")
	rootCmd.PersistentFlags().String("rpc", "", "RPC URL override (skips providers.json)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	viper.SetEnvPrefix("chaincli")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("network", rootCmd.PersistentFlags().Lookup("network"))
	_ = viper.BindPFlag("rpc", rootCmd.PersistentFlags().Lookup("rpc"))
}

// newSession loads the registry from the working directory and opens a
// session per the global flags. Confirmation is interactive unless --yes.
func newSession() (*chaincli.Session, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	registry, err := chaincli.LoadRegistry(wd)
	if err != nil {
		return nil, err
	}

	opts := []chaincli.SessionOption{}
	if !flagYes {
		opts = append(opts, chaincli.WithConfirmation(cli.Confirm))
	}
	if rpc := viper.GetString("rpc"); rpc != "" {
		client, err := chaincli.DialClient(rpc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, chaincli.WithClient(client))
	}
	if network := viper.GetString("network"); network != "" {
		opts = append(opts, chaincli.WithNetwork(network))
	}

	return chaincli.NewSession(registry, opts...)
}
