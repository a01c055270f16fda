package cmd

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chaincli "github.com/branched-services/go-chaincli"
	"github.com/branched-services/go-chaincli/internal/cli"
)

var (
	flagSolc     string
	flagOptimize int
	flagOutDir   string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.sol>...",
	Short: "Compile Solidity sources",
	Long: `Compile Solidity sources through solc's standard-JSON interface and
write <Contract>.abi and <Contract>.bin artifacts to the output directory.
Warnings are logged; any error-severity diagnostic fails the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := cli.Logger()

		sources := make(map[string]string, len(args))
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			sources[filepath.Base(path)] = string(content)
		}

		opts := []chaincli.CompilerOption{}
		if flagSolc != "" {
			opts = append(opts, chaincli.WithSolcPath(flagSolc))
		}
		if flagOptimize > 0 {
			opts = append(opts, chaincli.WithOptimizer(flagOptimize))
		}

		out, err := chaincli.NewCompiler(opts...).Compile(context.Background(), sources)
		if out != nil {
			for _, d := range out.Diagnostics {
				switch d.Severity {
				case chaincli.SeverityError:
					log.Error(d.Message, zap.String("file", d.File))
				case chaincli.SeverityWarning:
					log.Warn(d.Message, zap.String("file", d.File))
				default:
					log.Info(d.Message, zap.String("file", d.File))
				}
			}
		}
		var compileErr *chaincli.CompileError
		if errors.As(err, &compileErr) {
			return fmt.Errorf("compilation failed")
		}
		if err != nil {
			return err
		}

		if err := os.MkdirAll(flagOutDir, 0o755); err != nil {
			return err
		}
		for name, contract := range out.Contracts {
			abiPath := filepath.Join(flagOutDir, name+".abi")
			if err := os.WriteFile(abiPath, contract.ABIJSON, 0o644); err != nil {
				return err
			}
			binPath := filepath.Join(flagOutDir, name+".bin")
			if err := os.WriteFile(binPath, []byte(hex.EncodeToString(contract.Bytecode)), 0o644); err != nil {
				return err
			}
			log.Info("compiled",
				zap.String("contract", name),
				zap.String("file", contract.File),
				zap.Int("bytecode_bytes", len(contract.Bytecode)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVar(&flagSolc, "solc", "", "path to the solc binary (default $PATH solc)")
	compileCmd.Flags().IntVar(&flagOptimize, "optimize", 0, "enable the optimizer with this run count")
	compileCmd.Flags().StringVarP(&flagOutDir, "out", "o", "build", "artifact output directory")
}
