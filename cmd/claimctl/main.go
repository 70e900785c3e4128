// Command claimctl runs assessment operations against the claim store
// without going through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insuro/internal/app"
	"insuro/internal/config"
)

var (
	cfg  config.Config
	deps *app.App
)

var rootCmd = &cobra.Command{
	Use:   "claimctl",
	Short: "Operator tool for the claim assessment engine",
	Long:  "Assesses, verifies and fraud-reviews stored claims using the same store, cache and scoring profiles as the API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()
		cfg = config.Load()
		applyOverrides(bindFlags(cmd.Flags()), &cfg)
		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		a, err := app.New(cfg)
		if err != nil {
			return eris.Wrap(err, "connect")
		}
		deps = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deps != nil {
			deps.Close()
		}
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	registerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(assessCmd, verifyCmd, fraudReviewCmd)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
