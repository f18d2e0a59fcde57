package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"pricetrack/lib/cliutil"
	"pricetrack/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pricetrack",
	Short: "pricetrack scrapes product prices off a storefront and converts them into another currency.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		err := telemetry.SetupFromEnv(cmd.Context(), "pricetrack")
		if err != nil {
			cliutil.Fatal("failed to initialize telemetry", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := telemetry.Shutdown(cmd.Context())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enables debug logging and http request/response dumps under .dev/resty.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
