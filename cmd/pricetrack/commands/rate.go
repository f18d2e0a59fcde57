package commands

import (
	"os"
	"strings"

	"pricetrack/lib/rates"
	"pricetrack/lib/restyutil"
	"pricetrack/services/pricefeed"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rateCmd)
}

var rateCmd = &cobra.Command{
	Use:   "rate [target currency code...]",
	Short: "Fetches the live exchange rate for one or more target currencies.",
	Long: "Fetches the live exchange rate from the configured provider and prints it. " +
		"With no arguments the configured target currency is looked up. " +
		"Lookups that fail report the configured fallback rate instead.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		if verbose {
			rates.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/rates"))
		}

		targets := args
		if len(targets) == 0 {
			targets = []string{config.Rates.Target}
		}

		client := rates.NewClient(config.Rates.options())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{
			"Currency", "Rate (1 " + config.Rates.Base + ")", "Updated", "Source",
		})
		for _, target := range targets {
			quote := client.Resolve(cmd.Context(), config.Rates.Base, strings.ToUpper(target))
			t.AppendRow(table.Row{
				quote.Target,
				quote.Rate.String(),
				quote.UpdatedAt.Format(pricefeed.TimestampLayout),
				string(quote.Source),
			})
		}
		t.Render()
	},
}
