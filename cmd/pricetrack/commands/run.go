package commands

import (
	"log/slog"
	"time"

	"pricetrack/lib/cliutil"
	"pricetrack/lib/rates"
	"pricetrack/lib/restyutil"
	"pricetrack/lib/scrapers/storefront"
	"pricetrack/lib/telemetry"
	"pricetrack/services/pricefeed"

	"github.com/spf13/cobra"
)

var (
	csvFile  string
	jsonFile string
)

func init() {
	runCmd.Flags().StringVar(&csvFile, "csv", "", "override the csv export path from config")
	runCmd.Flags().StringVar(&jsonFile, "json", "", "override the json export path from config")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes the storefront, converts prices and writes the csv/json exports.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		if csvFile != "" {
			config.Export.CsvFile = csvFile
		}
		if jsonFile != "" {
			config.Export.JsonFile = jsonFile
		}
		if verbose {
			storefront.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/storefront"))
			rates.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/rates"))
		}

		service := pricefeed.NewService(pricefeed.Options{
			Storefront: config.Storefront.options(),
			Rates:      config.Rates.options(),
			Base:       config.Rates.Base,
			Target:     config.Rates.Target,
			CsvFile:    config.Export.CsvFile,
			JsonFile:   config.Export.JsonFile,
		})

		t1 := time.Now()
		err := service.Run(cmd.Context())
		t2 := time.Now()
		if err != nil {
			cliutil.Fatal("pipeline terminated, nothing was scraped", err)
		}

		telemetry.ReportRunStats(cmd.Context())
		slog.Info("pipeline time", "seconds", t2.Sub(t1).Seconds())
	},
}
