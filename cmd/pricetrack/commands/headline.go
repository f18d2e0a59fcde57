package commands

import (
	"fmt"

	"pricetrack/lib/cliutil"
	"pricetrack/lib/restyutil"
	"pricetrack/lib/scrapers/newswire"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(headlineCmd)
}

var headlineCmd = &cobra.Command{
	Use:   "headline",
	Short: "Prints the current top headline off the configured news page.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		if verbose {
			newswire.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/newswire"))
		}

		scraper := newswire.NewScraper(config.Newswire.options())
		headline, err := scraper.TopHeadline(cmd.Context())
		if err != nil {
			cliutil.Fatal("failed to extract headline", err)
		}

		fmt.Println(headline)
	},
}
