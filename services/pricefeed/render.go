package pricefeed

import (
	"fmt"
	"io"
	"strings"

	"pricetrack/lib/moneyutil"
	"pricetrack/lib/rates"

	"github.com/jedib0t/go-pretty/v6/table"
)

const bannerWidth = 80

// RenderTable writes the converted records as an aligned table,
// bracketed by a banner naming the conversion pair and the moment the
// rate was last refreshed. An empty record list renders a short notice
// instead of an empty table.
func RenderTable(out io.Writer, records []Record, quote rates.Quote) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintln(out, banner)
	fmt.Fprintf(
		out, "Product Prices Scraped & Currency Converted (%s to %s)\n",
		quote.Base, quote.Target,
	)
	fmt.Fprintf(
		out, "Last Conversion Time: %s\n",
		quote.UpdatedAt.Format(TimestampLayout),
	)
	fmt.Fprintln(out, banner)

	if len(records) == 0 {
		fmt.Fprintln(out, "No data to display.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		"Product Name",
		fmt.Sprintf("Price (%s)", quote.Base),
		fmt.Sprintf("Price (%s)", quote.Target),
		fmt.Sprintf("Rate (1 %s)", quote.Base),
	})
	for _, record := range records {
		t.AppendRow(table.Row{
			record.Name,
			formatOriginalPrice(record),
			moneyutil.FormatCode(record.ConvertedCurrency, record.ConvertedPrice),
			formatFloat(record.ConversionRate),
		})
	}
	t.Render()

	fmt.Fprintln(out, banner)
}

func formatOriginalPrice(record Record) string {
	symbol, ok := moneyutil.Symbol(record.OriginalCurrency)
	if !ok {
		return moneyutil.FormatCode(record.OriginalCurrency, record.OriginalPrice)
	}
	return moneyutil.FormatSymbol(symbol, record.OriginalPrice)
}
