package pricefeed

import "strconv"

// TimestampLayout is how conversion timestamps appear in the rendered
// table and in exported files.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one product carrying both its scraped price and the
// converted one. All records produced by a single run share the same
// conversion rate and timestamp.
type Record struct {
	Name                string  `json:"name"`
	OriginalCurrency    string  `json:"original_currency"`
	OriginalPrice       float64 `json:"original_price"`
	ConvertedCurrency   string  `json:"converted_currency"`
	ConvertedPrice      float64 `json:"converted_price"`
	ConversionRate      float64 `json:"conversion_rate"`
	ConversionTimestamp string  `json:"conversion_timestamp"`
}

// recordHeader is the column order of delimited exports. It must stay
// in sync with the field order of Record and with Record.row.
var recordHeader = []string{
	"name",
	"original_currency",
	"original_price",
	"converted_currency",
	"converted_price",
	"conversion_rate",
	"conversion_timestamp",
}

func (r Record) row() []string {
	return []string{
		r.Name,
		r.OriginalCurrency,
		formatFloat(r.OriginalPrice),
		r.ConvertedCurrency,
		formatFloat(r.ConvertedPrice),
		formatFloat(r.ConversionRate),
		r.ConversionTimestamp,
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
