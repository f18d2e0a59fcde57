package pricefeed

import (
	"pricetrack/lib/rates"
	"pricetrack/lib/scrapers/storefront"

	"github.com/shopspring/decimal"
)

// Convert applies a single quote to every scraped product. The rate is
// rounded to 4 decimal places first and that rounded rate is the one
// multiplied through, so converted_price is always exactly
// round(original_price * conversion_rate, 2).
func Convert(products []storefront.Product, quote rates.Quote) []Record {
	rate := quote.Rate.Round(4)
	timestamp := quote.UpdatedAt.Format(TimestampLayout)

	records := make([]Record, 0, len(products))
	for _, product := range products {
		converted := decimal.NewFromFloat(product.Price).
			Mul(rate).
			Round(2)

		records = append(records, Record{
			Name:                product.Name,
			OriginalCurrency:    quote.Base,
			OriginalPrice:       product.Price,
			ConvertedCurrency:   quote.Target,
			ConvertedPrice:      converted.InexactFloat64(),
			ConversionRate:      rate.InexactFloat64(),
			ConversionTimestamp: timestamp,
		})
	}
	return records
}
