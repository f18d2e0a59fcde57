package pricefeed

import (
	"testing"
	"time"

	"pricetrack/lib/rates"
	"pricetrack/lib/scrapers/storefront"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testQuote(rate float64) rates.Quote {
	return rates.Quote{
		Base:      "GBP",
		Target:    "KES",
		Rate:      decimal.NewFromFloat(rate),
		UpdatedAt: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
		Source:    rates.SourceLive,
	}
}

func testProducts() []storefront.Product {
	return []storefront.Product{
		{Name: "A Light in the Attic", Price: 51.77},
		{Name: "Tipping the Velvet", Price: 53.74},
	}
}

func TestConvert(t *testing.T) {
	records := Convert(testProducts(), testQuote(175.00))

	expected := []Record{
		{
			Name:                "A Light in the Attic",
			OriginalCurrency:    "GBP",
			OriginalPrice:       51.77,
			ConvertedCurrency:   "KES",
			ConvertedPrice:      9059.75,
			ConversionRate:      175.0,
			ConversionTimestamp: "2023-11-14 22:13:20",
		},
		{
			Name:                "Tipping the Velvet",
			OriginalCurrency:    "GBP",
			OriginalPrice:       53.74,
			ConvertedCurrency:   "KES",
			ConvertedPrice:      9404.5,
			ConversionRate:      175.0,
			ConversionTimestamp: "2023-11-14 22:13:20",
		},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestConvertRoundsRate(t *testing.T) {
	products := []storefront.Product{{Name: "book", Price: 51.77}}

	records := Convert(products, testQuote(184.131702))
	require.Len(t, records, 1)

	// the rate is rounded to 4 places before multiplying, so the
	// published rate reproduces the published converted price
	require.Equal(t, 184.1317, records[0].ConversionRate)
	require.Equal(t, 9532.50, records[0].ConvertedPrice)
}

func TestConvertInvariant(t *testing.T) {
	products := []storefront.Product{
		{Name: "a", Price: 51.77},
		{Name: "b", Price: 0},
		{Name: "c", Price: 0.01},
		{Name: "d", Price: 999.99},
	}

	for _, rate := range []float64{175.0, 184.131702, 0.0071, 1} {
		records := Convert(products, testQuote(rate))
		for _, record := range records {
			recomputed := decimal.NewFromFloat(record.OriginalPrice).
				Mul(decimal.NewFromFloat(record.ConversionRate)).
				Round(2).
				InexactFloat64()
			require.Equal(
				t, recomputed, record.ConvertedPrice,
				"price %v rate %v", record.OriginalPrice, rate,
			)
		}
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	products := []storefront.Product{
		{Name: "a", Price: 51.77},
		{Name: "b", Price: 12.34},
	}
	quote := testQuote(184.131702)

	first := Convert(products, quote)
	second := Convert(products, quote)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("conversion is not deterministic (-first +second):\n%s", diff)
	}
}

func TestConvertSharesQuoteAcrossRecords(t *testing.T) {
	products := make([]storefront.Product, 10)
	for i := range products {
		products[i] = storefront.Product{Name: "book", Price: float64(i) + 0.5}
	}

	records := Convert(products, testQuote(184.131702))
	require.Len(t, records, 10)
	for _, record := range records {
		require.Equal(t, records[0].ConversionRate, record.ConversionRate)
		require.Equal(t, records[0].ConversionTimestamp, record.ConversionTimestamp)
	}
}

func TestConvertEmpty(t *testing.T) {
	records := Convert(nil, testQuote(175.0))
	require.Empty(t, records)
}
