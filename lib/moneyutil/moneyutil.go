package moneyutil

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var nonAmount = regexp.MustCompile(`[^0-9.]`)

// ParseAmount pulls a numeric value out of scraped price text.
// Currency symbols, grouping separators and surrounding whitespace
// are discarded, so "£1,024.99" parses to 1024.99. Text with no
// digits, or with digits that do not form a number, is an error.
func ParseAmount(s string) (float64, error) {
	cleaned := nonAmount.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in price text %q", s)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price text %q: %w", s, err)
	}
	return value, nil
}

var symbols = map[string]string{
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"USD": "$",
}

// Symbol returns the display symbol for a currency code. Codes
// without a common one-rune symbol report ok=false and should be
// rendered with FormatCode instead.
func Symbol(code string) (string, bool) {
	s, ok := symbols[code]
	return s, ok
}

var englishPrinter = message.NewPrinter(language.English)

// FormatSymbol renders an amount behind a currency symbol: £51.77.
func FormatSymbol(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatCode renders an amount behind a currency code, with grouping
// separators for readability: KES 9,059.75.
func FormatCode(code string, amount float64) string {
	return englishPrinter.Sprintf("%s %.2f", code, amount)
}
