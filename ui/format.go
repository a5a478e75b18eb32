package ui

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// dateLayouts are the accepted input forms for stored dates. Source data is
// treated as already being the intended calendar date; there is no timezone
// normalization.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"January 2, 2006",
}

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"KES": "KSh ",
}

// FormatDate renders a stored date as long-form month/day/year ("January 2,
// 2006"). Empty or unparseable input comes back unchanged (empty stays
// empty).
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return value
}

// FormatCurrency renders an amount with grouping and two decimal places,
// prefixed by the currency symbol. Unknown currencies fall back to the code
// itself.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return currencyPrinter.Sprintf("%s%v", symbol,
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
