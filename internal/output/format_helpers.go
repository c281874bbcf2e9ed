package output

import (
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale controls digit grouping when no locale is configured.
const DefaultLocale = "en-GB"

const currencySymbol = "£"

var (
	decimalHundred = decimal.NewFromInt(100)
	printer        atomic.Pointer[message.Printer]
)

func init() {
	printer.Store(message.NewPrinter(language.BritishEnglish))
}

// SetLocale selects the digit grouping used by the report helpers, e.g. "en-GB" or "de-DE".
// The currency symbol is always £.
func SetLocale(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("parse locale %q: %w", tag, err)
	}
	printer.Store(message.NewPrinter(t))
	return nil
}

// groupWhole renders the integer part of amount with locale digit grouping.
func groupWhole(amount decimal.Decimal) string {
	return printer.Load().Sprintf("%d", amount.Abs().IntPart())
}

// FormatCurrency formats an amount in whole pounds with digit grouping: £174,645.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return "-" + currencySymbol + groupWhole(rounded)
	}
	return currencySymbol + groupWhole(rounded)
}

// FormatAmount groups digits and shows pence only when there are any: 16,000 or 1,200.50.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole := groupWhole(rounded)
	frac := rounded.Abs().Sub(rounded.Abs().Truncate(0))
	if frac.IsZero() {
		return sign + whole
	}
	return sign + whole + fmt.Sprintf(".%02d", frac.Mul(decimalHundred).IntPart())
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate as a percentage without padding: 0.049 gives 4.9%.
func FormatRate(rate decimal.Decimal) string { return rate.Mul(decimalHundred).String() + "%" }
