package calculation

import (
	"github.com/shopspring/decimal"
)

// PresentValueOfAnnuity returns the lump sum that funds payment at the end of each of
// years periods, discounted at rate: payment * (1 - (1+rate)^-years) / rate.
// It is zero when years or rate is not positive. The result is not rounded.
func PresentValueOfAnnuity(payment, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || !rate.IsPositive() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	factor := one.Add(rate).Pow(decimal.NewFromInt(int64(years)))
	discount := one.Sub(one.Div(factor))
	return payment.Mul(discount).Div(rate)
}
