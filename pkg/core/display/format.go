// Package display turns model outputs into the strings shown next to the form.
package display

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"stock_potential/pkg/core/equity"
)

// Invalid is shown in place of any non-finite value.
const Invalid = "—"

// Display holds the three rendered result lines.
type Display struct {
	NumberOfRaises      string `json:"number_of_raises"`
	Dilution            string `json:"dilution"`
	PotentialStockValue string `json:"potential_stock_value"`
}

// Render formats outputs: raises and dilution with two decimals, the
// potential value as whole currency.
func Render(out equity.Outputs) Display {
	return Display{
		NumberOfRaises:      Ratio(out.NumberOfRaises),
		Dilution:            Ratio(out.Dilution),
		PotentialStockValue: Currency(out.PotentialStockValue),
	}
}

// Ratio formats x with two decimals.
func Ratio(x float64) string {
	if !finite(x) {
		return Invalid
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// Currency drops the fractional part (toward zero) and groups thousands,
// e.g. 718023.31 -> "$718,023".
func Currency(x float64) string {
	if !finite(x) {
		return Invalid
	}
	whole := decimal.NewFromFloat(x).Truncate(0)
	return "$" + humanize.BigComma(whole.BigInt())
}

// Number groups thousands and keeps up to two decimals; used for input echo.
func Number(x float64) string {
	if !finite(x) {
		return Invalid
	}
	return humanize.CommafWithDigits(x, 2)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
