package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"stock_potential/pkg/core/equity"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, "2.56", Ratio(2.5608767950073115))
	assert.Equal(t, "0.48", Ratio(0.4786822113130546))
	assert.Equal(t, "0.00", Ratio(0))
	assert.Equal(t, Invalid, Ratio(math.NaN()))
	assert.Equal(t, Invalid, Ratio(math.Inf(1)))
	assert.Equal(t, Invalid, Ratio(math.Inf(-1)))
}

func TestCurrency(t *testing.T) {
	cases := map[float64]string{
		718023.3169695819: "$718,023",
		999.99:            "$999",
		0:                 "$0",
		1000000:           "$1,000,000",
		-1234.9:           "$-1,234",
		1e21:              "$1,000,000,000,000,000,000,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, Currency(in))
	}
	assert.Equal(t, Invalid, Currency(math.NaN()))
	assert.Equal(t, Invalid, Currency(math.Inf(1)))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "20,000,000", Number(20000000))
	assert.Equal(t, "0.15", Number(0.15))
	assert.Equal(t, Invalid, Number(math.NaN()))
}

func TestRender(t *testing.T) {
	d := Render(equity.Compute(equity.Defaults()))
	assert.Equal(t, Display{
		NumberOfRaises:      "2.56",
		Dilution:            "0.48",
		PotentialStockValue: "$718,023",
	}, d)

	s := equity.Defaults()
	s.CompanyValuation = 0
	d = Render(equity.Compute(s))
	assert.Equal(t, Invalid, d.NumberOfRaises)
	assert.Equal(t, Invalid, d.Dilution)
	assert.Equal(t, Invalid, d.PotentialStockValue)
}
