package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestKopecks_WholeRubles(t *testing.T) {
	assert.Equal(t, int64(459000), Kopecks(decimal.NewFromInt(4590)))
}

func TestKopecks_FractionalRubles(t *testing.T) {
	d, err := decimal.NewFromString("2590.50")
	assert.NoError(t, err)
	assert.Equal(t, int64(259050), Kopecks(d))
}

func TestKopecks_RoundsSubKopeckAmounts(t *testing.T) {
	d, err := decimal.NewFromString("10.005")
	assert.NoError(t, err)
	assert.Equal(t, int64(1001), Kopecks(d))
}

func TestRubles_RoundTrip(t *testing.T) {
	assert.True(t, Rubles(459000).Equal(decimal.NewFromInt(4590)))
	assert.Equal(t, "2590.5", Rubles(259050).String())
}

func TestTotal_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style sums stay exact in minor units.
	c := &Cart{
		Lines: []CartLine{
			{UnitPrice: 10, Quantity: 1},
			{UnitPrice: 20, Quantity: 1},
		},
	}
	assert.Equal(t, int64(30), c.Total())
}
