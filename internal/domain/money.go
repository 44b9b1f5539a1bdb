package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Kopecks converts a decimal ruble amount from the wire into int64 kopecks.
// All arithmetic inside the service happens in minor units so totals never
// pick up floating point drift.
func Kopecks(rubles decimal.Decimal) int64 {
	return rubles.Mul(hundred).Round(0).IntPart()
}

// Rubles converts int64 kopecks back into a decimal ruble amount for the wire.
func Rubles(kopecks int64) decimal.Decimal {
	return decimal.NewFromInt(kopecks).Div(hundred)
}
