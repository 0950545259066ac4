// Package types contains the numeric presentation rules shared by every
// derived table: points carry 2 decimals, fractions 4, percentages 1.
package types

import "math"

// Decimal places of the presentation contract.
const (
	PointsPlaces   = 2
	FractionPlaces = 4
	PercentPlaces  = 1
)

// Round rounds x half away from zero to the given decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// RoundPoints rounds a points value.
func RoundPoints(x float64) float64 { return Round(x, PointsPlaces) }

// RoundFraction rounds a win fraction.
func RoundFraction(x float64) float64 { return Round(x, FractionPlaces) }

// Fraction returns num/den, or 0 when den is 0.
func Fraction(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Percent returns num/den*100, or 0 when den is 0.
func Percent(num, den int) float64 { return Fraction(num, den) * 100 }
