package utils

import "math"

// RoundTo rounds value to the given number of decimal places
func RoundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// Clamp bounds value to [lo, hi]
func Clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}
