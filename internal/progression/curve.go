package progression

import "math"

// Curve maps a level to the experience needed to reach the next one:
// floor(Base * Growth^(level-1))
type Curve struct {
	Base   float64
	Growth float64
}

// DefaultCurve returns the standard player curve
func DefaultCurve() Curve {
	return Curve{Base: BaseExpToNext, Growth: DefaultGrowth}
}

// ExpToNext returns the threshold for leaving the given level. The result is at
// least 1 so level-up loops always make progress.
func (c Curve) ExpToNext(level int) float64 {
	if level < 1 {
		level = 1
	}
	return math.Max(1, math.Floor(c.Base*math.Pow(c.Growth, float64(level-1))))
}

// CumulativeExp returns the total experience needed to go from level 1 to the given level
func (c Curve) CumulativeExp(level int) float64 {
	total := 0.0
	for l := 1; l < level; l++ {
		total += c.ExpToNext(l)
	}
	return total
}
