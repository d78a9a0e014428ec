package utils

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var numberSuffixes = []struct {
	limit  float64
	div    float64
	suffix string
}{
	{1e6, 1e3, "K"},
	{1e9, 1e6, "M"},
	{1e12, 1e9, "B"},
}

// FormatNumber abbreviates large values with one decimal and a K/M/B/T suffix.
// Values under 1000 are printed as-is.
func FormatNumber(n float64) string {
	if n < 1000 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	for _, s := range numberSuffixes {
		if n < s.limit {
			return fmt.Sprintf("%.1f%s", n/s.div, s.suffix)
		}
	}
	return fmt.Sprintf("%.1fT", n/1e12)
}

// FormatDuration renders d as "1h 2m 3s", "2m 3s" or "3s", truncating to whole seconds
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	minutes := seconds / 60
	hours := minutes / 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes%60, seconds%60)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatCountdown renders a remaining duration as m:ss, rounding partial seconds up
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TitleCase capitalizes each word for display, e.g. "legendary" -> "Legendary"
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
