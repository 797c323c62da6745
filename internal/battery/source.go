// Package battery samples the host battery charge on a fixed interval and
// publishes it as a formatted percentage string.
package battery

import "fmt"

// Source provides the current battery charge as a ratio in [0, 1].
// ok is false when no reading is available this cycle (no battery present,
// driver error); callers treat that as "skip", not as an error.
type Source interface {
	Ratio() (ratio float64, ok bool)
}

// FormatRatio renders a charge ratio as an integer percentage string.
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
