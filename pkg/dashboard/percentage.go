package dashboard

import (
	"math"
)

// CalculatePercentage returns (current/total)*100 rounded to two
// decimals, or 0 when total is not positive. It pre-fills the
// operator-editable percentage fields; the stored value is whatever the
// operator finally submits.
func CalculatePercentage(total, current int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(current) / float64(total) * 100
	return math.Round(pct*100) / 100
}
