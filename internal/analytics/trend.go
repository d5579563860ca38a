package analytics

import "math"

// Trend is the percentage change from previous to current, rounded half up.
// With no previous activity it is 100 when anything happened and 0 otherwise.
func Trend(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := float64(current-previous) / float64(previous) * 100
	return int(math.Floor(pct + 0.5))
}
