package ranking

import (
	"time"

	"github.com/jmcferran/sightline/internal/domain/signal"
)

// Viral detection thresholds.
const (
	viralColdStartMin  = 10  // 24h activity a brand-new signal must exceed
	viralBaselineRatio = 3.0 // multiple of the 7-day average to beat
)

// ViralActivity is the aggregated recent-vs-baseline activity for one
// signal.
type ViralActivity struct {
	Last24hActivity     int     `json:"last_24h_activity"`
	Previous7DayAverage float64 `json:"previous_7day_average"`
}

// DetectViralBoost reports whether recent activity significantly exceeds
// the baseline: either the cold-start rule (no baseline, 24h activity over
// 10) or strictly more than 3x the 7-day average. Exactly 3x is not viral.
func DetectViralBoost(v ViralActivity) bool {
	if v.Previous7DayAverage == 0 {
		return v.Last24hActivity > viralColdStartMin
	}
	return float64(v.Last24hActivity) > viralBaselineRatio*v.Previous7DayAverage
}

// CalculateViralActivity aggregates activity snapshots relative to now.
// The 24h window sums snapshots strictly newer than now-24h; the baseline
// sums snapshots in (now-8d, now-24h] and divides by a fixed 7, so sparse
// data understates the average rather than overstating it.
func CalculateViralActivity(snapshots []signal.ActivitySnapshot, now time.Time) ViralActivity {
	dayAgo := now.Add(-24 * time.Hour)
	eightDaysAgo := now.Add(-8 * 24 * time.Hour)

	var last24h, baseline int
	for _, snap := range snapshots {
		switch {
		case snap.Date.After(dayAgo):
			last24h += snap.Activity
		case snap.Date.After(eightDaysAgo):
			baseline += snap.Activity
		}
	}

	return ViralActivity{
		Last24hActivity:     last24h,
		Previous7DayAverage: float64(baseline) / 7.0,
	}
}
