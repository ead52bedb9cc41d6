package insights

// ReadinessBreakdown is a 0-100 readiness estimate composed from whichever
// component signals were available for a day.
type ReadinessBreakdown struct {
	SleepScore         *float64 `json:"sleep_score"`
	BodyBatteryScore   *float64 `json:"body_battery_score"`
	HRVScore           *float64 `json:"hrv_score"`
	StressInverseScore *float64 `json:"stress_inverse_score"`
}

// SleepScore maps slept hours against an 8 hour target onto 0-100.
func SleepScore(hours float64) float64 {
	return Clamp(hours/8.0*100.0, 0, 100)
}

// HRVScore maps average HRV onto 0-100, treating 20 ms as floor and
// 100 ms as ceiling.
func HRVScore(ms float64) float64 {
	return Clamp((ms-20.0)/(100.0-20.0)*100.0, 0, 100)
}

// StressInverse inverts a 0-100 average stress level.
func StressInverse(avgStress float64) float64 {
	return Clamp(100.0-avgStress, 0, 100)
}

// Score combines the available components with equal weight. Returns false
// when no component is present.
func (b ReadinessBreakdown) Score() (float64, bool) {
	var vals []float64
	for _, c := range []*float64{b.SleepScore, b.BodyBatteryScore, b.HRVScore, b.StressInverseScore} {
		if c != nil {
			vals = append(vals, *c)
		}
	}
	m, ok := Mean(vals)
	if !ok {
		return 0, false
	}
	return Round2(m), true
}
