package insights

// CompletenessSignals are the per-day signals scored by the completeness
// tool.
var CompletenessSignals = []string{"sleep", "steps", "hrv", "body_battery", "hr"}

// presentDayThreshold is the per-day score at or above which a day counts
// as present in the overall score.
const presentDayThreshold = 0.6

// CompletenessScore scores one day as the fraction of tracked signals that
// had data.
func CompletenessScore(have map[string]bool) float64 {
	present := 0
	for _, sig := range CompletenessSignals {
		if have[sig] {
			present++
		}
	}
	return Round2(float64(present) / float64(len(CompletenessSignals)))
}

// OverallCompleteness scores a window as the fraction of days whose
// completeness reached the presence threshold.
func OverallCompleteness(dayScores []float64) float64 {
	if len(dayScores) == 0 {
		return 0
	}
	present := 0
	for _, score := range dayScores {
		if score >= presentDayThreshold {
			present++
		}
	}
	return Round2(float64(present) / float64(len(dayScores)))
}
