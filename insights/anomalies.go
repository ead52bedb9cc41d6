package insights

// Anomaly flags reported by DetectAnomalies.
const (
	FlagRHRElevated   = "rhr_elevated"
	FlagHRVDepressed  = "hrv_depressed"
	FlagSleepShort    = "sleep_short"
	FlagStepsDownturn = "steps_downturn"
)

// AnomalyThresholds tunes the wellness anomaly heuristics.
type AnomalyThresholds struct {
	// RHRIncreaseBPM flags a day whose resting HR is at least this many
	// bpm above the prior 7-day average.
	RHRIncreaseBPM float64
	// HRVDropMs flags a day whose HRV is at least this many ms below the
	// prior 7-day average.
	HRVDropMs float64
	// SleepHoursMin flags a day with less sleep than this.
	SleepHoursMin float64
	// StepsDropPct flags a day whose steps dropped at least this percent
	// vs the prior 7-day average.
	StepsDropPct float64
}

// DefaultAnomalyThresholds returns the standard thresholds: +5 bpm RHR,
// -15 ms HRV, <6 h sleep, -30% steps.
func DefaultAnomalyThresholds() AnomalyThresholds {
	return AnomalyThresholds{
		RHRIncreaseBPM: 5,
		HRVDropMs:      15,
		SleepHoursMin:  6.0,
		StepsDropPct:   30.0,
	}
}

// Anomaly records the flags raised for one day.
type Anomaly struct {
	Date  string   `json:"date"`
	Flags []string `json:"flags"`
}

// DetectAnomalies scans a daily series for wellness anomalies. Baselines
// are the mean of the prior (up to) 7 days with data; days with no
// baseline raise no relative flags.
func DetectAnomalies(days []DayMetrics, th AnomalyThresholds) []Anomaly {
	var anomalies []Anomaly

	for i, day := range days {
		window := days[max(0, i-7):i]
		baseline := func(metric string) *float64 {
			var vals []float64
			for _, w := range window {
				if v := w.Value(metric); v != nil {
					vals = append(vals, *v)
				}
			}
			m, ok := Mean(vals)
			if !ok {
				return nil
			}
			return &m
		}

		var flags []string
		if rhrBase := baseline(MetricRHR); day.RHR != nil && rhrBase != nil {
			if *day.RHR-*rhrBase >= th.RHRIncreaseBPM {
				flags = append(flags, FlagRHRElevated)
			}
		}
		if hrvBase := baseline(MetricHRV); day.HRV != nil && hrvBase != nil {
			if *hrvBase-*day.HRV >= th.HRVDropMs {
				flags = append(flags, FlagHRVDepressed)
			}
		}
		if day.SleepHours != nil && *day.SleepHours < th.SleepHoursMin {
			flags = append(flags, FlagSleepShort)
		}
		if stepsBase := baseline(MetricSteps); day.Steps != nil && stepsBase != nil && *stepsBase > 0 {
			dropPct := 100.0 * (*stepsBase - *day.Steps) / *stepsBase
			if dropPct >= th.StepsDropPct {
				flags = append(flags, FlagStepsDownturn)
			}
		}

		if len(flags) > 0 {
			anomalies = append(anomalies, Anomaly{Date: day.Date, Flags: flags})
		}
	}
	return anomalies
}
