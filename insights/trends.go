package insights

// Metric keys used in trend series and anomaly baselines. These are the
// JSON field names the tools report.
const (
	MetricRHR         = "rhr"
	MetricHRV         = "hrv"
	MetricSleepHours  = "sleep_hours"
	MetricSteps       = "steps"
	MetricBodyBattery = "body_battery_avg"
	MetricWeight      = "weight_kg"
	MetricVO2Max      = "vo2max"
)

// DayMetrics is one day's worth of extracted metric values. Nil means the
// signal was absent or the fetch failed; absent days never participate in
// averages.
type DayMetrics struct {
	Date           string   `json:"date"`
	RHR            *float64 `json:"rhr,omitempty"`
	HRV            *float64 `json:"hrv,omitempty"`
	SleepHours     *float64 `json:"sleep_hours,omitempty"`
	Steps          *float64 `json:"steps,omitempty"`
	BodyBatteryAvg *float64 `json:"body_battery_avg,omitempty"`
	WeightKg       *float64 `json:"weight_kg,omitempty"`
	VO2Max         *float64 `json:"vo2max,omitempty"`
	FitnessAge     *float64 `json:"fitness_age,omitempty"`
}

// Value returns the named metric, or nil.
func (d DayMetrics) Value(metric string) *float64 {
	switch metric {
	case MetricRHR:
		return d.RHR
	case MetricHRV:
		return d.HRV
	case MetricSleepHours:
		return d.SleepHours
	case MetricSteps:
		return d.Steps
	case MetricBodyBattery:
		return d.BodyBatteryAvg
	case MetricWeight:
		return d.WeightKg
	case MetricVO2Max:
		return d.VO2Max
	}
	return nil
}

// Rolling holds trailing averages over the most recent points of a series.
type Rolling struct {
	Avg7d  *float64 `json:"avg_7d"`
	Avg28d *float64 `json:"avg_28d"`
}

// TrendSummary reports, per metric, the first-to-last delta across the
// series and trailing 7/28-point averages. Days without a value for a
// metric are skipped, matching how the per-day fetches degrade.
type TrendSummary struct {
	Deltas  map[string]*float64 `json:"deltas"`
	Rolling map[string]Rolling  `json:"rolling"`
}

// Trends computes deltas and rolling averages for the requested metrics.
func Trends(series []DayMetrics, metrics []string) TrendSummary {
	out := TrendSummary{
		Deltas:  make(map[string]*float64),
		Rolling: make(map[string]Rolling),
	}

	for _, metric := range metrics {
		var points []float64
		for _, day := range series {
			if v := day.Value(metric); v != nil {
				points = append(points, *v)
			}
		}
		if len(points) == 0 {
			continue
		}

		delta := Round2(points[len(points)-1] - points[0])
		out.Deltas[metric] = &delta

		out.Rolling[metric] = Rolling{
			Avg7d:  trailingAvg(points, 7),
			Avg28d: trailingAvg(points, 28),
		}
	}
	return out
}

func trailingAvg(points []float64, n int) *float64 {
	if len(points) > n {
		points = points[len(points)-n:]
	}
	m, ok := Mean(points)
	if !ok {
		return nil
	}
	r := Round2(m)
	return &r
}
