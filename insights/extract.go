package insights

import "math"

// Number coerces a decoded JSON value to float64. JSON numbers decode as
// float64, but re-encoded payloads occasionally carry ints.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// field looks up a numeric field under any of the given keys.
func field(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := Number(m[k]); ok {
			return v, true
		}
	}
	return 0, false
}

// SleepHours extracts the slept hours from a sleep response. The summary
// lives in dailySleepDTO; older payloads put sleepTimeSeconds at the top
// level.
func SleepHours(sleep map[string]any) (float64, bool) {
	if sleep == nil {
		return 0, false
	}
	summary := sleep
	if dto, ok := sleep["dailySleepDTO"].(map[string]any); ok {
		summary = dto
	}
	secs, ok := field(summary, "sleepTimeSeconds")
	if !ok || secs <= 0 {
		return 0, false
	}
	return secs / 3600.0, true
}

// BodyBatteryValues flattens bodyBatteryValue readings out of a body
// battery report.
func BodyBatteryValues(report []map[string]any) []float64 {
	var vals []float64
	for _, entry := range report {
		if v, ok := field(entry, "bodyBatteryValue"); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// ReadinessScore extracts the training readiness value (0-100).
func ReadinessScore(tr map[string]any) (float64, bool) {
	if tr == nil {
		return 0, false
	}
	if nested, ok := tr["trainingReadiness"].(map[string]any); ok {
		return field(nested, "value")
	}
	return field(tr, "score")
}

// HRVAverage extracts the average HRV in milliseconds.
func HRVAverage(hrv map[string]any) (float64, bool) {
	if hrv == nil {
		return 0, false
	}
	if v, ok := field(hrv, "avgHrv", "average"); ok {
		return v, true
	}
	if summary, ok := hrv["hrvSummary"].(map[string]any); ok {
		return field(summary, "lastNightAvg", "weeklyAvg")
	}
	return 0, false
}

// Steps extracts the day's step count from a daily stats summary.
func Steps(stats map[string]any) (float64, bool) {
	if stats == nil {
		return 0, false
	}
	return field(stats, "steps", "totalSteps", "stepCount")
}

// RestingHeartRate extracts resting heart rate in bpm from a daily heart
// rate or stats summary.
func RestingHeartRate(m map[string]any) (float64, bool) {
	if m == nil {
		return 0, false
	}
	return field(m, "restingHeartRate")
}

// StressAverage extracts the day's average stress level (0-100).
func StressAverage(stress map[string]any) (float64, bool) {
	if stress == nil {
		return 0, false
	}
	return field(stress, "avgStressLevel", "stressLevel")
}

// WeightKg extracts the first weight reading of the day from a body
// composition range response. Garmin reports weight in grams.
func WeightKg(comp map[string]any) (float64, bool) {
	if comp == nil {
		return 0, false
	}
	list, ok := comp["dateWeightList"].([]any)
	if !ok || len(list) == 0 {
		return 0, false
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return 0, false
	}
	grams, ok := field(first, "weight")
	if !ok {
		return 0, false
	}
	return grams / 1000.0, true
}

// VO2Max extracts the VO2 max snapshot from a max metrics response.
func VO2Max(mm map[string]any) (float64, bool) {
	if mm == nil {
		return 0, false
	}
	if v, ok := field(mm, "vo2Max"); ok {
		return v, true
	}
	if generic, ok := mm["generic"].(map[string]any); ok {
		return field(generic, "vo2MaxPreciseValue", "vo2MaxValue")
	}
	return 0, false
}

// FitnessAge extracts the fitness age snapshot from a max metrics response.
func FitnessAge(mm map[string]any) (float64, bool) {
	if mm == nil {
		return 0, false
	}
	return field(mm, "fitnessAge")
}

// ActivityDistanceMeters extracts an activity's distance.
func ActivityDistanceMeters(act map[string]any) (float64, bool) {
	return field(act, "distance", "distanceInMeters")
}

// ActivityDurationSeconds extracts an activity's duration.
func ActivityDurationSeconds(act map[string]any) (float64, bool) {
	return field(act, "duration", "durationInSeconds")
}

// ActivityStartDate extracts the local calendar date (YYYY-MM-DD) an
// activity started on, falling back to GMT.
func ActivityStartDate(act map[string]any) (string, bool) {
	for _, key := range []string{"startTimeLocal", "startTimeGMT"} {
		if s, ok := act[key].(string); ok && len(s) >= 10 {
			return s[:10], true
		}
	}
	return "", false
}

// Mean averages the values. Returns false for an empty slice.
func Mean(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), true
}

// Round2 rounds to two decimal places, matching the precision the tools
// report.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
