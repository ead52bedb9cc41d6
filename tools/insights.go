package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spetersoncode/garmin-mcp/dateutil"
	"github.com/spetersoncode/garmin-mcp/insights"
	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

type optimizedHealthArgs struct {
	StartDate                string `json:"start_date" desc:"Start date in YYYY-MM-DD format or a relative phrase (e.g., 'last 7 days')" required:"true"`
	EndDate                  string `json:"end_date" desc:"End date in YYYY-MM-DD format or a relative phrase"`
	IncludeActivities        *bool  `json:"include_activities" desc:"Whether to include activity data" default:"true"`
	IncludeSleep             *bool  `json:"include_sleep" desc:"Whether to include sleep data" default:"true"`
	IncludeStress            *bool  `json:"include_stress" desc:"Whether to include stress data" default:"true"`
	IncludeBodyBattery       *bool  `json:"include_body_battery" desc:"Whether to include body battery data" default:"true"`
	IncludeTrainingReadiness *bool  `json:"include_training_readiness" desc:"Whether to include training readiness data" default:"true"`
	IncludeHRV               *bool  `json:"include_hrv" desc:"Whether to include HRV data (heavier)" default:"false"`
	ActivityType             string `json:"activity_type" desc:"Optional activity type filter (e.g., 'running', 'cycling')"`
}

type recommendationsArgs struct {
	Context        string `json:"context" desc:"The user's request or goal (e.g., 'prepare for a marathon', 'I feel tired')" required:"true"`
	HealthDataJSON string `json:"health_data_json" desc:"Optional pre-fetched health data JSON from get_optimized_health_data"`
	StartDate      string `json:"start_date" desc:"Start date for the data fetch when health_data_json is absent (default: 7 days ago)"`
	EndDate        string `json:"end_date" desc:"End date for the data fetch when health_data_json is absent (default: today)"`
	FocusArea      string `json:"focus_area" desc:"Optional focus area" enum:"performance,recovery,weight_loss,endurance,strength"`
}

type periodSummaryArgs struct {
	Period                   string `json:"period" desc:"Summary window" enum:"daily,weekly,monthly" required:"true"`
	AnchorDate               string `json:"anchor_date" desc:"Reference date in YYYY-MM-DD or a relative phrase (defaults to today)"`
	IncludeActivities        *bool  `json:"include_activities" desc:"Include activities in the period" default:"true"`
	IncludeSleep             *bool  `json:"include_sleep" desc:"Include sleep per day" default:"true"`
	IncludeStress            *bool  `json:"include_stress" desc:"Include stress per day" default:"true"`
	IncludeBodyBattery       *bool  `json:"include_body_battery" desc:"Include body battery per day" default:"true"`
	IncludeTrainingReadiness *bool  `json:"include_training_readiness" desc:"Include training readiness per day" default:"true"`
	IncludeHRV               *bool  `json:"include_hrv" desc:"Include HRV per day (heavier)" default:"false"`
	IncludeStats             *bool  `json:"include_stats" desc:"Include daily stats (steps, calories)" default:"true"`
	ActivityType             string `json:"activity_type" desc:"Optional activity type filter"`
}

type trendsArgs struct {
	StartDate string   `json:"start_date" desc:"Start date in YYYY-MM-DD format or a relative phrase" required:"true"`
	EndDate   string   `json:"end_date" desc:"End date in YYYY-MM-DD format or a relative phrase"`
	Include   []string `json:"include" desc:"Metrics to include: rhr, hrv, sleep, steps, body_battery, weight, vo2max"`
}

type anomaliesArgs struct {
	StartDate      string   `json:"start_date" desc:"Start date in YYYY-MM-DD format or a relative phrase" required:"true"`
	EndDate        string   `json:"end_date" desc:"End date in YYYY-MM-DD format or a relative phrase"`
	RHRBPMIncrease *float64 `json:"rhr_bpm_increase" desc:"Flag resting HR at least this many bpm above the prior 7-day average" default:"5"`
	HRVMsDrop      *float64 `json:"hrv_ms_drop" desc:"Flag HRV at least this many ms below the prior 7-day average" default:"15"`
	SleepHoursMin  *float64 `json:"sleep_hours_min" desc:"Flag days with less sleep than this" default:"6"`
	StepsDropPct   *float64 `json:"steps_drop_pct" desc:"Flag days whose steps dropped at least this percent vs the prior 7-day average" default:"30"`
}

type readinessArgs struct {
	Date string `json:"date" desc:"Date in YYYY-MM-DD format or a relative phrase" required:"true"`
}

type completenessArgs struct {
	StartDate string `json:"start_date" desc:"Start date in YYYY-MM-DD format or a relative phrase" required:"true"`
	EndDate   string `json:"end_date" desc:"End date in YYYY-MM-DD format or a relative phrase"`
}

type hydrationArgs struct {
	WeightKg        float64  `json:"weight_kg" desc:"Body weight in kilograms" required:"true"`
	TrainingMinutes int      `json:"training_minutes" desc:"Planned training duration in minutes" default:"0"`
	TemperatureC    *float64 `json:"temperature_c" desc:"Expected ambient temperature in degrees Celsius"`
}

type coachCuesArgs struct {
	Period     string `json:"period" desc:"Cue window" enum:"daily,weekly,monthly" required:"true"`
	AnchorDate string `json:"anchor_date" desc:"Reference date in YYYY-MM-DD or a relative phrase (defaults to today)"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func fptr(v float64) *float64 { return &v }

// dayInclude selects which per-day signals a collector fetches.
type dayInclude struct {
	sleep       bool
	stress      bool
	bodyBattery bool
	readiness   bool
	hrv         bool
	stats       bool
}

// collectedDay is one day's raw payloads plus the metric values extracted
// from them while they were still typed.
type collectedDay struct {
	raw        map[string]any
	sleepHours *float64
	bbAvg      *float64
	bbValues   []float64
	readiness  *float64
	hrv        *float64
	steps      *float64
}

// collectDay fetches the selected signals for one date. Failed fetches
// leave null in the raw map; the call never fails.
func (t *Toolset) collectDay(ctx context.Context, date string, inc dayInclude) collectedDay {
	day := collectedDay{raw: map[string]any{"date": date}}

	if inc.sleep {
		sleep, err := t.client.SleepData(ctx, date)
		if err != nil || len(sleep) == 0 {
			day.raw["sleep"] = nil
		} else {
			day.raw["sleep"] = sleep
			if hours, ok := insights.SleepHours(sleep); ok {
				day.sleepHours = fptr(hours)
			}
		}
	}

	if inc.stress {
		stress, err := t.client.StressData(ctx, date)
		if err != nil || len(stress) == 0 {
			day.raw["stress"] = nil
		} else {
			day.raw["stress"] = stress
		}
	}

	if inc.bodyBattery {
		bb, err := t.client.BodyBattery(ctx, date, date)
		if err != nil || len(bb) == 0 {
			day.raw["body_battery"] = nil
		} else {
			day.raw["body_battery"] = bb
			day.bbValues = insights.BodyBatteryValues(bb)
			if avg, ok := insights.Mean(day.bbValues); ok {
				day.bbAvg = fptr(avg)
			}
		}
	}

	if inc.readiness {
		tr, err := t.client.TrainingReadiness(ctx, date)
		if err != nil || len(tr) == 0 {
			day.raw["training_readiness"] = nil
		} else {
			day.raw["training_readiness"] = tr
			if score, ok := insights.ReadinessScore(tr); ok {
				day.readiness = fptr(score)
			}
		}
	}

	if inc.hrv {
		hrv, err := t.client.HRVData(ctx, date)
		if err != nil || len(hrv) == 0 {
			day.raw["hrv"] = nil
		} else {
			day.raw["hrv"] = hrv
			if avg, ok := insights.HRVAverage(hrv); ok {
				day.hrv = fptr(avg)
			}
		}
	}

	if inc.stats {
		stats, err := t.client.DailyStats(ctx, date)
		if err != nil || len(stats) == 0 {
			day.raw["stats"] = nil
		} else {
			day.raw["stats"] = stats
			if steps, ok := insights.Steps(stats); ok {
				day.steps = fptr(steps)
			}
		}
	}

	return day
}

// priorWeekStepsAvg averages daily steps over the 7 days before the window.
func (t *Toolset) priorWeekStepsAvg(ctx context.Context, windowStart time.Time) *float64 {
	var steps []float64
	for offset := 7; offset >= 1; offset-- {
		d := windowStart.AddDate(0, 0, -offset).Format(dateutil.ISODate)
		stats, err := t.client.DailyStats(ctx, d)
		if err != nil {
			continue
		}
		if v, ok := insights.Steps(stats); ok {
			steps = append(steps, v)
		}
	}
	avg, ok := insights.Mean(steps)
	if !ok {
		return nil
	}
	return &avg
}

func (t *Toolset) registerInsights(reg *mcpserver.Registry) error {
	type entry struct {
		register func(*mcpserver.Registry) error
	}
	for _, e := range []entry{
		{t.registerOptimizedHealthData},
		{t.registerRecommendations},
		{t.registerPeriodSummary},
		{t.registerTrends},
		{t.registerAnomalies},
		{t.registerReadinessBreakdown},
		{t.registerCompleteness},
		{t.registerHydration},
		{t.registerCoachCues},
	} {
		if err := e.register(reg); err != nil {
			return err
		}
	}
	return nil
}

func (t *Toolset) registerOptimizedHealthData(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_optimized_health_data",
		"Fetch multiple health and training data points for a date range in one call",
		func(ctx context.Context, args optimizedHealthArgs) (string, error) {
			r, err := dateutil.ResolveRange(args.StartDate, args.EndDate, t.today())
			if err != nil {
				return unresolvableRangeMsg, nil
			}
			startStr := r.Start.Format(dateutil.ISODate)
			endStr := r.End.Format(dateutil.ISODate)

			data := map[string]any{}
			result := map[string]any{
				"date_range": map[string]any{"start": startStr, "end": endStr},
				"data":       data,
			}

			if boolOr(args.IncludeActivities, true) {
				activities, err := t.client.ActivitiesByDate(ctx, startStr, endStr, args.ActivityType)
				if err != nil {
					data["activities"] = errString(err)
				} else if activities == nil {
					data["activities"] = []map[string]any{}
				} else {
					data["activities"] = activities
				}
			}

			inc := dayInclude{
				sleep:       boolOr(args.IncludeSleep, true),
				stress:      boolOr(args.IncludeStress, true),
				bodyBattery: boolOr(args.IncludeBodyBattery, true),
				readiness:   boolOr(args.IncludeTrainingReadiness, true),
				hrv:         boolOr(args.IncludeHRV, false),
				stats:       true,
			}

			var daily []map[string]any
			for _, date := range dateutil.Days(r) {
				daily = append(daily, t.collectDay(ctx, date, inc).raw)
			}
			data["daily_summary"] = daily

			if mm, err := t.client.MaxMetrics(ctx, endStr); err == nil && len(mm) > 0 {
				data["max_metrics"] = mm
			} else {
				data["max_metrics"] = nil
			}

			return toJSONString(result), nil
		})
}

func (t *Toolset) registerRecommendations(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_training_and_diet_recommendations",
		"Generate training, diet, and recovery recommendations from recent health data",
		func(ctx context.Context, args recommendationsArgs) (string, error) {
			signals, err := t.deriveSignals(ctx, args)
			if err != nil {
				return fmt.Sprintf("Error generating recommendations: %s", err.Error()), nil
			}

			focus := args.FocusArea
			if focus == "" {
				focus = "general"
			}
			advice := insights.Recommendations(signals, args.Context, args.FocusArea)

			analysis := map[string]any{"activity_count": signals.ActivityCount}
			if signals.AvgSleepHours != nil {
				analysis["average_sleep_hours"] = insights.Round1(*signals.AvgSleepHours)
			}
			if signals.AvgBodyBattery != nil {
				analysis["average_body_battery"] = insights.Round1(*signals.AvgBodyBattery)
			}
			if signals.AvgReadiness != nil {
				analysis["average_training_readiness"] = insights.Round1(*signals.AvgReadiness)
			}

			return toJSONString(map[string]any{
				"context":                  args.Context,
				"focus_area":               focus,
				"analysis":                 analysis,
				"training_recommendations": advice.Training,
				"diet_recommendations":     advice.Diet,
				"recovery_recommendations": advice.Recovery,
			}), nil
		})
}

// deriveSignals derives averages either from caller-provided health data
// JSON or from a fresh fetch of the last 7 days.
func (t *Toolset) deriveSignals(ctx context.Context, args recommendationsArgs) (insights.Signals, error) {
	if args.HealthDataJSON != "" {
		var parsed struct {
			Data struct {
				Activities   any              `json:"activities"`
				DailySummary []map[string]any `json:"daily_summary"`
			} `json:"data"`
		}
		if err := json.Unmarshal([]byte(args.HealthDataJSON), &parsed); err != nil {
			return insights.Signals{}, fmt.Errorf("invalid health_data_json: %w", err)
		}

		var out insights.Signals
		if acts, ok := parsed.Data.Activities.([]any); ok {
			out.ActivityCount = len(acts)
		}

		var sleepHours, bbValues, readiness []float64
		for _, day := range parsed.Data.DailySummary {
			if sleep, ok := day["sleep"].(map[string]any); ok {
				if h, ok := insights.SleepHours(sleep); ok {
					sleepHours = append(sleepHours, h)
				}
			}
			if bb, ok := day["body_battery"].([]any); ok {
				var report []map[string]any
				for _, row := range bb {
					if m, ok := row.(map[string]any); ok {
						report = append(report, m)
					}
				}
				bbValues = append(bbValues, insights.BodyBatteryValues(report)...)
			}
			if tr, ok := day["training_readiness"].(map[string]any); ok {
				if score, ok := insights.ReadinessScore(tr); ok {
					readiness = append(readiness, score)
				}
			}
		}
		if avg, ok := insights.Mean(sleepHours); ok {
			out.AvgSleepHours = fptr(avg)
		}
		if avg, ok := insights.Mean(bbValues); ok {
			out.AvgBodyBattery = fptr(avg)
		}
		if avg, ok := insights.Mean(readiness); ok {
			out.AvgReadiness = fptr(avg)
		}
		return out, nil
	}

	today := t.today()
	end := today
	if args.EndDate != "" {
		if d, ok := dateutil.ParseSingle(args.EndDate, today); ok {
			end = d
		}
	}
	start := end.AddDate(0, 0, -7)
	if args.StartDate != "" {
		if d, ok := dateutil.ParseSingle(args.StartDate, today); ok {
			start = d
		}
	}
	r := dateutil.Range{Start: start, End: end}

	var out insights.Signals
	activities, err := t.client.ActivitiesByDate(ctx,
		start.Format(dateutil.ISODate), end.Format(dateutil.ISODate), "")
	if err == nil {
		out.ActivityCount = len(activities)
	}

	inc := dayInclude{sleep: true, stress: true, bodyBattery: true, readiness: true, stats: true}
	var sleepHours, bbValues, readiness []float64
	for _, date := range dateutil.Days(r) {
		day := t.collectDay(ctx, date, inc)
		if day.sleepHours != nil {
			sleepHours = append(sleepHours, *day.sleepHours)
		}
		bbValues = append(bbValues, day.bbValues...)
		if day.readiness != nil {
			readiness = append(readiness, *day.readiness)
		}
	}
	if avg, ok := insights.Mean(sleepHours); ok {
		out.AvgSleepHours = fptr(avg)
	}
	if avg, ok := insights.Mean(bbValues); ok {
		out.AvgBodyBattery = fptr(avg)
	}
	if avg, ok := insights.Mean(readiness); ok {
		out.AvgReadiness = fptr(avg)
	}
	return out, nil
}

func (t *Toolset) registerPeriodSummary(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_period_summary",
		"Single-pane daily, weekly, or monthly summary with rollups and per-day details",
		func(ctx context.Context, args periodSummaryArgs) (string, error) {
			period := dateutil.Period(args.Period)
			if !period.Valid() {
				return invalidPeriodMsg, nil
			}
			r, anchor := dateutil.AnchorPeriod(period, args.AnchorDate, t.today())
			startStr := r.Start.Format(dateutil.ISODate)
			endStr := r.End.Format(dateutil.ISODate)

			var anchorInput any
			if args.AnchorDate != "" {
				anchorInput = args.AnchorDate
			}

			data := map[string]any{
				"activities": []map[string]any{},
				"daily":      []map[string]any{},
			}
			result := map[string]any{
				"period": args.Period,
				"date_range": map[string]any{
					"start":        startStr,
					"end":          endStr,
					"anchor":       anchor.Format(dateutil.ISODate),
					"anchor_input": anchorInput,
				},
				"aggregates": map[string]any{},
				"data":       data,
			}

			var activities []map[string]any
			if boolOr(args.IncludeActivities, true) {
				acts, err := t.client.ActivitiesByDate(ctx, startStr, endStr, args.ActivityType)
				if err != nil {
					data["activities"] = errString(err)
				} else {
					activities = acts
					if acts == nil {
						acts = []map[string]any{}
					}
					data["activities"] = acts
				}
			}

			// Index activities by local start date for per-day rollups.
			activitiesByDate := make(map[string][]map[string]any)
			for _, act := range activities {
				if d, ok := insights.ActivityStartDate(act); ok {
					activitiesByDate[d] = append(activitiesByDate[d], act)
				}
			}

			inc := dayInclude{
				sleep:       boolOr(args.IncludeSleep, true),
				stress:      boolOr(args.IncludeStress, true),
				bodyBattery: boolOr(args.IncludeBodyBattery, true),
				readiness:   boolOr(args.IncludeTrainingReadiness, true),
				hrv:         boolOr(args.IncludeHRV, false),
				stats:       boolOr(args.IncludeStats, true),
			}

			var daily []map[string]any
			var totalSleep, totalSteps float64
			var sleepDays, stepsDays int
			var readinessVals, bbVals, hrvVals []float64
			for _, date := range dateutil.Days(r) {
				day := t.collectDay(ctx, date, inc)
				if day.sleepHours != nil && *day.sleepHours > 0 {
					totalSleep += *day.sleepHours
					sleepDays++
				}
				if day.steps != nil {
					totalSteps += *day.steps
					stepsDays++
				}
				if day.readiness != nil {
					readinessVals = append(readinessVals, *day.readiness)
				}
				bbVals = append(bbVals, day.bbValues...)
				if day.hrv != nil {
					hrvVals = append(hrvVals, *day.hrv)
				}
				if acts := activitiesByDate[date]; len(acts) > 0 {
					day.raw["activities"] = acts
				}
				daily = append(daily, day.raw)
			}
			data["daily"] = daily

			var totalDistance, totalDuration float64
			for _, act := range activities {
				if d, ok := insights.ActivityDistanceMeters(act); ok {
					totalDistance += d
				}
				if d, ok := insights.ActivityDurationSeconds(act); ok {
					totalDuration += d
				}
			}

			aggregates := map[string]any{
				"total_activities": len(activities),
				"total_distance_m": insights.Round2(totalDistance),
				"total_duration_s": insights.Round2(totalDuration),
			}
			if stepsDays > 0 {
				aggregates["total_steps"] = int(totalSteps)
				aggregates["avg_steps_per_day"] = int(totalSteps/float64(stepsDays) + 0.5)
			}
			if sleepDays > 0 {
				aggregates["avg_sleep_hours"] = insights.Round2(totalSleep / float64(sleepDays))
			}
			if avg, ok := insights.Mean(readinessVals); ok {
				aggregates["avg_training_readiness"] = insights.Round2(avg)
			}
			if avg, ok := insights.Mean(bbVals); ok {
				aggregates["avg_body_battery"] = insights.Round2(avg)
			}
			if avg, ok := insights.Mean(hrvVals); ok {
				aggregates["avg_hrv"] = insights.Round2(avg)
			}
			result["aggregates"] = aggregates

			return toJSONString(result), nil
		})
}

// trendInclude maps the user-facing metric names onto series keys.
var trendInclude = map[string]string{
	"rhr":          insights.MetricRHR,
	"hrv":          insights.MetricHRV,
	"sleep":        insights.MetricSleepHours,
	"steps":        insights.MetricSteps,
	"body_battery": insights.MetricBodyBattery,
	"weight":       insights.MetricWeight,
	"vo2max":       insights.MetricVO2Max,
}

func (t *Toolset) registerTrends(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_trends",
		"Trends and deltas for key metrics over a range, with trailing 7 and 28 day averages",
		func(ctx context.Context, args trendsArgs) (string, error) {
			include := args.Include
			if len(include) == 0 {
				include = []string{"rhr", "hrv", "sleep", "steps", "body_battery"}
			}
			wanted := make(map[string]bool, len(include))
			var metrics []string
			for _, name := range include {
				if key, ok := trendInclude[name]; ok && !wanted[name] {
					wanted[name] = true
					metrics = append(metrics, key)
				}
			}

			r, err := dateutil.ResolveRange(args.StartDate, args.EndDate, t.today())
			if err != nil {
				return unresolvableRangeMsg, nil
			}

			var series []insights.DayMetrics
			for _, date := range dateutil.Days(r) {
				series = append(series, t.trendDay(ctx, date, wanted))
			}

			summary := insights.Trends(series, metrics)
			return toJSONString(map[string]any{
				"range": map[string]any{
					"start": r.Start.Format(dateutil.ISODate),
					"end":   r.End.Format(dateutil.ISODate),
					"input": map[string]any{"start": args.StartDate, "end": args.EndDate},
				},
				"series":  seriesRows(series, metrics, wanted["vo2max"]),
				"deltas":  summary.Deltas,
				"rolling": summary.Rolling,
			}), nil
		})
}

// seriesRows renders the series with an explicit null for every requested
// metric that has no value on a given day.
func seriesRows(series []insights.DayMetrics, metrics []string, withFitnessAge bool) []map[string]any {
	rows := make([]map[string]any, 0, len(series))
	for _, day := range series {
		row := map[string]any{"date": day.Date}
		for _, metric := range metrics {
			row[metric] = day.Value(metric)
		}
		if withFitnessAge {
			row["fitness_age"] = day.FitnessAge
		}
		rows = append(rows, row)
	}
	return rows
}

// trendDay fetches the selected trend metrics for one date.
func (t *Toolset) trendDay(ctx context.Context, date string, wanted map[string]bool) insights.DayMetrics {
	day := insights.DayMetrics{Date: date}

	if wanted["rhr"] {
		if stats, err := t.client.DailyStats(ctx, date); err == nil {
			if v, ok := insights.RestingHeartRate(stats); ok {
				day.RHR = fptr(v)
			}
		}
	}
	if wanted["hrv"] {
		if hrv, err := t.client.HRVData(ctx, date); err == nil {
			if v, ok := insights.HRVAverage(hrv); ok {
				day.HRV = fptr(v)
			}
		}
	}
	if wanted["sleep"] {
		if sleep, err := t.client.SleepData(ctx, date); err == nil {
			if v, ok := insights.SleepHours(sleep); ok {
				day.SleepHours = fptr(insights.Round2(v))
			}
		}
	}
	if wanted["steps"] {
		if stats, err := t.client.DailyStats(ctx, date); err == nil {
			if v, ok := insights.Steps(stats); ok {
				day.Steps = fptr(v)
			}
		}
	}
	if wanted["body_battery"] {
		if bb, err := t.client.BodyBattery(ctx, date, date); err == nil {
			if avg, ok := insights.Mean(insights.BodyBatteryValues(bb)); ok {
				day.BodyBatteryAvg = fptr(insights.Round2(avg))
			}
		}
	}
	if wanted["weight"] {
		if comp, err := t.client.BodyComposition(ctx, date, date); err == nil {
			if v, ok := insights.WeightKg(comp); ok {
				day.WeightKg = fptr(v)
			}
		}
	}
	if wanted["vo2max"] {
		if mm, err := t.client.MaxMetrics(ctx, date); err == nil {
			if v, ok := insights.VO2Max(mm); ok {
				day.VO2Max = fptr(v)
			}
			if v, ok := insights.FitnessAge(mm); ok {
				day.FitnessAge = fptr(v)
			}
		}
	}
	return day
}

func (t *Toolset) registerAnomalies(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "detect_anomalies",
		"Detect wellness anomalies (elevated RHR, depressed HRV, short sleep, steps downturn) over a range",
		func(ctx context.Context, args anomaliesArgs) (string, error) {
			r, err := dateutil.ResolveRange(args.StartDate, args.EndDate, t.today())
			if err != nil {
				return unresolvableRangeMsg, nil
			}

			wanted := map[string]bool{"rhr": true, "hrv": true, "sleep": true, "steps": true}
			var days []insights.DayMetrics
			for _, date := range dateutil.Days(r) {
				days = append(days, t.trendDay(ctx, date, wanted))
			}

			defaults := insights.DefaultAnomalyThresholds()
			th := insights.AnomalyThresholds{
				RHRIncreaseBPM: floatOr(args.RHRBPMIncrease, defaults.RHRIncreaseBPM),
				HRVDropMs:      floatOr(args.HRVMsDrop, defaults.HRVDropMs),
				SleepHoursMin:  floatOr(args.SleepHoursMin, defaults.SleepHoursMin),
				StepsDropPct:   floatOr(args.StepsDropPct, defaults.StepsDropPct),
			}

			anomalies := insights.DetectAnomalies(days, th)
			if anomalies == nil {
				anomalies = []insights.Anomaly{}
			}
			return toJSONString(map[string]any{
				"range": map[string]any{
					"start": r.Start.Format(dateutil.ISODate),
					"end":   r.End.Format(dateutil.ISODate),
					"input": map[string]any{"start": args.StartDate, "end": args.EndDate},
				},
				"anomalies": anomalies,
			}), nil
		})
}

func (t *Toolset) registerReadinessBreakdown(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_readiness_breakdown",
		"Readiness breakdown (0-100) from sleep, body battery, HRV, and stress for a date",
		func(ctx context.Context, args readinessArgs) (string, error) {
			date, ok := t.resolveDate(args.Date)
			if !ok {
				return invalidDateMsg, nil
			}

			var breakdown insights.ReadinessBreakdown

			if sleep, err := t.client.SleepData(ctx, date); err == nil {
				if hours, ok := insights.SleepHours(sleep); ok {
					breakdown.SleepScore = fptr(insights.SleepScore(hours))
				}
			}
			if bb, err := t.client.BodyBattery(ctx, date, date); err == nil {
				if avg, ok := insights.Mean(insights.BodyBatteryValues(bb)); ok {
					breakdown.BodyBatteryScore = fptr(avg)
				}
			}
			if hrv, err := t.client.HRVData(ctx, date); err == nil {
				if avg, ok := insights.HRVAverage(hrv); ok {
					breakdown.HRVScore = fptr(insights.HRVScore(avg))
				}
			}
			if stress, err := t.client.StressData(ctx, date); err == nil {
				if avg, ok := insights.StressAverage(stress); ok {
					breakdown.StressInverseScore = fptr(insights.StressInverse(avg))
				}
			}

			var readiness any
			if score, ok := breakdown.Score(); ok {
				readiness = score
			}

			return toJSONString(map[string]any{
				"date":  date,
				"input": args.Date,
				"components": map[string]any{
					"sleep_score":          breakdown.SleepScore,
					"body_battery_score":   breakdown.BodyBatteryScore,
					"hrv_score":            breakdown.HRVScore,
					"stress_inverse_score": breakdown.StressInverseScore,
				},
				"readiness_score": readiness,
			}), nil
		})
}

func (t *Toolset) registerCompleteness(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_data_completeness",
		"Score data completeness per day and overall across sleep, steps, HR, HRV, and body battery",
		func(ctx context.Context, args completenessArgs) (string, error) {
			r, err := dateutil.ResolveRange(args.StartDate, args.EndDate, t.today())
			if err != nil {
				return unresolvableRangeMsg, nil
			}

			var perDay []map[string]any
			var dayScores []float64
			for _, date := range dateutil.Days(r) {
				have := map[string]bool{}

				sleep, err := t.client.SleepData(ctx, date)
				have["sleep"] = err == nil && len(sleep) > 0

				stats, err := t.client.DailyStats(ctx, date)
				if err == nil {
					_, ok := insights.Steps(stats)
					have["steps"] = ok
				} else {
					have["steps"] = false
				}

				hrv, err := t.client.HRVData(ctx, date)
				if err == nil {
					_, ok := insights.HRVAverage(hrv)
					have["hrv"] = ok
				} else {
					have["hrv"] = false
				}

				bb, err := t.client.BodyBattery(ctx, date, date)
				have["body_battery"] = err == nil && len(bb) > 0

				hr, err := t.client.HeartRates(ctx, date)
				have["hr"] = err == nil && len(hr) > 0

				score := insights.CompletenessScore(have)
				dayScores = append(dayScores, score)
				perDay = append(perDay, map[string]any{
					"date":         date,
					"signals":      have,
					"completeness": score,
				})
			}

			return toJSONString(map[string]any{
				"range": map[string]any{
					"start": r.Start.Format(dateutil.ISODate),
					"end":   r.End.Format(dateutil.ISODate),
					"input": map[string]any{"start": args.StartDate, "end": args.EndDate},
				},
				"overall": insights.OverallCompleteness(dayScores),
				"daily":   perDay,
			}), nil
		})
}

func (t *Toolset) registerHydration(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_hydration_guidance",
		"Daily hydration target (ml) from body weight, training duration, and optional heat factor",
		func(ctx context.Context, args hydrationArgs) (string, error) {
			if args.WeightKg <= 0 {
				return "Invalid weight_kg. Provide a positive value.", nil
			}
			guidance := insights.HydrationTarget(args.WeightKg, args.TrainingMinutes, args.TemperatureC)
			return toJSONString(map[string]any{
				"inputs": map[string]any{
					"weight_kg":        args.WeightKg,
					"training_minutes": args.TrainingMinutes,
					"temperature_c":    args.TemperatureC,
				},
				"baseline_ml":     guidance.BaselineML,
				"training_ml":     guidance.TrainingML,
				"heat_multiplier": guidance.HeatMultiplier,
				"target_ml":       guidance.TargetML,
			}), nil
		})
}

func (t *Toolset) registerCoachCues(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_coach_cues",
		"Concise coach cues for a daily, weekly, or monthly window from high-signal metrics",
		func(ctx context.Context, args coachCuesArgs) (string, error) {
			period := dateutil.Period(args.Period)
			if !period.Valid() {
				return invalidPeriodMsg, nil
			}
			r, anchor := dateutil.AnchorPeriod(period, args.AnchorDate, t.today())
			startStr := r.Start.Format(dateutil.ISODate)
			endStr := r.End.Format(dateutil.ISODate)

			var signals insights.Signals
			if acts, err := t.client.ActivitiesByDate(ctx, startStr, endStr, ""); err == nil {
				signals.ActivityCount = len(acts)
			}

			inc := dayInclude{sleep: true, bodyBattery: true, readiness: true, stats: true}
			var sleepHours, bbAvgs, readiness, steps []float64
			for _, date := range dateutil.Days(r) {
				day := t.collectDay(ctx, date, inc)
				if day.sleepHours != nil {
					sleepHours = append(sleepHours, *day.sleepHours)
				}
				if day.bbAvg != nil {
					bbAvgs = append(bbAvgs, *day.bbAvg)
				}
				if day.readiness != nil {
					readiness = append(readiness, *day.readiness)
				}
				if day.steps != nil {
					steps = append(steps, *day.steps)
				}
			}
			if avg, ok := insights.Mean(sleepHours); ok {
				signals.AvgSleepHours = fptr(avg)
			}
			if avg, ok := insights.Mean(bbAvgs); ok {
				signals.AvgBodyBattery = fptr(avg)
			}
			if avg, ok := insights.Mean(readiness); ok {
				signals.AvgReadiness = fptr(avg)
			}

			if prior := t.priorWeekStepsAvg(ctx, r.Start); prior != nil && *prior > 0 {
				if cur, ok := insights.Mean(steps); ok {
					signals.StepsChangePct = fptr(insights.Round1(100.0 * (cur - *prior) / *prior))
				}
			}

			cues := insights.CoachCues(signals)

			var anchorInput any
			if args.AnchorDate != "" {
				anchorInput = args.AnchorDate
			}

			summarySignals := map[string]any{
				"avg_sleep_hours":            nil,
				"avg_body_battery":           nil,
				"avg_training_readiness":     nil,
				"steps_change_pct_vs_prior7": signals.StepsChangePct,
				"activity_count":             signals.ActivityCount,
			}
			if signals.AvgSleepHours != nil {
				summarySignals["avg_sleep_hours"] = insights.Round2(*signals.AvgSleepHours)
			}
			if signals.AvgBodyBattery != nil {
				summarySignals["avg_body_battery"] = insights.Round2(*signals.AvgBodyBattery)
			}
			if signals.AvgReadiness != nil {
				summarySignals["avg_training_readiness"] = insights.Round2(*signals.AvgReadiness)
			}

			return toJSONString(map[string]any{
				"period": args.Period,
				"date_range": map[string]any{
					"start":        startStr,
					"end":          endStr,
					"anchor":       anchor.Format(dateutil.ISODate),
					"anchor_input": anchorInput,
				},
				"signals":    summarySignals,
				"coach_cues": cues,
			}), nil
		})
}
