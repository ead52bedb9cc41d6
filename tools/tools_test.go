package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/garmin-mcp/garmin"
	"github.com/spetersoncode/garmin-mcp/mcpserver"
	"github.com/spetersoncode/garmin-mcp/retry"
)

// testToday is a fixed Wednesday so relative phrases resolve predictably.
var testToday = time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

func newTestToolset(t *testing.T, handler http.Handler) *mcpserver.Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := garmin.NewClient(garmin.Token{AccessToken: "test-token"},
		garmin.WithBaseURL(srv.URL),
		garmin.WithRateLimit(0),
		garmin.WithRetry(retry.Disabled()),
	)

	ts := New(client, WithNow(func() time.Time { return testToday }))
	reg := mcpserver.NewRegistry()
	require.NoError(t, ts.RegisterAll(reg))
	return reg
}

func callTool(t *testing.T, reg *mcpserver.Registry, name, argsJSON string) string {
	t.Helper()
	result, err := reg.Call(context.Background(), mcpserver.ToolCall{Name: name, Arguments: argsJSON})
	require.NoError(t, err)
	return result
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// fixtureMux serves plausible Garmin payloads for every endpoint the tools
// touch. Overrides replace the default handler for a pattern.
func fixtureMux(overrides map[string]http.HandlerFunc) *http.ServeMux {
	defaults := map[string]http.HandlerFunc{
		"/userprofile-service/socialProfile": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"displayName": "runner", "profileId": 42})
		},
		"/activitylist-service/activities/search/activities": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, []map[string]any{
				{"activityId": 101, "activityName": "Morning Run", "distance": 5000.0, "duration": 1800.0, "startTimeLocal": "2025-06-16 07:00:00"},
				{"activityId": 102, "activityName": "Evening Ride", "distance": 20000.0, "duration": 3600.0, "startTimeLocal": "2025-06-17 18:30:00"},
			})
		},
		"/wellness-service/wellness/dailySleepData/runner": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"dailySleepDTO": map[string]any{"sleepTimeSeconds": 27000, "calendarDate": r.URL.Query().Get("date")},
			})
		},
		"/wellness-service/wellness/dailyStress/": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"avgStressLevel": 30})
		},
		"/wellness-service/wellness/bodyBattery/reports/daily": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, []map[string]any{
				{"bodyBatteryValue": 60}, {"bodyBatteryValue": 80},
			})
		},
		"/metrics-service/metrics/trainingreadiness/": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"trainingReadiness": map[string]any{"value": 65}})
		},
		"/hrv-service/hrv/": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"avgHrv": 55})
		},
		"/usersummary-service/usersummary/daily/runner": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"totalSteps": 9000, "restingHeartRate": 52})
		},
		"/wellness-service/wellness/dailyHeartRate/runner": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"restingHeartRate": 52, "maxHeartRate": 160})
		},
		"/metrics-service/metrics/maxmet/daily/": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"vo2Max": 48.5, "fitnessAge": 30})
		},
		"/weight-service/weight/dateRange": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"dateWeightList": []map[string]any{{"weight": 72500.0}},
			})
		},
	}

	mux := http.NewServeMux()
	for pattern, handler := range overrides {
		mux.HandleFunc(pattern, handler)
	}
	for pattern, handler := range defaults {
		if _, overridden := overrides[pattern]; !overridden {
			mux.HandleFunc(pattern, handler)
		}
	}
	return mux
}

func TestListActivities(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "list_activities", `{"limit":2}`)
	assert.Contains(t, out, "Morning Run")
	assert.Contains(t, out, "Evening Ride")
}

func TestListActivitiesEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/activitylist-service/activities/search/activities", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	reg := newTestToolset(t, mux)

	out := callTool(t, reg, "list_activities", `{}`)
	assert.Equal(t, "No activities found.", out)
}

func TestActivitiesByDateResolvesPhrase(t *testing.T) {
	var gotStart, gotEnd string
	mux := fixtureMux(map[string]http.HandlerFunc{
		"/activitylist-service/activities/search/activities": func(w http.ResponseWriter, r *http.Request) {
			gotStart = r.URL.Query().Get("startDate")
			gotEnd = r.URL.Query().Get("endDate")
			w.Write([]byte(`[{"activityId":101}]`))
		},
	})
	reg := newTestToolset(t, mux)

	callTool(t, reg, "get_activities_by_date", `{"start_date":"last week"}`)

	// Week before the fixed Wednesday, Monday through Sunday.
	assert.Equal(t, "2025-06-09", gotStart)
	assert.Equal(t, "2025-06-15", gotEnd)
}

func TestActivitiesByDateUnresolvable(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_activities_by_date", `{"start_date":"someday"}`)
	assert.Contains(t, out, "Unable to resolve date range")
}

func TestGetSleepData(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_sleep_data", `{"date":"2025-06-17"}`)
	assert.Contains(t, out, "dailySleepDTO")
	assert.Contains(t, out, "27000")
}

func TestDateToolInvalidDate(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_sleep_data", `{"date":"not-a-date"}`)
	assert.Contains(t, out, "Invalid date")
}

func TestDateToolInlineError(t *testing.T) {
	mux := fixtureMux(nil)
	mux.HandleFunc("/metrics-service/metrics/trainingreadiness/2025-06-17", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	reg := newTestToolset(t, mux)

	out := callTool(t, reg, "get_training_readiness", `{"date":"2025-06-17"}`)
	assert.Contains(t, out, "Error retrieving training readiness")
}

func TestAddWeight(t *testing.T) {
	var gotBody map[string]any
	mux := fixtureMux(nil)
	mux.HandleFunc("/weight-service/user-weight", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})
	reg := newTestToolset(t, mux)

	out := callTool(t, reg, "add_weight", `{"weight":72.5}`)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Equal(t, "kg", gotBody["unitKey"])
	assert.Equal(t, 72.5, gotBody["value"])
}

func TestAddWeightRejectsNonPositive(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "add_weight", `{"weight":0}`)
	assert.Contains(t, out, "Invalid weight")
}

func TestHydrationGuidance(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_hydration_guidance", `{"weight_kg":70,"training_minutes":60,"temperature_c":31}`)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, float64(2450), parsed["baseline_ml"])
	assert.Equal(t, float64(500), parsed["training_ml"])
	assert.Equal(t, 1.2, parsed["heat_multiplier"])
	assert.Equal(t, float64(3540), parsed["target_ml"])
}

func TestReadinessBreakdown(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_readiness_breakdown", `{"date":"2025-06-17"}`)

	var parsed struct {
		Date       string `json:"date"`
		Components struct {
			SleepScore         *float64 `json:"sleep_score"`
			BodyBatteryScore   *float64 `json:"body_battery_score"`
			HRVScore           *float64 `json:"hrv_score"`
			StressInverseScore *float64 `json:"stress_inverse_score"`
		} `json:"components"`
		ReadinessScore *float64 `json:"readiness_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "2025-06-17", parsed.Date)
	// 7.5h sleep -> 93.75, bb avg 70, hrv 55ms -> 43.75, stress 30 -> 70.
	require.NotNil(t, parsed.Components.SleepScore)
	assert.InDelta(t, 93.75, *parsed.Components.SleepScore, 0.01)
	require.NotNil(t, parsed.Components.BodyBatteryScore)
	assert.InDelta(t, 70, *parsed.Components.BodyBatteryScore, 0.01)
	require.NotNil(t, parsed.Components.HRVScore)
	assert.InDelta(t, 43.75, *parsed.Components.HRVScore, 0.01)
	require.NotNil(t, parsed.Components.StressInverseScore)
	assert.InDelta(t, 70, *parsed.Components.StressInverseScore, 0.01)
	require.NotNil(t, parsed.ReadinessScore)
	assert.InDelta(t, 69.38, *parsed.ReadinessScore, 0.01)
}

func TestPeriodSummaryInvalidPeriod(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_period_summary", `{"period":"fortnightly"}`)
	assert.Equal(t, invalidPeriodMsg, out)
}

func TestPeriodSummaryAggregates(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_period_summary", `{"period":"daily","anchor_date":"2025-06-17"}`)

	var parsed struct {
		Period    string `json:"period"`
		DateRange struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"date_range"`
		Aggregates map[string]any `json:"aggregates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "daily", parsed.Period)
	assert.Equal(t, "2025-06-17", parsed.DateRange.Start)
	assert.Equal(t, "2025-06-17", parsed.DateRange.End)
	assert.Equal(t, float64(2), parsed.Aggregates["total_activities"])
	assert.Equal(t, float64(25000), parsed.Aggregates["total_distance_m"])
	assert.Equal(t, float64(9000), parsed.Aggregates["total_steps"])
	assert.InDelta(t, 7.5, parsed.Aggregates["avg_sleep_hours"].(float64), 0.01)
	assert.InDelta(t, 70, parsed.Aggregates["avg_body_battery"].(float64), 0.01)
	assert.InDelta(t, 65, parsed.Aggregates["avg_training_readiness"].(float64), 0.01)
}

func TestTrendsShape(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_trends", `{"start_date":"2025-06-15","end_date":"2025-06-17","include":["steps","sleep"]}`)

	var parsed struct {
		Range struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"range"`
		Series  []map[string]any               `json:"series"`
		Deltas  map[string]*float64            `json:"deltas"`
		Rolling map[string]map[string]*float64 `json:"rolling"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "2025-06-15", parsed.Range.Start)
	require.Len(t, parsed.Series, 3)
	assert.Equal(t, float64(9000), parsed.Series[0]["steps"])
	require.NotNil(t, parsed.Deltas["steps"])
	assert.Equal(t, float64(0), *parsed.Deltas["steps"])
	require.NotNil(t, parsed.Rolling["sleep_hours"]["avg_7d"])
	assert.InDelta(t, 7.5, *parsed.Rolling["sleep_hours"]["avg_7d"], 0.01)
	// Metrics that were not requested stay out of the series.
	_, hasRHR := parsed.Series[0]["rhr"]
	assert.False(t, hasRHR)
}

func TestTrendsMissingMetricIsExplicitNull(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(map[string]http.HandlerFunc{
		"/weight-service/weight/dateRange": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{})
		},
	}))

	out := callTool(t, reg, "get_trends", `{"start_date":"2025-06-16","end_date":"2025-06-17","include":["steps","weight"]}`)

	var parsed struct {
		Series []map[string]any `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Series, 2)

	// Requested but unavailable metrics surface as explicit nulls.
	v, present := parsed.Series[0]["weight_kg"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Equal(t, float64(9000), parsed.Series[0]["steps"])
}

func TestDetectAnomaliesQuietRange(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "detect_anomalies", `{"start_date":"2025-06-10","end_date":"2025-06-17"}`)

	var parsed struct {
		Anomalies []any `json:"anomalies"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Empty(t, parsed.Anomalies)
}

func TestDataCompleteness(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_data_completeness", `{"start_date":"2025-06-16","end_date":"2025-06-17"}`)

	var parsed struct {
		Overall float64 `json:"overall"`
		Daily   []struct {
			Date         string          `json:"date"`
			Signals      map[string]bool `json:"signals"`
			Completeness float64         `json:"completeness"`
		} `json:"daily"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, 1.0, parsed.Overall)
	require.Len(t, parsed.Daily, 2)
	assert.Equal(t, 1.0, parsed.Daily[0].Completeness)
	assert.True(t, parsed.Daily[0].Signals["sleep"])
	assert.True(t, parsed.Daily[0].Signals["hr"])
}

func TestCoachCues(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_coach_cues", `{"period":"daily","anchor_date":"2025-06-17"}`)

	var parsed struct {
		Signals struct {
			AvgSleepHours *float64 `json:"avg_sleep_hours"`
			ActivityCount int      `json:"activity_count"`
		} `json:"signals"`
		CoachCues []string `json:"coach_cues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	require.NotNil(t, parsed.Signals.AvgSleepHours)
	assert.InDelta(t, 7.5, *parsed.Signals.AvgSleepHours, 0.01)
	assert.Equal(t, 2, parsed.Signals.ActivityCount)
	// 7.5h sleep is between thresholds, bb avg 70 is between thresholds,
	// readiness 65 is between thresholds, so no cue fires for those.
	for _, cue := range parsed.CoachCues {
		assert.False(t, strings.Contains(cue, "No activities"))
	}
}

func TestRecommendationsFromProvidedJSON(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	healthData := `{"data":{"activities":[{"activityId":1}],"daily_summary":[
		{"date":"2025-06-16","sleep":{"dailySleepDTO":{"sleepTimeSeconds":21600}},
		 "body_battery":[{"bodyBatteryValue":40}],
		 "training_readiness":{"trainingReadiness":{"value":45}}}
	]}}`
	args, err := json.Marshal(map[string]any{
		"context":          "I'm feeling tired and need recovery advice",
		"health_data_json": healthData,
	})
	require.NoError(t, err)

	out := callTool(t, reg, "get_training_and_diet_recommendations", string(args))

	var parsed struct {
		FocusArea string         `json:"focus_area"`
		Analysis  map[string]any `json:"analysis"`
		Training  []string       `json:"training_recommendations"`
		Diet      []string       `json:"diet_recommendations"`
		Recovery  []string       `json:"recovery_recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "general", parsed.FocusArea)
	assert.Equal(t, float64(6), parsed.Analysis["average_sleep_hours"])
	assert.Equal(t, float64(1), parsed.Analysis["activity_count"])

	joined := strings.Join(parsed.Training, " ")
	assert.Contains(t, joined, "reducing training intensity")
	assert.Contains(t, joined, "Reduce training intensity and volume")
	assert.NotEmpty(t, parsed.Recovery)
}

func TestOptimizedHealthData(t *testing.T) {
	reg := newTestToolset(t, fixtureMux(nil))

	out := callTool(t, reg, "get_optimized_health_data",
		`{"start_date":"2025-06-16","end_date":"2025-06-17","include_hrv":true}`)

	var parsed struct {
		DateRange struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"date_range"`
		Data struct {
			Activities   []map[string]any `json:"activities"`
			DailySummary []map[string]any `json:"daily_summary"`
			MaxMetrics   map[string]any   `json:"max_metrics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "2025-06-16", parsed.DateRange.Start)
	assert.Len(t, parsed.Data.Activities, 2)
	require.Len(t, parsed.Data.DailySummary, 2)
	assert.Equal(t, "2025-06-16", parsed.Data.DailySummary[0]["date"])
	assert.NotNil(t, parsed.Data.DailySummary[0]["sleep"])
	assert.NotNil(t, parsed.Data.DailySummary[0]["hrv"])
	assert.Equal(t, 48.5, parsed.Data.MaxMetrics["vo2Max"])
}

func TestOptimizedHealthDataActivityErrorFenced(t *testing.T) {
	mux := fixtureMux(map[string]http.HandlerFunc{
		"/activitylist-service/activities/search/activities": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	reg := newTestToolset(t, mux)

	out := callTool(t, reg, "get_optimized_health_data",
		`{"start_date":"2025-06-17","end_date":"2025-06-17"}`)

	var parsed struct {
		Data struct {
			Activities any `json:"activities"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	errStr, ok := parsed.Data.Activities.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(errStr, "Error:"))
}
