package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

type dateArgs struct {
	Date string `json:"date" desc:"Date in YYYY-MM-DD format or a relative phrase (e.g., 'yesterday'). Defaults to today."`
}

const invalidDateMsg = "Invalid date. Provide YYYY-MM-DD or relative phrases (e.g., 'today', 'last week')."

// dateTool registers a tool whose handler takes a single resolved date.
func (t *Toolset) dateTool(reg *mcpserver.Registry, name, description, errLabel string, fetch func(ctx context.Context, date string) (any, error)) error {
	return mcpserver.RegisterFunc(reg, name, description,
		func(ctx context.Context, args dateArgs) (string, error) {
			date, ok := t.resolveDate(args.Date)
			if !ok {
				return invalidDateMsg, nil
			}
			data, err := fetch(ctx, date)
			if err != nil {
				return fmt.Sprintf("Error retrieving %s: %s", errLabel, err.Error()), nil
			}
			return toJSONString(data), nil
		})
}

func (t *Toolset) registerHealth(reg *mcpserver.Registry) error {
	type registration struct {
		name        string
		description string
		errLabel    string
		fetch       func(ctx context.Context, date string) (any, error)
	}

	regs := []registration{
		{
			"get_sleep_data", "Get sleep data for a specific date", "sleep data",
			func(ctx context.Context, date string) (any, error) { return t.client.SleepData(ctx, date) },
		},
		{
			"get_stress_data", "Get stress level data for a specific date", "stress data",
			func(ctx context.Context, date string) (any, error) { return t.client.StressData(ctx, date) },
		},
		{
			"get_body_battery", "Get body battery data for a specific date", "body battery",
			func(ctx context.Context, date string) (any, error) { return t.client.BodyBattery(ctx, date, date) },
		},
		{
			"get_heart_rates", "Get heart rate data for a specific date", "heart rates",
			func(ctx context.Context, date string) (any, error) { return t.client.HeartRates(ctx, date) },
		},
		{
			"get_resting_heart_rate", "Get resting heart rate for a specific date", "resting heart rate",
			func(ctx context.Context, date string) (any, error) { return t.client.DailyStats(ctx, date) },
		},
		{
			"get_hrv_data", "Get heart rate variability (HRV) data for a specific date", "HRV data",
			func(ctx context.Context, date string) (any, error) { return t.client.HRVData(ctx, date) },
		},
		{
			"get_stats", "Get daily stats (steps, calories, distance) for a specific date", "daily stats",
			func(ctx context.Context, date string) (any, error) { return t.client.DailyStats(ctx, date) },
		},
		{
			"get_training_readiness", "Get training readiness score for a specific date", "training readiness",
			func(ctx context.Context, date string) (any, error) { return t.client.TrainingReadiness(ctx, date) },
		},
		{
			"get_max_metrics", "Get max metrics (VO2 max, fitness age) for a specific date", "max metrics",
			func(ctx context.Context, date string) (any, error) { return t.client.MaxMetrics(ctx, date) },
		},
	}

	for _, r := range regs {
		if err := t.dateTool(reg, r.name, r.description, r.errLabel, r.fetch); err != nil {
			return err
		}
	}
	return nil
}
