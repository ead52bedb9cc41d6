package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/dateutil"
	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

type bodyCompositionArgs struct {
	StartDate string `json:"start_date" desc:"Start date in YYYY-MM-DD format or a relative phrase" required:"true"`
	EndDate   string `json:"end_date" desc:"End date in YYYY-MM-DD format or a relative phrase"`
}

type weightDataArgs struct {
	Date string `json:"date" desc:"Date in YYYY-MM-DD format or a relative phrase. Defaults to today."`
}

type addWeightArgs struct {
	Weight  float64 `json:"weight" desc:"Body weight value to record" required:"true"`
	Date    string  `json:"date" desc:"Date in YYYY-MM-DD format. Defaults to today."`
	UnitKey string  `json:"unit_key" desc:"Weight unit" enum:"kg,lbs" default:"kg"`
}

func (t *Toolset) registerWeight(reg *mcpserver.Registry) error {
	if err := mcpserver.RegisterFunc(reg, "get_body_composition",
		"Get body composition data (weight, BMI, body fat) for a date range",
		func(ctx context.Context, args bodyCompositionArgs) (string, error) {
			r, err := dateutil.ResolveRange(args.StartDate, args.EndDate, t.today())
			if err != nil {
				return unresolvableRangeMsg, nil
			}
			comp, err := t.client.BodyComposition(ctx,
				r.Start.Format(dateutil.ISODate), r.End.Format(dateutil.ISODate))
			if err != nil {
				return fmt.Sprintf("Error retrieving body composition: %s", err.Error()), nil
			}
			return toJSONString(comp), nil
		}); err != nil {
		return err
	}

	if err := mcpserver.RegisterFunc(reg, "get_weight_data",
		"Get weigh-ins recorded on a specific date",
		func(ctx context.Context, args weightDataArgs) (string, error) {
			date, ok := t.resolveDate(args.Date)
			if !ok {
				return invalidDateMsg, nil
			}
			data, err := t.client.WeightDayView(ctx, date)
			if err != nil {
				return fmt.Sprintf("Error retrieving weight data: %s", err.Error()), nil
			}
			return toJSONString(data), nil
		}); err != nil {
		return err
	}

	return mcpserver.RegisterFunc(reg, "add_weight",
		"Record a body weight measurement",
		func(ctx context.Context, args addWeightArgs) (string, error) {
			if args.Weight <= 0 {
				return "Invalid weight. Provide a positive value.", nil
			}
			date, ok := t.resolveDate(args.Date)
			if !ok {
				return invalidDateMsg, nil
			}
			unitKey := args.UnitKey
			if unitKey == "" {
				unitKey = "kg"
			}
			if err := t.client.AddWeight(ctx, date, args.Weight, unitKey); err != nil {
				return fmt.Sprintf("Error adding weight: %s", err.Error()), nil
			}
			return toJSONString(map[string]any{
				"status": "ok",
				"date":   date,
				"weight": args.Weight,
				"unit":   unitKey,
			}), nil
		})
}
