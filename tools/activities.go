package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/dateutil"
	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

type listActivitiesArgs struct {
	Limit int `json:"limit" desc:"Maximum number of activities to return" default:"5"`
}

type activitiesByDateArgs struct {
	StartDate    string `json:"start_date" desc:"Start date in YYYY-MM-DD format or a relative phrase (e.g., 'last week')" required:"true"`
	EndDate      string `json:"end_date" desc:"End date in YYYY-MM-DD format or a relative phrase"`
	ActivityType string `json:"activity_type" desc:"Optional activity type filter (e.g., 'running', 'cycling')"`
}

type activityDetailsArgs struct {
	ActivityID int64 `json:"activity_id" desc:"Numeric activity identifier" required:"true"`
}

func (t *Toolset) registerActivities(reg *mcpserver.Registry) error {
	if err := mcpserver.RegisterFunc(reg, "list_activities",
		"List recent Garmin activities",
		func(ctx context.Context, args listActivitiesArgs) (string, error) {
			limit := args.Limit
			if limit <= 0 {
				limit = 5
			}
			activities, err := t.client.Activities(ctx, 0, limit)
			if err != nil {
				return fmt.Sprintf("Error retrieving activities: %s", err.Error()), nil
			}
			if len(activities) == 0 {
				return "No activities found.", nil
			}
			return toJSONString(activities), nil
		}); err != nil {
		return err
	}

	if err := mcpserver.RegisterFunc(reg, "get_activities_by_date",
		"Get activities within a date range, optionally filtered by activity type",
		func(ctx context.Context, args activitiesByDateArgs) (string, error) {
			r, err := dateutil.ResolveRange(args.StartDate, args.EndDate, t.today())
			if err != nil {
				return unresolvableRangeMsg, nil
			}
			activities, err := t.client.ActivitiesByDate(ctx,
				r.Start.Format(dateutil.ISODate), r.End.Format(dateutil.ISODate), args.ActivityType)
			if err != nil {
				return fmt.Sprintf("Error retrieving activities: %s", err.Error()), nil
			}
			if len(activities) == 0 {
				return "No activities found for the given date range.", nil
			}
			return toJSONString(activities), nil
		}); err != nil {
		return err
	}

	return mcpserver.RegisterFunc(reg, "get_activity_details",
		"Get full details for a single activity by its identifier",
		func(ctx context.Context, args activityDetailsArgs) (string, error) {
			activity, err := t.client.Activity(ctx, args.ActivityID)
			if err != nil {
				return fmt.Sprintf("Error retrieving activity %d: %s", args.ActivityID, err.Error()), nil
			}
			return toJSONString(activity), nil
		})
}
