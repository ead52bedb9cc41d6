package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

type listWorkoutsArgs struct {
	Start int `json:"start" desc:"Offset into the workout list" default:"0"`
	Limit int `json:"limit" desc:"Maximum number of workouts to return" default:"10"`
}

type workoutArgs struct {
	WorkoutID int64 `json:"workout_id" desc:"Numeric workout identifier" required:"true"`
}

func (t *Toolset) registerTraining(reg *mcpserver.Registry) error {
	if err := t.dateTool(reg, "get_training_status",
		"Get training status (load, VO2 max trend) for a specific date", "training status",
		func(ctx context.Context, date string) (any, error) {
			return t.client.TrainingStatus(ctx, date)
		}); err != nil {
		return err
	}

	if err := mcpserver.RegisterFunc(reg, "list_workouts",
		"List saved workouts",
		func(ctx context.Context, args listWorkoutsArgs) (string, error) {
			limit := args.Limit
			if limit <= 0 {
				limit = 10
			}
			workouts, err := t.client.Workouts(ctx, args.Start, limit)
			if err != nil {
				return fmt.Sprintf("Error retrieving workouts: %s", err.Error()), nil
			}
			if len(workouts) == 0 {
				return "No workouts found.", nil
			}
			return toJSONString(workouts), nil
		}); err != nil {
		return err
	}

	return mcpserver.RegisterFunc(reg, "get_workout",
		"Get full details for a saved workout by its identifier",
		func(ctx context.Context, args workoutArgs) (string, error) {
			workout, err := t.client.Workout(ctx, args.WorkoutID)
			if err != nil {
				return fmt.Sprintf("Error retrieving workout %d: %s", args.WorkoutID, err.Error()), nil
			}
			return toJSONString(workout), nil
		})
}
