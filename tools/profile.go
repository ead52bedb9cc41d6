package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

type noArgs struct{}

func (t *Toolset) registerProfile(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_user_profile",
		"Get the user's Garmin Connect profile information",
		func(ctx context.Context, _ noArgs) (string, error) {
			profile, err := t.client.UserProfile(ctx)
			if err != nil {
				return fmt.Sprintf("Error retrieving user profile: %s", err.Error()), nil
			}
			return toJSONString(profile), nil
		})
}
