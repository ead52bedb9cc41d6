package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

func (t *Toolset) registerGear(reg *mcpserver.Registry) error {
	return mcpserver.RegisterFunc(reg, "get_gear",
		"List gear (shoes, bikes, etc.) registered to the account",
		func(ctx context.Context, _ noArgs) (string, error) {
			gear, err := t.client.Gear(ctx)
			if err != nil {
				return fmt.Sprintf("Error retrieving gear: %s", err.Error()), nil
			}
			if len(gear) == 0 {
				return "No gear found.", nil
			}
			return toJSONString(gear), nil
		})
}
