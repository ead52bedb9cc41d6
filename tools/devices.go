package tools

import (
	"context"
	"fmt"

	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

func (t *Toolset) registerDevices(reg *mcpserver.Registry) error {
	if err := mcpserver.RegisterFunc(reg, "get_devices",
		"List all Garmin devices registered to the account",
		func(ctx context.Context, _ noArgs) (string, error) {
			devices, err := t.client.Devices(ctx)
			if err != nil {
				return fmt.Sprintf("Error retrieving devices: %s", err.Error()), nil
			}
			if len(devices) == 0 {
				return "No devices found.", nil
			}
			return toJSONString(devices), nil
		}); err != nil {
		return err
	}

	return mcpserver.RegisterFunc(reg, "get_device_last_used",
		"Get information about the most recently used Garmin device",
		func(ctx context.Context, _ noArgs) (string, error) {
			device, err := t.client.DeviceLastUsed(ctx)
			if err != nil {
				return fmt.Sprintf("Error retrieving last used device: %s", err.Error()), nil
			}
			return toJSONString(device), nil
		})
}
