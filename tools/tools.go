// Package tools registers the Garmin Connect tool handlers.
//
// Every handler follows a single result convention: the payload is a JSON
// string, per-field upstream failures are fenced into null values or inline
// "Error: ..." strings, and the tool call itself still succeeds. Unresolvable
// dates produce friendly message strings rather than protocol errors.
package tools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spetersoncode/garmin-mcp/dateutil"
	"github.com/spetersoncode/garmin-mcp/garmin"
	"github.com/spetersoncode/garmin-mcp/mcpserver"
)

// Toolset binds a Garmin client to the tool handlers.
type Toolset struct {
	client *garmin.Client
	now    func() time.Time
}

// Option configures a Toolset.
type Option func(*Toolset)

// WithNow overrides the clock used for date resolution. Intended for tests.
func WithNow(fn func() time.Time) Option {
	return func(t *Toolset) {
		t.now = fn
	}
}

// New creates a Toolset backed by the given client.
func New(client *garmin.Client, opts ...Option) *Toolset {
	t := &Toolset{
		client: client,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RegisterAll adds every tool to the registry.
func (t *Toolset) RegisterAll(reg *mcpserver.Registry) error {
	for _, register := range []func(*mcpserver.Registry) error{
		t.registerActivities,
		t.registerHealth,
		t.registerProfile,
		t.registerDevices,
		t.registerGear,
		t.registerWeight,
		t.registerTraining,
		t.registerInsights,
	} {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}

func (t *Toolset) today() time.Time {
	return dateutil.Today(t.now())
}

// toJSONString renders a value as indented JSON. Strings pass through
// untouched so pre-built messages are not double-encoded.
func toJSONString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// errString formats an upstream failure for inline embedding.
func errString(err error) string {
	return fmt.Sprintf("Error: %s", err.Error())
}

const unresolvableRangeMsg = "Unable to resolve date range. Provide valid dates or relative phrases (e.g., 'last 28 days')."

const invalidPeriodMsg = "Invalid period. Must be one of: daily, weekly, monthly."

// resolveDate resolves a single date argument. Relative phrases resolve to
// the end of their window. Empty input means today.
func (t *Toolset) resolveDate(value string) (string, bool) {
	today := t.today()
	if value == "" {
		return today.Format(dateutil.ISODate), true
	}
	if d, ok := dateutil.ParseSingle(value, today); ok {
		return d.Format(dateutil.ISODate), true
	}
	if r, ok := dateutil.ResolveRelative(value, today); ok {
		return r.End.Format(dateutil.ISODate), true
	}
	return "", false
}
