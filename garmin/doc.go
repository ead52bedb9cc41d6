// Package garmin is a client for the Garmin Connect API.
//
// The client authenticates with an OAuth2 access token obtained out of band
// (see [LoadToken]) and exposes one method per Connect endpoint the tools
// consume: activities, sleep, stress, body battery, HRV, training readiness,
// daily stats, heart rate, body composition, devices, gear, and workouts.
//
// Upstream response shapes are passed through as decoded JSON
// (map[string]any / []map[string]any) rather than typed structs: the MCP
// tools re-serialize them for the model, and Garmin adds and renames fields
// frequently enough that a typed mirror would rot.
//
// All calls go through a shared rate limiter and retry transient failures
// with exponential backoff.
package garmin
