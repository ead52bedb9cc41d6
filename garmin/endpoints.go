package garmin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// UserProfile returns the user's social profile (display name, locale,
// profile id).
func (c *Client) UserProfile(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/userprofile-service/socialProfile", nil, &out)
	return out, err
}

// Activities returns a page of the user's most recent activities.
func (c *Client) Activities(ctx context.Context, start, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))

	var out []map[string]any
	err := c.get(ctx, "/activitylist-service/activities/search/activities", params, &out)
	return out, err
}

// ActivitiesByDate returns activities within the date range, optionally
// filtered by activity type (e.g. "running", "cycling").
func (c *Client) ActivitiesByDate(ctx context.Context, startDate, endDate, activityType string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)
	if activityType != "" {
		params.Set("activityType", activityType)
	}

	var out []map[string]any
	err := c.get(ctx, "/activitylist-service/activities/search/activities", params, &out)
	return out, err
}

// Activity returns full details for one activity.
func (c *Client) Activity(ctx context.Context, activityID int64) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, fmt.Sprintf("/activity-service/activity/%d", activityID), nil, &out)
	return out, err
}

// SleepData returns the sleep record for a date, including the
// dailySleepDTO summary and sleep stage series.
func (c *Client) SleepData(ctx context.Context, date string) (map[string]any, error) {
	dn, err := c.profileDisplayName(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("date", date)
	params.Set("nonSleepBufferMinutes", "60")

	var out map[string]any
	err = c.get(ctx, "/wellness-service/wellness/dailySleepData/"+url.PathEscape(dn), params, &out)
	return out, err
}

// StressData returns the stress summary and series for a date.
func (c *Client) StressData(ctx context.Context, date string) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/wellness-service/wellness/dailyStress/"+date, nil, &out)
	return out, err
}

// BodyBattery returns body battery readings between two dates.
func (c *Client) BodyBattery(ctx context.Context, startDate, endDate string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)

	var out []map[string]any
	err := c.get(ctx, "/wellness-service/wellness/bodyBattery/reports/daily", params, &out)
	return out, err
}

// TrainingReadiness returns the training readiness assessment for a date.
func (c *Client) TrainingReadiness(ctx context.Context, date string) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/metrics-service/metrics/trainingreadiness/"+date, nil, &out)
	return out, err
}

// HRVData returns the heart-rate variability summary for a date.
func (c *Client) HRVData(ctx context.Context, date string) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/hrv-service/hrv/"+date, nil, &out)
	return out, err
}

// DailyStats returns the daily user summary (steps, calories, floors,
// intensity minutes, resting heart rate).
func (c *Client) DailyStats(ctx context.Context, date string) (map[string]any, error) {
	dn, err := c.profileDisplayName(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("calendarDate", date)

	var out map[string]any
	err = c.get(ctx, "/usersummary-service/usersummary/daily/"+url.PathEscape(dn), params, &out)
	return out, err
}

// HeartRates returns the daily heart rate summary and series for a date.
// Resting heart rate rides along in the restingHeartRate field.
func (c *Client) HeartRates(ctx context.Context, date string) (map[string]any, error) {
	dn, err := c.profileDisplayName(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("date", date)

	var out map[string]any
	err = c.get(ctx, "/wellness-service/wellness/dailyHeartRate/"+url.PathEscape(dn), params, &out)
	return out, err
}

// BodyComposition returns weight and body composition readings in the range
// (dateWeightList entries with weight in grams per Garmin convention,
// passed through untouched).
func (c *Client) BodyComposition(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	params := url.Values{}
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)

	var out map[string]any
	err := c.get(ctx, "/weight-service/weight/dateRange", params, &out)
	return out, err
}

// WeightDayView returns the weight readings recorded on a single date.
func (c *Client) WeightDayView(ctx context.Context, date string) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/weight-service/weight/dayview/"+date, nil, &out)
	return out, err
}

// AddWeight records a weight measurement for a date. Weight is in the given
// unit ("kg" or "lbs").
func (c *Client) AddWeight(ctx context.Context, date string, value float64, unitKey string) error {
	if unitKey == "" {
		unitKey = "kg"
	}
	body := map[string]any{
		"dateTimestamp": date + "T12:00:00.00",
		"gmtTimestamp":  date + "T12:00:00.00",
		"unitKey":       unitKey,
		"sourceType":    "MANUAL",
		"value":         value,
	}
	return c.post(ctx, "/weight-service/user-weight", body, nil)
}

// MaxMetrics returns VO2 max and fitness age metrics for a date.
func (c *Client) MaxMetrics(ctx context.Context, date string) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, fmt.Sprintf("/metrics-service/metrics/maxmet/daily/%s/%s", date, date), nil, &out)
	return out, err
}

// TrainingStatus returns the aggregated training status for a date
// (load balance, status phrase, acute/chronic load).
func (c *Client) TrainingStatus(ctx context.Context, date string) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/metrics-service/metrics/trainingstatus/aggregated/"+date, nil, &out)
	return out, err
}

// Devices returns the user's registered devices.
func (c *Client) Devices(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	err := c.get(ctx, "/device-service/deviceregistration/devices", nil, &out)
	return out, err
}

// DeviceLastUsed returns the most recently synced device.
func (c *Client) DeviceLastUsed(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, "/device-service/deviceservice/mylastused", nil, &out)
	return out, err
}

// Gear returns the user's gear (shoes, bikes) with accumulated usage.
func (c *Client) Gear(ctx context.Context) ([]map[string]any, error) {
	profile, err := c.UserProfile(ctx)
	if err != nil {
		return nil, err
	}
	pk, ok := profile["profileId"].(float64)
	if !ok {
		return nil, fmt.Errorf("garmin: profile has no profileId")
	}

	params := url.Values{}
	params.Set("userProfilePk", strconv.FormatInt(int64(pk), 10))

	var out []map[string]any
	err = c.get(ctx, "/gear-service/gear/filterGear", params, &out)
	return out, err
}

// Workouts returns a page of the user's saved workouts.
func (c *Client) Workouts(ctx context.Context, start, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))

	var out []map[string]any
	err := c.get(ctx, "/workout-service/workouts", params, &out)
	return out, err
}

// Workout returns one saved workout with its steps.
func (c *Client) Workout(ctx context.Context, workoutID int64) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, fmt.Sprintf("/workout-service/workout/%d", workoutID), nil, &out)
	return out, err
}
