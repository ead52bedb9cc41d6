package insights

import "math"

// HydrationGuidance is a daily fluid intake target.
type HydrationGuidance struct {
	BaselineML     int     `json:"baseline_ml"`
	TrainingML     int     `json:"training_ml"`
	HeatMultiplier float64 `json:"heat_multiplier"`
	TargetML       int     `json:"target_ml"`
}

// HydrationTarget computes a daily hydration target: 35 ml per kg body
// weight, plus 500 ml per hour of training, scaled by 10% above 25 degrees C
// and 20% above 30 degrees C. temperatureC may be nil when unknown.
func HydrationTarget(weightKg float64, trainingMinutes int, temperatureC *float64) HydrationGuidance {
	baseline := 35.0 * weightKg
	training := 500.0 * (float64(trainingMinutes) / 60.0)

	multiplier := 1.0
	if temperatureC != nil {
		switch {
		case *temperatureC >= 30.0:
			multiplier = 1.2
		case *temperatureC >= 25.0:
			multiplier = 1.1
		}
	}

	return HydrationGuidance{
		BaselineML:     int(math.Round(baseline)),
		TrainingML:     int(math.Round(training)),
		HeatMultiplier: multiplier,
		TargetML:       int(math.Round((baseline + training) * multiplier)),
	}
}
