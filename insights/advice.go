package insights

import (
	"fmt"
	"strings"
)

// Signals summarizes a window of health data for the advice generators.
// Nil pointers mean the signal had no data.
type Signals struct {
	AvgSleepHours  *float64
	AvgBodyBattery *float64
	AvgReadiness   *float64
	ActivityCount  int
	// StepsChangePct is the percent change of average daily steps vs the
	// week before the window. Only the coach cues use it.
	StepsChangePct *float64
}

// RecommendationSet groups generated advice by theme.
type RecommendationSet struct {
	Training []string `json:"training_recommendations"`
	Diet     []string `json:"diet_recommendations"`
	Recovery []string `json:"recovery_recommendations"`
}

// Recommendations applies the advice rules to the summarized signals.
// The userContext free text and focusArea steer additional rules.
func Recommendations(s Signals, userContext, focusArea string) RecommendationSet {
	var out RecommendationSet

	sleep := s.AvgSleepHours
	bb := s.AvgBodyBattery
	readiness := s.AvgReadiness

	// Training
	if sleep != nil && *sleep < 7 {
		out.Training = append(out.Training,
			"Consider reducing training intensity - your average sleep is below 7 hours, "+
				"which may indicate insufficient recovery.")
	} else if sleep != nil && *sleep >= 8 {
		out.Training = append(out.Training,
			"Good sleep duration! You're well-rested for training. Consider maintaining or "+
				"slightly increasing training volume.")
	}

	if bb != nil && *bb < 50 {
		out.Training = append(out.Training,
			"Your body battery is consistently low. Focus on recovery activities like "+
				"light walking, yoga, or complete rest days.")
	} else if bb != nil && *bb > 70 {
		out.Training = append(out.Training,
			"Excellent body battery levels! This is a good time for high-intensity training sessions.")
	}

	if readiness != nil && *readiness < 50 {
		out.Training = append(out.Training,
			"Training readiness is low. Prioritize recovery: easy pace workouts, stretching, "+
				"and adequate rest between sessions.")
	} else if readiness != nil && *readiness > 70 {
		out.Training = append(out.Training,
			"High training readiness detected! Ideal time for challenging workouts, "+
				"intervals, or long-distance training.")
	}

	if s.ActivityCount == 0 {
		out.Training = append(out.Training,
			"No activities recorded in this period. Start with light to moderate intensity "+
				"activities and gradually build up.")
	} else if s.ActivityCount > 5 {
		out.Training = append(out.Training,
			fmt.Sprintf("You've been very active (%d activities). Ensure you're including "+
				"adequate rest days to prevent overtraining.", s.ActivityCount))
	}

	// Diet
	if sleep != nil && *sleep < 7 {
		out.Diet = append(out.Diet,
			"Prioritize foods rich in magnesium and tryptophan (nuts, seeds, turkey, bananas) "+
				"to support better sleep quality.")
	}
	if bb != nil && *bb < 50 {
		out.Diet = append(out.Diet,
			"Focus on nutrient-dense foods: complex carbohydrates for sustained energy, "+
				"lean proteins for recovery, and plenty of fruits/vegetables for micronutrients.")
	}
	if s.ActivityCount > 0 {
		out.Diet = append(out.Diet,
			"Ensure adequate protein intake (1.6-2.2g per kg body weight) to support "+
				"muscle recovery and adaptation from your training.")
		out.Diet = append(out.Diet,
			"Time your carbohydrate intake around workouts - consume 30-60g carbs 1-2 hours "+
				"before exercise and replenish within 30 minutes post-workout.")
	}

	// Recovery
	if (sleep != nil && *sleep < 7) || (bb != nil && *bb < 50) {
		out.Recovery = append(out.Recovery,
			"Prioritize sleep hygiene: maintain consistent sleep schedule, reduce screen time "+
				"before bed, and create a dark, cool sleeping environment.")
	}
	if readiness != nil && *readiness < 50 {
		out.Recovery = append(out.Recovery,
			"Consider active recovery: light stretching, foam rolling, or gentle yoga. "+
				"Stay hydrated and ensure adequate rest between training sessions.")
	}

	// Context keywords
	lower := strings.ToLower(userContext)
	if strings.Contains(lower, "marathon") || strings.Contains(lower, "endurance") {
		out.Training = append(out.Training,
			"For endurance training: gradually increase weekly mileage by 10%, include "+
				"one long run per week, and maintain easy pace for 80% of training.")
		out.Diet = append(out.Diet,
			"Endurance focus: Increase carbohydrate intake to 6-10g per kg body weight. "+
				"Focus on whole grains, fruits, and starchy vegetables.")
	}
	if strings.Contains(lower, "performance") || strings.Contains(lower, "improve") {
		out.Training = append(out.Training,
			"Include structured interval training: 1-2 high-intensity sessions per week "+
				"with adequate recovery days between.")
	}
	if strings.Contains(lower, "tired") || strings.Contains(lower, "fatigue") || strings.Contains(lower, "recovery") {
		out.Training = append(out.Training,
			"Reduce training intensity and volume. Focus on low-intensity activities "+
				"or complete rest until energy levels improve.")
		out.Diet = append(out.Diet,
			"Support recovery with anti-inflammatory foods: fatty fish, berries, leafy greens, "+
				"and adequate hydration (35ml per kg body weight).")
	}

	if focusArea == "weight_loss" {
		out.Diet = append(out.Diet,
			"Create a moderate calorie deficit (300-500 kcal/day). Prioritize protein "+
				"to preserve muscle mass during weight loss.")
		out.Training = append(out.Training,
			"Combine strength training with cardiovascular exercise. Maintain training "+
				"intensity to preserve muscle mass.")
	}

	return out
}

// CoachCues condenses the signals into short actionable cues.
func CoachCues(s Signals) []string {
	var cues []string

	if s.AvgSleepHours != nil {
		if *s.AvgSleepHours < 7.0 {
			cues = append(cues, "Sleep is below 7h on average; prioritize an easy day or mobility.")
		} else if *s.AvgSleepHours >= 8.0 {
			cues = append(cues, "Sleep is strong; you can sustain or slightly increase intensity.")
		}
	}
	if s.AvgBodyBattery != nil {
		if *s.AvgBodyBattery < 50 {
			cues = append(cues, "Body battery is low; bias toward recovery work or rest.")
		} else if *s.AvgBodyBattery > 70 {
			cues = append(cues, "Body battery is high; green light for quality sessions.")
		}
	}
	if s.AvgReadiness != nil {
		if *s.AvgReadiness < 50 {
			cues = append(cues, "Training readiness is low; reduce intensity and focus on recovery.")
		} else if *s.AvgReadiness > 70 {
			cues = append(cues, "Training readiness is high; schedule harder workouts now.")
		}
	}
	if s.StepsChangePct != nil {
		if *s.StepsChangePct <= -30.0 {
			cues = append(cues, "Activity volume down >30% vs prior week; rebuild gradually to avoid detraining.")
		} else if *s.StepsChangePct >= 20.0 {
			cues = append(cues, "Activity volume up notably; ensure adequate recovery to avoid overuse.")
		}
	}
	if s.ActivityCount == 0 {
		cues = append(cues, "No activities recorded; start with light sessions and ramp conservatively.")
	}

	return cues
}
