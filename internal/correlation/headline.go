package correlation

import (
	"fmt"
	"strings"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
)

// Headline is the single narrative block shown above the insight list.
// It is always computed, independently of the insight battery, from the
// same impact and weather inputs.
type Headline struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// significantImpactPct is the absolute impact percentage above which
// the headline switches from the neutral narrative.
const significantImpactPct = 15

// BuildHeadline selects the headline narrative for an evaluation.
func BuildHeadline(result CorrelationResult, weather models.WeatherObservation) Headline {
	impact := result.ImpactPercentage
	temp := weather.Temperature

	headline := Headline{
		Icon:        "📊",
		Title:       "Weather Analysis Complete",
		Description: "Current weather conditions show neutral impact on food delivery demand.",
	}

	if abs(impact) > significantImpactPct {
		if impact > 0 {
			headline.Icon = "📈"
			headline.Title = fmt.Sprintf("%d%% Higher Demand Expected", impact)

			switch {
			case temp > 30:
				headline.Description = fmt.Sprintf(
					"Hot weather (%d°C) drives customers indoors, significantly boosting food delivery orders. Consider promoting cold beverages and light meals.", temp)
			case strings.Contains(strings.ToLower(weather.Conditions), "rain"):
				headline.Description = "Rainy conditions discourage outdoor dining, leading to increased delivery demand. Prepare for higher order volumes."
			default:
				headline.Description = fmt.Sprintf(
					"Current weather conditions are favorable for food delivery, with %d%% higher demand expected than average.", impact)
			}
		} else {
			headline.Icon = "📉"
			headline.Title = fmt.Sprintf("%d%% Lower Demand Expected", -impact)
			headline.Description = "Pleasant weather conditions encourage outdoor activities and dining out, reducing delivery demand. Consider promotional campaigns to maintain order volume."
		}
	} else if temp > 25 && temp <= 30 {
		headline.Icon = "🌤️"
		headline.Title = "Optimal Weather Conditions"
		headline.Description = fmt.Sprintf(
			"Comfortable temperature (%d°C) creates balanced demand. Good opportunity to test new menu items or gather customer feedback.", temp)
	}

	return headline
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
