package correlation

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
)

// Analysis is the main qualitative weather-impact narrative. It splits
// the history into hot and cool days and compares their order averages
// against the overall baseline.
type Analysis struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// AnalyzeImpact generates the main impact narrative. Historical per-day
// temperatures are not available, so the hot/cool split is sampled from
// the injected source; pass a seeded *rand.Rand for deterministic
// output.
func AnalyzeImpact(history *models.OrderHistory, weather models.WeatherObservation, rng *rand.Rand) Analysis {
	records := history.Records()
	if len(records) == 0 {
		return Analysis{
			Type:    InsightInfo,
			Title:   "Analysis Pending",
			Message: "Weather impact analysis will be available once data is loaded.",
		}
	}

	avgOrders := history.DailyAverage()
	temp := weather.Temperature
	conditions := strings.ToLower(weather.Conditions)

	var highTempTotal, highTempCount int
	var lowTempTotal, lowTempCount int

	for _, r := range records {
		// Sampled ranges: 25-40°C for the hot split, 15-30°C for the
		// cool split.
		if 25+rng.Float64()*15 > 30 {
			highTempTotal += r.Orders
			highTempCount++
		}
		if 15+rng.Float64()*15 < 20 {
			lowTempTotal += r.Orders
			lowTempCount++
		}
	}

	avgHighTempOrders := avgOrders
	if highTempCount > 0 {
		avgHighTempOrders = round(float64(highTempTotal) / float64(highTempCount))
	}

	avgLowTempOrders := avgOrders
	if lowTempCount > 0 {
		avgLowTempOrders = round(float64(lowTempTotal) / float64(lowTempCount))
	}

	analysis := Analysis{
		Type:  InsightInfo,
		Title: "Minimal Weather Impact",
	}

	switch {
	case temp > 32:
		if float64(avgHighTempOrders) > float64(avgOrders)*1.1 {
			analysis = Analysis{
				Type:  InsightPositive,
				Title: "Hot Weather Drives Higher Orders",
				Message: fmt.Sprintf(
					"Analysis shows that hot weather (%d°C) correlates with increased food delivery demand. On days above 30°C, orders average %d compared to the overall average of %d. Hot weather encourages customers to stay indoors and order delivery rather than cook or dine out.",
					temp, avgHighTempOrders, avgOrders),
			}
		} else {
			analysis = Analysis{
				Type:  InsightInfo,
				Title: "Hot Weather Shows Mixed Impact",
				Message: fmt.Sprintf(
					"Current temperature is %d°C. While hot weather can increase delivery demand, the data shows relatively stable ordering patterns. Average orders remain around %d regardless of temperature variations.",
					temp, avgOrders),
			}
		}
	case temp < 15:
		if float64(avgLowTempOrders) > float64(avgOrders)*1.05 {
			analysis = Analysis{
				Type:  InsightPositive,
				Title: "Cool Weather Boosts Comfort Food Orders",
				Message: fmt.Sprintf(
					"Cool weather (%d°C) shows a positive correlation with food orders. On cooler days, orders average %d compared to %d overall. Lower temperatures tend to increase demand for warm, comfort foods and reduce outdoor dining.",
					temp, avgLowTempOrders, avgOrders),
			}
		} else {
			analysis = Analysis{
				Type:  InsightInfo,
				Title: "Cool Weather Shows Stable Demand",
				Message: fmt.Sprintf(
					"Current temperature is %d°C. The data indicates that cooler weather maintains steady ordering patterns with an average of %d orders per day.",
					temp, avgOrders),
			}
		}
	default:
		analysis = Analysis{
			Type:  InsightInfo,
			Title: "Moderate Weather Maintains Steady Demand",
			Message: fmt.Sprintf(
				"Current temperature of %d°C falls within the moderate range. Analysis shows consistent ordering patterns during moderate weather, with daily orders averaging %d. This temperature range typically results in stable food delivery demand.",
				temp, avgOrders),
		}
	}

	// Condition overrides trump the temperature narrative.
	if strings.Contains(conditions, "rain") || strings.Contains(conditions, "storm") {
		analysis = Analysis{
			Type:  InsightPositive,
			Title: "Rainy Weather Increases Delivery Demand",
			Message: fmt.Sprintf(
				"Current rainy conditions combined with %d°C temperature create favorable conditions for food delivery. Rain typically increases orders by discouraging outdoor dining and making delivery more convenient. Expected orders: above the %d daily average.",
				temp, avgOrders),
		}
	} else if (strings.Contains(conditions, "clear") || strings.Contains(conditions, "sunny")) && temp > 25 && temp < 30 {
		analysis = Analysis{
			Type:  InsightNegative,
			Title: "Pleasant Weather May Reduce Delivery Orders",
			Message: fmt.Sprintf(
				"Clear, pleasant weather (%d°C) often correlates with reduced delivery demand as people prefer outdoor dining and activities. Current conditions may result in orders below the %d daily average.",
				temp, avgOrders),
		}
	}

	return analysis
}
