package correlation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
)

// InsightType categorizes an insight for presentation
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightNegative InsightType = "negative"
	InsightInfo     InsightType = "info"
	InsightWarning  InsightType = "warning"
	InsightSuccess  InsightType = "success"
)

// Insight is a human-readable narrative about a detected condition and
// its business implication.
type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// Recommendation is a prioritized operational action derived from the
// current impact assessment.
type Recommendation struct {
	Category  string `json:"category"`
	Action    string `json:"action"`
	Priority  string `json:"priority"`
	Timeframe string `json:"timeframe"`
}

// RevenueProjection estimates the revenue effect of the current demand
// multiplier against the historical baseline.
type RevenueProjection struct {
	Baseline  float64 `json:"baseline"`
	Predicted float64 `json:"predicted"`
	Increase  int     `json:"increase"`
	Amount    int     `json:"amount"`
}

// InsightGenerator runs a fixed battery of independent rule checks over
// an evaluation's inputs. Each check is a pure predicate that appends
// at most one insight; all checks may fire.
type InsightGenerator struct {
	avgOrderValue float64
}

// NewInsightGenerator creates an insight generator using the given
// per-order revenue assumption.
func NewInsightGenerator(avgOrderValue float64) *InsightGenerator {
	return &InsightGenerator{avgOrderValue: avgOrderValue}
}

// Generate produces the ordered insight list for one evaluation.
func (g *InsightGenerator) Generate(impact Impact, weather models.WeatherObservation, history *models.OrderHistory, now time.Time) []Insight {
	insights := make([]Insight, 0, 8)

	// Demand direction
	if impact.Multiplier > 1.1 {
		insights = append(insights, Insight{
			Type:  InsightPositive,
			Title: "Increased Demand Expected",
			Message: fmt.Sprintf(
				"Current weather conditions typically increase food delivery orders by %d%%. %s. Consider increasing delivery capacity and inventory.",
				round((impact.Multiplier-1)*100), impact.Reason),
		})
	} else if impact.Multiplier < 0.95 {
		insights = append(insights, Insight{
			Type:  InsightNegative,
			Title: "Lower Demand Expected",
			Message: fmt.Sprintf(
				"Current weather conditions may reduce food delivery orders by %d%%. %s. Focus on promotional campaigns.",
				round((1-impact.Multiplier)*100), impact.Reason),
		})
	}

	// Menu strategy by temperature bracket
	if weather.Temperature > 30 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Hot Weather Menu Strategy",
			Message: "Promote: Cold beverages (+40% demand), ice cream (+60%), salads (+25%), and light meals. Avoid: Hot soups, heavy curries, warm desserts.",
		})
	} else if weather.Temperature < 5 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Cold Weather Menu Strategy",
			Message: "Promote: Hot soups (+50% demand), comfort foods (+35%), warm beverages (+45%), and hearty meals. Peak time: 6-8 PM.",
		})
	} else if weather.Temperature >= 5 && weather.Temperature <= 15 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Moderate Weather Opportunity",
			Message: "Balanced menu performance expected. Good time to test new items or run customer feedback campaigns.",
		})
	}

	// Operational warnings
	if weather.Humidity > 80 {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "High Humidity - Quality Alert",
			Message: "Food quality risk: Use insulated packaging, reduce delivery radius by 20%, prioritize orders <30min. Consider humidity-resistant menu items.",
		})
	}

	if weather.WindSpeed > 10 {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "High Wind Speed Alert",
			Message: "Delivery safety concern: Brief drivers on secure packaging, avoid lightweight containers, expect 10-15% longer delivery times.",
		})
	}

	// Dinner-rush compound condition
	hour := now.Hour()
	if impact.Multiplier > 1.2 && hour >= 17 && hour <= 20 {
		insights = append(insights, Insight{
			Type:    InsightSuccess,
			Title:   "Perfect Storm - Peak Opportunity",
			Message: "Weather + dinner rush combination detected! Expect 50-70% higher than normal demand. All hands on deck recommended.",
		})
	}

	// Weekend compound condition (Friday and Saturday order surges)
	weekday := now.Weekday()
	if impact.Multiplier > 1.15 && (weekday == time.Friday || weekday == time.Saturday) {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Weekend Weather Boost",
			Message: "Weekend + adverse weather = +25% family orders, +40% group meals. Promote family packs and sharing platters.",
		})
	}

	// Competitive positioning in low demand
	if impact.Multiplier < 0.9 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Low Demand Strategy",
			Message: `Weather favors dining out. Counter with: Free delivery promotions, loyalty point bonuses, or "Stay In" meal deals to capture market share.`,
		})
	}

	// Delivery logistics
	conditions := strings.ToLower(weather.Conditions)
	if strings.Contains(conditions, "rain") || strings.Contains(conditions, "snow") {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "Weather Delivery Impact",
			Message: "Expect 20-30% longer delivery times. Proactively communicate delays, offer compensation, and deploy extra drivers in high-demand areas.",
		})
	}

	// Revenue projection
	revenue := g.ProjectRevenue(history.DailyAverage(), impact.Multiplier)
	if revenue.Increase > 20 {
		insights = append(insights, Insight{
			Type:  InsightSuccess,
			Title: "Revenue Opportunity",
			Message: fmt.Sprintf(
				"Weather conditions could boost today's revenue by %d%% (≈$%d). Consider dynamic pricing or premium options.",
				revenue.Increase, revenue.Amount),
		})
	}

	return insights
}

// Recommend produces the operational recommendation list for one
// evaluation.
func (g *InsightGenerator) Recommend(impact Impact, temperature int, timeOfDay models.TimeOfDay) []Recommendation {
	recommendations := make([]Recommendation, 0, 4)

	if impact.Multiplier > 1.2 {
		recommendations = append(recommendations,
			Recommendation{
				Category:  "Staffing",
				Action:    "Increase delivery drivers by 30-50%",
				Priority:  "High",
				Timeframe: "Next 2 hours",
			},
			Recommendation{
				Category:  "Inventory",
				Action:    "Stock up on popular comfort foods",
				Priority:  "Medium",
				Timeframe: "Today",
			},
		)
	}

	if temperature > 30 {
		recommendations = append(recommendations, Recommendation{
			Category:  "Menu",
			Action:    "Feature cold beverages and ice cream prominently",
			Priority:  "High",
			Timeframe: "Immediate",
		})
	}

	if timeOfDay == models.TimeDinner && impact.Multiplier > 1.15 {
		recommendations = append(recommendations, Recommendation{
			Category:  "Marketing",
			Action:    "Send push notifications about weather-appropriate meals",
			Priority:  "Medium",
			Timeframe: "Next hour",
		})
	}

	return recommendations
}

// ProjectRevenue estimates baseline and predicted revenue from the
// daily average order count and the demand multiplier.
func (g *InsightGenerator) ProjectRevenue(dailyAverage int, multiplier float64) RevenueProjection {
	baseline := float64(dailyAverage) * g.avgOrderValue
	predicted := baseline * multiplier

	return RevenueProjection{
		Baseline:  baseline,
		Predicted: predicted,
		Increase:  round((multiplier - 1) * 100),
		Amount:    round(predicted - baseline),
	}
}
