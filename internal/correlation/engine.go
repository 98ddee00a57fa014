package correlation

import (
	"fmt"
	"math"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
)

// Impact is the cumulative weather demand adjustment. Factors records
// every named contribution for explainability and confidence scoring.
type Impact struct {
	Multiplier float64  `json:"multiplier"`
	Reason     string   `json:"reason"`
	Factors    []string `json:"factors"`
}

// CorrelationResult is the full output of one demand evaluation.
type CorrelationResult struct {
	WeatherImpact    Impact           `json:"weather_impact"`
	BaselineOrders   int              `json:"baseline_orders"`
	PredictedOrders  int              `json:"predicted_orders"`
	ImpactPercentage int              `json:"impact_percentage"`
	ConfidenceLevel  int              `json:"confidence_level"`
	TimeOfDay        models.TimeOfDay `json:"time_of_day"`
	Season           models.Season    `json:"season"`
	Insights         []Insight        `json:"insights"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// Engine correlates order history with current weather to produce a
// demand forecast. Evaluate is a pure function of its inputs: the
// calendar clock is passed in, never sampled.
type Engine struct {
	rules    *RuleTable
	insights *InsightGenerator
}

// NewEngine creates an engine with the default rule table.
func NewEngine(avgOrderValue float64) *Engine {
	return &Engine{
		rules:    NewRuleTable(),
		insights: NewInsightGenerator(avgOrderValue),
	}
}

// NewEngineWithRules creates an engine with a custom rule table.
func NewEngineWithRules(rules *RuleTable, avgOrderValue float64) *Engine {
	return &Engine{
		rules:    rules,
		insights: NewInsightGenerator(avgOrderValue),
	}
}

// Rules returns the engine's rule table.
func (e *Engine) Rules() *RuleTable {
	return e.rules
}

// Evaluate computes the demand forecast for the given history, current
// weather, and evaluation time. An empty history is a valid degenerate
// input and yields a zero baseline, not an error.
func (e *Engine) Evaluate(history *models.OrderHistory, weather models.WeatherObservation, now time.Time) CorrelationResult {
	season := models.SeasonOf(now)
	timeOfDay := models.TimeOfDayAt(now.Hour())

	impact := Impact{
		Multiplier: 1.0,
		Reason:     "Neutral weather impact",
		Factors:    []string{},
	}

	// Condition rule: the matched entry's base replaces the neutral
	// multiplier, then its contextual multipliers compound onto it.
	if entry, ok := e.rules.Match(weather.Conditions); ok {
		impact.Multiplier = entry.Base
		impact.Reason = entry.Reason

		if tm, ok := entry.TimeMultipliers[timeOfDay]; ok {
			impact.Multiplier *= tm
			impact.Factors = append(impact.Factors, fmt.Sprintf("%s time boost", timeOfDay))
		}

		if sm, ok := entry.SeasonalMultipliers[season]; ok {
			impact.Multiplier *= sm
			impact.Factors = append(impact.Factors, fmt.Sprintf("%s seasonal effect", season))
		}
	}

	// Temperature brackets are mutually exclusive: only the first
	// matching bracket applies.
	switch {
	case weather.Temperature > 35:
		impact.Multiplier *= 1.25
		impact.Factors = append(impact.Factors, "extreme heat")
	case weather.Temperature > 30:
		impact.Multiplier *= 1.15
		impact.Factors = append(impact.Factors, "hot weather")
	case weather.Temperature < -5:
		impact.Multiplier *= 1.3
		impact.Factors = append(impact.Factors, "extreme cold")
	case weather.Temperature < 5:
		impact.Multiplier *= 1.1
		impact.Factors = append(impact.Factors, "cold weather")
	}

	if weather.Humidity > 85 {
		impact.Multiplier *= 1.1
		impact.Factors = append(impact.Factors, "high humidity discomfort")
	} else if weather.Humidity < 30 {
		impact.Multiplier *= 0.95
		impact.Factors = append(impact.Factors, "low humidity comfort")
	}

	if weather.WindSpeed > 15 {
		impact.Multiplier *= 1.05
		impact.Factors = append(impact.Factors, "high wind inconvenience")
	}

	if models.IsWeekend(now) {
		impact.Multiplier *= 1.1
		impact.Factors = append(impact.Factors, "weekend effect")
	}

	baseline := history.DailyAverage()

	result := CorrelationResult{
		WeatherImpact:    impact,
		BaselineOrders:   baseline,
		PredictedOrders:  round(float64(baseline) * impact.Multiplier),
		ImpactPercentage: round((impact.Multiplier - 1) * 100),
		ConfidenceLevel:  confidenceLevel(len(impact.Factors)),
		TimeOfDay:        timeOfDay,
		Season:           season,
	}

	result.Insights = e.insights.Generate(impact, weather, history, now)
	result.Recommendations = e.insights.Recommend(impact, weather.Temperature, timeOfDay)

	return result
}

// confidenceLevel scores prediction confidence from the number of
// contributing factors: base 70, +5 per factor capped at 25, hard
// ceiling 95.
func confidenceLevel(factorCount int) int {
	bonus := factorCount * 5
	if bonus > 25 {
		bonus = 25
	}
	confidence := 70 + bonus
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

func round(x float64) int {
	return int(math.Round(x))
}
