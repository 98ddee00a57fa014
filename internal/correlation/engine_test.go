package correlation

import (
	"reflect"
	"testing"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
)

func historyWithAverage(t *testing.T, avg int) *models.OrderHistory {
	t.Helper()
	return models.NewOrderHistory([]models.OrderRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Orders: avg},
	})
}

// TestEngine_Evaluate_HotDryLunch covers the clear-sky lunch scenario:
// condition base replaces the multiplier, the lunch multiplier and the
// cumulative temperature and humidity adjustments compound onto it.
func TestEngine_Evaluate_HotDryLunch(t *testing.T) {
	engine := NewEngine(15)
	history := historyWithAverage(t, 45)

	weather := models.WeatherObservation{
		Temperature: 33,
		Humidity:    20,
		WindSpeed:   5,
		Conditions:  "clear sky",
		City:        "Mumbai",
	}

	// Wednesday, lunch hour
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	result := engine.Evaluate(history, weather, now)

	if result.BaselineOrders != 45 {
		t.Errorf("BaselineOrders = %d, want 45", result.BaselineOrders)
	}

	// 0.8 (clear) x 0.75 (lunch) x 1.15 (hot) x 0.95 (dry) = 0.6555
	if result.PredictedOrders != 29 {
		t.Errorf("PredictedOrders = %d, want 29", result.PredictedOrders)
	}

	if result.ImpactPercentage != -34 {
		t.Errorf("ImpactPercentage = %d, want -34", result.ImpactPercentage)
	}

	if result.WeatherImpact.Reason != "Outdoor dining preference" {
		t.Errorf("Reason = %q, want %q", result.WeatherImpact.Reason, "Outdoor dining preference")
	}

	wantFactors := []string{"lunch time boost", "hot weather", "low humidity comfort"}
	if !reflect.DeepEqual(result.WeatherImpact.Factors, wantFactors) {
		t.Errorf("Factors = %v, want %v", result.WeatherImpact.Factors, wantFactors)
	}

	if result.ConfidenceLevel != 85 {
		t.Errorf("ConfidenceLevel = %d, want 85", result.ConfidenceLevel)
	}

	if result.TimeOfDay != models.TimeLunch {
		t.Errorf("TimeOfDay = %v, want lunch", result.TimeOfDay)
	}
}

// TestEngine_Evaluate_RainyWeekendDinner covers the heavy-rain Saturday
// dinner scenario with the weekend adjustment.
func TestEngine_Evaluate_RainyWeekendDinner(t *testing.T) {
	engine := NewEngine(15)
	history := historyWithAverage(t, 50)

	weather := models.WeatherObservation{
		Temperature: 18,
		Humidity:    50,
		WindSpeed:   5,
		Conditions:  "heavy rain",
	}

	// Saturday, dinner hour
	now := time.Date(2024, 1, 13, 19, 0, 0, 0, time.UTC)

	result := engine.Evaluate(history, weather, now)

	// 1.45 (heavy rain) x 1.6 (dinner) x 1.1 (weekend) = 2.552
	if result.PredictedOrders != 128 {
		t.Errorf("PredictedOrders = %d, want 128", result.PredictedOrders)
	}

	if result.ImpactPercentage != 155 {
		t.Errorf("ImpactPercentage = %d, want 155", result.ImpactPercentage)
	}

	if result.WeatherImpact.Reason != "Severe outdoor conditions" {
		t.Errorf("Reason = %q, want %q", result.WeatherImpact.Reason, "Severe outdoor conditions")
	}

	wantFactors := []string{"dinner time boost", "weekend effect"}
	if !reflect.DeepEqual(result.WeatherImpact.Factors, wantFactors) {
		t.Errorf("Factors = %v, want %v", result.WeatherImpact.Factors, wantFactors)
	}
}

// TestEngine_Evaluate_Idempotent verifies two evaluations with
// identical inputs produce identical results.
func TestEngine_Evaluate_Idempotent(t *testing.T) {
	engine := NewEngine(15)
	history := historyWithAverage(t, 45)

	weather := models.WeatherObservation{
		Temperature: 36,
		Humidity:    90,
		WindSpeed:   20,
		Conditions:  "thunderstorm with heavy rain",
	}

	now := time.Date(2024, 7, 6, 19, 30, 0, 0, time.UTC)

	first := engine.Evaluate(history, weather, now)
	second := engine.Evaluate(history, weather, now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differs:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

// TestEngine_Evaluate_TemperatureBracketExclusive verifies only the
// first matching temperature bracket applies.
func TestEngine_Evaluate_TemperatureBracketExclusive(t *testing.T) {
	tests := []struct {
		name        string
		temperature int
		wantFactor  string
		excluded    []string
	}{
		{
			name:        "extreme heat excludes hot weather",
			temperature: 36,
			wantFactor:  "extreme heat",
			excluded:    []string{"hot weather", "cold weather", "extreme cold"},
		},
		{
			name:        "hot weather only",
			temperature: 31,
			wantFactor:  "hot weather",
			excluded:    []string{"extreme heat"},
		},
		{
			name:        "extreme cold excludes cold weather",
			temperature: -10,
			wantFactor:  "extreme cold",
			excluded:    []string{"cold weather"},
		},
		{
			name:        "cold weather only",
			temperature: 2,
			wantFactor:  "cold weather",
			excluded:    []string{"extreme cold"},
		},
	}

	engine := NewEngine(15)
	history := historyWithAverage(t, 40)
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) // weekday, off-peak

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weather := models.WeatherObservation{
				Temperature: tt.temperature,
				Humidity:    50,
				WindSpeed:   5,
				Conditions:  "overcast",
			}

			result := engine.Evaluate(history, weather, now)
			factors := result.WeatherImpact.Factors

			if !containsFactor(factors, tt.wantFactor) {
				t.Errorf("Factors = %v, want %q present", factors, tt.wantFactor)
			}

			for _, excluded := range tt.excluded {
				if containsFactor(factors, excluded) {
					t.Errorf("Factors = %v, %q must not apply", factors, excluded)
				}
			}
		})
	}
}

// TestEngine_Evaluate_ConfidenceBounds verifies confidence is 70 with
// zero factors and never exceeds 95.
func TestEngine_Evaluate_ConfidenceBounds(t *testing.T) {
	engine := NewEngine(15)
	history := historyWithAverage(t, 40)

	// No rule match, no brackets, weekday: zero factors
	calm := models.WeatherObservation{
		Temperature: 20,
		Humidity:    50,
		WindSpeed:   5,
		Conditions:  "overcast",
	}
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	result := engine.Evaluate(history, calm, now)
	if len(result.WeatherImpact.Factors) != 0 {
		t.Fatalf("Factors = %v, want none", result.WeatherImpact.Factors)
	}
	if result.ConfidenceLevel != 70 {
		t.Errorf("ConfidenceLevel = %d, want 70", result.ConfidenceLevel)
	}

	if result.WeatherImpact.Reason != "Neutral weather impact" {
		t.Errorf("Reason = %q, want neutral", result.WeatherImpact.Reason)
	}

	// Stack as many factors as possible
	extreme := models.WeatherObservation{
		Temperature: 36,
		Humidity:    90,
		WindSpeed:   20,
		Conditions:  "heavy rain",
	}
	saturdayDinner := time.Date(2024, 7, 6, 19, 0, 0, 0, time.UTC)

	result = engine.Evaluate(history, extreme, saturdayDinner)
	if result.ConfidenceLevel < 70 || result.ConfidenceLevel > 95 {
		t.Errorf("ConfidenceLevel = %d, want within [70, 95]", result.ConfidenceLevel)
	}
	if result.ConfidenceLevel != 95 {
		t.Errorf("ConfidenceLevel = %d, want 95 for %d factors",
			result.ConfidenceLevel, len(result.WeatherImpact.Factors))
	}
}

// TestEngine_Evaluate_EmptyHistory verifies the degenerate zero-baseline
// result is produced, not an error.
func TestEngine_Evaluate_EmptyHistory(t *testing.T) {
	engine := NewEngine(15)
	history := models.NewOrderHistory(nil)

	weather := models.WeatherObservation{
		Temperature: 36,
		Humidity:    90,
		WindSpeed:   20,
		Conditions:  "heavy rain",
	}
	now := time.Date(2024, 7, 6, 19, 0, 0, 0, time.UTC)

	result := engine.Evaluate(history, weather, now)

	if result.BaselineOrders != 0 {
		t.Errorf("BaselineOrders = %d, want 0", result.BaselineOrders)
	}
	if result.PredictedOrders != 0 {
		t.Errorf("PredictedOrders = %d, want 0", result.PredictedOrders)
	}
}

// TestEngine_Evaluate_NonNegative verifies predicted orders never go
// negative across a spread of inputs.
func TestEngine_Evaluate_NonNegative(t *testing.T) {
	engine := NewEngine(15)

	histories := []*models.OrderHistory{
		models.NewOrderHistory(nil),
		historyWithAverage(t, 1),
		historyWithAverage(t, 1000),
	}

	observations := []models.WeatherObservation{
		{Temperature: -20, Humidity: 10, WindSpeed: 30, Conditions: "snow"},
		{Temperature: 40, Humidity: 95, WindSpeed: 0, Conditions: "sunny"},
		{Temperature: 20, Humidity: 50, WindSpeed: 5, Conditions: "clear sky"},
	}

	now := time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC)

	for _, history := range histories {
		for _, obs := range observations {
			result := engine.Evaluate(history, obs, now)
			if result.PredictedOrders < 0 {
				t.Errorf("PredictedOrders = %d for conditions %q, want >= 0",
					result.PredictedOrders, obs.Conditions)
			}
			if result.WeatherImpact.Multiplier <= 0 {
				t.Errorf("Multiplier = %f for conditions %q, want > 0",
					result.WeatherImpact.Multiplier, obs.Conditions)
			}
		}
	}
}

// TestEngine_Evaluate_SeasonalMultiplier verifies seasonal entries
// compound and record their factor.
func TestEngine_Evaluate_SeasonalMultiplier(t *testing.T) {
	engine := NewEngine(15)
	history := historyWithAverage(t, 40)

	weather := models.WeatherObservation{
		Temperature: 28,
		Humidity:    50,
		WindSpeed:   5,
		Conditions:  "hot and hazy",
	}

	// Wednesday in July, off-peak hour
	now := time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)

	result := engine.Evaluate(history, weather, now)

	if !containsFactor(result.WeatherImpact.Factors, "summer seasonal effect") {
		t.Errorf("Factors = %v, want summer seasonal effect", result.WeatherImpact.Factors)
	}

	// 1.2 (hot) x 1.3 (summer)
	want := round(40 * 1.2 * 1.3)
	if result.PredictedOrders != want {
		t.Errorf("PredictedOrders = %d, want %d", result.PredictedOrders, want)
	}
}

func containsFactor(factors []string, want string) bool {
	for _, f := range factors {
		if f == want {
			return true
		}
	}
	return false
}
