package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/correlation"
	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
	"github.com/rukaiya14/data-weaver-dashboard/internal/services"
	"github.com/rukaiya14/data-weaver-dashboard/internal/weather"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
)

// DemoForecast demonstrates the correlation pipeline without database
func main() {
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("DATA WEAVER - WEATHER-ORDER CORRELATION DEMONSTRATION")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()

	// Initialize logger
	logger := logging.NewStructuredLogger("demo", "1.0.0", logging.WarnLevel)
	ctx := context.Background()

	ingestion := services.NewIngestionService(nil, logger, nil)

	// Load order history from CSV, falling back to generated sample data
	csvPath := "./data/orders.csv"
	var records []models.OrderRecord

	file, err := os.Open(csvPath)
	if err == nil {
		parsed, result, parseErr := ingestion.ParseOrders(ctx, file)
		file.Close()
		if parseErr != nil {
			fmt.Printf("Failed to parse %s: %v\n", csvPath, parseErr)
			os.Exit(1)
		}
		records = parsed

		fmt.Printf("Loaded %s\n", csvPath)
		fmt.Printf("  Total rows:    %d\n", result.TotalRows)
		fmt.Printf("  Loaded rows:   %d\n", result.LoadedRows)
		fmt.Printf("  Coerced rows:  %d\n", result.CoercedRows)
		fmt.Printf("  Dropped rows:  %d\n", result.DroppedRows)
	} else {
		records = services.GenerateSampleOrders(rand.New(rand.NewSource(1)), 30)
		fmt.Printf("No CSV at %s, generated %d days of sample data\n", csvPath, len(records))
	}
	fmt.Println()

	history := models.NewOrderHistory(records)

	fmt.Println("─────────────────────────────────────────────────────────────")
	fmt.Println("Order History Summary")
	fmt.Println("─────────────────────────────────────────────────────────────")
	fmt.Printf("  Records:        %d\n", history.Len())
	fmt.Printf("  Total orders:   %d\n", history.TotalOrders())
	fmt.Printf("  Daily average:  %d\n", history.DailyAverage())
	fmt.Printf("  Latest orders:  %d\n", history.LatestOrders())

	for _, trend := range history.WeeklyTrends() {
		fmt.Printf("  Week of %s: avg %d, total %d\n",
			trend.WeekStart.Format("2006-01-02"), trend.AverageOrders, trend.TotalOrders)
	}
	fmt.Println()

	// Simulated observation stands in for the live weather API
	sim := weather.NewSimulator(time.Now().UnixNano())
	obs, _ := sim.Current(ctx, "Mumbai")

	fmt.Println("─────────────────────────────────────────────────────────────")
	fmt.Println("Current Weather (simulated)")
	fmt.Println("─────────────────────────────────────────────────────────────")
	fmt.Printf("  City:         %s\n", obs.City)
	fmt.Printf("  Conditions:   %s\n", obs.Conditions)
	fmt.Printf("  Temperature:  %d°C\n", obs.Temperature)
	fmt.Printf("  Humidity:     %d%%\n", obs.Humidity)
	fmt.Printf("  Wind speed:   %.1f m/s\n", obs.WindSpeed)
	fmt.Println()

	engine := correlation.NewEngine(15)
	result := engine.Evaluate(history, obs, time.Now())
	headline := correlation.BuildHeadline(result, obs)

	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("DEMAND FORECAST")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Printf("%s %s\n", headline.Icon, headline.Title)
	fmt.Printf("   %s\n\n", headline.Description)
	fmt.Printf("  Baseline orders:    %d\n", result.BaselineOrders)
	fmt.Printf("  Predicted orders:   %d\n", result.PredictedOrders)
	fmt.Printf("  Impact:             %+d%%\n", result.ImpactPercentage)
	fmt.Printf("  Confidence:         %d%%\n", result.ConfidenceLevel)
	fmt.Printf("  Time of day:        %s\n", result.TimeOfDay)
	fmt.Printf("  Season:             %s\n", result.Season)

	if len(result.WeatherImpact.Factors) > 0 {
		fmt.Println("  Contributing factors:")
		for _, factor := range result.WeatherImpact.Factors {
			fmt.Printf("    • %s\n", factor)
		}
	}
	fmt.Println()

	if len(result.Insights) > 0 {
		fmt.Println("─────────────────────────────────────────────────────────────")
		fmt.Println("Insights")
		fmt.Println("─────────────────────────────────────────────────────────────")
		for _, insight := range result.Insights {
			fmt.Printf("  [%s] %s\n", insight.Type, insight.Title)
			fmt.Printf("      %s\n", insight.Message)
		}
		fmt.Println()
	}

	if len(result.Recommendations) > 0 {
		fmt.Println("─────────────────────────────────────────────────────────────")
		fmt.Println("Recommendations")
		fmt.Println("─────────────────────────────────────────────────────────────")
		for _, rec := range result.Recommendations {
			fmt.Printf("  [%s/%s] %s: %s\n", rec.Priority, rec.Timeframe, rec.Category, rec.Action)
		}
		fmt.Println()
	}

	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("✅ CORRELATION DEMONSTRATION COMPLETE")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("The system successfully:")
	fmt.Println("  ✓ Parsed CSV order history (or generated sample data)")
	fmt.Println("  ✓ Computed baseline, weekly trends, and peak days")
	fmt.Println("  ✓ Matched weather conditions against the rule table")
	fmt.Println("  ✓ Compounded time, seasonal, and environmental adjustments")
	fmt.Println("  ✓ Produced insights and operational recommendations")
	fmt.Println()
	fmt.Println("With a database, this would:")
	fmt.Println("  • Store order history in the order_history table")
	fmt.Println("  • Fetch live conditions from OpenWeatherMap")
	fmt.Println("  • Serve forecasts via REST API endpoints")
	fmt.Println("  • Provide real-time metrics and monitoring")
	fmt.Println()
}
