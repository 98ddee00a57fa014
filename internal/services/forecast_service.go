package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/correlation"
	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
	"github.com/rukaiya14/data-weaver-dashboard/internal/repository"
	"github.com/rukaiya14/data-weaver-dashboard/internal/weather"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

// temperatureTrendDays is the length of the simulated temperature
// window served alongside the forecast
const temperatureTrendDays = 7

// Forecast bundles everything the dashboard renders for one evaluation
type Forecast struct {
	GeneratedAt      time.Time                     `json:"generated_at"`
	Weather          models.WeatherObservation     `json:"weather"`
	Result           correlation.CorrelationResult `json:"result"`
	Headline         correlation.Headline          `json:"headline"`
	Analysis         correlation.Analysis          `json:"analysis"`
	Revenue          correlation.RevenueProjection `json:"revenue"`
	TemperatureTrend []weather.TemperatureDay      `json:"temperature_trend"`

	// AverageTemperature is the mean over the temperature trend window
	AverageTemperature int `json:"average_temperature"`
}

// OrderSummary holds the aggregate order metrics for the dashboard
type OrderSummary struct {
	TotalOrders  int                  `json:"total_orders"`
	DailyAverage int                  `json:"daily_average"`
	LatestOrders int                  `json:"latest_orders"`
	RecordCount  int                  `json:"record_count"`
	WeeklyTrends []models.WeeklyTrend `json:"weekly_trends"`
	PeakDays     []models.OrderRecord `json:"peak_days"`
}

// ForecastService computes demand forecasts from stored order history
// and current weather
type ForecastService struct {
	repo     repository.OrderRepository
	provider weather.Provider
	sim      *weather.Simulator
	engine   *correlation.Engine
	insights *correlation.InsightGenerator
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector

	// clock is injectable so evaluations stay deterministic in tests
	clock func() time.Time

	// analysisSeed keeps the impact-analysis temperature split
	// reproducible across calls
	analysisSeed int64
}

// NewForecastService creates a new forecast service
func NewForecastService(
	repo repository.OrderRepository,
	provider weather.Provider,
	sim *weather.Simulator,
	avgOrderValue float64,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *ForecastService {
	return &ForecastService{
		repo:         repo,
		provider:     provider,
		sim:          sim,
		engine:       correlation.NewEngine(avgOrderValue),
		insights:     correlation.NewInsightGenerator(avgOrderValue),
		logger:       logger,
		metrics:      metricsCollector,
		clock:        time.Now,
		analysisSeed: 1,
	}
}

// SetClock overrides the evaluation clock
func (s *ForecastService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// GetForecast evaluates current demand for a city
func (s *ForecastService) GetForecast(ctx context.Context, city string) (*Forecast, error) {
	timer := s.metrics.NewTimer(s.metrics.EvaluationDuration)
	defer timer.ObserveDuration()

	records, err := s.repo.GetAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	history := models.NewOrderHistory(records)

	obs, err := s.provider.Current(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	now := s.clock()
	result := s.engine.Evaluate(history, obs, now)

	rng := rand.New(rand.NewSource(s.analysisSeed))
	analysis := correlation.AnalyzeImpact(history, obs, rng)

	trend := s.sim.History(obs, temperatureTrendDays, now)

	forecast := &Forecast{
		GeneratedAt:        now,
		Weather:            obs,
		Result:             result,
		Headline:           correlation.BuildHeadline(result, obs),
		Analysis:           analysis,
		Revenue:            s.insights.ProjectRevenue(history.DailyAverage(), result.WeatherImpact.Multiplier),
		TemperatureTrend:   trend,
		AverageTemperature: averageTemperature(trend),
	}

	s.metrics.RecordEvaluation(result.WeatherImpact.Multiplier, result.ConfidenceLevel, len(result.Insights))

	s.logger.Info(ctx, "[FORECAST_EVALUATED] Demand forecast evaluated", logging.Fields{
		"city":              obs.City,
		"conditions":        obs.Conditions,
		"baseline_orders":   result.BaselineOrders,
		"predicted_orders":  result.PredictedOrders,
		"impact_percentage": result.ImpactPercentage,
		"confidence_level":  result.ConfidenceLevel,
		"factor_count":      len(result.WeatherImpact.Factors),
		"simulated_weather": obs.Simulated,
	})

	return forecast, nil
}

func averageTemperature(trend []weather.TemperatureDay) int {
	if len(trend) == 0 {
		return 0
	}
	total := 0
	for _, day := range trend {
		total += day.Temperature
	}
	return int(math.Round(float64(total) / float64(len(trend))))
}

// GetSummary computes aggregate order metrics from the stored history
func (s *ForecastService) GetSummary(ctx context.Context) (*OrderSummary, error) {
	records, err := s.repo.GetAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	history := models.NewOrderHistory(records)

	return &OrderSummary{
		TotalOrders:  history.TotalOrders(),
		DailyAverage: history.DailyAverage(),
		LatestOrders: history.LatestOrders(),
		RecordCount:  history.Len(),
		WeeklyTrends: history.WeeklyTrends(),
		PeakDays:     history.PeakDays(5),
	}, nil
}

// GetOrders retrieves stored order records with filtering
func (s *ForecastService) GetOrders(ctx context.Context, filter repository.OrderFilter) ([]models.OrderRecord, int, error) {
	return s.repo.GetOrders(ctx, filter)
}
