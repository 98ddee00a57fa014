package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
	"github.com/rukaiya14/data-weaver-dashboard/internal/repository"
	"github.com/rukaiya14/data-weaver-dashboard/internal/weather"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

// One collector for the whole package: the prometheus default registry
// rejects duplicate registrations.
var testMetrics = metrics.NewCollector("services_test")

func serviceTestLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("test", "test", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

type fakeOrderRepository struct {
	records []models.OrderRecord
	err     error
}

func (r *fakeOrderRepository) ReplaceOrders(_ context.Context, records []models.OrderRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = records
	return nil
}

func (r *fakeOrderRepository) InsertOrdersBatch(_ context.Context, records []models.OrderRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeOrderRepository) GetOrders(_ context.Context, filter repository.OrderFilter) ([]models.OrderRecord, int, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.records, len(r.records), nil
}

func (r *fakeOrderRepository) GetAllOrders(_ context.Context) ([]models.OrderRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.records, nil
}

func (r *fakeOrderRepository) GetOrderByDate(_ context.Context, date time.Time) (*models.OrderRecord, error) {
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			return &rec, nil
		}
	}
	return nil, &repository.NotFoundError{Resource: "order_record", ID: date.Format("2006-01-02")}
}

func (r *fakeOrderRepository) HealthCheck(_ context.Context) error {
	return r.err
}

type stubWeatherProvider struct {
	obs models.WeatherObservation
	err error
}

func (p stubWeatherProvider) Current(context.Context, string) (models.WeatherObservation, error) {
	return p.obs, p.err
}

func TestForecastService_GetForecast(t *testing.T) {
	repo := &fakeOrderRepository{
		records: []models.OrderRecord{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Orders: 50},
		},
	}
	provider := stubWeatherProvider{
		obs: models.WeatherObservation{
			Temperature: 18,
			Humidity:    50,
			WindSpeed:   5,
			Conditions:  "heavy rain",
			City:        "Mumbai",
		},
	}

	service := NewForecastService(repo, provider, weather.NewSimulator(1), 15, serviceTestLogger(), testMetrics)

	// Saturday, dinner hour
	evalTime := time.Date(2024, 1, 13, 19, 0, 0, 0, time.UTC)
	service.SetClock(func() time.Time { return evalTime })

	forecast, err := service.GetForecast(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}

	if !forecast.GeneratedAt.Equal(evalTime) {
		t.Errorf("GeneratedAt = %v, want %v", forecast.GeneratedAt, evalTime)
	}
	if forecast.Weather.City != "Mumbai" {
		t.Errorf("Weather.City = %q, want Mumbai", forecast.Weather.City)
	}

	// 1.45 x 1.6 (dinner) x 1.1 (weekend) = 2.552 over a 50-order baseline
	if forecast.Result.PredictedOrders != 128 {
		t.Errorf("PredictedOrders = %d, want 128", forecast.Result.PredictedOrders)
	}
	if forecast.Headline.Icon != "📈" {
		t.Errorf("Headline.Icon = %q, want surge icon", forecast.Headline.Icon)
	}
	if forecast.Analysis.Title != "Rainy Weather Increases Delivery Demand" {
		t.Errorf("Analysis.Title = %q, want rain narrative", forecast.Analysis.Title)
	}
	if forecast.Revenue.Baseline != 750 {
		t.Errorf("Revenue.Baseline = %v, want 750", forecast.Revenue.Baseline)
	}
	if len(forecast.TemperatureTrend) != temperatureTrendDays {
		t.Errorf("TemperatureTrend length = %d, want %d", len(forecast.TemperatureTrend), temperatureTrendDays)
	}
	if forecast.AverageTemperature < 13 || forecast.AverageTemperature > 23 {
		t.Errorf("AverageTemperature = %d, want within ±5 of the 18°C observation", forecast.AverageTemperature)
	}
}

func TestForecastService_GetForecast_Errors(t *testing.T) {
	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeOrderRepository{err: errors.New("connection refused")}
		provider := stubWeatherProvider{obs: models.WeatherObservation{Conditions: "clear sky"}}
		service := NewForecastService(repo, provider, weather.NewSimulator(1), 15, serviceTestLogger(), testMetrics)

		if _, err := service.GetForecast(context.Background(), "Mumbai"); err == nil {
			t.Fatal("GetForecast() error = nil, want repository error")
		}
	})

	t.Run("weather provider failure", func(t *testing.T) {
		repo := &fakeOrderRepository{}
		provider := stubWeatherProvider{err: errors.New("api unavailable")}
		service := NewForecastService(repo, provider, weather.NewSimulator(1), 15, serviceTestLogger(), testMetrics)

		if _, err := service.GetForecast(context.Background(), "Mumbai"); err == nil {
			t.Fatal("GetForecast() error = nil, want provider error")
		}
	})
}

func TestForecastService_GetSummary(t *testing.T) {
	repo := &fakeOrderRepository{
		records: []models.OrderRecord{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Orders: 40},
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Orders: 60},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Orders: 50},
		},
	}
	service := NewForecastService(repo, stubWeatherProvider{}, weather.NewSimulator(1), 15, serviceTestLogger(), testMetrics)

	summary, err := service.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	if summary.TotalOrders != 150 {
		t.Errorf("TotalOrders = %d, want 150", summary.TotalOrders)
	}
	if summary.DailyAverage != 50 {
		t.Errorf("DailyAverage = %d, want 50", summary.DailyAverage)
	}
	if summary.LatestOrders != 50 {
		t.Errorf("LatestOrders = %d, want 50", summary.LatestOrders)
	}
	if summary.RecordCount != 3 {
		t.Errorf("RecordCount = %d, want 3", summary.RecordCount)
	}
	if len(summary.PeakDays) != 3 {
		t.Errorf("PeakDays length = %d, want 3", len(summary.PeakDays))
	}
	if summary.PeakDays[0].Orders != 60 {
		t.Errorf("top peak = %+v, want 60 orders", summary.PeakDays[0])
	}
}

func TestForecastService_GetSummary_Empty(t *testing.T) {
	service := NewForecastService(&fakeOrderRepository{}, stubWeatherProvider{}, weather.NewSimulator(1), 15, serviceTestLogger(), testMetrics)

	summary, err := service.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}

	if summary.TotalOrders != 0 || summary.DailyAverage != 0 || summary.RecordCount != 0 {
		t.Errorf("empty summary = %+v, want zeros", summary)
	}
}
