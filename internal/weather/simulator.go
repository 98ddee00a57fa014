package weather

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

var simulatedConditions = []string{"Sunny", "Cloudy", "Rainy", "Partly Cloudy"}

// Simulator fabricates weather observations from a seeded source.
// Observations are marked Simulated so downstream consumers can flag
// them to users.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a simulator over the given seed
func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Current returns a fabricated observation for the city
func (s *Simulator) Current(_ context.Context, city string) (models.WeatherObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.WeatherObservation{
		Temperature: s.rng.Intn(30) + 5,   // 5-35°C
		Humidity:    s.rng.Intn(40) + 40, // 40-80%
		WindSpeed:   float64(s.rng.Intn(12)),
		Conditions:  simulatedConditions[s.rng.Intn(len(simulatedConditions))],
		City:        city,
		Simulated:   true,
	}, nil
}

// TemperatureDay is one day of the simulated temperature history
type TemperatureDay struct {
	Date        time.Time `json:"date"`
	Temperature int       `json:"temperature"`
}

// History fabricates a trailing temperature window within ±5°C of the
// current temperature, oldest day first.
func (s *Simulator) History(current models.WeatherObservation, days int, now time.Time) []TemperatureDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]TemperatureDay, 0, days)
	for i := 0; i < days; i++ {
		variation := (s.rng.Float64() - 0.5) * 10
		history = append(history, TemperatureDay{
			Date:        now.AddDate(0, 0, -(days - 1 - i)),
			Temperature: current.Temperature + int(variation),
		})
	}
	return history
}

// FallbackProvider tries a primary provider and falls back to the
// simulator when it fails. The correlation core has no fallback logic
// of its own; the degraded observation is produced here, at the
// collaborator boundary.
type FallbackProvider struct {
	primary  Provider
	fallback *Simulator
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewFallbackProvider wraps primary with simulated fallback
func NewFallbackProvider(primary Provider, fallback *Simulator, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *FallbackProvider {
	return &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// Current returns the primary observation, or a simulated one when the
// primary provider is unavailable.
func (p *FallbackProvider) Current(ctx context.Context, city string) (models.WeatherObservation, error) {
	obs, err := p.primary.Current(ctx, city)
	if err == nil {
		return obs, nil
	}

	p.logger.Warn(ctx, "[WEATHER_FALLBACK] Falling back to simulated weather data", logging.Fields{
		"city":  city,
		"error": err.Error(),
	})
	p.metrics.RecordWeatherFetch("fallback")

	return p.fallback.Current(ctx, city)
}
