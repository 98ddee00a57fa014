package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

// Provider supplies current weather observations for a city
type Provider interface {
	Current(ctx context.Context, city string) (models.WeatherObservation, error)
}

// Config holds weather client configuration
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client fetches current conditions from the OpenWeatherMap API
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewClient creates a new OpenWeatherMap client
func NewClient(cfg Config, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// owmResponse mirrors the subset of the OpenWeatherMap current-weather
// payload this service consumes
type owmResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

// Current fetches the current observation for a city in metric units
func (c *Client) Current(ctx context.Context, city string) (models.WeatherObservation, error) {
	timer := time.Now()
	defer func() {
		c.metrics.WeatherFetchDuration.Observe(time.Since(timer).Seconds())
	}()

	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.metrics.RecordWeatherFetch("error")
		return models.WeatherObservation{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordWeatherFetch("error")
		return models.WeatherObservation{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordWeatherFetch("error")
		return models.WeatherObservation{}, fmt.Errorf("weather request failed: %s", resp.Status)
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordWeatherFetch("error")
		return models.WeatherObservation{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	obs := models.WeatherObservation{
		Temperature: int(math.Round(payload.Main.Temp)),
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		City:        payload.Name,
		Country:     payload.Sys.Country,
	}
	if len(payload.Weather) > 0 {
		obs.Conditions = payload.Weather[0].Description
	}

	c.metrics.RecordWeatherFetch("ok")
	c.logger.Debug(ctx, "[WEATHER_FETCH] Current weather fetched", logging.Fields{
		"city":        obs.City,
		"temperature": obs.Temperature,
		"conditions":  obs.Conditions,
	})

	return obs, nil
}
