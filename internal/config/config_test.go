package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Weather.DefaultCity != "Mumbai" {
		t.Errorf("Weather.DefaultCity = %q, want Mumbai", cfg.Weather.DefaultCity)
	}
	if cfg.Weather.BaseURL != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("Weather.BaseURL = %q", cfg.Weather.BaseURL)
	}
	if cfg.Forecast.AvgOrderValue != 15.0 {
		t.Errorf("Forecast.AvgOrderValue = %v, want 15.0", cfg.Forecast.AvgOrderValue)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WEATHER_DEFAULT_CITY", "Pune")
	t.Setenv("FORECAST_AVG_ORDER_VALUE", "22.5")
	t.Setenv("WEATHER_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Weather.DefaultCity != "Pune" {
		t.Errorf("Weather.DefaultCity = %q, want Pune", cfg.Weather.DefaultCity)
	}
	if cfg.Forecast.AvgOrderValue != 22.5 {
		t.Errorf("Forecast.AvgOrderValue = %v, want 22.5", cfg.Forecast.AvgOrderValue)
	}
	if cfg.Weather.Timeout != 3*time.Second {
		t.Errorf("Weather.Timeout = %v, want 3s", cfg.Weather.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Host: "localhost", Database: "data_weaver", MaxOpenConns: 25, MaxIdleConns: 5},
			Forecast: ForecastConfig{AvgOrderValue: 15},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: true,
		},
		{
			name:    "missing database name",
			mutate:  func(c *Config) { c.Database.Database = "" },
			wantErr: true,
		},
		{
			name:    "idle connections exceed open",
			mutate:  func(c *Config) { c.Database.MaxIdleConns = 50 },
			wantErr: true,
		},
		{
			name:    "non-positive order value",
			mutate:  func(c *Config) { c.Forecast.AvgOrderValue = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
