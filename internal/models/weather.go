package models

import (
	"time"
)

// WeatherObservation represents a snapshot of current conditions for a
// city. Simulated marks fallback data generated when the provider is
// unreachable.
type WeatherObservation struct {
	Temperature int     `json:"temperature"` // °C, rounded
	Humidity    int     `json:"humidity"`    // percent, 0-100
	WindSpeed   float64 `json:"wind_speed"`  // m/s
	Conditions  string  `json:"conditions"`  // free-text description
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Simulated   bool    `json:"simulated,omitempty"`
}

// Season is a calendar season derived from the month
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// TimeOfDay is a meal-oriented time bucket derived from the hour
type TimeOfDay string

const (
	TimeLunch  TimeOfDay = "lunch"
	TimeDinner TimeOfDay = "dinner"
	TimeLate   TimeOfDay = "late"
	TimeOther  TimeOfDay = "other"
)

// SeasonOf derives the season from the calendar month of t.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// TimeOfDayAt derives the time-of-day bucket from an hour (0-23).
func TimeOfDayAt(hour int) TimeOfDay {
	switch {
	case hour >= 11 && hour <= 14:
		return TimeLunch
	case hour >= 17 && hour <= 21:
		return TimeDinner
	case hour >= 22 || hour <= 6:
		return TimeLate
	default:
		return TimeOther
	}
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
