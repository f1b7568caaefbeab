package types

import (
	"fmt"
	"strconv"
	"strings"
)

type Place struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	City            string           `json:"city"`
	Category        string           `json:"category"`
	Type            string           `json:"type"`
	Location        GeoPoint         `json:"location"`
	MonthlyVisitors int              `json:"monthly_visitors"`
	BestTimeToVisit string           `json:"best_time_to_visit"`
	Rainfall        float64          `json:"historical_rainfall"`
	Temperature     TemperatureRange `json:"temperature"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TemperatureRange is a min/max pair in degrees Celsius.
type TemperatureRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (t TemperatureRange) Average() float64 {
	return float64(t.Min+t.Max) / 2
}

func (t TemperatureRange) String() string {
	return fmt.Sprintf("%d-%d", t.Min, t.Max)
}

// ParseTemperatureRange reads the "min-max" form used by the source table.
// Either bound may be negative, e.g. "-5-10" or "-12--3".
func ParseTemperatureRange(s string) (TemperatureRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TemperatureRange{}, fmt.Errorf("empty temperature range")
	}
	// skip the sign of the lower bound, the next '-' is the separator
	start := 0
	if s[0] == '-' {
		start = 1
	}
	sep := strings.IndexByte(s[start:], '-')
	if sep < 0 {
		return TemperatureRange{}, fmt.Errorf("invalid temperature range %q", s)
	}
	sep += start
	lo, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return TemperatureRange{}, fmt.Errorf("invalid temperature range %q: %w", s, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return TemperatureRange{}, fmt.Errorf("invalid temperature range %q: %w", s, err)
	}
	if lo > hi {
		return TemperatureRange{}, fmt.Errorf("invalid temperature range %q: min above max", s)
	}
	return TemperatureRange{Min: lo, Max: hi}, nil
}

type PlacesResponse struct {
	Name        string  `json:"name"`
	Total       int     `json:"total"`
	Places      []Place `json:"places"`
	PrevPage    int     `json:"prev_page"`
	CurrentPage int     `json:"current_page"`
	NextPage    int     `json:"next_page"`
	LastPage    int     `json:"last_page"`
}

type NearbyPlace struct {
	Place
	DistanceKm float64 `json:"distance_km"`
}

type CitySummary struct {
	City          string `json:"city"`
	TotalVisitors int    `json:"total_visitors"`
	Places        int    `json:"places"`
}

type CategoryCount struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type ItineraryDay struct {
	Day    int     `json:"day"`
	Places []Place `json:"places"`
}

type Itinerary struct {
	City string         `json:"city"`
	Days []ItineraryDay `json:"days"`
}

type Forecast struct {
	City        string    `json:"city"`
	History     []float64 `json:"history"`
	Predictions []float64 `json:"predictions"`
	Intercept   float64   `json:"intercept"`
	Slope       float64   `json:"slope"`
}

type WeatherSummary struct {
	City               string           `json:"city"`
	Rainfall           float64          `json:"historical_rainfall"`
	Temperature        TemperatureRange `json:"temperature"`
	AverageTemperature float64          `json:"average_temperature"`
	BestTimeToVisit    string           `json:"best_time_to_visit"`
}

type Analytics struct {
	City          string          `json:"city"`
	TotalVisitors int             `json:"total_visitors"`
	TopPlaces     []Place         `json:"top_places"`
	Categories    []CategoryCount `json:"categories"`
	Types         []CategoryCount `json:"types"`
	Weather       WeatherSummary  `json:"weather"`
}

type CityCategoryVisitors struct {
	City     string `json:"city"`
	Category string `json:"category"`
	Visitors int    `json:"monthly_visitors"`
}

type Comparison struct {
	Totals     []CitySummary          `json:"totals"`
	Categories []CityCategoryVisitors `json:"categories"`
	Weather    []WeatherSummary       `json:"weather"`
}
