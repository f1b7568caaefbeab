// Package dataset holds the read-only table of places. A Dataset is built once
// at start-up and handed to every consumer; nothing mutates it afterwards.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"touristplaces/pkg/geo"
	"touristplaces/pkg/types"
)

var (
	ErrUnknownCity  = errors.New("unknown city")
	ErrTooFewCities = errors.New("at least two cities are required")
)

type Dataset struct {
	places []types.Place
	cities []string
	byCity map[string][]int
}

// New builds a Dataset from places. The slice is copied.
func New(places []types.Place) *Dataset {
	ds := &Dataset{
		places: make([]types.Place, len(places)),
		byCity: make(map[string][]int),
	}
	copy(ds.places, places)

	for i, p := range ds.places {
		if _, ok := ds.byCity[p.City]; !ok {
			ds.cities = append(ds.cities, p.City)
		}
		ds.byCity[p.City] = append(ds.byCity[p.City], i)
	}
	return ds
}

func (ds *Dataset) Len() int {
	return len(ds.places)
}

func (ds *Dataset) All() []types.Place {
	out := make([]types.Place, len(ds.places))
	copy(out, ds.places)
	return out
}

// Cities lists the distinct cities in order of first appearance.
func (ds *Dataset) Cities() []string {
	out := make([]string, len(ds.cities))
	copy(out, ds.cities)
	return out
}

func (ds *Dataset) HasCity(city string) bool {
	_, ok := ds.byCity[city]
	return ok
}

func (ds *Dataset) PlacesInCity(city string) ([]types.Place, error) {
	idx, ok := ds.byCity[city]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	out := make([]types.Place, 0, len(idx))
	for _, i := range idx {
		out = append(out, ds.places[i])
	}
	return out, nil
}

func (ds *Dataset) Categories(city string) ([]string, error) {
	return ds.distinct(city, func(p types.Place) string { return p.Category })
}

func (ds *Dataset) Types(city string) ([]string, error) {
	return ds.distinct(city, func(p types.Place) string { return p.Type })
}

func (ds *Dataset) distinct(city string, key func(types.Place) string) ([]string, error) {
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range places {
		k := key(p)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// Filter returns the places of city whose category is in categories and whose
// type is in kinds. An empty set does not restrict.
func (ds *Dataset) Filter(city string, categories, kinds []string) ([]types.Place, error) {
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	catSet := toSet(categories)
	typeSet := toSet(kinds)

	out := make([]types.Place, 0, len(places))
	for _, p := range places {
		if catSet != nil && !catSet[p.Category] {
			continue
		}
		if typeSet != nil && !typeSet[p.Type] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func (ds *Dataset) CitySummaries() []types.CitySummary {
	out := make([]types.CitySummary, 0, len(ds.cities))
	for _, city := range ds.cities {
		out = append(out, ds.summary(city))
	}
	return out
}

func (ds *Dataset) summary(city string) types.CitySummary {
	s := types.CitySummary{City: city}
	for _, i := range ds.byCity[city] {
		s.TotalVisitors += ds.places[i].MonthlyVisitors
		s.Places++
	}
	return s
}

func (ds *Dataset) TotalVisitors(city string) (int, error) {
	if !ds.HasCity(city) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return ds.summary(city).TotalVisitors, nil
}

// TopBusiest returns up to n places of city with the most visitors. Ties keep
// table order.
func (ds *Dataset) TopBusiest(city string, n int) ([]types.Place, error) {
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].MonthlyVisitors > places[j].MonthlyVisitors
	})
	if n < len(places) {
		places = places[:max(n, 0)]
	}
	return places, nil
}

func (ds *Dataset) CategoryCounts(city string) ([]types.CategoryCount, error) {
	return ds.counts(city, func(p types.Place) string { return p.Category })
}

func (ds *Dataset) TypeCounts(city string) ([]types.CategoryCount, error) {
	return ds.counts(city, func(p types.Place) string { return p.Type })
}

func (ds *Dataset) counts(city string, key func(types.Place) string) ([]types.CategoryCount, error) {
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	pos := make(map[string]int)
	var out []types.CategoryCount
	for _, p := range places {
		k := key(p)
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, types.CategoryCount{Label: k})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	for i := range out {
		out[i].Share = float64(out[i].Count) / float64(len(places)) * 100
	}
	return out, nil
}

// VisitorHistory is the visitor column of city in table order, the series the
// forecast is fitted on.
func (ds *Dataset) VisitorHistory(city string) ([]float64, error) {
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(places))
	for i, p := range places {
		out[i] = float64(p.MonthlyVisitors)
	}
	return out, nil
}

// Weather reports the climate columns of the first row of city.
func (ds *Dataset) Weather(city string) (types.WeatherSummary, error) {
	idx, ok := ds.byCity[city]
	if !ok {
		return types.WeatherSummary{}, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	first := ds.places[idx[0]]
	return types.WeatherSummary{
		City:               city,
		Rainfall:           first.Rainfall,
		Temperature:        first.Temperature,
		AverageTemperature: first.Temperature.Average(),
		BestTimeToVisit:    first.BestTimeToVisit,
	}, nil
}

// Compare aggregates two or more cities. Every section is ordered by city name,
// the per-category section then by category.
func (ds *Dataset) Compare(cities []string) (types.Comparison, error) {
	seen := make(map[string]bool)
	var selected []string
	for _, city := range cities {
		if seen[city] {
			continue
		}
		if !ds.HasCity(city) {
			return types.Comparison{}, fmt.Errorf("%w: %q", ErrUnknownCity, city)
		}
		seen[city] = true
		selected = append(selected, city)
	}
	if len(selected) < 2 {
		return types.Comparison{}, ErrTooFewCities
	}
	sort.Strings(selected)

	var cmp types.Comparison
	for _, city := range selected {
		cmp.Totals = append(cmp.Totals, ds.summary(city))

		weather, _ := ds.Weather(city)
		cmp.Weather = append(cmp.Weather, weather)

		byCategory := make(map[string]int)
		for _, i := range ds.byCity[city] {
			byCategory[ds.places[i].Category] += ds.places[i].MonthlyVisitors
		}
		categories := make([]string, 0, len(byCategory))
		for c := range byCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			cmp.Categories = append(cmp.Categories, types.CityCategoryVisitors{
				City:     city,
				Category: c,
				Visitors: byCategory[c],
			})
		}
	}
	return cmp, nil
}

// GetPlaces pages over the whole table in table order.
func (ds *Dataset) GetPlaces(_ context.Context, limit int, offset int) ([]types.Place, int, error) {
	total := len(ds.places)
	if limit < 0 || offset < 0 {
		return nil, total, fmt.Errorf("invalid page window limit=%d offset=%d", limit, offset)
	}
	if offset >= total {
		return []types.Place{}, total, nil
	}
	end := min(offset+limit, total)
	out := make([]types.Place, end-offset)
	copy(out, ds.places[offset:end])
	return out, total, nil
}

// Nearby returns the size places closest to point, nearest first.
func (ds *Dataset) Nearby(_ context.Context, point types.GeoPoint, size int) ([]types.NearbyPlace, error) {
	if !geo.Valid(point) {
		return nil, fmt.Errorf("invalid coordinates %v,%v", point.Lat, point.Lon)
	}
	out := make([]types.NearbyPlace, len(ds.places))
	for i, p := range ds.places {
		out[i] = types.NearbyPlace{Place: p, DistanceKm: geo.Distance(point, p.Location)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if size < len(out) {
		out = out[:max(size, 0)]
	}
	return out, nil
}
