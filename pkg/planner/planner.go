// Package planner builds day-by-day itineraries for a city.
//
// The "route" is not optimised geographically: places are ordered by category,
// then by popularity, and the ordered list is cut into contiguous days.
package planner

import (
	"fmt"
	"sort"

	"touristplaces/pkg/dataset"
	"touristplaces/pkg/types"
)

const (
	MinDays     = 1
	MaxDays     = 7
	DefaultDays = 3
)

var ErrInvalidDays = fmt.Errorf("number of days must be between %d and %d", MinDays, MaxDays)

// SortForRoute returns a copy of places ordered by category ascending, then by
// monthly visitors descending. Equal keys keep their input order.
func SortForRoute(places []types.Place) []types.Place {
	sorted := make([]types.Place, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].MonthlyVisitors > sorted[j].MonthlyVisitors
	})
	return sorted
}

// SplitRoute sorts places with SortForRoute and cuts them into days contiguous
// groups. Group sizes differ by at most one and the larger groups come first.
// When days exceeds len(places) the trailing groups are empty. days < 1
// returns nil.
func SplitRoute(places []types.Place, days int) [][]types.Place {
	if days < 1 {
		return nil
	}
	sorted := SortForRoute(places)

	size, extra := len(sorted)/days, len(sorted)%days
	groups := make([][]types.Place, days)
	start := 0
	for d := range groups {
		n := size
		if d < extra {
			n++
		}
		groups[d] = sorted[start : start+n : start+n]
		start += n
	}
	return groups
}

// Plan splits the places of city into an itinerary of days.
func Plan(ds *dataset.Dataset, city string, days int) (types.Itinerary, error) {
	if days < MinDays || days > MaxDays {
		return types.Itinerary{}, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return types.Itinerary{}, err
	}

	it := types.Itinerary{City: city, Days: make([]types.ItineraryDay, 0, days)}
	for i, group := range SplitRoute(places, days) {
		it.Days = append(it.Days, types.ItineraryDay{Day: i + 1, Places: group})
	}
	return it, nil
}
