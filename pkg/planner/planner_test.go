package planner

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touristplaces/pkg/dataset"
	"touristplaces/pkg/types"
)

func place(name, category string, visitors int) types.Place {
	return types.Place{Name: name, City: "Agra", Category: category, MonthlyVisitors: visitors}
}

func names(places []types.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Name
	}
	return out
}

func TestSplitRouteExample(t *testing.T) {
	input := []types.Place{
		place("D", "cat2", 50),
		place("A", "cat1", 100),
		place("E", "cat2", 10),
		place("C", "cat2", 90),
		place("B", "cat1", 80),
	}

	groups := SplitRoute(input, 2)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"A", "B", "C"}, names(groups[0]))
	assert.Equal(t, []string{"D", "E"}, names(groups[1]))

	// input is left untouched
	assert.Equal(t, []string{"D", "A", "E", "C", "B"}, names(input))
}

func TestSplitRouteSizes(t *testing.T) {
	tests := []struct {
		places int
		days   int
		want   []int
	}{
		{places: 0, days: 3, want: []int{0, 0, 0}},
		{places: 2, days: 5, want: []int{1, 1, 0, 0, 0}},
		{places: 7, days: 1, want: []int{7}},
		{places: 7, days: 3, want: []int{3, 2, 2}},
		{places: 10, days: 4, want: []int{3, 3, 2, 2}},
		{places: 14, days: 7, want: []int{2, 2, 2, 2, 2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_in_%d", tt.places, tt.days), func(t *testing.T) {
			input := make([]types.Place, tt.places)
			for i := range input {
				input[i] = place(fmt.Sprintf("p%d", i), "c", i)
			}
			groups := SplitRoute(input, tt.days)
			sizes := make([]int, len(groups))
			for i, g := range groups {
				sizes[i] = len(g)
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestSplitRouteInvalidDays(t *testing.T) {
	assert.Nil(t, SplitRoute([]types.Place{place("A", "c", 1)}, 0))
	assert.Nil(t, SplitRoute(nil, -2))
}

func TestSplitRouteProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	categories := []string{"Fort", "Market", "Monument", "Temple"}

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(30)
		days := 1 + rng.Intn(MaxDays)
		input := make([]types.Place, n)
		for i := range input {
			// few distinct visitor counts so equal keys are common
			input[i] = place(fmt.Sprintf("p%02d", i), categories[rng.Intn(len(categories))], 10*rng.Intn(4))
		}

		groups := SplitRoute(input, days)
		require.Len(t, groups, days)

		var flat []types.Place
		smallest, largest := n, 0
		for d, g := range groups {
			flat = append(flat, g...)
			smallest = min(smallest, len(g))
			largest = max(largest, len(g))
			if d > 0 {
				assert.GreaterOrEqual(t, len(groups[d-1]), len(g), "earlier days are at least as large")
			}
		}
		assert.Len(t, flat, n)
		assert.LessOrEqual(t, largest-smallest, 1)

		seen := make(map[string]int)
		for _, p := range flat {
			seen[p.Name]++
		}
		for _, p := range input {
			assert.Equal(t, 1, seen[p.Name], "%s appears exactly once", p.Name)
		}

		inputPos := make(map[string]int)
		for i, p := range input {
			inputPos[p.Name] = i
		}
		for i := 1; i < len(flat); i++ {
			prev, cur := flat[i-1], flat[i]
			require.LessOrEqual(t, strings.Compare(prev.Category, cur.Category), 0)
			if prev.Category == cur.Category {
				require.GreaterOrEqual(t, prev.MonthlyVisitors, cur.MonthlyVisitors)
				if prev.MonthlyVisitors == cur.MonthlyVisitors {
					require.Less(t, inputPos[prev.Name], inputPos[cur.Name], "equal keys keep input order")
				}
			}
		}
	}
}

const fixture = `place_name,city,category,type,latitude,longitude,monthly_visitors,best_time_to_visit,historical_rainfall,temperature_trend
Taj Mahal,Agra,Monument,Historical,27.1751,78.0421,1500000,October-March,700,9-42
Agra Fort,Agra,Fort,Historical,27.1795,78.0211,560000,October-March,700,9-42
Mehtab Bagh,Agra,Garden,Leisure,27.1800,78.0422,120000,October-March,700,9-42
Itmad-ud-Daulah,Agra,Monument,Historical,27.1929,78.0310,150000,October-March,700,9-42
Amber Fort,Jaipur,Fort,Historical,26.9855,75.8513,520000,October-March,650,10-41
`

func TestPlan(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(fixture))
	require.NoError(t, err)

	it, err := Plan(ds, "Agra", 3)
	require.NoError(t, err)
	assert.Equal(t, "Agra", it.City)
	require.Len(t, it.Days, 3)
	assert.Equal(t, 1, it.Days[0].Day)
	assert.Equal(t, []string{"Agra Fort", "Mehtab Bagh"}, names(it.Days[0].Places))
	assert.Equal(t, []string{"Taj Mahal"}, names(it.Days[1].Places))
	assert.Equal(t, []string{"Itmad-ud-Daulah"}, names(it.Days[2].Places))

	it, err = Plan(ds, "Jaipur", 7)
	require.NoError(t, err)
	require.Len(t, it.Days, 7)
	assert.Len(t, it.Days[0].Places, 1)
	assert.NotNil(t, it.Days[6].Places)
	assert.Empty(t, it.Days[6].Places)
}

func TestPlanErrors(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(fixture))
	require.NoError(t, err)

	for _, days := range []int{0, 8, -1} {
		_, err := Plan(ds, "Agra", days)
		assert.ErrorIs(t, err, ErrInvalidDays)
	}

	_, err = Plan(ds, "Atlantis", 2)
	assert.ErrorIs(t, err, dataset.ErrUnknownCity)
}
