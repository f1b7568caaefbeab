package trend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touristplaces/pkg/dataset"
)

func TestForecastLinear(t *testing.T) {
	got, err := Forecast([]float64{10, 20, 30, 40}, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{50, 60}, got, 1e-9)
}

func TestForecastDefaultHorizon(t *testing.T) {
	got, err := Forecast([]float64{5, 5}, 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultHorizon)
	assert.InDeltaSlice(t, []float64{5, 5, 5, 5, 5, 5}, got, 1e-9)
}

func TestForecastInsufficientData(t *testing.T) {
	_, err := Forecast([]float64{42}, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Forecast(nil, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestForecastHorizonBounds(t *testing.T) {
	got, err := Forecast([]float64{1, 2}, MaxHorizon)
	require.NoError(t, err)
	assert.Len(t, got, MaxHorizon)

	_, err = Forecast([]float64{1, 2}, MaxHorizon+1)
	assert.ErrorIs(t, err, ErrHorizonTooLong)
	_, err = Forecast([]float64{1, 2}, 1<<40)
	assert.ErrorIs(t, err, ErrHorizonTooLong)
}

func TestModelForecastNonPositiveHorizon(t *testing.T) {
	m := Model{Intercept: 1, Slope: 1, Observations: 2}
	for _, horizon := range []int{0, -1, -1 << 40} {
		assert.NotPanics(t, func() {
			assert.Empty(t, m.Forecast(2, horizon))
		})
	}
}

func TestFit(t *testing.T) {
	m, err := Fit([]float64{4, 4, 8, 8})
	require.NoError(t, err)
	assert.InDelta(t, 1.6, m.Slope, 1e-9)
	assert.InDelta(t, 3.6, m.Intercept, 1e-9)
	assert.Equal(t, 4, m.Observations)
	assert.InDelta(t, 3.6+1.6*10, m.Predict(10), 1e-9)
	assert.InDeltaSlice(t, []float64{10, 11.6}, m.Forecast(4, 2), 1e-9)
}

func TestForCity(t *testing.T) {
	csv := `place_name,city,category,type,latitude,longitude,monthly_visitors,best_time_to_visit,historical_rainfall,temperature_trend
A,Pune,Fort,Historical,18.5,73.8,100,October-March,700,12-35
B,Pune,Fort,Historical,18.5,73.8,200,October-March,700,12-35
C,Pune,Fort,Historical,18.5,73.8,300,October-March,700,12-35
D,Goa,Beach,Leisure,15.3,74.1,900,November-February,2900,22-33
`
	ds, err := dataset.Read(strings.NewReader(csv))
	require.NoError(t, err)

	f, err := ForCity(ds, "Pune", 3)
	require.NoError(t, err)
	assert.Equal(t, "Pune", f.City)
	assert.Equal(t, []float64{100, 200, 300}, f.History)
	assert.InDeltaSlice(t, []float64{400, 500, 600}, f.Predictions, 1e-6)
	assert.InDelta(t, 100, f.Slope, 1e-9)
	assert.InDelta(t, 100, f.Intercept, 1e-9)

	_, err = ForCity(ds, "Goa", 3)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ForCity(ds, "Atlantis", 3)
	assert.ErrorIs(t, err, dataset.ErrUnknownCity)

	_, err = ForCity(ds, "Pune", MaxHorizon+1)
	assert.ErrorIs(t, err, ErrHorizonTooLong)
}
