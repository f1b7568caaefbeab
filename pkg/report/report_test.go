package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"touristplaces/pkg/dataset"
	"touristplaces/pkg/planner"
)

const fixture = `place_name,city,category,type,latitude,longitude,monthly_visitors,best_time_to_visit,historical_rainfall,temperature_trend
Taj Mahal,Agra,Monument,Historical,27.1751,78.0421,1500000,October-March,700,9-42
Agra Fort,Agra,Fort,Historical,27.1795,78.0211,560000,October-March,700,9-42
Mehtab Bagh,Agra,Garden,Leisure,27.1800,78.0422,120000,October-March,700,9-42
Gulmarg Gondola,Gulmarg,Adventure,Leisure,34.0484,74.3805,90000,December-March,1100,-8-24
`

func loadFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(fixture))
	require.NoError(t, err)
	return ds
}

func TestItinerary(t *testing.T) {
	ds := loadFixture(t)
	it, err := planner.Plan(ds, "Agra", 2)
	require.NoError(t, err)

	f, err := Itinerary(it)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetItinerary}, f.GetSheetList())
	rows, err := f.GetRows(SheetItinerary)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Day", "Place", "Category", "Type", "Best Time to Visit", "Expected Visitors"},
		{"1", "Agra Fort", "Fort", "Historical", "October-March", "560000"},
		{"1", "Mehtab Bagh", "Garden", "Leisure", "October-March", "120000"},
		{"2", "Taj Mahal", "Monument", "Historical", "October-March", "1500000"},
	}, rows)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer reopened.Close()
	value, err := reopened.GetCellValue(SheetItinerary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Taj Mahal", value)
}

func TestCityReport(t *testing.T) {
	ds := loadFixture(t)

	f, err := CityReport(ds, "Agra", 3, 2)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPlaces, SheetItinerary, SheetForecast, SheetWeather}, f.GetSheetList())

	places, err := f.GetRows(SheetPlaces)
	require.NoError(t, err)
	assert.Len(t, places, 4)
	assert.Equal(t, "Taj Mahal", places[1][0])

	forecast, err := f.GetRows(SheetForecast)
	require.NoError(t, err)
	require.Len(t, forecast, 3)
	assert.Equal(t, []string{"Period", "Predicted Visitors"}, forecast[0])
	assert.Equal(t, "4", forecast[1][0])

	weather, err := f.GetRows(SheetWeather)
	require.NoError(t, err)
	assert.Equal(t, []string{"Temperature Range (°C)", "9-42"}, weather[2])
}

func TestCityReportSinglePlace(t *testing.T) {
	ds := loadFixture(t)

	f, err := CityReport(ds, "Gulmarg", 1, 6)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SheetForecast, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Not enough data to forecast visitors", value)
}

func TestCityReportErrors(t *testing.T) {
	ds := loadFixture(t)

	_, err := CityReport(ds, "Atlantis", 3, 6)
	assert.ErrorIs(t, err, dataset.ErrUnknownCity)

	_, err = CityReport(ds, "Agra", 9, 6)
	assert.ErrorIs(t, err, planner.ErrInvalidDays)
}
