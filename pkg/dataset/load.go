package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"touristplaces/pkg/types"
)

// Column names of the source table.
const (
	ColName        = "place_name"
	ColCity        = "city"
	ColCategory    = "category"
	ColType        = "type"
	ColLatitude    = "latitude"
	ColLongitude   = "longitude"
	ColVisitors    = "monthly_visitors"
	ColBestTime    = "best_time_to_visit"
	ColRainfall    = "historical_rainfall"
	ColTemperature = "temperature_trend"
)

var requiredColumns = []string{
	ColName, ColCity, ColCategory, ColType, ColLatitude, ColLongitude,
	ColVisitors, ColBestTime, ColRainfall, ColTemperature,
}

// Load reads the places table at path.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	ds, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Read parses a comma separated places table with a header row. A table with
// a header and no rows is an empty dataset.
func Read(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	df := readFrame(raw, true)
	if df.Err != nil {
		header, ok := headerOnly(raw)
		if !ok {
			return nil, fmt.Errorf("read csv: %w", df.Err)
		}
		if err := checkColumns(header); err != nil {
			return nil, err
		}
		return New(nil), nil
	}
	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	columns := make(map[string][]string, len(requiredColumns))
	for _, name := range requiredColumns {
		columns[name] = df.Col(name).Records()
	}

	places, err := createPlaceList(columns, df.Nrow())
	if err != nil {
		return nil, err
	}
	return New(places), nil
}

// readFrame loads every cell as text exactly as written; gota's NA markers
// are switched off.
func readFrame(raw []byte, hasHeader bool) dataframe.DataFrame {
	return dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(hasHeader),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
}

// headerOnly returns the header of a table that has no data rows.
func headerOnly(raw []byte) ([]string, bool) {
	df := readFrame(raw, false)
	if df.Err != nil || df.Nrow() != 1 {
		return nil, false
	}
	records := df.Records()
	return records[1], true
}

func checkColumns(header []string) error {
	names := make(map[string]bool, len(header))
	for _, name := range header {
		names[name] = true
	}
	for _, name := range requiredColumns {
		if !names[name] {
			return fmt.Errorf("missing column %q", name)
		}
	}
	return nil
}

func createPlaceList(columns map[string][]string, rows int) ([]types.Place, error) {
	placeList := make([]types.Place, 0, rows)

	for i := 0; i < rows; i++ {
		cell := func(col string) string {
			return strings.TrimSpace(columns[col][i])
		}
		fail := func(col string, err error) error {
			return fmt.Errorf("row %d, column %q: %w", i+1, col, err)
		}

		place := types.Place{
			ID:              i + 1,
			Name:            cell(ColName),
			City:            cell(ColCity),
			Category:        cell(ColCategory),
			Type:            cell(ColType),
			BestTimeToVisit: cell(ColBestTime),
		}
		if place.Name == "" {
			return nil, fail(ColName, fmt.Errorf("empty value"))
		}
		if place.City == "" {
			return nil, fail(ColCity, fmt.Errorf("empty value"))
		}

		var err error
		if place.Location.Lat, err = strconv.ParseFloat(cell(ColLatitude), 64); err != nil {
			return nil, fail(ColLatitude, err)
		}
		if place.Location.Lon, err = strconv.ParseFloat(cell(ColLongitude), 64); err != nil {
			return nil, fail(ColLongitude, err)
		}
		if place.MonthlyVisitors, err = strconv.Atoi(cell(ColVisitors)); err != nil {
			return nil, fail(ColVisitors, err)
		}
		if place.MonthlyVisitors < 0 {
			return nil, fail(ColVisitors, fmt.Errorf("negative visitor count %d", place.MonthlyVisitors))
		}
		if place.Rainfall, err = strconv.ParseFloat(cell(ColRainfall), 64); err != nil {
			return nil, fail(ColRainfall, err)
		}
		if place.Temperature, err = types.ParseTemperatureRange(cell(ColTemperature)); err != nil {
			return nil, fail(ColTemperature, err)
		}

		placeList = append(placeList, place)
	}
	return placeList, nil
}
