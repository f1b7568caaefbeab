// Package report exports itineraries and city analytics as xlsx workbooks.
package report

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"touristplaces/pkg/dataset"
	"touristplaces/pkg/planner"
	"touristplaces/pkg/trend"
	"touristplaces/pkg/types"
)

const (
	SheetPlaces    = "Places"
	SheetItinerary = "Itinerary"
	SheetForecast  = "Forecast"
	SheetWeather   = "Weather"
)

type sheet struct {
	f      *excelize.File
	name   string
	header int
	row    int
}

func newSheet(f *excelize.File, name string, first bool) (*sheet, error) {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	return &sheet{f: f, name: name, header: bold, row: 1}, nil
}

func (s *sheet) writeHeader(headers ...interface{}) error {
	if err := s.writeRow(headers...); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := s.f.SetCellStyle(s.name, "A1", last, s.header); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return s.f.SetColWidth(s.name, "A", lastCol, 20)
}

func (s *sheet) writeRow(values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		return err
	}
	s.row++
	return nil
}

// Itinerary writes one row per planned place.
func Itinerary(it types.Itinerary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeItinerary(f, it, true); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeItinerary(f *excelize.File, it types.Itinerary, first bool) error {
	s, err := newSheet(f, SheetItinerary, first)
	if err != nil {
		return err
	}
	if err := s.writeHeader("Day", "Place", "Category", "Type", "Best Time to Visit", "Expected Visitors"); err != nil {
		return err
	}
	for _, day := range it.Days {
		for _, p := range day.Places {
			if err := s.writeRow(day.Day, p.Name, p.Category, p.Type, p.BestTimeToVisit, p.MonthlyVisitors); err != nil {
				return err
			}
		}
	}
	return nil
}

// CityReport collects the places, a days-long itinerary, a horizon-long
// visitor forecast and the weather of city into one workbook.
func CityReport(ds *dataset.Dataset, city string, days, horizon int) (*excelize.File, error) {
	places, err := ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	it, err := planner.Plan(ds, city, days)
	if err != nil {
		return nil, err
	}
	weather, err := ds.Weather(city)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := writeCityReport(f, city, places, it, weather, ds, horizon); err != nil {
		f.Close()
		return nil, fmt.Errorf("build report for %s: %w", city, err)
	}
	return f, nil
}

func writeCityReport(f *excelize.File, city string, places []types.Place, it types.Itinerary, weather types.WeatherSummary, ds *dataset.Dataset, horizon int) error {
	s, err := newSheet(f, SheetPlaces, true)
	if err != nil {
		return err
	}
	if err := s.writeHeader("Place", "Category", "Type", "Latitude", "Longitude", "Monthly Visitors", "Best Time to Visit"); err != nil {
		return err
	}
	for _, p := range places {
		if err := s.writeRow(p.Name, p.Category, p.Type, p.Location.Lat, p.Location.Lon, p.MonthlyVisitors, p.BestTimeToVisit); err != nil {
			return err
		}
	}

	if err := writeItinerary(f, it, false); err != nil {
		return err
	}

	s, err = newSheet(f, SheetForecast, false)
	if err != nil {
		return err
	}
	forecast, err := trend.ForCity(ds, city, horizon)
	switch {
	case errors.Is(err, trend.ErrInsufficientData):
		if err := s.writeRow("Not enough data to forecast visitors"); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := s.writeHeader("Period", "Predicted Visitors"); err != nil {
			return err
		}
		for i, v := range forecast.Predictions {
			if err := s.writeRow(len(forecast.History)+i+1, v); err != nil {
				return err
			}
		}
	}

	s, err = newSheet(f, SheetWeather, false)
	if err != nil {
		return err
	}
	rows := [][]interface{}{
		{"City", weather.City},
		{"Historical Rainfall (mm)", weather.Rainfall},
		{"Temperature Range (°C)", weather.Temperature.String()},
		{"Average Temperature (°C)", weather.AverageTemperature},
		{"Best Time to Visit", weather.BestTimeToVisit},
	}
	for _, r := range rows {
		if err := s.writeRow(r...); err != nil {
			return err
		}
	}
	return s.f.SetColWidth(SheetWeather, "A", "B", 28)
}
