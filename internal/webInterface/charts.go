package webInterface

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"touristplaces/pkg/charts"
	"touristplaces/pkg/trend"
	"touristplaces/pkg/types"
)

func (s *Server) cityChartHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	city := vars["city"]
	if !s.ds.HasCity(city) {
		s.respondWithError(w, r, NewAPIError(ErrorCodeResourceNotFound, "unknown city: "+city, nil, http.StatusNotFound))
		return
	}

	var (
		chart *charts.Chart
		err   error
	)
	switch vars["chart"] {
	case "trend":
		chart, err = s.trendChart(city)
	case "top":
		chart, err = s.topChart(city)
	case "categories":
		chart, err = s.distributionChart("Category Distribution", city, s.ds.CategoryCounts)
	case "types":
		chart, err = s.distributionChart("Type Distribution", city, s.ds.TypeCounts)
	case "map":
		chart, err = s.mapChart(city)
	case "temperature":
		chart, err = s.temperatureChart(city)
	default:
		s.respondWithError(w, r, NewAPIError(ErrorCodeResourceNotFound, "unknown chart: "+vars["chart"], nil, http.StatusNotFound))
		return
	}
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.sendChart(w, r, chart)
}

func (s *Server) trendChart(city string) (*charts.Chart, error) {
	forecast, err := trend.ForCity(s.ds, city, s.horizon)
	if err != nil {
		return nil, err
	}
	return charts.VisitorTrend(forecast)
}

func (s *Server) topChart(city string) (*charts.Chart, error) {
	top, err := s.ds.TopBusiest(city, topPlaces)
	if err != nil {
		return nil, err
	}
	return charts.TopPlaces(top)
}

func (s *Server) distributionChart(title, city string, count func(string) ([]types.CategoryCount, error)) (*charts.Chart, error) {
	counts, err := count(city)
	if err != nil {
		return nil, err
	}
	return charts.Distribution(title, counts)
}

func (s *Server) mapChart(city string) (*charts.Chart, error) {
	places, err := s.ds.PlacesInCity(city)
	if err != nil {
		return nil, err
	}
	return charts.PlaceMap(places)
}

func (s *Server) temperatureChart(city string) (*charts.Chart, error) {
	weather, err := s.ds.Weather(city)
	if err != nil {
		return nil, err
	}
	return charts.TemperatureGauge(weather)
}

func (s *Server) compareChartHandler(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.ds.Compare(r.URL.Query()["city"])
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	chart, err := charts.CityTotals(cmp.Totals)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.sendChart(w, r, chart)
}

// sendChart encodes the whole image before the status line is written.
func (s *Server) sendChart(w http.ResponseWriter, r *http.Request, chart *charts.Chart) {
	var buf bytes.Buffer
	if _, err := chart.WriteTo(&buf); err != nil {
		s.respondWithError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("send chart", zap.Error(err))
	}
}
