package webInterface

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"touristplaces/pkg/geo"
	"touristplaces/pkg/planner"
	"touristplaces/pkg/report"
	"touristplaces/pkg/trend"
	"touristplaces/pkg/types"
)

const (
	topPlaces       = 5
	recommendations = 3
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type cityPlacesResponse struct {
	City   string        `json:"city"`
	Total  int           `json:"total"`
	Places []types.Place `json:"places"`
}

// intParam reads a positive integer query parameter, def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return n, nil
}

func (s *Server) getPlaces(ctx context.Context, r *http.Request) (*types.PlacesResponse, error) {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = "1"
	}
	realPage, err := strconv.Atoi(page)
	if err != nil || realPage < 1 || realPage > math.MaxInt/s.pageSize {
		return nil, invalidParam("page", page)
	}

	offset := (realPage - 1) * s.pageSize
	places, totalPlaces, err := s.store.GetPlaces(ctx, s.pageSize, offset)
	if err != nil {
		return nil, err
	}

	totalPages := totalPlaces / s.pageSize
	if totalPlaces%s.pageSize != 0 {
		totalPages++
	}
	if realPage > max(totalPages, 1) {
		return nil, invalidParam("page", page)
	}

	return &types.PlacesResponse{
		Name:        "Places",
		Total:       totalPlaces,
		Places:      places,
		CurrentPage: realPage,
		PrevPage:    realPage - 1,
		NextPage:    realPage + 1,
		LastPage:    totalPages,
	}, nil
}

type indexPage struct {
	Cities []types.CitySummary
	*types.PlacesResponse
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	response, err := s.getPlaces(r.Context(), r)
	if err != nil {
		apiErr := toAPIError(err)
		http.Error(w, apiErr.Message, apiErr.StatusCode)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, indexPage{Cities: s.ds.CitySummaries(), PlacesResponse: response}); err != nil {
		s.log.Error("render index", zap.Error(err))
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"places": s.ds.Len(),
		"cities": len(s.ds.Cities()),
	})
}

func (s *Server) placesHandler(w http.ResponseWriter, r *http.Request) {
	response, err := s.getPlaces(r.Context(), r)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, response)
}

func (s *Server) citiesHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, s.ds.CitySummaries())
}

func (s *Server) cityPlacesHandler(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	q := r.URL.Query()
	places, err := s.ds.Filter(city, q["category"], q["type"])
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, cityPlacesResponse{City: city, Total: len(places), Places: places})
}

func (s *Server) itinerary(r *http.Request) (types.Itinerary, error) {
	days, err := intParam(r, "days", planner.DefaultDays)
	if err != nil {
		return types.Itinerary{}, err
	}
	return planner.Plan(s.ds, mux.Vars(r)["city"], days)
}

func (s *Server) itineraryHandler(w http.ResponseWriter, r *http.Request) {
	it, err := s.itinerary(r)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, it)
}

func (s *Server) itineraryWorkbookHandler(w http.ResponseWriter, r *http.Request) {
	it, err := s.itinerary(r)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	f, err := report.Itinerary(it)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.sendWorkbook(w, r, f, it.City+"-itinerary.xlsx")
}

func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.analytics(mux.Vars(r)["city"])
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, analytics)
}

func (s *Server) analytics(city string) (types.Analytics, error) {
	total, err := s.ds.TotalVisitors(city)
	if err != nil {
		return types.Analytics{}, err
	}
	top, err := s.ds.TopBusiest(city, topPlaces)
	if err != nil {
		return types.Analytics{}, err
	}
	categories, err := s.ds.CategoryCounts(city)
	if err != nil {
		return types.Analytics{}, err
	}
	kinds, err := s.ds.TypeCounts(city)
	if err != nil {
		return types.Analytics{}, err
	}
	weather, err := s.ds.Weather(city)
	if err != nil {
		return types.Analytics{}, err
	}
	return types.Analytics{
		City:          city,
		TotalVisitors: total,
		TopPlaces:     top,
		Categories:    categories,
		Types:         kinds,
		Weather:       weather,
	}, nil
}

func (s *Server) forecastHandler(w http.ResponseWriter, r *http.Request) {
	horizon, err := intParam(r, "horizon", s.horizon)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	if horizon < 1 || horizon > trend.MaxHorizon {
		s.respondWithError(w, r, invalidParam("horizon", r.URL.Query().Get("horizon")))
		return
	}
	forecast, err := trend.ForCity(s.ds, mux.Vars(r)["city"], horizon)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, forecast)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	days, err := intParam(r, "days", planner.DefaultDays)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	f, err := report.CityReport(s.ds, city, days, s.horizon)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.sendWorkbook(w, r, f, city+"-report.xlsx")
}

func (s *Server) sendWorkbook(w http.ResponseWriter, r *http.Request, f *excelize.File, name string) {
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(name, `"`, "")+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("send workbook", zap.Error(err))
	}
}

func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.ds.Compare(r.URL.Query()["city"])
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, cmp)
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		s.respondWithError(w, r, invalidParam("latitude", lat))
		return
	}
	lon := r.URL.Query().Get("lon")
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		s.respondWithError(w, r, invalidParam("longitude", lon))
		return
	}
	point := types.GeoPoint{Lat: latitude, Lon: longitude}
	if !geo.Valid(point) {
		s.respondWithError(w, r, NewAPIError(ErrorCodeBadRequest, "coordinates out of range", point, http.StatusBadRequest))
		return
	}

	places, err := s.store.Nearby(r.Context(), point, recommendations)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"name":   "Recommendation",
		"places": places,
	})
}

func (s *Server) getTokenHandler(w http.ResponseWriter, r *http.Request) {
	token, err := s.issuer.CreateToken("admin")
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]interface{}{"token": token})
}

// requireToken lets the request through only with a valid Bearer token.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if _, err := s.issuer.ValidateToken(token); err != nil {
			s.respondWithError(w, r, NewAPIError(ErrorCodeInvalidToken, err.Error(), nil, http.StatusUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}
