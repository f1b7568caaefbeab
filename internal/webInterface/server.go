// Package webInterface serves the HTML index, the JSON API, the chart images
// and the workbook downloads over one dataset.
package webInterface

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"touristplaces/pkg/config"
	"touristplaces/pkg/dataset"
	"touristplaces/pkg/db"
	"touristplaces/pkg/jwt"
)

//go:embed templates/*.html
var templates embed.FS

const shutdownTimeout = 10 * time.Second

type Server struct {
	ds       *dataset.Dataset
	store    db.Store
	issuer   *jwt.Issuer
	log      *zap.Logger
	cfg      config.Server
	pageSize int
	horizon  int
	page     *template.Template
	handler  http.Handler
}

// NewServer wires the routes. store serves the paged listing and the nearby
// search; it is either Elasticsearch or ds itself.
func NewServer(cfg *config.Config, ds *dataset.Dataset, store db.Store, issuer *jwt.Issuer, log *zap.Logger) (*Server, error) {
	page, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}
	s := &Server{
		ds:       ds,
		store:    store,
		issuer:   issuer,
		log:      log,
		cfg:      cfg.Server,
		pageSize: cfg.Data.PageSize,
		horizon:  cfg.Data.Horizon,
		page:     page,
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{requestIDHeader},
	})
	s.handler = c.Handler(requestIDMiddleware(accessLog(log)(s.routes())))
	return s, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondWithError(w, r, NewAPIError(ErrorCodeResourceNotFound, "no such route: "+r.URL.Path, nil, http.StatusNotFound))
	})

	router.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/places", s.placesHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities", s.citiesHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/places", s.cityPlacesHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/itinerary", s.itineraryHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/itinerary.xlsx", s.itineraryWorkbookHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/analytics", s.analyticsHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/forecast", s.forecastHandler).Methods(http.MethodGet)
	api.HandleFunc("/cities/{city}/report.xlsx", s.reportHandler).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.compareHandler).Methods(http.MethodGet)
	api.Handle("/recommend", s.requireToken(http.HandlerFunc(s.recommendHandler))).Methods(http.MethodGet)
	api.HandleFunc("/get_token", s.getTokenHandler).Methods(http.MethodGet)

	router.HandleFunc("/charts/compare.png", s.compareChartHandler).Methods(http.MethodGet)
	router.HandleFunc("/charts/{city}/{chart}.png", s.cityChartHandler).Methods(http.MethodGet)
	return router
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server is running", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
