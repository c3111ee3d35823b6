// Package handler implements the HTTP surface of the travel log: the
// server-rendered pages and the small read-only JSON API behind the map and
// the geocoding button.
// All handlers are methods on Server. They are split into files by surface
// (pages.go, api.go, health.go) but share the same dependencies.
package handler

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-log/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TravelServicer defines the business operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TravelServicer interface {
	List(ctx context.Context, p domain.ListParams) ([]domain.Travel, error)
	GetByID(ctx context.Context, id int64) (domain.Travel, error)
	Create(ctx context.Context, in domain.TravelInput) (domain.Travel, error)
	Update(ctx context.Context, id int64, in domain.TravelInput) (domain.Travel, error)
	Delete(ctx context.Context, id int64) error
	MapTravels(ctx context.Context) ([]domain.Travel, error)
	Markers(ctx context.Context) ([]domain.Marker, error)
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city, country string) (domain.Coordinates, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	travels  TravelServicer
	geocoder Geocoder
	log      *slog.Logger
	pages    *template.Template
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(travels TravelServicer, geocoder Geocoder, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		travels:  travels,
		geocoder: geocoder,
		log:      log,
		pages:    template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// Routes returns the router for every endpoint. apiMiddleware is applied to
// the /api subtree only (CORS in production).
func (s *Server) Routes(apiMiddleware ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.ListTravels)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/travels", func(r chi.Router) {
		r.Get("/new", s.NewTravelForm)
		r.Post("/", s.CreateTravel)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/edit", s.EditTravelForm)
			r.Post("/edit", s.UpdateTravel)
			r.Get("/delete", s.ConfirmDeleteTravel)
			r.Post("/delete", s.DeleteTravel)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(apiMiddleware...)
		r.NotFound(s.apiNotFound)
		r.MethodNotAllowed(s.apiMethodNotAllowed)
		r.Get("/travels", s.GetMapTravels)
		r.Get("/markers", s.GetMarkers)
		r.Get("/geocode", s.GetGeocode)
	})

	return r
}
