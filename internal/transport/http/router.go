package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires all handlers behind the shared middleware stack.
func NewRouter(bookings BookingAPI, catalog CatalogAPI, corsOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(CORS(corsOrigins))

	r.Get("/health", HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/venues", func(r chi.Router) {
		r.Post("/", HandleCreateVenue(catalog))
		r.Get("/", HandleListVenues(catalog))
		r.Get("/{id}", HandleGetVenue(catalog))
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", HandleCreateEvent(catalog))
		r.Get("/", HandleListEvents(catalog))
		r.Get("/{id}", HandleGetEvent(catalog))
		r.Get("/{id}/bookings", HandleListEventBookings(bookings))
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", HandleCreateBooking(bookings))
		r.Get("/", HandleListBookings(bookings))
		r.Get("/{id}", HandleGetBooking(bookings))
		r.Post("/{id}/cancel", HandleCancelBooking(bookings))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	return r
}
