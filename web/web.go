// Package web exposes the JSON HTTP API consumed by the operator's
// mobile client. Handlers decode request DTOs, call the app services or
// stores, and write responses through pkg/respond.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rotavan/rotavan/adapters/metrics"
	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/pkg/respond"
	"github.com/rotavan/rotavan/ports"
)

// Handler provides the JSON API endpoints.
type Handler struct {
	ledger    *app.Ledger
	navigator *app.Navigator
	billing   *app.BillingConfigService
	students  ports.StudentStore
	stops     ports.StopStore
	vehicles  ports.VehicleStore
	trips     ports.TripStore
	reminders ports.ReminderStore
	clock     ports.Clock
	idgen     ports.IDGenerator
	metrics   *metrics.Collector
	logger    zerolog.Logger

	upcomingWindow time.Duration
}

// Deps contains dependencies for the API handler.
type Deps struct {
	Ledger    *app.Ledger
	Navigator *app.Navigator
	Billing   *app.BillingConfigService
	Students  ports.StudentStore
	Stops     ports.StopStore
	Vehicles  ports.VehicleStore
	Trips     ports.TripStore
	Reminders ports.ReminderStore
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Metrics   *metrics.Collector // optional
	Logger    zerolog.Logger

	// UpcomingWindow is the default lookahead for the upcoming
	// reminders query. Zero means seven days.
	UpcomingWindow time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	window := deps.UpcomingWindow
	if window == 0 {
		window = defaultUpcomingWindow
	}
	return &Handler{
		ledger:    deps.Ledger,
		navigator: deps.Navigator,
		billing:   deps.Billing,
		students:  deps.Students,
		stops:     deps.Stops,
		vehicles:  deps.Vehicles,
		trips:     deps.Trips,
		reminders: deps.Reminders,
		clock:     deps.Clock,
		idgen:     deps.IDGen,
		metrics:   deps.Metrics,
		logger:    deps.Logger.With().Str("component", "web").Logger(),

		upcomingWindow: window,
	}
}

// Router returns the API router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestLogger)
	if h.metrics != nil {
		r.Use(h.metricsMiddleware)
	}

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/billing", func(r chi.Router) {
			r.Get("/config", h.GetBillingConfig)
			r.Put("/config", h.PutBillingConfig)

			r.Get("/periods/current", h.GetCurrentPeriod)
			r.Get("/periods/{period}/students", h.ListPeriodStudents)
			r.Put("/periods/{period}/students/{id}/status", h.PutStudentStatus)

			r.Get("/navigator", h.GetNavigator)
			r.Post("/navigator/previous", h.NavigatorPrevious)
			r.Post("/navigator/next", h.NavigatorNext)
			r.Post("/navigator/reset", h.NavigatorReset)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", h.ListStudents)
			r.Post("/", h.CreateStudent)
			r.Get("/{id}", h.GetStudent)
			r.Put("/{id}", h.UpdateStudent)
			r.Delete("/{id}", h.DeleteStudent)
			r.Post("/{id}/removal-request", h.RequestStudentRemoval)
		})

		r.Route("/stops", func(r chi.Router) {
			r.Get("/", h.ListStops)
			r.Post("/", h.CreateStop)
			r.Get("/{id}", h.GetStop)
			r.Put("/{id}", h.UpdateStop)
			r.Delete("/{id}", h.DeleteStop)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.ListVehicles)
			r.Post("/", h.CreateVehicle)
			r.Get("/{id}", h.GetVehicle)
			r.Put("/{id}", h.UpdateVehicle)
			r.Delete("/{id}", h.DeleteVehicle)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", h.ListTrips)
			r.Post("/", h.CreateTrip)
			r.Get("/{id}", h.GetTrip)
			r.Put("/{id}", h.UpdateTrip)
			r.Delete("/{id}", h.DeleteTrip)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", h.ListReminders)
			r.Get("/upcoming", h.ListUpcomingReminders)
			r.Post("/", h.CreateReminder)
			r.Get("/{id}", h.GetReminder)
			r.Put("/{id}", h.UpdateReminder)
			r.Delete("/{id}", h.DeleteReminder)
		})
	})

	return r
}

// MetricsHandler returns the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
