package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rotavan/rotavan/domain/trip"
	"github.com/rotavan/rotavan/pkg/respond"
)

// TripResponse represents a trip in API responses.
type TripResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Direction     string `json:"direction"`
	DepartureTime string `json:"departure_time,omitempty"`
	Weekdays      uint8  `json:"weekdays"`
	VehicleID     string `json:"vehicle_id,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// SaveTripRequest represents a request to create or update a trip.
type SaveTripRequest struct {
	Name          string `json:"name"`
	Direction     string `json:"direction"`
	DepartureTime string `json:"departure_time,omitempty"`
	Weekdays      uint8  `json:"weekdays,omitempty"`
	VehicleID     string `json:"vehicle_id,omitempty"`
}

// ListTrips returns all trips.
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]TripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateTrip creates a new trip.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req SaveTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	t := trip.Trip{
		ID:            h.idgen.New(),
		Name:          req.Name,
		Direction:     trip.Direction(req.Direction),
		DepartureTime: req.DepartureTime,
		Weekdays:      req.Weekdays,
		VehicleID:     req.VehicleID,
	}
	if err := t.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.trips.Create(r.Context(), t); err != nil {
		respond.FromError(w, err)
		return
	}

	h.logger.Info().Str("trip_id", t.ID).Msg("trip created via api")
	respond.Created(w, "/api/trips/"+t.ID, tripToResponse(t))
}

// GetTrip returns a single trip.
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	t, err := h.trips.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, tripToResponse(t))
}

// UpdateTrip modifies a trip.
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	t, err := h.trips.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req SaveTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	t.Name = req.Name
	t.Direction = trip.Direction(req.Direction)
	t.DepartureTime = req.DepartureTime
	t.Weekdays = req.Weekdays
	t.VehicleID = req.VehicleID
	if err := t.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.trips.Update(r.Context(), t); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, tripToResponse(t))
}

// DeleteTrip removes a trip.
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.NoContent(w)
}

func tripToResponse(t trip.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		Name:          t.Name,
		Direction:     string(t.Direction),
		DepartureTime: t.DepartureTime,
		Weekdays:      t.Weekdays,
		VehicleID:     t.VehicleID,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}
