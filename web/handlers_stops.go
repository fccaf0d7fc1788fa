package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rotavan/rotavan/domain/stop"
	"github.com/rotavan/rotavan/pkg/respond"
)

// StopResponse represents a stop in API responses.
type StopResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
	StudentCount  int    `json:"student_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// SaveStopRequest represents a request to create or update a stop.
type SaveStopRequest struct {
	Name          string `json:"name"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
}

// ListStops returns all stops with their active student counts.
func (h *Handler) ListStops(w http.ResponseWriter, r *http.Request) {
	stops, err := h.stops.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	counts, err := h.students.CountByStop(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]StopResponse, len(stops))
	for i, s := range stops {
		out[i] = stopToResponse(s, counts[s.ID])
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateStop creates a new stop.
func (h *Handler) CreateStop(w http.ResponseWriter, r *http.Request) {
	var req SaveStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	s := stop.Stop{
		ID:            h.idgen.New(),
		Name:          req.Name,
		ScheduledTime: req.ScheduledTime,
	}
	if err := s.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.stops.Create(r.Context(), s); err != nil {
		respond.FromError(w, err)
		return
	}

	h.logger.Info().Str("stop_id", s.ID).Msg("stop created via api")
	respond.Created(w, "/api/stops/"+s.ID, stopToResponse(s, 0))
}

// GetStop returns a single stop with its student count.
func (h *Handler) GetStop(w http.ResponseWriter, r *http.Request) {
	s, err := h.stops.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	counts, err := h.students.CountByStop(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, stopToResponse(s, counts[s.ID]))
}

// UpdateStop modifies a stop.
func (h *Handler) UpdateStop(w http.ResponseWriter, r *http.Request) {
	s, err := h.stops.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req SaveStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	s.Name = req.Name
	s.ScheduledTime = req.ScheduledTime
	if err := s.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.stops.Update(r.Context(), s); err != nil {
		respond.FromError(w, err)
		return
	}

	counts, err := h.students.CountByStop(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, stopToResponse(s, counts[s.ID]))
}

// DeleteStop removes a stop. Its students keep existing with no stop
// assigned.
func (h *Handler) DeleteStop(w http.ResponseWriter, r *http.Request) {
	if err := h.stops.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.NoContent(w)
}

func stopToResponse(s stop.Stop, count int) StopResponse {
	return StopResponse{
		ID:            s.ID,
		Name:          s.Name,
		ScheduledTime: s.ScheduledTime,
		StudentCount:  count,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}
