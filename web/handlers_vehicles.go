package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rotavan/rotavan/domain/vehicle"
	"github.com/rotavan/rotavan/pkg/respond"
)

// VehicleResponse represents a vehicle in API responses.
type VehicleResponse struct {
	ID        string `json:"id"`
	Plate     string `json:"plate"`
	Model     string `json:"model,omitempty"`
	Seats     int    `json:"seats"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SaveVehicleRequest represents a request to create or update a
// vehicle.
type SaveVehicleRequest struct {
	Plate string `json:"plate"`
	Model string `json:"model,omitempty"`
	Seats int    `json:"seats,omitempty"`
}

// ListVehicles returns all vehicles.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		out[i] = vehicleToResponse(v)
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateVehicle creates a new vehicle.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req SaveVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	v := vehicle.Vehicle{
		ID:    h.idgen.New(),
		Plate: req.Plate,
		Model: req.Model,
		Seats: req.Seats,
	}
	if err := v.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.vehicles.Create(r.Context(), v); err != nil {
		respond.FromError(w, err)
		return
	}

	h.logger.Info().Str("vehicle_id", v.ID).Str("plate", v.Plate).Msg("vehicle created via api")
	respond.Created(w, "/api/vehicles/"+v.ID, vehicleToResponse(v))
}

// GetVehicle returns a single vehicle.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, vehicleToResponse(v))
}

// UpdateVehicle modifies a vehicle.
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req SaveVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	v.Plate = req.Plate
	v.Model = req.Model
	v.Seats = req.Seats
	if err := v.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.vehicles.Update(r.Context(), v); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, vehicleToResponse(v))
}

// DeleteVehicle removes a vehicle. Trips bound to it keep existing
// with no vehicle.
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.NoContent(w)
}

func vehicleToResponse(v vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID,
		Plate:     v.Plate,
		Model:     v.Model,
		Seats:     v.Seats,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.Format(time.RFC3339),
	}
}
