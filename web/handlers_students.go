package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/domain/student"
	"github.com/rotavan/rotavan/pkg/respond"
)

// StudentResponse represents a student in API responses.
type StudentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CPF       string `json:"cpf,omitempty"`
	Phone     string `json:"phone,omitempty"`
	StopID    string `json:"stop_id,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateStudentRequest represents a request to enroll a student.
type CreateStudentRequest struct {
	Name          string `json:"name"`
	CPF           string `json:"cpf,omitempty"`
	Phone         string `json:"phone,omitempty"`
	StopID        string `json:"stop_id,omitempty"`
	InitialStatus string `json:"initial_status,omitempty"`
}

// UpdateStudentRequest represents a request to update a student's
// profile.
type UpdateStudentRequest struct {
	Name   string `json:"name"`
	CPF    string `json:"cpf,omitempty"`
	Phone  string `json:"phone,omitempty"`
	StopID string `json:"stop_id,omitempty"`
}

// RemovalRequestResponse describes what confirming a removal will
// destroy.
type RemovalRequestResponse struct {
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name"`
	StatusRecords int    `json:"status_records"`
}

// ListStudents returns all active students.
func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]StudentResponse, len(students))
	for i, st := range students {
		out[i] = studentToResponse(st)
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateStudent enrolls a student and seeds their status for the
// current billing period.
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	initial := billing.PaymentStatus(req.InitialStatus)
	if req.InitialStatus == "" {
		initial = billing.StatusUnpaid
	}

	st, err := h.ledger.AddStudent(r.Context(), app.StudentInput{
		Name:   req.Name,
		CPF:    req.CPF,
		Phone:  req.Phone,
		StopID: req.StopID,
	}, initial)
	if err != nil {
		if errors.Is(err, app.ErrInvalidStatus) {
			respond.Unprocessable(w, "initial_status must be paid or unpaid")
			return
		}
		respond.FromError(w, err)
		return
	}

	h.logger.Info().Str("student_id", st.ID).Msg("student created via api")
	respond.Created(w, "/api/students/"+st.ID, studentToResponse(st))
}

// GetStudent returns a single student.
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	st, err := h.students.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, studentToResponse(st))
}

// UpdateStudent modifies a student's profile.
func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	st, err := h.ledger.UpdateStudent(r.Context(), chi.URLParam(r, "id"), app.StudentInput{
		Name:   req.Name,
		CPF:    req.CPF,
		Phone:  req.Phone,
		StopID: req.StopID,
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, studentToResponse(st))
}

// RequestStudentRemoval returns the confirmation descriptor for a
// pending removal without deleting anything.
func (h *Handler) RequestStudentRemoval(w http.ResponseWriter, r *http.Request) {
	req, err := h.ledger.RequestRemoval(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, RemovalRequestResponse{
		StudentID:     req.StudentID,
		StudentName:   req.StudentName,
		StatusRecords: req.StatusRecords,
	})
}

// DeleteStudent confirms a removal: the student and all their status
// records are deleted.
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.ConfirmRemoval(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.NoContent(w)
}

func studentToResponse(st student.Student) StudentResponse {
	return StudentResponse{
		ID:        st.ID,
		Name:      st.Name,
		CPF:       st.CPF,
		Phone:     st.Phone,
		StopID:    st.StopID,
		Active:    st.Active,
		CreatedAt: st.CreatedAt.Format(time.RFC3339),
		UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
	}
}
