package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/pkg/respond"
)

const dueDateLayout = "2006-01-02"

// BillingConfigResponse represents the billing configuration in API
// responses.
type BillingConfigResponse struct {
	MonthlyAmount string `json:"monthly_amount"`
	DueDate       string `json:"due_date"`
	DueDay        int    `json:"due_day"`
	UpdatedAt     string `json:"updated_at"`
}

// SaveBillingConfigRequest represents a request to save the billing
// configuration.
type SaveBillingConfigRequest struct {
	MonthlyAmount string `json:"monthly_amount"`
	DueDate       string `json:"due_date"`
}

// NavigatorResponse represents the period cursor state.
type NavigatorResponse struct {
	Visible      string `json:"visible"`
	IsNextFuture bool   `json:"is_next_future"`
}

// StudentStatusResponse represents one row of the per-period ledger.
type StudentStatusResponse struct {
	StudentResponse
	Status string `json:"status"`
}

// SetStatusRequest represents a payment status update.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// GetBillingConfig returns the singleton billing configuration.
func (h *Handler) GetBillingConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.billing.Get(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, billingConfigToResponse(cfg))
}

// PutBillingConfig creates or replaces the billing configuration.
func (h *Handler) PutBillingConfig(w http.ResponseWriter, r *http.Request) {
	var req SaveBillingConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	amount, err := decimal.NewFromString(req.MonthlyAmount)
	if err != nil {
		respond.Unprocessable(w, "monthly_amount must be a decimal number")
		return
	}
	dueDate, err := time.Parse(dueDateLayout, req.DueDate)
	if err != nil {
		respond.Unprocessable(w, "due_date must be a YYYY-MM-DD date")
		return
	}

	if err := h.billing.Save(r.Context(), amount, dueDate); err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			respond.Unprocessable(w, err.Error())
			return
		}
		respond.FromError(w, err)
		return
	}

	cfg, err := h.billing.Get(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, billingConfigToResponse(cfg))
}

// GetCurrentPeriod returns the billing period open right now.
func (h *Handler) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.billing.ActivePeriod(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"period": period.String()})
}

// ListPeriodStudents returns every active student with their effective
// status for the period.
func (h *Handler) ListPeriodStudents(w http.ResponseWriter, r *http.Request) {
	period, err := billing.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		respond.Unprocessable(w, "period must be a YYYY-MM label")
		return
	}

	rows, err := h.ledger.StudentsWithStatus(r.Context(), period)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]StudentStatusResponse, len(rows))
	for i, row := range rows {
		out[i] = StudentStatusResponse{
			StudentResponse: studentToResponse(row.Student),
			Status:          string(row.Status),
		}
	}
	respond.JSON(w, http.StatusOK, out)
}

// PutStudentStatus sets a student's payment status for a period.
func (h *Handler) PutStudentStatus(w http.ResponseWriter, r *http.Request) {
	period, err := billing.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		respond.Unprocessable(w, "period must be a YYYY-MM label")
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	err = h.ledger.SetStatus(r.Context(), chi.URLParam(r, "id"), period, billing.PaymentStatus(req.Status))
	if err != nil {
		if errors.Is(err, app.ErrInvalidStatus) {
			respond.Unprocessable(w, "status must be paid or unpaid")
			return
		}
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"student_id": chi.URLParam(r, "id"),
		"period":     period.String(),
		"status":     req.Status,
	})
}

// GetNavigator returns the period cursor state.
func (h *Handler) GetNavigator(w http.ResponseWriter, r *http.Request) {
	h.writeNavigator(w, r)
}

// NavigatorPrevious moves the cursor back one month.
func (h *Handler) NavigatorPrevious(w http.ResponseWriter, r *http.Request) {
	h.navigator.Previous()
	h.writeNavigator(w, r)
}

// NavigatorNext moves the cursor forward one month. The client gates
// the control on is_next_future; the server does not hard-block.
func (h *Handler) NavigatorNext(w http.ResponseWriter, r *http.Request) {
	h.navigator.Next()
	h.writeNavigator(w, r)
}

// NavigatorReset snaps the cursor to the true current period.
func (h *Handler) NavigatorReset(w http.ResponseWriter, r *http.Request) {
	if err := h.navigator.ResetToCurrent(r.Context()); err != nil {
		respond.FromError(w, err)
		return
	}
	h.writeNavigator(w, r)
}

func (h *Handler) writeNavigator(w http.ResponseWriter, r *http.Request) {
	future, err := h.navigator.IsNextFuture(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, NavigatorResponse{
		Visible:      h.navigator.Visible().String(),
		IsNextFuture: future,
	})
}

func billingConfigToResponse(cfg billing.Config) BillingConfigResponse {
	return BillingConfigResponse{
		MonthlyAmount: cfg.MonthlyAmount.String(),
		DueDate:       cfg.DueDate.Format(dueDateLayout),
		DueDay:        cfg.DueDay(),
		UpdatedAt:     cfg.UpdatedAt.Format(time.RFC3339),
	}
}
