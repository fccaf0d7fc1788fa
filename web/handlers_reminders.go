package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rotavan/rotavan/domain/reminder"
	"github.com/rotavan/rotavan/pkg/respond"
)

// defaultUpcomingWindow bounds the upcoming-reminders query when the
// client does not pass one.
const defaultUpcomingWindow = 7 * 24 * time.Hour

// ReminderResponse represents a reminder in API responses.
type ReminderResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	RemindAt  string `json:"remind_at"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SaveReminderRequest represents a request to create or update a
// reminder.
type SaveReminderRequest struct {
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
	RemindAt string `json:"remind_at"`
	Done     bool   `json:"done,omitempty"`
}

// ListReminders returns all reminders.
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]ReminderResponse, len(reminders))
	for i, rem := range reminders {
		out[i] = reminderToResponse(rem)
	}
	respond.JSON(w, http.StatusOK, out)
}

// ListUpcomingReminders returns pending reminders due inside the
// window, soonest first. The window comes from the "within" query
// parameter as a Go duration, defaulting to seven days.
func (h *Handler) ListUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	window := h.upcomingWindow
	if raw := r.URL.Query().Get("within"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			respond.BadRequest(w, "within must be a positive duration like 72h")
			return
		}
		window = d
	}

	reminders, err := h.reminders.ListUpcoming(r.Context(), h.clock.Now(), window)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	out := make([]ReminderResponse, len(reminders))
	for i, rem := range reminders {
		out[i] = reminderToResponse(rem)
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateReminder creates a new reminder.
func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req SaveReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	remindAt, err := time.Parse(time.RFC3339, req.RemindAt)
	if err != nil {
		respond.Unprocessable(w, "remind_at must be an RFC 3339 timestamp")
		return
	}

	rem := reminder.Reminder{
		ID:       h.idgen.New(),
		Title:    req.Title,
		Notes:    req.Notes,
		RemindAt: remindAt,
		Done:     req.Done,
	}
	if err := rem.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.reminders.Create(r.Context(), rem); err != nil {
		respond.FromError(w, err)
		return
	}

	h.logger.Info().Str("reminder_id", rem.ID).Msg("reminder created via api")
	respond.Created(w, "/api/reminders/"+rem.ID, reminderToResponse(rem))
}

// GetReminder returns a single reminder.
func (h *Handler) GetReminder(w http.ResponseWriter, r *http.Request) {
	rem, err := h.reminders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, reminderToResponse(rem))
}

// UpdateReminder modifies a reminder, including marking it done.
func (h *Handler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	rem, err := h.reminders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req SaveReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid JSON body")
		return
	}

	remindAt, err := time.Parse(time.RFC3339, req.RemindAt)
	if err != nil {
		respond.Unprocessable(w, "remind_at must be an RFC 3339 timestamp")
		return
	}

	rem.Title = req.Title
	rem.Notes = req.Notes
	rem.RemindAt = remindAt
	rem.Done = req.Done
	if err := rem.Validate(); err != nil {
		respond.FromError(w, err)
		return
	}

	if err := h.reminders.Update(r.Context(), rem); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, reminderToResponse(rem))
}

// DeleteReminder removes a reminder.
func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.NoContent(w)
}

func reminderToResponse(rem reminder.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:        rem.ID,
		Title:     rem.Title,
		Notes:     rem.Notes,
		RemindAt:  rem.RemindAt.Format(time.RFC3339),
		Done:      rem.Done,
		CreatedAt: rem.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rem.UpdatedAt.Format(time.RFC3339),
	}
}
