// Package respond writes JSON API responses with a uniform error shape.
//
// Success bodies are written as-is. Error bodies look like:
//
//	{"error": {"code": "not_found", "message": "student not found"}}
//
// Validation errors additionally carry a "fields" map keyed by the
// offending field name.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotavan/rotavan/pkg/validate"
	"github.com/rotavan/rotavan/ports"
)

// ContentType is the media type for all JSON responses.
const ContentType = "application/json; charset=utf-8"

// ErrorBody is the wire shape of an error response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Created writes a 201 response with an optional Location header.
func Created(w http.ResponseWriter, location string, v any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, http.StatusCreated, v)
}

// NoContent writes a 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error response with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorEnvelope{Error: ErrorBody{Code: code, Message: message}})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "bad_request", message)
}

// NotFound writes a 404 error naming the missing resource.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, http.StatusNotFound, "not_found", resource+" not found")
}

// Conflict writes a 409 error.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, "conflict", message)
}

// Unprocessable writes a 422 error.
func Unprocessable(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// ValidationError writes a 422 error with per-field details.
func ValidationError(w http.ResponseWriter, verr *validate.Error) {
	fields := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = f.Rule
	}
	JSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: ErrorBody{
		Code:    "validation_error",
		Message: "validation failed",
		Fields:  fields,
	}})
}

// InternalError writes a 500 error.
func InternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "an internal error occurred"
	}
	Error(w, http.StatusInternalServerError, "internal_error", message)
}

// FromError maps an error to the response its kind implies: storage
// sentinels to 404/409/503, validation errors to 422 with fields,
// anything else to 500.
func FromError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		ValidationError(w, verr)
	case errors.Is(err, ports.ErrNotFound):
		Error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, ports.ErrDuplicate):
		Conflict(w, "resource already exists")
	case errors.Is(err, ports.ErrNotReady):
		Error(w, http.StatusServiceUnavailable, "storage_not_ready", "storage is not ready yet")
	default:
		InternalError(w, "")
	}
}
