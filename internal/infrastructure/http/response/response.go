// Package response writes the JSON envelopes used by every API endpoint.
// Success payloads are written as-is; errors use a single envelope with a
// machine-readable code, a message, and optional per-field details.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskkeeper/taskkeeper/internal/domain"
)

// ErrorDetail pinpoints a single field problem inside an error response.
type ErrorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ErrorBody is the inner object of the error envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details []ErrorDetail  `json:"details"`
	Notice  *domain.Notice `json:"notice,omitempty"`
}

// ErrorResponse is the envelope for all non-2xx responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// internalErrorJSON is pre-marshaled so we can always respond, even when
// marshaling itself fails.
const internalErrorJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response","details":[]}}`

// writeJSON marshals first and writes after, so an encoding failure can
// still produce a clean 500 instead of a half-written 2xx.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(internalErrorJSON))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// OK writes a 200 response with the given payload.
func OK(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusCreated, payload)
}

// Error writes an error envelope with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: []ErrorDetail{},
	}})
}

// BadRequest writes a 400 with code BAD_REQUEST.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

// ValidationFailed writes a 400 carrying one detail per field error.
func ValidationFailed(w http.ResponseWriter, errs domain.FieldErrors) {
	details := make([]ErrorDetail, len(errs))
	for i, fe := range errs {
		details[i] = ErrorDetail{Field: fe.Field, Issue: fe.Message}
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    "VALIDATION_FAILED",
		Message: "one or more fields are invalid",
		Details: details,
	}})
}

// NotFound writes a 404 with a danger notice, matching the lifecycle
// contract for missing tasks.
func NotFound(w http.ResponseWriter, message string) {
	notice := domain.DangerNotice(message)
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorBody{
		Code:    "NOT_FOUND",
		Message: message,
		Details: []ErrorDetail{},
		Notice:  &notice,
	}})
}

// FromDomainError maps a service error onto the wire:
//
//	FieldErrors      → 400 VALIDATION_FAILED with per-field details
//	ErrTaskNotFound  → 404 NOT_FOUND with a danger notice
//	anything else    → 500 INTERNAL_ERROR with a generic message
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		ValidationFailed(w, fieldErrs)
	case errors.Is(err, domain.ErrTaskNotFound):
		NotFound(w, "Task not found.")
	default:
		slog.ErrorContext(r.Context(), "unhandled service error", "error", err)
		Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
