// Package httpx writes the two canonical response envelopes. Every outward
// facing result passes through here so clients only ever see one success
// shape and one error shape.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"medibook/pkg/apperrors"
	"medibook/pkg/validation"
)

// Pagination is hoisted to a top-level sibling of data, never nested inside
// it.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the single wire shape. Success responses carry data and
// optionally pagination; error responses carry the field-error list.
type Envelope struct {
	Success    bool                    `json:"success"`
	Message    string                  `json:"message"`
	Data       any                     `json:"data,omitempty"`
	Pagination *Pagination             `json:"pagination,omitempty"`
	Errors     []validation.FieldError `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Page writes a 200 success envelope with pagination alongside data.
func Page(w http.ResponseWriter, message string, data any, p Pagination) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: &p})
}

// ValidationFailed writes the fixed 400 shape for a failed verdict.
func ValidationFailed(w http.ResponseWriter, verdict validation.Verdict) {
	write(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  verdict.Errors,
	})
}

// NotFound writes the conventional 404 message for a named resource.
func NotFound(w http.ResponseWriter, resource string) {
	write(w, http.StatusNotFound, Envelope{Success: false, Message: resource + " not found"})
}

// RedirectHeader carries the navigation target on 401/403 responses. The
// error envelope itself stays fixed: success, message, errors — nothing else.
const RedirectHeader = "X-Redirect"

// Unauthorized writes a 401 with the default message. An optional redirect
// target for navigation clients rides in the X-Redirect header.
func Unauthorized(w http.ResponseWriter, redirect string) {
	if redirect != "" {
		w.Header().Set(RedirectHeader, redirect)
	}
	write(w, http.StatusUnauthorized, Envelope{Success: false, Message: "Access denied"})
}

// Forbidden writes a 403 with the default message and the optional redirect
// target in the X-Redirect header.
func Forbidden(w http.ResponseWriter, redirect string) {
	if redirect != "" {
		w.Header().Set(RedirectHeader, redirect)
	}
	write(w, http.StatusForbidden, Envelope{Success: false, Message: "Forbidden"})
}

// ServerError writes the deliberately generic 500 envelope.
func ServerError(w http.ResponseWriter) {
	write(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Server Error"})
}

// WriteError translates a taxonomy error into its envelope. Anything outside
// the taxonomy collapses to the generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		ServerError(w)
		return
	}
	write(w, apperrors.ToHTTPStatus(appErr.Code), Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
