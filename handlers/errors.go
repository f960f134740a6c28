package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"culinarycompass/geo"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

type errorMapping struct {
	err     error
	status  int
	message string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []errorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a mapper answering 500 for anything unregistered.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping registers a sentinel error. Matching uses errors.Is.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, errorMapping{err: err, status: status, message: message})
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.err) {
			return HTTPErrorInfo{Status: mapping.status, Message: mapping.message}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

var apiErrors = NewErrorMapper().
	WithMapping(ErrBadRequestBody, http.StatusBadRequest, "request body must be a JSON search query").
	WithMapping(geo.ErrInvalidCoordinates, http.StatusBadRequest, "userLatitude must be within [-90, 90] and userLongitude within [-180, 180]")

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	info := apiErrors.Map(err)
	level := slog.LevelWarn
	if info.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request failed",
		slog.String("requestId", RequestIDFrom(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", info.Status),
		slog.Any("error", err),
	)
	writeJSON(w, info.Status, map[string]string{"error": info.Message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("encode response", slog.Any("error", err))
	}
}
