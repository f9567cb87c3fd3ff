package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

// ErrorResponse is the JSON shape of every non-validation error reply.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse reports per-field failures.
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// sentinelMapping binds a service sentinel to its HTTP rendering. An empty
// message means the sentinel's own text is shown to the client.
type sentinelMapping struct {
	target  error
	status  int
	code    string
	message string
}

var sentinelMappings = []sentinelMapping{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"},
	{apperrors.ErrInvalidID, http.StatusBadRequest, "INVALID_ID", "Invalid ID format"},
	{apperrors.ErrTicketIDMismatch, http.StatusBadRequest, "TICKET_ID_MISMATCH", "ticket_id mismatch"},
	{apperrors.ErrEmptyUpdate, http.StatusBadRequest, "VALIDATION_ERROR", ""},
	{apperrors.ErrEmailRequired, http.StatusBadRequest, "VALIDATION_ERROR", ""},
	{apperrors.ErrPasswordRequired, http.StatusBadRequest, "VALIDATION_ERROR", ""},
	{apperrors.ErrPasswordTooWeak, http.StatusBadRequest, "VALIDATION_ERROR", ""},
	{apperrors.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	{apperrors.ErrTicketNotFound, http.StatusNotFound, "TICKET_NOT_FOUND", "Ticket not found"},
	{apperrors.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN", "Email already registered"},
}

// ErrorHandler turns service errors into HTTP responses. Handlers hand every
// error here instead of picking status codes themselves, so the mapping
// lives in one place.
type ErrorHandler struct {
	logger *slog.Logger
}

func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle classifies err, logs it, and writes the JSON response. Unrecognized
// errors become a generic 500 so internals never leak to clients.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status, body := h.classify(err)

	lvl := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		lvl = slog.LevelError
	}
	h.logger.Log(r.Context(), lvl, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// classify resolves the status code and response body for err. Precedence:
// AppError (adapter-level errors that already know their status), then
// field-level ValidationErrors, then service sentinels, then 500.
func (h *ErrorHandler) classify(err error) (int, any) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		}
	}

	var fieldErrs *apperrors.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "Validation failed",
			Code:   "VALIDATION_ERROR",
			Fields: fieldErrs.Errors,
		}
	}

	for _, m := range sentinelMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		return m.status, ErrorResponse{Error: msg, Code: m.code}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: "An unexpected error occurred",
		Code:  "INTERNAL_ERROR",
	}
}
