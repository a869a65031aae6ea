package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		notFound    *errs.NotFoundError
		validation  *errs.ValidationError
		unknownTool *errs.UnknownToolError
		toolArgs    *errs.ToolArgumentsError
		database    *errs.DatabaseError
		external    *errs.ExternalServiceError
		syntax      *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		tooLarge    *http.MaxBytesError
	)

	switch {
	// Checked first: it wraps the ValidationError that caused it.
	case errors.As(err, &toolArgs):
		log.Error("model sent invalid tool arguments", "tool", toolArgs.Tool, "error", toolArgs.Message)
		h.WriteError(w, r, http.StatusBadGateway, "invalid_tool_arguments", toolArgs.Message)

	case errors.As(err, &notFound):
		log.Warn("resource not found", "error", notFound.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFound.Message)

	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &tooLarge):
		log.Warn("request body too large", "limit", tooLarge.Limit)
		h.WriteError(w, r, http.StatusRequestEntityTooLarge, "request_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))

	case errors.As(err, &syntax), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		log.Warn("malformed request body", "error", err)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", "request body is not valid JSON")

	case errors.As(err, &unknownTool):
		log.Error("model requested unknown tool", "tool", unknownTool.Tool)
		h.WriteError(w, r, http.StatusBadGateway, "unknown_tool", unknownTool.Message)

	case errors.As(err, &database):
		log.Error("database error",
			"operation", database.Operation,
			"error", database.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	case errors.As(err, &external):
		level := slog.LevelError
		if external.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", external.Service,
			"transient", external.Transient,
			"error", external.Message)

		status := http.StatusBadGateway
		if external.Transient {
			status = http.StatusServiceUnavailable
		}
		h.WriteError(w, r, status, "service_unavailable",
			"Service temporarily unavailable")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
