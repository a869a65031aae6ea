package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

const maxDebugBody = 1 << 20

// responseWriter is the part of response.ResponseHandler the handlers use.
type responseWriter interface {
	WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

type systemHandlers struct {
	ResponseHandler responseWriter
}

func NewSystemHandlers(deps *Deps) *systemHandlers {
	return &systemHandlers{ResponseHandler: deps.ResponseHandler}
}

func (h *systemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Debug echoes the raw request body so client payloads can be inspected.
func (h *systemHandlers) Debug(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDebugBody))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	raw := string(body)
	if strings.TrimSpace(raw) == "" {
		raw = "empty"
	}
	logger.FromContext(r.Context()).Debug("debug request",
		"body", raw,
		"headers", r.Header)

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.DebugResponse{Raw: raw})
}
