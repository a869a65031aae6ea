package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

// WriteSuccess encodes data as the whole body. The chat API has a fixed wire
// shape ({"message": ...}), so there is no success envelope.
func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}
