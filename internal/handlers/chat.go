package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/internal/middleware"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

// maxChatBody bounds a /chat request body; a chat turn is one short message.
const maxChatBody = 64 << 10

type chatService interface {
	Chat(ctx context.Context, clientID, message string) (dto.ChatResponse, error)
}

type chatHandlers struct {
	ResponseHandler responseWriter
	ChatSvc         chatService
}

func NewChatHandlers(deps *Deps) *chatHandlers {
	return &chatHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChatSvc:         deps.ChatSvc,
	}
}

func (h *chatHandlers) ChatRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Chat)
	return r
}

func (h *chatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBody)

	var body dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("message is required"))
		return
	}

	// clientId is only a log tag; an authenticated uid takes precedence.
	clientID := body.ClientID
	if uid := middleware.UID(r.Context()); uid != "" {
		clientID = uid
	}
	log, ctx := logger.With(r.Context(), "client_id", clientID)
	log.Info("chat request received")

	resp, err := h.ChatSvc.Chat(ctx, clientID, body.Message)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
