package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/schedule-assistant/internal/metrics"
	"github.com/GregMSThompson/schedule-assistant/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ChatSvc         chatService
	Firebase        *auth.Client
	Metrics         *metrics.Metrics
}
