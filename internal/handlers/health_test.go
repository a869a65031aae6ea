package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
)

func TestHealth(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewSystemHandlers(&Deps{ResponseHandler: resp})

	rr := httptest.NewRecorder()
	h.Health(rr, newRequest(http.MethodGet, "/health", ""))

	got, ok := resp.writeSuccessData.(dto.HealthResponse)
	if !ok || got.Status != "ok" || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("unexpected health response: %d %#v", resp.writeSuccessStatus, resp.writeSuccessData)
	}
}

func TestDebugEchoesBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "json body", body: `{"clientId":"c1"}`, want: `{"clientId":"c1"}`},
		{name: "empty body", body: "", want: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &stubResponseHandler{}
			h := NewSystemHandlers(&Deps{ResponseHandler: resp})

			rr := httptest.NewRecorder()
			h.Debug(rr, newRequest(http.MethodPost, "/debug", tt.body))

			got, ok := resp.writeSuccessData.(dto.DebugResponse)
			if !ok || got.Raw != tt.want {
				t.Fatalf("expected raw %q, got %#v", tt.want, resp.writeSuccessData)
			}
		})
	}
}
