package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/internal/handlers"
	"github.com/GregMSThompson/schedule-assistant/internal/metrics"
	"github.com/GregMSThompson/schedule-assistant/internal/models"
	"github.com/GregMSThompson/schedule-assistant/internal/response"
	"github.com/GregMSThompson/schedule-assistant/internal/services"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

type stubChatService struct {
	reply string
	err   error
}

func (s *stubChatService) Chat(ctx context.Context, clientID, message string) (dto.ChatResponse, error) {
	if s.err != nil {
		return dto.ChatResponse{}, s.err
	}
	return dto.ChatResponse{Message: s.reply}, nil
}

type toolCallingLLM struct {
	call dto.LLMToolCall
}

func (l *toolCallingLLM) GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error) {
	return dto.LLMGenerateResponse{ToolCalls: []dto.LLMToolCall{l.call}}, nil
}

type countingRecordStore struct {
	creates int
}

func (s *countingRecordStore) CreateRecord(ctx context.Context, rec models.Schedule) (string, error) {
	s.creates++
	return "rec-1", nil
}

func (s *countingRecordStore) SearchRecords(ctx context.Context, query string) ([]models.Schedule, error) {
	return nil, nil
}

func (s *countingRecordStore) UpdateRecord(ctx context.Context, id string, patch dto.SchedulePatch) error {
	return nil
}

func (s *countingRecordStore) ArchiveRecord(ctx context.Context, id string) error {
	return nil
}

func newTestRouter(chat *stubChatService) http.Handler {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		ChatSvc:         chat,
	}
	return NewRouter(deps)
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(&stubChatService{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestChatRoute(t *testing.T) {
	r := newTestRouter(&stubChatService{reply: "안녕하세요"})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"clientId":"c1","message":"안녕"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body dto.ChatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Message != "안녕하세요" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestChatRouteMapsErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "missing message", body: `{"clientId":"c1"}`, status: http.StatusBadRequest},
		{name: "bad json", body: `{`, status: http.StatusBadRequest},
		{name: "unknown tool", body: `{"message":"hi"}`, err: errs.NewUnknownToolError("x"), status: http.StatusBadGateway},
		{name: "store down", body: `{"message":"hi"}`, err: errs.NewExternalServiceError("notion", "unavailable", true, errors.New("503")), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubChatService{err: tt.err})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body)))

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestChatRouteInvalidToolArgumentsIsBadGateway(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{name: "relative date", args: `{"title":"회의","date":"내일"}`},
		{name: "empty title", args: `{"title":"","date":"2024-03-01"}`},
		{name: "malformed json", args: `{"title":"회의",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingRecordStore{}
			llm := &toolCallingLLM{call: dto.LLMToolCall{ID: "call-1", Name: "create_schedule", Arguments: tt.args}}
			chat := services.NewChatService(llm, services.NewScheduleService(store, ""), 0, nil)

			log := slog.New(logger.NewTestHandler(slog.LevelInfo))
			r := NewRouter(&handlers.Deps{Log: log, ResponseHandler: response.New(log), ChatSvc: chat})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"내일 회의 추가해줘"}`)))

			if rr.Code != http.StatusBadGateway {
				t.Fatalf("expected 502, got %d: %s", rr.Code, rr.Body.String())
			}
			var body response.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != "invalid_tool_arguments" {
				t.Fatalf("unexpected code %q", body.Code)
			}
			if store.creates != 0 {
				t.Fatalf("nothing should be stored, got %d creates", store.creates)
			}
		})
	}
}

func TestChatRouteRejectsOversizedBody(t *testing.T) {
	r := newTestRouter(&stubChatService{reply: "ok"})

	body := `{"message":"` + strings.Repeat("a", 1<<20) + `"}`
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestDebugRoute(t *testing.T) {
	r := newTestRouter(&stubChatService{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debug", strings.NewReader("hello")))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"raw":"hello"`) {
		t.Fatalf("unexpected debug response: %d %s", rr.Code, rr.Body.String())
	}
}

func TestMetricsRouteOnlyWhenEnabled(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(&stubChatService{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics, got %d", rr.Code)
	}

	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	r := NewRouter(&handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		ChatSvc:         &stubChatService{reply: "ok"},
		Metrics:         metrics.New(),
	})

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("chat failed: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "schedule_assistant_http_requests_total") {
		t.Fatalf("unexpected metrics response: %d", rr.Code)
	}
}
