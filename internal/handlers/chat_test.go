package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/internal/middleware"
)

func TestChatHandlerSuccess(t *testing.T) {
	chatSvc := &stubChatService{resp: dto.ChatResponse{Message: "일정을 추가했어요"}}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	req := newRequest(http.MethodPost, "/chat", `{"clientId":"c1","message":"내일 회의 추가해줘"}`)
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if !chatSvc.called {
		t.Fatalf("expected chat service to be called")
	}
	if chatSvc.clientID != "c1" || chatSvc.message != "내일 회의 추가해줘" {
		t.Fatalf("service called with unexpected args: %+v", chatSvc)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
	got, ok := resp.writeSuccessData.(dto.ChatResponse)
	if !ok || got.Message != "일정을 추가했어요" {
		t.Fatalf("unexpected response data: %#v", resp.writeSuccessData)
	}
}

func TestChatHandlerMissingClientIDIsAllowed(t *testing.T) {
	chatSvc := &stubChatService{}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	req := newRequest(http.MethodPost, "/chat", `{"message":"안녕"}`)
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if !chatSvc.called || chatSvc.clientID != "" {
		t.Fatalf("expected call with empty client id, got %+v", chatSvc)
	}
}

func TestChatHandlerPrefersAuthenticatedUID(t *testing.T) {
	chatSvc := &stubChatService{}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	req := newRequest(http.MethodPost, "/chat", `{"clientId":"c1","message":"안녕"}`)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UIDKey, "uid-123"))
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if chatSvc.clientID != "uid-123" {
		t.Fatalf("expected uid to be used, got %q", chatSvc.clientID)
	}
}

func TestChatHandlerInvalidJSON(t *testing.T) {
	chatSvc := &stubChatService{}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	req := newRequest(http.MethodPost, "/chat", "not-json")
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if chatSvc.called {
		t.Fatalf("service should not be called on invalid JSON")
	}
	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError to be called")
	}
}

func TestChatHandlerMissingMessage(t *testing.T) {
	chatSvc := &stubChatService{}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	req := newRequest(http.MethodPost, "/chat", `{"clientId":"c1","message":"   "}`)
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if chatSvc.called {
		t.Fatalf("service should not be called when message missing")
	}
	var valErr *errs.ValidationError
	if !errors.As(resp.handleError, &valErr) {
		t.Fatalf("expected ValidationError, got %T", resp.handleError)
	}
}

func TestChatHandlerServiceError(t *testing.T) {
	chatSvc := &stubChatService{err: errs.NewUnknownToolError("delete_everything")}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	req := newRequest(http.MethodPost, "/chat", `{"clientId":"c1","message":"hello"}`)
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError to be called")
	}
	var toolErr *errs.UnknownToolError
	if !errors.As(resp.handleError, &toolErr) {
		t.Fatalf("expected UnknownToolError, got %T", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called on error")
	}
}

func TestChatHandlerRejectsOversizedBody(t *testing.T) {
	chatSvc := &stubChatService{}
	resp := &stubResponseHandler{}
	h := NewChatHandlers(&Deps{ResponseHandler: resp, ChatSvc: chatSvc})

	body := `{"message":"` + strings.Repeat("가", maxChatBody) + `"}`
	req := newRequest(http.MethodPost, "/chat", body)
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	if chatSvc.called {
		t.Fatalf("service should not be called for an oversized body")
	}
	var tooLarge *http.MaxBytesError
	if !errors.As(resp.handleError, &tooLarge) {
		t.Fatalf("expected MaxBytesError, got %v", resp.handleError)
	}
	if tooLarge.Limit != maxChatBody {
		t.Fatalf("limit = %d, want %d", tooLarge.Limit, maxChatBody)
	}
}
