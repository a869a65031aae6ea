package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/pkg/helpers"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

const DefaultTemperature float32 = 0.7

type llmClient interface {
	GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error)
}

type scheduleClient interface {
	Create(ctx context.Context, title, date, status string) (dto.CreateScheduleResult, error)
	Remove(ctx context.Context, title string) (dto.RemoveScheduleResult, error)
	Modify(ctx context.Context, title string, patch dto.SchedulePatch) (dto.ModifyScheduleResult, error)
	Get(ctx context.Context, title string) (dto.GetScheduleResult, error)
}

type chatService struct {
	llm         llmClient
	schedules   scheduleClient
	temperature float32
	location    *time.Location
	clockNow    func() time.Time
}

func NewChatService(llm llmClient, schedules scheduleClient, temperature float32, location *time.Location) *chatService {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if location == nil {
		location = time.UTC
	}
	return &chatService{
		llm:         llm,
		schedules:   schedules,
		temperature: temperature,
		location:    location,
		clockNow:    time.Now,
	}
}

// Chat runs one stateless turn: a model call, at most one tool dispatch, and
// a follow-up model call to phrase the tool result.
func (s *chatService) Chat(ctx context.Context, clientID, message string) (dto.ChatResponse, error) {
	log := logger.FromContext(ctx)

	system := systemPrompt(s.clockNow().In(s.location))
	messages := []dto.LLMMessage{
		{Role: dto.RoleUser, Content: message},
	}

	resp, err := s.llm.GenerateContent(ctx, dto.LLMGenerateRequest{
		System:      system,
		Messages:    messages,
		Tools:       toolSchemas(),
		Temperature: helpers.Ptr(s.temperature),
	})
	if err != nil {
		return dto.ChatResponse{}, err
	}

	if len(resp.ToolCalls) == 0 {
		log.Info("chat completed", "client_id", clientID)
		return dto.ChatResponse{Message: resp.Text}, nil
	}

	if len(resp.ToolCalls) > 1 {
		log.Warn("received multiple tool calls, only processing the first", "count", len(resp.ToolCalls))
	}
	call := resp.ToolCalls[0]

	if !isValidToolName(call.Name) {
		return dto.ChatResponse{}, errs.NewUnknownToolError(call.Name)
	}

	log.Info("executing tool", "tool", call.Name)
	if logger.IsDebugEnabled(ctx) {
		log.Debug("tool arguments", "tool", call.Name, "arguments", call.Arguments)
	}

	result, err := s.executeTool(ctx, call)
	var valErr *errs.ValidationError
	if errors.As(err, &valErr) {
		return dto.ChatResponse{}, errs.NewToolArgumentsError(call.Name, err)
	}
	if err != nil {
		return dto.ChatResponse{}, fmt.Errorf("failed to execute tool %s: %w", call.Name, err)
	}

	// Only the honored call goes back into the context; providers reject an
	// assistant turn whose tool calls lack matching results.
	messages = append(messages,
		dto.LLMMessage{
			Role:      dto.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: []dto.LLMToolCall{call},
		},
		dto.LLMMessage{
			Role:       dto.RoleTool,
			Content:    result,
			ToolCallID: call.ID,
			ToolName:   call.Name,
		},
	)

	finalResp, err := s.llm.GenerateContent(ctx, dto.LLMGenerateRequest{
		System:      system,
		Messages:    messages,
		Tools:       toolSchemas(),
		Temperature: helpers.Ptr(s.temperature),
	})
	if err != nil {
		return dto.ChatResponse{}, err
	}

	log.Info("chat completed", "client_id", clientID, "tool", call.Name)
	return dto.ChatResponse{Message: finalResp.Text}, nil
}

// executeTool binds the call's arguments to the matching schedule operation
// and returns the JSON-encoded result.
func (s *chatService) executeTool(ctx context.Context, call dto.LLMToolCall) (string, error) {
	switch call.Name {
	case toolCreateSchedule:
		return executeScheduleTool(ctx, call, func(ctx context.Context, a dto.CreateScheduleArgs) (dto.CreateScheduleResult, error) {
			return s.schedules.Create(ctx, a.Title, a.Date, a.Status)
		})
	case toolRemoveSchedule:
		return executeScheduleTool(ctx, call, func(ctx context.Context, a dto.RemoveScheduleArgs) (dto.RemoveScheduleResult, error) {
			return s.schedules.Remove(ctx, a.Title)
		})
	case toolModifySchedule:
		return executeScheduleTool(ctx, call, func(ctx context.Context, a dto.ModifyScheduleArgs) (dto.ModifyScheduleResult, error) {
			return s.schedules.Modify(ctx, a.Title, dto.SchedulePatch{
				Title:  a.NewTitle,
				Date:   a.NewDate,
				Status: a.NewStatus,
			})
		})
	case toolGetSchedule:
		return executeScheduleTool(ctx, call, func(ctx context.Context, a dto.GetScheduleArgs) (dto.GetScheduleResult, error) {
			return s.schedules.Get(ctx, helpers.Value(a.Title))
		})
	default:
		return "", errs.NewUnknownToolError(call.Name)
	}
}

func executeScheduleTool[A any, R any](
	ctx context.Context,
	call dto.LLMToolCall,
	exec func(context.Context, A) (R, error),
) (string, error) {
	args, err := decodeArgs[A](call.Arguments)
	if err != nil {
		return "", err
	}
	result, err := exec(ctx, args)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeArgs[T any](raw string) (T, error) {
	var out T
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, errs.NewValidationError(fmt.Sprintf("invalid tool arguments: %v", err))
	}
	return out, nil
}

func systemPrompt(now time.Time) string {
	today := now.Format("2006-01-02")
	weekday := now.Weekday().String()
	return "You are a friendly schedule assistant that manages the user's schedule database. " +
		"Reply in the language the user writes in. " +
		"Call create_schedule when the user asks to add or register a schedule (e.g. '일정 추가', '일정 등록', '추가해줘'). " +
		"Call remove_schedule when the user asks to delete or cancel one (e.g. '삭제', '지워줘', '취소'). " +
		"Call modify_schedule when the user asks to change a title, date, or status (e.g. '변경', '수정', '바꿔줘', '완료로'). " +
		"Call get_schedule when the user asks what is scheduled (e.g. '조회', '알려줘', '뭐 있어'). " +
		"Make only one tool call per request. Dates are YYYY-MM-DD; resolve relative dates like 'tomorrow' yourself. " +
		"Schedule data must come from tool results - never fabricate it. " +
		"For anything unrelated to schedules, answer directly without tools. " +
		"Today is " + today + " (" + weekday + ")."
}
