package openaiclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
)

const serviceName = "openai"

// chatCompleter is the slice of *openai.Client the adapter uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Adapter struct {
	client chatCompleter
	model  string
	log    *slog.Logger
}

func NewAdapter(log *slog.Logger, apiKey, baseURL, model string) *Adapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Adapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

func (a *Adapter) GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error) {
	out := dto.LLMGenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("openai model is required")
	}

	messages := toChatMessages(req.System, req.Messages)
	if len(messages) == 0 {
		return out, fmt.Errorf("openai request has no messages")
	}

	sdkReq := openai.ChatCompletionRequest{
		Model:    modelName,
		Messages: messages,
	}
	if len(req.Tools) > 0 {
		sdkReq.Tools = toOpenAITools(req.Tools)
		sdkReq.ToolChoice = "auto"
	}
	if req.Temperature != nil {
		sdkReq.Temperature = *req.Temperature
	}

	resp, err := a.client.CreateChatCompletion(ctx, sdkReq)
	if err != nil {
		return out, toServiceError(err)
	}
	if len(resp.Choices) == 0 {
		return out, errs.NewExternalServiceError(serviceName, "chat completion returned no choices", false, errors.New("empty choices"))
	}

	msg := resp.Choices[0].Message
	out.Raw = resp
	out.Text = msg.Content
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, dto.LLMToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return out, nil
}

func toChatMessages(system string, messages []dto.LLMMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, msg := range messages {
		switch msg.Role {
		case dto.RoleAssistant:
			m := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: msg.Content,
			}
			for _, call := range msg.ToolCalls {
				m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
			out = append(out, m)
		case dto.RoleTool:
			out = append(out, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    msg.Content,
				ToolCallID: msg.ToolCallID,
				Name:       msg.ToolName,
			})
		case dto.RoleSystem:
			out = append(out, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: msg.Content,
			})
		default:
			out = append(out, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: msg.Content,
			})
		}
	}
	return out
}

func toOpenAITools(tools []dto.LLMTool) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, tool := range tools {
		def := &openai.FunctionDefinition{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if tool.Parameters != nil {
			def.Parameters = toDefinition(tool.Parameters)
		}
		out = append(out, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: def,
		})
	}
	return out
}

func toDefinition(schema *dto.LLMSchema) jsonschema.Definition {
	out := jsonschema.Definition{
		Type:        jsonschema.DataType(schema.Type),
		Description: schema.Description,
		Enum:        schema.Enum,
		Required:    schema.Required,
	}
	if schema.Items != nil {
		items := toDefinition(schema.Items)
		out.Items = &items
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]jsonschema.Definition, len(schema.Properties))
		for key, value := range schema.Properties {
			out.Properties[key] = toDefinition(value)
		}
	}
	return out
}

// toServiceError marks rate limits and 5xx responses as transient.
func toServiceError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		transient := apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
		return errs.NewExternalServiceError(serviceName, "chat completion failed", transient, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		transient := reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
		return errs.NewExternalServiceError(serviceName, "chat completion failed", transient, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.NewExternalServiceError(serviceName, "chat completion failed", true, err)
}
