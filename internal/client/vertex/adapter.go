package vertexclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
)

const serviceName = "vertex"

type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

func (a *Adapter) GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error) {
	out := dto.LLMGenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("vertex model is required")
	}

	model := a.client.GenerativeModel(modelName)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}
	if len(req.Tools) > 0 {
		model.Tools = toGenaiTools(req.Tools)
	}

	contents, err := toGenaiContents(req.Messages)
	if err != nil {
		return out, err
	}
	if len(contents) == 0 {
		return out, fmt.Errorf("vertex generate request has no content")
	}

	// Earlier turns go into the session history; the last one is sent.
	session := model.StartChat()
	session.History = contents[:len(contents)-1]
	last := contents[len(contents)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return out, errs.NewExternalServiceError(serviceName, "generate content failed", true, err)
	}

	out.Raw = resp
	out.Text, out.ToolCalls = parseContentResponse(resp)
	return out, nil
}

// toGenaiContents maps chat messages onto Gemini turns. Tool results are sent
// as function responses in a user turn, keyed by tool name.
func toGenaiContents(messages []dto.LLMMessage) ([]*genai.Content, error) {
	out := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case dto.RoleAssistant:
			content := &genai.Content{Role: "model"}
			if msg.Content != "" {
				content.Parts = append(content.Parts, genai.Text(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				args := map[string]any{}
				if call.Arguments != "" {
					if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
						return nil, fmt.Errorf("decode tool call arguments for %s: %w", call.Name, err)
					}
				}
				content.Parts = append(content.Parts, &genai.FunctionCall{Name: call.Name, Args: args})
			}
			out = append(out, content)
		case dto.RoleTool:
			response := map[string]any{}
			if err := json.Unmarshal([]byte(msg.Content), &response); err != nil {
				response = map[string]any{"result": msg.Content}
			}
			out = append(out, &genai.Content{
				Role: "user",
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     msg.ToolName,
					Response: response,
				}},
			})
		default:
			if msg.Content == "" {
				continue
			}
			out = append(out, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		}
	}
	return out, nil
}

// parseContentResponse collects text and function calls across candidates.
// Gemini does not assign call ids, so the tool name stands in for one.
func parseContentResponse(resp *genai.GenerateContentResponse) (string, []dto.LLMToolCall) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}

	var text string
	var calls []dto.LLMToolCall
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				text += string(p)
			case *genai.FunctionCall:
				args, err := json.Marshal(p.Args)
				if err != nil {
					args = []byte("{}")
				}
				calls = append(calls, dto.LLMToolCall{
					ID:        p.Name,
					Name:      p.Name,
					Arguments: string(args),
				})
			}
		}
	}

	return text, calls
}

func toGenaiTools(tools []dto.LLMTool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGenaiSchema(tool.Parameters),
		})
	}

	return []*genai.Tool{
		{FunctionDeclarations: decls},
	}
}

func toGenaiSchema(schema *dto.LLMSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        toGenaiType(schema.Type),
		Description: schema.Description,
		Enum:        schema.Enum,
		Required:    schema.Required,
	}

	if schema.Items != nil {
		out.Items = toGenaiSchema(schema.Items)
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for key, value := range schema.Properties {
			out.Properties[key] = toGenaiSchema(value)
		}
	}

	return out
}

func toGenaiType(schemaType string) genai.Type {
	switch schemaType {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
