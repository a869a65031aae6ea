package vertexclient

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
)

func TestToGenaiContentsMapsToolTurns(t *testing.T) {
	contents, err := toGenaiContents([]dto.LLMMessage{
		{Role: dto.RoleUser, Content: "회의 삭제해줘"},
		{Role: dto.RoleAssistant, ToolCalls: []dto.LLMToolCall{{Name: "remove_schedule", Arguments: `{"title":"회의"}`}}},
		{Role: dto.RoleTool, ToolName: "remove_schedule", Content: `{"deleted":true,"title":"회의"}`},
	})
	if err != nil {
		t.Fatalf("toGenaiContents error: %v", err)
	}
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" || contents[2].Role != "user" {
		t.Fatalf("unexpected roles: %s %s %s", contents[0].Role, contents[1].Role, contents[2].Role)
	}

	call, ok := contents[1].Parts[0].(*genai.FunctionCall)
	if !ok || call.Name != "remove_schedule" || call.Args["title"] != "회의" {
		t.Fatalf("unexpected function call part: %#v", contents[1].Parts[0])
	}
	resp, ok := contents[2].Parts[0].(genai.FunctionResponse)
	if !ok || resp.Name != "remove_schedule" || resp.Response["deleted"] != true {
		t.Fatalf("unexpected function response part: %#v", contents[2].Parts[0])
	}
}

func TestToGenaiContentsRejectsBadArguments(t *testing.T) {
	_, err := toGenaiContents([]dto.LLMMessage{
		{Role: dto.RoleAssistant, ToolCalls: []dto.LLMToolCall{{Name: "get_schedule", Arguments: `{`}}},
	})
	if err == nil {
		t.Fatalf("expected error for malformed arguments")
	}
}

func TestParseContentResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("확인해볼게요. "),
				&genai.FunctionCall{Name: "get_schedule", Args: map[string]any{"title": "회의"}},
			}},
		}},
	}

	text, calls := parseContentResponse(resp)
	if text != "확인해볼게요. " {
		t.Fatalf("text mismatch: %q", text)
	}
	if len(calls) != 1 || calls[0].Name != "get_schedule" || calls[0].ID != "get_schedule" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if calls[0].Arguments != `{"title":"회의"}` {
		t.Fatalf("arguments = %s", calls[0].Arguments)
	}

	if text, calls := parseContentResponse(nil); text != "" || calls != nil {
		t.Fatalf("nil response should parse empty")
	}
}

func TestToGenaiSchema(t *testing.T) {
	schema := toGenaiSchema(&dto.LLMSchema{
		Type: "object",
		Properties: map[string]*dto.LLMSchema{
			"title": {Type: "string", Description: "Schedule title."},
		},
		Required: []string{"title"},
	})
	if schema.Type != genai.TypeObject {
		t.Fatalf("type = %v", schema.Type)
	}
	if schema.Properties["title"].Type != genai.TypeString {
		t.Fatalf("title type = %v", schema.Properties["title"].Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "title" {
		t.Fatalf("required = %v", schema.Required)
	}
	if toGenaiSchema(nil) != nil {
		t.Fatalf("nil schema should map to nil")
	}
}
