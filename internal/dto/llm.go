package dto

// Provider-neutral chat-completion types. The OpenAI and Vertex adapters
// translate these to their SDK shapes.

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type LLMGenerateRequest struct {
	Model       string
	System      string
	Messages    []LLMMessage
	Tools       []LLMTool
	Temperature *float32
}

type LLMGenerateResponse struct {
	Text      string
	ToolCalls []LLMToolCall
	Raw       any
}

type LLMMessage struct {
	Role    string
	Content string
	// Set on assistant messages that requested tools.
	ToolCalls []LLMToolCall
	// Set on tool-result messages.
	ToolCallID string
	ToolName   string
}

type LLMTool struct {
	Name        string
	Description string
	Parameters  *LLMSchema
}

// LLMToolCall carries the arguments as the JSON string the model produced.
type LLMToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type LLMSchema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]*LLMSchema
	Required    []string
	Items       *LLMSchema
}
