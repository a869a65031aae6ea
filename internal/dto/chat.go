package dto

type ChatRequest struct {
	ClientID string `json:"clientId"`
	Message  string `json:"message"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type DebugResponse struct {
	Raw string `json:"raw"`
}
