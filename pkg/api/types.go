package api

// ChatRequest is the request body for both the blocking and streaming chat
// endpoints. Optional fields are pointers so the backend's defaults apply
// when they are omitted.
type ChatRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Stream      *bool    `json:"stream,omitempty"`
}

// ChatResponse is the blocking chat completion response.
type ChatResponse struct {
	Response   string `json:"response"`
	ModelUsed  string `json:"model_used"`
	TokensUsed int    `json:"tokens_used"`
	Timestamp  string `json:"timestamp"`
}

// ModelInfo describes one model the backend can serve.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxTokens   int    `json:"max_tokens,omitempty"`
}

// ModelsResponse is the GET /models response.
type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// HealthResponse is the GET /health response.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// StatusResponse is the GET /status response, including the backend's view
// of its own upstream dependencies.
type StatusResponse struct {
	Status            string `json:"status"`
	OpenAIConnected   bool   `json:"openai_connected"`
	DatabaseConnected bool   `json:"database_connected"`
	Message           string `json:"message"`
	Timestamp         string `json:"timestamp"`
}
