package domain

// Provider names the LLM vendor requested by the caller. Values other than the
// known constants are kept verbatim so they can be reported back.
type Provider string

const (
	ProviderOpenAI Provider = "Openai"
	ProviderGroq   Provider = "Groq"
)

// ChatRequest is the provider-agnostic request shape accepted by the handler
// and forwarded unchanged to the dispatcher.
type ChatRequest struct {
	ModelName     string   `json:"model_name"`
	ModelProvider Provider `json:"model_provider"`
	SystemPrompt  string   `json:"system_prompt"`
	Query         string   `json:"query"`
	AllowSearch   bool     `json:"allow_search"`
}
