package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider returns a Chat Completions provider pointed at
// OpenRouter. Models are OpenRouter slugs such as "google/gemini-2.0-flash-exp"
// and are passed through unchanged.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}
	return newChatProvider(ProviderOpenRouter, cfg.APIKey, base, cfg.Model)
}
