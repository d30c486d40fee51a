package advisor

import "fmt"

// NewProvider selects a provider implementation by name.
func NewProvider(name, apiKey, model string) (Provider, error) {
	switch name {
	case "claude":
		return NewClaudeProvider(apiKey, model)
	case "gemini":
		return NewGeminiProvider(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider %q", name)
	}
}
