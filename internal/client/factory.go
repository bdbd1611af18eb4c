package client

import (
	"fmt"
	"net/http"

	"email-writer/internal/config"
	"email-writer/internal/llm"
)

// NewLLM creates a new LLM client based on configuration.
// The returned client is safe for concurrent use; cfg must not change after this call.
func NewLLM(cfg config.ProviderConfig) (llm.Client, error) {
	switch cfg.Backend {
	case "", config.BackendHTTP:
		return NewHTTPClient(cfg, http.DefaultTransport)
	case config.BackendOpenAI:
		if cfg.Dialect != config.DialectChat {
			return nil, fmt.Errorf("backend %s requires dialect %s, got %q", config.BackendOpenAI, config.DialectChat, cfg.Dialect)
		}
		return NewOpenAIAdapter(cfg, &http.Client{}), nil
	default:
		return nil, fmt.Errorf("unknown llm backend: %q", cfg.Backend)
	}
}
