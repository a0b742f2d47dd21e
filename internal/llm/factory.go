package llm

import (
	"fmt"

	"gengar/internal/config"
)

// Factory creates model clients with consistent credential handling.
type Factory struct {
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	YandexOAuthToken string
	YandexFolderID   string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
}

// Configured reports whether the provider has usable credentials. When it
// is false the assistant runs on the canned catalog alone; that is the
// normal mode, not an error.
func (f *Factory) Configured(provider config.Provider) bool {
	switch provider {
	case config.ProviderOpenAI:
		return f.OpenAIAPIKey != ""
	case config.ProviderYandex:
		return f.YandexOAuthToken != "" && f.YandexFolderID != ""
	default:
		return false
	}
}

// CreateClient builds a client for the provider, or nil when the provider
// is unconfigured.
func (f *Factory) CreateClient(provider config.Provider, model string) (Client, error) {
	if !f.Configured(provider) {
		return nil, nil
	}
	switch provider {
	case config.ProviderOpenAI:
		return NewOpenAI(f.OpenAIAPIKey, f.OpenAIBaseURL, model), nil
	case config.ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
