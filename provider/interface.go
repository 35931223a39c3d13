// Package provider implements the LLM provider abstraction.
//
// The agent loop talks to a single capability, model.Provider.Chat: one
// transcript out, one assistant response back. Three implementations
// cover the supported providers (OpenAI, Anthropic, Ollama); all
// provider-specific quirks (auth header format, endpoint path, wire
// formats, usage reporting) live here and nowhere else.
//
// Type conversions between the provider-agnostic model types and each
// SDK's types are in conversions.go.
package provider

import "nanoagent/config"

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}

// ConfigFromProfile builds a provider Config from a resolved profile.
func ConfigFromProfile(profile *config.ProviderProfile) Config {
	return Config{
		Type:    ProviderType(profile.ID),
		BaseURL: profile.BaseURL,
		Model:   profile.Model,
		APIKey:  profile.APIKey,
	}
}
