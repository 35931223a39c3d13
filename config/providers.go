package config

import (
	"os"
	"strings"

	"nanoagent/model"
)

// Provider IDs recognized by the resolver.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"

	DefaultProviderID = ProviderOpenAI
)

// API key environment variables per provider. Ollama needs none.
const (
	OpenAIKeyEnvVar    = "OPENAI_API_KEY"
	AnthropicKeyEnvVar = "ANTHROPIC_API_KEY"
)

// ProviderProfile is a fully resolved provider configuration usable by the
// provider factory. Immutable for the process lifetime once built.
type ProviderProfile struct {
	ID              string
	Name            string
	BaseURL         string
	APIKeyEnvVar    string
	APIKey          string
	DefaultModel    string
	Model           string // the model this invocation will use
	SupportedModels []string
}

// Static model sets for the cloud providers. Ollama's set is dynamic (it
// depends on what the local server has pulled), so any model name is
// accepted for it and validation happens at request time.
var (
	openAIModels = []string{
		"gpt-5",
		"gpt-5-mini",
		"gpt-5-nano",
		"gpt-4o",
		"gpt-4o-mini",
	}

	anthropicModels = []string{
		"claude-sonnet-4-5-20250929",
		"claude-3-5-haiku-20241022",
		"claude-3-opus-20240229",
		"claude-3-haiku-20240307",
	}
)

// GetProviderDisplayName returns the display name for a provider
func GetProviderDisplayName(providerID string) string {
	switch providerID {
	case ProviderOllama:
		return "Ollama"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderOpenAI:
		return "OpenAI"
	default:
		return providerID
	}
}

// Resolve validates the requested provider and model against the known
// provider set and produces a fully resolved ProviderProfile.
//
// Rules:
//   - provider defaults to the configured default provider (openai when
//     nothing is configured); matching is case-insensitive
//   - model defaults to the configured default model, then to the
//     provider's own cost-efficient default
//   - a model given for a cloud provider must be in that provider's
//     supported set
//   - providers that need an API key fail when the variable is unset
//
// Resolve is pure configuration validation: it never performs a network
// call. Errors are always *model.ConfigError.
func (c *Config) Resolve(providerID, modelID string) (*ProviderProfile, error) {
	if providerID == "" {
		providerID = c.DefaultProvider
	}
	if providerID == "" {
		providerID = DefaultProviderID
	}
	providerID = strings.ToLower(strings.TrimSpace(providerID))

	var profile *ProviderProfile
	switch providerID {
	case ProviderOpenAI:
		profile = &ProviderProfile{
			ID:              ProviderOpenAI,
			Name:            GetProviderDisplayName(ProviderOpenAI),
			BaseURL:         "https://api.openai.com/v1",
			APIKeyEnvVar:    OpenAIKeyEnvVar,
			DefaultModel:    "gpt-5-mini",
			SupportedModels: openAIModels,
		}
	case ProviderAnthropic:
		profile = &ProviderProfile{
			ID:              ProviderAnthropic,
			Name:            GetProviderDisplayName(ProviderAnthropic),
			BaseURL:         "https://api.anthropic.com",
			APIKeyEnvVar:    AnthropicKeyEnvVar,
			DefaultModel:    "claude-sonnet-4-5-20250929",
			SupportedModels: anthropicModels,
		}
	case ProviderOllama:
		profile = &ProviderProfile{
			ID:           ProviderOllama,
			Name:         GetProviderDisplayName(ProviderOllama),
			BaseURL:      c.OllamaHost,
			DefaultModel: c.OllamaModel,
		}
		if profile.BaseURL == "" {
			profile.BaseURL = "http://localhost:11434"
		}
		if profile.DefaultModel == "" {
			profile.DefaultModel = "llama3.1:latest"
		}
	default:
		return nil, model.NewConfigError("unknown provider %q (supported: openai, anthropic, ollama)", providerID)
	}

	if modelID == "" && strings.ToLower(strings.TrimSpace(c.DefaultProvider)) == providerID {
		modelID = c.DefaultModel
	}
	if modelID == "" {
		modelID = profile.DefaultModel
	}
	if len(profile.SupportedModels) > 0 && !containsModel(profile.SupportedModels, modelID) {
		return nil, model.NewConfigError("model %q is not supported by provider %s (supported: %s)",
			modelID, profile.ID, strings.Join(profile.SupportedModels, ", "))
	}
	profile.Model = modelID

	if profile.APIKeyEnvVar != "" {
		key := os.Getenv(profile.APIKeyEnvVar)
		if key == "" {
			return nil, model.NewConfigError("provider %s requires the %s environment variable to be set",
				profile.ID, profile.APIKeyEnvVar)
		}
		profile.APIKey = key
	}

	return profile, nil
}

func containsModel(models []string, modelID string) bool {
	for _, m := range models {
		if m == modelID {
			return true
		}
	}
	return false
}
