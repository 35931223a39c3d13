package config

import "nanoagent/model"

// DefaultTimeoutSeconds bounds each individual provider call.
const DefaultTimeoutSeconds = 300

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: GetDefaultDataDir(),
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Ollama: OllamaConfig{
			Host:         "http://localhost:11434",
			DefaultModel: "llama3.1:latest",
		},
		Agent: AgentConfig{
			MaxTurns:       model.DefaultMaxTurns,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# nano-agent System Configuration
# Location: ~/.config/nano-agent/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config and the debug log are stored
data_directory = "~/.local/share/nano-agent"
`
}

func GenerateUserConfigTemplate() string {
	return `# nano-agent User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Default provider for prompts: "openai", "anthropic" or "ollama".
# API keys are never stored here; they come from OPENAI_API_KEY and
# ANTHROPIC_API_KEY environment variables.
default_provider = "openai"

# Default model. Leave empty to use the provider's own default.
default_model = ""

[ollama]
# Ollama server URL
host = "http://localhost:11434"

# Model to use when the provider is ollama and no model is given
default_model = "llama3.1:latest"

[agent]
# Upper bound on agent turns per prompt (hard-capped at 20)
max_turns = 10

# Per-request timeout for provider calls, in seconds
timeout_seconds = 300
`
}
