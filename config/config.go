package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

type AgentConfig struct {
	MaxTurns       int `toml:"max_turns"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type UserConfig struct {
	Ollama          OllamaConfig `toml:"ollama"`
	Agent           AgentConfig  `toml:"agent"`
	DefaultProvider string       `toml:"default_provider,omitempty"`
	DefaultModel    string       `toml:"default_model,omitempty"`
}

// Config is the fully resolved process configuration: settings.toml plus
// the user config plus environment overrides. Built once per invocation
// and treated as read-only afterwards.
type Config struct {
	DataDirectory   string
	OllamaHost      string
	OllamaModel     string
	DefaultProvider string
	DefaultModel    string
	MaxTurns        int
	RequestTimeout  time.Duration
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("NANO_AGENT_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("NANO_AGENT_OLLAMA_MODEL"); model != "" {
		c.OllamaModel = model
	}
	if dataDir := os.Getenv("NANO_AGENT_DATA_DIR"); dataDir != "" {
		if normalized, err := NormalizeDataDirectory(dataDir); err == nil {
			c.DataDirectory = normalized
		}
	}
	if provider := os.Getenv("NANO_AGENT_PROVIDER"); provider != "" {
		c.DefaultProvider = provider
	}
	if model := os.Getenv("NANO_AGENT_MODEL"); model != "" {
		c.DefaultModel = model
	}
}

func CheckDebug() bool {
	debug := os.Getenv("NANO_AGENT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// Create debug log with secure permissions (0600 - may contain prompts)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (NANO_AGENT_DEBUG=%s) ===", os.Getenv("NANO_AGENT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load resolves the full configuration: settings.toml for the data
// directory, config.toml in the data directory for defaults, then
// environment overrides on top. Missing files are created from templates.
func Load() (*Config, error) {
	defaults := DefaultUserConfig()
	cfg := &Config{
		DataDirectory:   DefaultSystemConfig().DataDirectory,
		OllamaHost:      defaults.Ollama.Host,
		OllamaModel:     defaults.Ollama.DefaultModel,
		DefaultProvider: DefaultProviderID,
		DefaultModel:    "",
		MaxTurns:        defaults.Agent.MaxTurns,
		RequestTimeout:  time.Duration(defaults.Agent.TimeoutSeconds) * time.Second,
	}

	sysCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, err
	}
	if sysCfg.DataDirectory != "" {
		cfg.DataDirectory = sysCfg.DataDirectory
	}

	userCfg, err := LoadUserConfig(cfg.DataDir())
	if err != nil {
		return nil, err
	}
	if userCfg.Ollama.Host != "" {
		cfg.OllamaHost = userCfg.Ollama.Host
	}
	if userCfg.Ollama.DefaultModel != "" {
		cfg.OllamaModel = userCfg.Ollama.DefaultModel
	}
	if userCfg.DefaultProvider != "" {
		cfg.DefaultProvider = userCfg.DefaultProvider
	}
	if userCfg.DefaultModel != "" {
		cfg.DefaultModel = userCfg.DefaultModel
	}
	if userCfg.Agent.MaxTurns > 0 {
		cfg.MaxTurns = userCfg.Agent.MaxTurns
	}
	if userCfg.Agent.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(userCfg.Agent.TimeoutSeconds) * time.Second
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}
