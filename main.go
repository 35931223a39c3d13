package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nanoagent/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

var appConfig *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "nano-cli",
	Short:   "Autonomous file-system agent over OpenAI, Anthropic and Ollama",
	Version: Version,
	Long: `nano-cli executes natural-language prompts with an autonomous agent
that can read, write, edit and list files in its working directory.

The same engine is available to MCP hosts via "nano-cli serve", which
exposes the prompt_nano_agent tool over stdio.

API keys come from environment variables only: OPENAI_API_KEY and
ANTHROPIC_API_KEY. Ollama needs no key.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if config.CheckDebug() {
			config.InitDebugLog(appConfig.DataDir())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testToolsCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(reportCmd)
}
