package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nanoagent/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agent as an MCP tool over stdio",
	Long: `Start an MCP server on stdin/stdout exposing the prompt_nano_agent
tool. Intended to be launched by an MCP host (e.g. an editor or another
agent), not interactively.

The agent's working directory is the directory nano-cli was started in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mcpserver.Version = Version
		s := mcpserver.New(appConfig)

		fmt.Fprintln(os.Stderr, "nano-agent MCP server listening on stdio")
		return s.ServeStdio()
	},
}
