package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nanoagent/agent"
	"nanoagent/cost"
	"nanoagent/model"
	"nanoagent/provider"
)

var (
	runProviderFlag string
	runModelFlag    string
	runMaxTurnsFlag int
	runDirFlag      string
	runJSONFlag     bool
	runVerboseFlag  bool
	runCSVFlag      string
)

var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Execute a prompt with the agent",
	Long: `Run the agent loop on a single prompt and print the result.

The agent operates on files under the working directory (--dir, default:
the current directory) and finishes when the model produces a final
answer or the turn limit is hit.

Examples:
  nano-cli run "Summarize README.md"
  nano-cli run "Create hello.txt containing hello" --provider anthropic
  nano-cli run "List the Go files" --provider ollama --model llama3.1:latest
  nano-cli run "Refactor notes" --max-turns 15 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runProviderFlag, "provider", "p", "", "Provider: openai, anthropic or ollama (default: config)")
	runCmd.Flags().StringVarP(&runModelFlag, "model", "m", "", "Model (default: the provider's default)")
	runCmd.Flags().IntVarP(&runMaxTurnsFlag, "max-turns", "t", 0, "Maximum agent turns (default: config)")
	runCmd.Flags().StringVarP(&runDirFlag, "dir", "d", "", "Working directory for file tools (default: current directory)")
	runCmd.Flags().BoolVar(&runJSONFlag, "json", false, "Print the full result as JSON")
	runCmd.Flags().BoolVarP(&runVerboseFlag, "verbose", "v", false, "Print per-call token usage and tool calls")
	runCmd.Flags().StringVar(&runCSVFlag, "csv", "", "Write per-call usage records to a CSV file")
}

func runRun(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	profile, err := appConfig.Resolve(runProviderFlag, runModelFlag)
	if err != nil {
		return err
	}

	p, err := provider.NewProvider(provider.ConfigFromProfile(profile))
	if err != nil {
		return err
	}

	workingDir := runDirFlag
	if workingDir == "" {
		workingDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
	}

	maxTurns := runMaxTurnsFlag
	if maxTurns <= 0 {
		maxTurns = appConfig.MaxTurns
	}

	tracker := cost.NewTracker("")
	executor := agent.NewExecutor(appConfig, p, profile.ID)
	executor.Tracker = tracker

	result := executor.Execute(cmd.Context(), model.AgentRequest{
		Prompt:     prompt,
		Provider:   profile.ID,
		Model:      profile.Model,
		MaxTurns:   maxTurns,
		WorkingDir: workingDir,
	})

	if runCSVFlag != "" {
		exporter := cost.NewCSVExporter(cost.DefaultCSVExportConfig())
		if err := exporter.ExportToFile(tracker.Records(), runCSVFlag, nil, nil); err != nil {
			fmt.Fprintf(os.Stderr, "warning: CSV export failed: %v\n", err)
		}
	}

	printResult(result)

	if !result.Success {
		// Error already printed; a bare error keeps cobra from adding
		// usage help on execution failures.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("execution failed")
	}
	return nil
}

func printResult(result *model.ExecutionResult) {
	if runJSONFlag {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	if result.Success {
		fmt.Println(result.FinalText)
	} else {
		fmt.Fprintf(os.Stderr, "error (%s): %s\n", result.ErrorKind, result.Error)
	}

	if runVerboseFlag {
		fmt.Fprintf(os.Stderr, "\nturns: %d  tokens: %d in / %d out / %d total  cost: $%.6f",
			result.TurnsUsed, result.InputTokens, result.OutputTokens, result.TotalTokens, result.EstimatedCost)
		if result.PricingUnknown {
			fmt.Fprint(os.Stderr, " (pricing unknown for this model)")
		}
		fmt.Fprintln(os.Stderr)
		for _, call := range result.ToolCallsMade {
			fmt.Fprintf(os.Stderr, "tool: %s %v\n", call.Name, call.Arguments)
		}
	}
}
