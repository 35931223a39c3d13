package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nanoagent/cost"
)

var reportCSVFlag string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the model pricing table used for cost estimates",
	Long: `Print the per-1K-token prices used to estimate run costs. Models not
in this table run with a zero-cost fallback and their results carry a
pricing_unknown flag; Ollama models are always free.

Per-run usage records are exported with "nano-cli run --csv".`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportCSVFlag, "csv", "", "Write the pricing table to a CSV file")
}

func runReport(cmd *cobra.Command, args []string) error {
	models := cost.KnownModels()

	if reportCSVFlag != "" {
		if err := writePricingCSV(reportCSVFlag, models); err != nil {
			return err
		}
		fmt.Printf("wrote %d models to %s\n", len(models), reportCSVFlag)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "MODEL\tINPUT $/1K\tOUTPUT $/1K")
	for _, id := range models {
		p, _ := cost.GetModelPricing(id)
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\n", id, p.InputPer1K, p.OutputPer1K)
	}
	return nil
}

func writePricingCSV(path string, models []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"model", "input_per_1k_usd", "output_per_1k_usd"}); err != nil {
		return err
	}
	for _, id := range models {
		p, _ := cost.GetModelPricing(id)
		record := []string{
			id,
			fmt.Sprintf("%.5f", p.InputPer1K),
			fmt.Sprintf("%.5f", p.OutputPer1K),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
