package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"nanoagent/config"
	"nanoagent/provider"
)

var modelsProviderFlag string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models per provider",
	Long: `List the models each configured provider offers. Providers that are
unreachable or missing credentials are reported and skipped; the other
providers still list.`,
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().StringVarP(&modelsProviderFlag, "provider", "p", "", "Only list models for this provider")
}

func runModels(cmd *cobra.Command, args []string) error {
	providers := []string{config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderOllama}
	if modelsProviderFlag != "" {
		providers = []string{modelsProviderFlag}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "PROVIDER\tMODEL\tDEFAULT")

	for _, id := range providers {
		profile, err := appConfig.Resolve(id, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
			continue
		}

		p, err := provider.NewProvider(provider.ConfigFromProfile(profile))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
			continue
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		models, err := p.ListModels(ctx)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: listing models failed: %v\n", id, err)
			continue
		}

		for _, m := range models {
			def := ""
			if m.Name == profile.DefaultModel {
				def = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", id, m.Name, def)
		}
	}

	return nil
}
