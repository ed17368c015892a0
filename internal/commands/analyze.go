package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autoadvisor-dev/autoadvisor/internal/analyze"
	"github.com/autoadvisor-dev/autoadvisor/internal/config"
	"github.com/autoadvisor-dev/autoadvisor/internal/insights"
	"github.com/autoadvisor-dev/autoadvisor/internal/ledger"
	"github.com/autoadvisor-dev/autoadvisor/internal/narrative"
)

func newAnalyzeCommand(configPath *string) *cobra.Command {
	var month string
	var withNarrative bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute monthly metrics and insights from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cfg, month, withNarrative)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to analyze (YYYY-MM, default: latest in ledger)")
	cmd.Flags().BoolVar(&withNarrative, "narrative", false, "add an LLM-written narrative")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, month string, withNarrative bool) error {
	txns, err := ledger.Read(cfg.Data.CleanedTransactionsPath)
	if err != nil {
		return err
	}

	m, err := analyze.Analyze(txns, month)
	if err != nil {
		return err
	}

	printMetrics(m)

	fmt.Println("\n=== Insights ===")
	for _, line := range insights.Generate(m) {
		fmt.Printf("- %s\n", line)
	}

	if withNarrative {
		fmt.Println("\n=== Narrative ===")
		fmt.Println(narrativeFor(ctx, cfg, m))
	}
	return nil
}

func narrativeFor(ctx context.Context, cfg *config.Config, m analyze.Metrics) string {
	client, ok := narrative.FromEnv(cfg.AI.Model)
	if !ok {
		return narrative.Fallback
	}
	text, err := client.Narrative(ctx, m)
	if err != nil {
		logger.Warn().Err(err).Msg("narrative generation failed")
		return narrative.Fallback
	}
	return text
}

func printMetrics(m analyze.Metrics) {
	fmt.Println("=== Monthly Metrics ===")
	fmt.Printf("period: %s\n", m.Period)
	fmt.Printf("income_total: %s\n", m.IncomeTotal.StringFixed(2))
	fmt.Printf("expense_total: %s\n", m.ExpenseTotal.StringFixed(2))
	fmt.Printf("net: %s\n", m.Net.StringFixed(2))
	fmt.Printf("savings_rate_pct: %s\n", m.SavingsRatePct.StringFixed(2))
	fmt.Printf("tx_count: %d\n", m.TxCount)

	fmt.Println("top_categories:")
	for _, c := range m.TopCategories {
		fmt.Printf("  %s: %s\n", c.Category, c.Amount.StringFixed(2))
	}

	fmt.Println("spikes:")
	for _, s := range m.Spikes {
		date := "-"
		if s.Date != nil {
			date = *s.Date
		}
		fmt.Printf("  %s  %s  %s (%s)\n", date, s.Amount.StringFixed(2), s.Description, s.Category)
	}
}
