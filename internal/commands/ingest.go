package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/autoadvisor-dev/autoadvisor/internal/categorize"
	"github.com/autoadvisor-dev/autoadvisor/internal/config"
	"github.com/autoadvisor-dev/autoadvisor/internal/ingest"
	"github.com/autoadvisor-dev/autoadvisor/internal/ledger"
	"github.com/autoadvisor-dev/autoadvisor/internal/runlog"
)

func newIngestCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Normalize the transactions CSV into the canonical ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runIngest(cfg)
		},
	}
}

func runIngest(cfg *config.Config) error {
	runID := uuid.NewString()
	log := logger.With().Str("run_id", runID).Logger()
	log.Info().Str("source", cfg.Data.TransactionsPath).Msg("starting ingest")

	res, err := ingest.LoadFile(cfg.Data.TransactionsPath, categorize.DefaultLexicon())
	if err != nil {
		return err
	}

	if err := ledger.Write(cfg.Data.CleanedTransactionsPath, res.Transactions); err != nil {
		return err
	}

	entry := runlog.Entry{
		Timestamp:   time.Now().UTC(),
		RunID:       runID,
		Source:      res.Source,
		Rows:        len(res.Transactions),
		NullDates:   res.NullDates,
		NullAmounts: res.NullAmounts,
		LedgerPath:  cfg.Data.CleanedTransactionsPath,
	}
	if err := runlog.Append(".", []runlog.Entry{entry}); err != nil {
		return err
	}

	log.Info().
		Int("rows", entry.Rows).
		Int("null_dates", entry.NullDates).
		Int("null_amounts", entry.NullAmounts).
		Str("ledger", entry.LedgerPath).
		Msg("ingest complete")

	fmt.Printf("Ingested %d transactions into %s\n", entry.Rows, entry.LedgerPath)
	return nil
}
