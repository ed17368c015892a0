package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autoadvisor-dev/autoadvisor/internal/analyze"
	"github.com/autoadvisor-dev/autoadvisor/internal/config"
	"github.com/autoadvisor-dev/autoadvisor/internal/ledger"
)

func newMonthsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List analyzable months in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			txns, err := ledger.Read(cfg.Data.CleanedTransactionsPath)
			if err != nil {
				return err
			}

			months := analyze.Months(txns)
			if len(months) == 0 {
				fmt.Println("No months with valid dates in the ledger.")
				return nil
			}
			for _, m := range months {
				fmt.Println(m)
			}
			return nil
		},
	}
}
