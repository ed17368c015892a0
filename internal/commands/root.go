package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/autoadvisor-dev/autoadvisor/internal/buildinfo"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "autoadvisor",
		Short:   "Personal finance ingestion and monthly insights",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to config.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newIngestCommand(&configPath))
	rootCmd.AddCommand(newAnalyzeCommand(&configPath))
	rootCmd.AddCommand(newMonthsCommand(&configPath))

	return rootCmd
}
