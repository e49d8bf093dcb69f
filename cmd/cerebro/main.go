package main

import (
	"cerebro/internal"
	"cerebro/internal/di"
	"cerebro/internal/structures"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:   "cerebro",
		Short: "Personal mood and intensity journal",
		Long: `cerebro records journal events into a local SQLite database and
serves filtering, insights and export over HTTP or from the command line.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/cerebro.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "mirror logs to the console")

	rootCmd.AddCommand(
		newServeCmd(flags),
		newAddCmd(flags),
		newListCmd(flags),
		newDeleteCmd(flags),
		newStatsCmd(flags),
		newExportCmd(flags),
		newBackupCmd(flags),
		newRestoreCmd(flags),
	)
	return rootCmd
}

// withJournal opens the journal for one command and always closes it.
func withJournal(flags *structures.CliFlags, fn func(j *internal.Journal) error) (err error) {
	j, err := di.InitJournal(flags)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := j.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(j)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
