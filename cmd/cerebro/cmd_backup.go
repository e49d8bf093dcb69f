package main

import (
	"cerebro/internal"
	"cerebro/internal/structures"
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(flags *structures.CliFlags) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a compressed snapshot of the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(flags, func(j *internal.Journal) error {
				target := backupPath(j, path)
				if target == "" {
					return fmt.Errorf("no backup file: set backup.filePath or pass --file")
				}
				n, err := j.FileManager.SaveToFile(cmd.Context(), target)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "backed up %d events to %s\n", n, target)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "snapshot path, defaults to backup.filePath")
	return cmd
}

// Restore imports on top of existing events; ids already present are
// overwritten with the snapshot copy.
func newRestoreCmd(flags *structures.CliFlags) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Import events from a compressed snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(flags, func(j *internal.Journal) error {
				source := backupPath(j, path)
				if source == "" {
					return fmt.Errorf("no backup file: set backup.filePath or pass --file")
				}
				n, err := j.FileManager.LoadFromFile(cmd.Context(), source)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d events from %s\n", n, source)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "snapshot path, defaults to backup.filePath")
	return cmd
}

func backupPath(j *internal.Journal, override string) string {
	if override != "" {
		return override
	}
	return j.Conf.Backup.FilePath
}
