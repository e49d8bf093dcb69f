package main

import (
	"cerebro/internal"
	"cerebro/internal/export"
	"cerebro/internal/structures"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(flags *structures.CliFlags) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every event as JSON or CSV",
		Long: `Exports the whole journal. With --out pointing at a directory the
file is named cerebro-journal-YYYY-MM-DD.<format>; "-" writes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return withJournal(flags, func(j *internal.Journal) error {
				if out == "-" {
					return j.Service.Export(cmd.Context(), cmd.OutOrStdout(), f)
				}

				path := out
				if info, err := os.Stat(out); err == nil && info.IsDir() {
					path = filepath.Join(out, export.FileName(f, time.Now()))
				}
				file, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := j.Service.Export(cmd.Context(), file, f); err != nil {
					file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file or directory")
	return cmd
}
