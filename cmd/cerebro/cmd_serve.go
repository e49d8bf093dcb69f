package main

import (
	"cerebro/internal/di"
	"cerebro/internal/structures"
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}
			return app.Run()
		},
	}
}
