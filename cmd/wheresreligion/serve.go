package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livedreligion/wheresreligion/internal/bootstrap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the map and notes HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			return bootstrap.RunServer(cmd.Context(), cfg)
		},
	}
}
