package cmd

import (
	"github.com/spf13/cobra"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/server"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "serve the password endpoint and catalog API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port != "" {
				cfg.HTTPPort = port
			}
			return server.Start(cfg)
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port (default HTTP_PORT or 4001)")

	return command
}
