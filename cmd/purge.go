package cmd

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/service"
)

func purgeCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "purge <type>...",
		Short:   "delete every document of the given types",
		Example: "catalog purge performance work instrument",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, docType := range args {
				if !slices.Contains(model.Types(), docType) {
					return fmt.Errorf("%w: %s", model.ErrUnknownType, docType)
				}
			}

			cfg := config.LoadConfig()
			if cfg.UsesSanity() {
				if err := cfg.RequireToken(); err != nil {
					return err
				}
			}

			s, err := cfg.OpenStore()
			if err != nil {
				return err
			}

			cleanup := service.NewCleanup(s)
			for _, docType := range args {
				deleted, err := cleanup.DeleteType(cmd.Context(), docType)
				if err != nil {
					return err
				}
				color.Green("deleted %d %s document(s)", deleted, docType)
			}
			return nil
		},
	}

	return command
}
