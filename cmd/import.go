package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/ndjson"
)

func importCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "import <file>",
		Short:   "import an NDJSON export into the content store",
		Example: "catalog import sanity-import/all-content.ndjson",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cfg.UsesSanity() {
				if err := cfg.RequireToken(); err != nil {
					return err
				}
			}

			docs, err := ndjson.ReadDocuments(args[0])
			if err != nil {
				return err
			}

			s, err := cfg.OpenStore()
			if err != nil {
				return err
			}
			if err := s.Migrate(); err != nil {
				return err
			}
			if err := s.PutDocuments(cmd.Context(), docs); err != nil {
				return err
			}

			logrus.Infof("imported %d documents from %s", len(docs), args[0])
			printTypeCounts(docs)
			return nil
		},
	}

	return command
}
