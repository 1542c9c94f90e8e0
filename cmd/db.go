package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/composersite/catalog/internal/config"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the content store",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadConfig().OpenStore()
			if err != nil {
				return err
			}
			if err := s.Migrate(); err != nil {
				return err
			}

			color.Green("content store migrated")
			return nil
		},
	}

	return command
}
