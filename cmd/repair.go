package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/repair"
)

func repairCmd() *cobra.Command {
	var dryRun bool

	command := &cobra.Command{
		Use:   "repair",
		Short: "link reviews to the works they mention",
		Long: `repair searches every review's body and excerpt for work titles and appends
the missing work references. Existing references are never removed.`,
		Example: "catalog repair --dry-run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cfg.UsesSanity() {
				check := cfg.RequireToken
				if dryRun {
					check = cfg.RequireProject
				}
				if err := check(); err != nil {
					return err
				}
				printField("Project", cfg.Sanity.ProjectID)
				printField("Dataset", cfg.Sanity.Dataset)
			}

			s, err := cfg.OpenStore()
			if err != nil {
				return err
			}

			report, err := repair.NewRepairer(s, dryRun).Run(cmd.Context())
			if err != nil {
				return err
			}

			printRepairReport(report)
			return nil
		},
	}

	command.Flags().BoolVar(&dryRun, "dry-run", false, "report the references without writing them")

	return command
}

func printRepairReport(report *repair.Report) {
	if len(report.Additions) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Review", "New works"})
		for _, addition := range report.Additions {
			table.Append([]string{addition.ReviewTitle, strings.Join(addition.WorkTitles, ", ")})
		}
		table.Render()
	}

	verb := "updated"
	if report.DryRun {
		verb = "would update"
	}
	color.Green("%s %d of %d review(s) with new work references", verb, report.Updated(), report.Reviews)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Review", "Works", "Titles"})
	for _, review := range report.Summary {
		titles := strings.Join(review.WorkTitles, ", ")
		if titles == "" {
			titles = "None"
		}
		table.Append([]string{review.Title, strconv.Itoa(review.WorkCount), titles})
	}
	table.Render()
}
