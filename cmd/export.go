package cmd

import (
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/export"
	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/ndjson"
	"github.com/composersite/catalog/internal/queue"
)

const defaultExportPath = "sanity-import/all-content.ndjson"

func exportCmd() *cobra.Command {
	var output string
	var stdout bool
	var kafka bool

	command := &cobra.Command{
		Use:   "export",
		Short: "export the legacy CMS as NDJSON",
		Long: `export reads the legacy CMS database and writes every publisher, instrument,
work, recording, review, performance and page as one NDJSON document per line.
The output is compressed when the file name ends in .gz, .br or .lz4.`,
		Example: "catalog export -o sanity-import/all-content.ndjson.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			var publisher queue.DocumentPublisher
			if kafka {
				if cfg.Kafka.Brokers == "" {
					return &config.MissingEnvError{Name: "KAFKA_BROKERS"}
				}
				p, err := queue.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
				if err != nil {
					return err
				}
				defer p.Close()
				publisher = p
			}

			source, err := cfg.LegacySource()
			if err != nil {
				return err
			}

			docs, err := export.NewExporter(source, cfg.Legacy.AssetsPath).Run(cmd.Context())
			if err != nil {
				return err
			}

			if stdout {
				if err := ndjson.Write(os.Stdout, docs); err != nil {
					return err
				}
			} else {
				if err := ndjson.WriteFile(output, docs); err != nil {
					return err
				}
				logrus.Infof("wrote %d documents to %s", len(docs), output)
			}

			if publisher != nil {
				if err := publisher.Publish(cmd.Context(), docs); err != nil {
					return err
				}
				logrus.Infof("published %d documents to %s", len(docs), cfg.Kafka.Topic)
			}

			printTypeCounts(docs)
			if !stdout {
				printField("Import", "catalog import "+output)
			}
			return nil
		},
	}

	command.Flags().StringVarP(&output, "output", "o", defaultExportPath, "output file")
	command.Flags().BoolVar(&stdout, "stdout", false, "write NDJSON to stdout instead of a file")
	command.Flags().BoolVar(&kafka, "kafka", false, "also publish every document to KAFKA_TOPIC")

	return command
}

// printTypeCounts renders the number of documents per type on stderr.
func printTypeCounts(docs []model.Document) {
	counts := make(map[string]int)
	for _, doc := range docs {
		counts[doc.DocumentType()]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	table := tablewriter.NewWriter(os.Stderr)
	table.SetHeader([]string{"Type", "Documents"})
	for _, t := range types {
		table.Append([]string{t, strconv.Itoa(counts[t])})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(len(docs))})
	table.Render()
}
