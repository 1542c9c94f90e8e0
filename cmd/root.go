package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/composersite/catalog/internal/config"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "composer catalog migration and content tool",
	Example: `catalog export -o sanity-import/all-content.ndjson
catalog export --stdout > all-content.ndjson
catalog import sanity-import/all-content.ndjson
catalog repair --dry-run
catalog purge performance
catalog serve
catalog db migrate`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// stdout is reserved for command output such as NDJSON
		logrus.SetOutput(os.Stderr)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		printError(cmd, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(repairCmd())
	rootCmd.AddCommand(purgeCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// printError reports err on stderr, with a remediation hint for missing
// configuration.
func printError(cmd *cobra.Command, err error) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	var missing *config.MissingEnvError
	if errors.As(err, &missing) {
		red.Fprintf(os.Stderr, "missing: %s\n", missing.Name)
		value := "your_value_here"
		if missing.Name == "SANITY_TOKEN" {
			value = "your_token_here"
		}
		green.Fprintf(os.Stderr, "provide: %s=%q %s\n", missing.Name, value, cmd.CommandPath())
		return
	}

	red.Fprintf(os.Stderr, "error: %v\n", err)
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Fprint(os.Stderr, label)
	color.Unset()
	fmt.Fprintf(os.Stderr, ": %s\n", value)
}
