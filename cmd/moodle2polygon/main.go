package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/FynjyBath/moodle2polygon/conf"
	"github.com/FynjyBath/moodle2polygon/importer"
	"github.com/FynjyBath/moodle2polygon/moodle"
	"github.com/FynjyBath/moodle2polygon/polygon"
)

func main() {
	var configPath string
	var dryRun bool
	var logLevel string
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "moodle2polygon <export.xml>",
		Short:         "Import Moodle CodeRunner tasks into Polygon",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeLogger(logLevel, logFile); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return run(args[0], configPath, dryRun)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "polygon_config.ini", "Path to the file with Polygon credentials")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and preview the export without calling Polygon")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level [trace, debug, info, warn, error]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to a file instead of the console")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(exportPath string, configPath string, dryRun bool) error {
	export, err := moodle.ParseExportFile(exportPath)
	if err != nil {
		return fmt.Errorf("failed to parse Moodle export: %w", err)
	}
	if len(export.Tasks) == 0 {
		return fmt.Errorf("no CodeRunner tasks found in %s", exportPath)
	}

	if dryRun {
		fmt.Print(renderPreview(export))
		return nil
	}

	cfg, err := conf.LoadPolygonConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	client := polygon.NewClient(cfg.APIURL, cfg.Key, cfg.Secret)
	defer client.Close()

	report, err := importer.New(client).ImportAll(context.Background(), export)
	if err != nil {
		if ids := report.IDs(); len(ids) > 0 {
			log.Warn().Ints("problemIds", ids).Msg("Problems created before the failure remain in Polygon")
		}
		return err
	}

	for _, id := range report.IDs() {
		fmt.Println(id)
	}
	return nil
}
