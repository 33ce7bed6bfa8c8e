package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lukejenkins/ap-gnss-stats/internal/config"
)

var version = "dev"

var (
	configPath      string
	configOverrides []string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apgnss",
		Short: "apgnss - parse AP GNSS transcripts into records and reports",
		Long: `apgnss turns captured Cisco AP CLI transcripts into structured device
records, and exports batches of records as CSV or Prometheus textfiles.

Captures are read as-is; the tool never talks to an AP or any network
service.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML settings file")
	cmd.PersistentFlags().StringArrayVar(&configOverrides, "set", nil, "Override a setting as key=value (can be repeated)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newParseCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newMetricsCommand())
	cmd.AddCommand(newAnalyzeCommand())

	return cmd
}

// loadSettings resolves settings from defaults, the optional config file and
// --set overrides, in that order.
func loadSettings() (config.Settings, error) {
	settings := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}
	if err := settings.ApplyOverrides(configOverrides); err != nil {
		return settings, err
	}
	return settings, nil
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
