package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukejenkins/ap-gnss-stats/internal/promexport"
)

var (
	metricsOutput    string
	metricsRecursive bool
)

func newMetricsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics <json-file-or-dir>...",
		Short: "Write parsed records as a Prometheus textfile",
		Long: `Render parsed JSON records as Prometheus gauges in the node_exporter
textfile collector format. Point --output at a file inside the collector's
directory and each run replaces the previous samples.`,
		Args: cobra.MinimumNArgs(1),
		RunE: metricsCommandE,
	}

	cmd.Flags().StringVarP(&metricsOutput, "output", "o", "", "Textfile path (default: ap_gnss.prom in the output directory)")
	cmd.Flags().BoolVar(&metricsRecursive, "recursive", false, "Recurse into subdirectories when an argument is a directory")

	return cmd
}

func metricsCommandE(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	output := settings.Metrics.TextfilePath
	if cmd.Flags().Changed("output") {
		output = metricsOutput
	}
	if output == "" {
		output = settings.OutputDir + "/ap_gnss.prom"
	}

	records, failed, err := loadRecords(cmd, args, metricsRecursive)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records could be loaded from %s", strings.Join(args, ", "))
	}

	if err := promexport.WriteTextfile(output, records); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote metrics for %d record(s) to %s\n", len(records), output)

	if failed > 0 {
		return &PartialFailureError{
			Message: fmt.Sprintf("%d record file(s) could not be loaded", failed),
		}
	}
	return nil
}
