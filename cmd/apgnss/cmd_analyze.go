package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukejenkins/ap-gnss-stats/internal/batch"
	"github.com/lukejenkins/ap-gnss-stats/internal/parser"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Report which transcript sections a capture contains",
		Long: `Print a structural census of each capture as JSON: which command outputs
and section landmarks appear, and how often. Handy for working out why a
capture parses into a mostly-empty record.`,
		Args: cobra.MinimumNArgs(1),
		RunE: analyzeCommandE,
	}
	return cmd
}

func analyzeCommandE(cmd *cobra.Command, args []string) error {
	report := map[string]any{}
	for _, path := range args {
		content, _, err := batch.ReadCapture(path)
		if err != nil {
			return err
		}
		report[path] = parser.Analyze(content)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
