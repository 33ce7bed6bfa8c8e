package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukejenkins/ap-gnss-stats/internal/batch"
	"github.com/lukejenkins/ap-gnss-stats/internal/models"
	"github.com/lukejenkins/ap-gnss-stats/internal/naming"
	"github.com/lukejenkins/ap-gnss-stats/internal/parser"
	"github.com/lukejenkins/ap-gnss-stats/internal/schema"
)

var (
	parseOutputDir     string
	parseIncludeRaw    bool
	parsePretty        bool
	parseValidate      bool
	parseSourceAddress string
	parseWorkers       int
	parseRecursive     bool
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file-or-dir>...",
		Short: "Parse capture files into per-device JSON records",
		Long: `Parse one or more transcript captures (or directories of captures) and
write one JSON record per input file to the output directory.

Captures may be plain text or gzip-compressed (.txt, .log, .txt.gz, .log.gz).`,
		Args: cobra.MinimumNArgs(1),
		RunE: parseCommandE,
	}

	cmd.Flags().StringVarP(&parseOutputDir, "output-dir", "o", "", "Directory for JSON records (default: output)")
	cmd.Flags().BoolVar(&parseIncludeRaw, "include-raw", false, "Scavenge unrecognized key/value lines into raw_data")
	cmd.Flags().BoolVar(&parsePretty, "pretty", false, "Indent JSON output")
	cmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate each record against the record schema")
	cmd.Flags().StringVar(&parseSourceAddress, "source-address", "", "Address the capture came from, used for hostname recovery")
	cmd.Flags().IntVar(&parseWorkers, "workers", 0, "Number of concurrent workers (default from config)")
	cmd.Flags().BoolVar(&parseRecursive, "recursive", false, "Recurse into subdirectories when an argument is a directory")

	return cmd
}

func parseCommandE(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	outputDir := settings.OutputDir
	if cmd.Flags().Changed("output-dir") {
		outputDir = parseOutputDir
	}
	workers := settings.Workers
	if parseWorkers > 0 {
		workers = parseWorkers
	}
	includeRaw := settings.IncludeRaw || parseIncludeRaw
	pretty := settings.Pretty || parsePretty

	paths, err := expandInputs(args, parseRecursive)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no capture files found in %s", strings.Join(args, ", "))
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	results, err := batch.ParseFiles(cmd.Context(), paths, batch.Options{
		Workers: workers,
		Parse: parser.Options{
			SourceAddress: parseSourceAddress,
			IncludeRaw:    includeRaw,
		},
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		if parseValidate {
			if err := schema.ValidateRecord(res.Record); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, err)
				failed++
				continue
			}
		}
		if err := writeRecordJSON(outputDir, res.Path, res.Record, pretty); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, err)
			failed++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d of %d capture(s) into %s\n",
		len(results)-failed, len(results), outputDir)

	if failed == len(results) {
		return fmt.Errorf("all %d capture(s) failed to parse", failed)
	}
	if failed > 0 {
		return &PartialFailureError{
			Message: fmt.Sprintf("%d of %d capture(s) failed", failed, len(results)),
		}
	}
	return nil
}

// expandInputs resolves a mix of file and directory arguments into a flat
// list of capture paths.
func expandInputs(args []string, recursive bool) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := naming.FindLogFiles(arg, recursive)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func writeRecordJSON(outputDir, inputPath string, rec *models.DeviceRecord, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(rec, "", "  ")
	} else {
		data, err = json.Marshal(rec)
	}
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	name := filepath.Base(inputPath)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	out := filepath.Join(outputDir, name)
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}
