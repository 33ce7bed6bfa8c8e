package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukejenkins/ap-gnss-stats/internal/export"
	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

var (
	exportOutput    string
	exportAppend    bool
	exportRecursive bool
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <json-file-or-dir>...",
		Short: "Export parsed JSON records to a single CSV file",
		Long: `Export previously parsed JSON records to CSV. The column set is computed
over the whole batch and sorted, so the same inputs always produce the same
header. With --append, the existing file's header decides the columns and
new fields are dropped with a warning.`,
		Args: cobra.MinimumNArgs(1),
		RunE: exportCommandE,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "CSV output path (default: gnss_records.csv in the output directory)")
	cmd.Flags().BoolVar(&exportAppend, "append", false, "Append to an existing CSV, keeping its header")
	cmd.Flags().BoolVar(&exportRecursive, "recursive", false, "Recurse into subdirectories when an argument is a directory")

	return cmd
}

func exportCommandE(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	output := settings.CSV.Path
	if cmd.Flags().Changed("output") {
		output = exportOutput
	}
	if output == "" {
		output = filepath.Join(settings.OutputDir, "gnss_records.csv")
	}
	appendMode := settings.CSV.Append || exportAppend

	records, failed, err := loadRecords(cmd, args, exportRecursive)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records could be loaded from %s", strings.Join(args, ", "))
	}

	if err := export.WriteRecords(output, records, export.WriteOptions{Append: appendMode}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(records), output)

	if failed > 0 {
		return &PartialFailureError{
			Message: fmt.Sprintf("%d record file(s) could not be loaded", failed),
		}
	}
	return nil
}

// loadRecords reads DeviceRecord JSON files from a mix of file and directory
// arguments. Unreadable or malformed files are reported and counted, not
// fatal.
func loadRecords(cmd *cobra.Command, args []string, recursive bool) ([]*models.DeviceRecord, int, error) {
	paths, err := collectJSONPaths(args, recursive)
	if err != nil {
		return nil, 0, err
	}

	var records []*models.DeviceRecord
	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		var rec models.DeviceRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		records = append(records, &rec)
	}
	return records, failed, nil
}

func collectJSONPaths(args []string, recursive bool) ([]string, error) {
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
		if recursive {
			err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
					paths = append(paths, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
