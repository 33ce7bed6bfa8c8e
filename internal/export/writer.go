package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

// WriteOptions controls how WriteRecords treats an existing destination file.
type WriteOptions struct {
	// Append reuses the header of an existing file as the column authority
	// instead of rebuilding the universe from this batch. When the file is
	// missing or its header cannot be read, the write falls back to
	// overwrite semantics.
	Append bool
}

// WriteRecords flattens the batch and writes it to path as CSV, creating
// parent directories as needed.
func WriteRecords(path string, records []*models.DeviceRecord, opts WriteOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving output path %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if opts.Append {
		header, err := readHeader(abs)
		if err == nil && len(header) > 0 {
			return appendRecords(abs, header, records)
		}
		if err != nil && !os.IsNotExist(err) {
			slog.Warn("existing CSV header unreadable, overwriting", "path", abs, "error", err)
		}
	}

	columns, err := BuildColumnUniverse(records)
	if err != nil {
		return fmt.Errorf("building column set: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return fmt.Errorf("creating %q: %w", abs, err)
	}
	defer f.Close()

	if err := writeRows(f, columns, records, true); err != nil {
		return fmt.Errorf("writing %q: %w", abs, err)
	}
	return f.Close()
}

// appendRecords writes the batch against an existing header. Fields the
// header does not know about are dropped with a warning rather than silently,
// since the header is the column authority for an append.
func appendRecords(path string, header []string, records []*models.DeviceRecord) error {
	batchColumns, err := BuildColumnUniverse(records)
	if err != nil {
		return fmt.Errorf("building column set: %w", err)
	}
	known := make(map[string]struct{}, len(header))
	for _, c := range header {
		known[c] = struct{}{}
	}
	var dropped []string
	for _, c := range batchColumns {
		if _, ok := known[c]; !ok {
			dropped = append(dropped, c)
		}
	}
	if len(dropped) > 0 {
		slog.Warn("dropping columns absent from existing CSV header",
			"path", path, "columns", dropped)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %q for append: %w", path, err)
	}
	defer f.Close()

	if err := writeRows(f, header, records, false); err != nil {
		return fmt.Errorf("appending to %q: %w", path, err)
	}
	return f.Close()
}

func writeRows(w io.Writer, columns []string, records []*models.DeviceRecord, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(columns); err != nil {
			return err
		}
	}
	cells := make([]string, len(columns))
	for _, rec := range records {
		row, err := FlattenRecord(rec, columns)
		if err != nil {
			return err
		}
		for i, c := range columns {
			cells[i] = row[c]
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, nil
	}
	return header, err
}
