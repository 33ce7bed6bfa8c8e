// Package batch parses many capture files concurrently. One failed file
// never aborts the batch; each input yields a Result carrying either a
// record or the error that stopped it.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
	"github.com/lukejenkins/ap-gnss-stats/internal/naming"
	"github.com/lukejenkins/ap-gnss-stats/internal/parser"
)

// Result is the outcome of parsing a single capture file.
type Result struct {
	Path   string
	Record *models.DeviceRecord
	Err    error
}

// Options configures a batch run.
type Options struct {
	// Workers caps concurrent file parses. Values below 1 are clamped to 1.
	Workers int
	// Parse is passed through to the transcript parser for every file.
	Parse parser.Options
}

// ParseFiles parses every path and returns results in input order.
func ParseFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	p := parser.New()
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			rec, err := parseFile(p, path, opts.Parse)
			if err != nil {
				slog.Error("parse failed", "file", path, "error", err)
			} else {
				slog.Debug("parsed capture", "file", path, "elapsed", time.Since(start))
			}
			results[i] = Result{Path: path, Record: rec, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseFile(p *parser.Parser, path string, opts parser.Options) (*models.DeviceRecord, error) {
	content, size, err := ReadCapture(path)
	if err != nil {
		return nil, err
	}

	rec := p.Parse(content, opts)
	rec.Metadata.InputFile = filepath.Base(path)
	rec.Metadata.FileSize = size

	backfillFromFilename(rec, filepath.Base(path))
	return rec, nil
}

// ReadCapture reads a capture file, transparently decompressing .gz inputs.
// The reported size is the size of the file on disk, not the decompressed
// length, so it matches what an operator sees in a directory listing.
func ReadCapture(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("opening capture: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat capture: %w", err)
	}

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", 0, fmt.Errorf("opening gzip capture: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", 0, fmt.Errorf("reading capture: %w", err)
	}
	return string(content), info.Size(), nil
}

// backfillFromFilename fills in fields the transcript itself could not
// provide, using the capture filename conventions.
func backfillFromFilename(rec *models.DeviceRecord, filename string) {
	if rec.Main.APName == nil {
		if name := naming.APNameFromFilename(filename); name != "" {
			rec.Main.APName = name
		}
	}
	if rec.Metadata.CaptureTime == "" {
		if ts, ok := naming.TimestampFromFilename(filename); ok {
			rec.Metadata.CaptureTime = ts.UTC().Format(time.RFC3339)
		}
	}
}
