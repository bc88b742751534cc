package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/cda/internal/logging"
	"github.com/JonMunkholm/cda/internal/workbook"
)

// Output file names inside each workbook's directory.
const (
	DocumentFile = "kernel.yaml"
	ScriptFile   = "postgres.sql"
)

const workbookExt = ".xlsx"

// FileError ties a conversion failure to its workbook.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Options configures a batch run.
type Options struct {
	InputDir  string
	OutputDir string
	// KeepGoing converts the remaining workbooks after a failure and
	// reports every failure at the end.
	KeepGoing bool
}

// Summary describes a finished batch run.
type Summary struct {
	Converted []string // output directories, in input order
	Failed    int
}

// Runner converts every workbook of a directory.
type Runner struct {
	conv   *Converter
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger means slog.Default().
func NewRunner(conv *Converter, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{conv: conv, opts: opts, logger: logger}
}

// Run converts the workbooks one at a time, in file name order.
// Without KeepGoing the first failure stops the run; with it, all failures
// are returned joined.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	files, err := Workbooks(r.opts.InputDir)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		r.logger.Warn("no workbooks found", "dir", r.opts.InputDir)
		return summary, nil
	}

	var errs []error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, errors.Join(append(errs, err)...)
		}

		runCtx, _ := logging.ContextWithRunID(ctx)
		logger := logging.FromContextWith(runCtx, r.logger).With("file", filepath.Base(path))

		dir, err := r.convertFile(runCtx, path)
		if err != nil {
			summary.Failed++
			logger.Error("conversion failed", "error", err)
			err = &FileError{Path: path, Err: err}
			if !r.opts.KeepGoing {
				return summary, err
			}
			errs = append(errs, err)
			continue
		}

		logger.Info("workbook converted", "output", dir)
		summary.Converted = append(summary.Converted, dir)
	}

	return summary, errors.Join(errs...)
}

func (r *Runner) convertFile(ctx context.Context, path string) (string, error) {
	res, err := ConvertFile(ctx, r.conv, path)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(r.opts.OutputDir, OutputName(path))
	if err := Write(dir, res); err != nil {
		return "", err
	}
	return dir, nil
}

// ConvertFile opens the workbook at path and converts it.
func ConvertFile(ctx context.Context, conv *Converter, path string) (*Result, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return conv.Convert(ctx, wb)
}

// Workbooks lists the xlsx files directly inside dir, sorted by name.
// Spreadsheet lock files are skipped.
func Workbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != workbookExt || strings.HasPrefix(name, workbook.LockFilePrefix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// OutputName returns the output directory name for a workbook: the file
// name without its extension, with dots and hyphens replaced by underscores.
func OutputName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), workbookExt)
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// Write stores the document and the script in dir, creating it if needed
// and replacing any previous output.
func Write(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, DocumentFile), res.Document, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ScriptFile), []byte(res.SQL), 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}
