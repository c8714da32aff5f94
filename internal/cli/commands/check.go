package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/twistorlab/mtx/internal/cli/output"
	"github.com/twistorlab/mtx/internal/loader"
	"github.com/twistorlab/mtx/pkg/parser"
)

// debounceInterval coalesces bursts of filesystem events into one re-check.
const debounceInterval = 200 * time.Millisecond

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Path   string // Directory to scan (defaults to the configured expr dir)
	Watch  bool   // Re-run checks on file changes
	Format string // Output format override: text, markdown, json
}

// checkDiagnostic is the JSON shape of a single failed expression.
type checkDiagnostic struct {
	File  string `json:"file"`
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

// checkReport is the JSON shape of a full check run.
type checkReport struct {
	Total       int               `json:"total"`
	Failed      int               `json:"failed"`
	Diagnostics []checkDiagnostic `json:"diagnostics,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Parse all expression files and report failures",
		Long: `Scan a directory for .mtx expression files (one expression per
line, '#' starts a comment) and parse every expression, reporting each
failure with its file and line. Exits non-zero when any expression fails.`,
		Example: `  # Check the configured expressions directory
  mtx check

  # Check a specific directory
  mtx check ./amplitudes

  # Re-run checks whenever a file changes
  mtx check --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run checks on file changes")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	r, err := rendererWithFormat(cmd, opts.Format)
	if err != nil {
		return err
	}
	cfg := ConfigFrom(cmd)

	path := opts.Path
	if path == "" {
		path = cfg.ExprDir
	}

	report, err := checkOnce(r, path)
	if err != nil {
		return err
	}

	if !opts.Watch {
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d expressions failed to parse", report.Failed, report.Total)
		}
		return nil
	}

	return watchAndCheck(cmd, r, path)
}

// checkOnce scans path and parses every expression, rendering diagnostics.
func checkOnce(r *output.Renderer, path string) (*checkReport, error) {
	entries, err := loader.ScanDir(path)
	if err != nil {
		return nil, err
	}

	report := &checkReport{Total: len(entries)}
	for _, entry := range entries {
		if _, err := parser.Parse(entry.Text); err != nil {
			report.Failed++
			report.Diagnostics = append(report.Diagnostics, checkDiagnostic{
				File:  entry.File,
				Line:  entry.Line,
				Text:  entry.Text,
				Error: err.Error(),
			})
		}
	}

	if r.Mode() == output.ModeJSON {
		return report, r.JSON(report)
	}

	for _, d := range report.Diagnostics {
		r.Errorf("%s:%d: %s", d.File, d.Line, d.Error)
	}
	if report.Failed > 0 {
		r.Printf("%d of %d expressions failed to parse\n", report.Failed, report.Total)
	} else {
		r.Successf("all %d expressions parse", report.Total)
	}
	return report, nil
}

// watchAndCheck re-runs checkOnce whenever an .mtx file under path changes.
func watchAndCheck(cmd *cobra.Command, r *output.Renderer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory tree; fsnotify does not recurse on its own.
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	r.Printf("watching %s for changes (interrupt to stop)\n", path)

	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New subdirectories need to be watched too.
				if fi, statErr := os.Stat(event.Name); statErr == nil && fi.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if strings.HasSuffix(event.Name, loader.ExprFileExt) || event.Op.Has(fsnotify.Create) {
				debounce.Reset(debounceInterval)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Errorf("watch error: %v", err)

		case <-debounce.C:
			if _, err := checkOnce(r, path); err != nil {
				r.Errorf("%v", err)
			}
		}
	}
}
