// Package loader discovers and reads momentum-twistor expression files.
//
// An expression file (extension .mtx) holds one expression per line. Blank
// lines and lines starting with '#' are skipped.
package loader

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExprFileExt is the file extension for expression files.
const ExprFileExt = ".mtx"

// Entry is a single expression read from a file.
type Entry struct {
	File string // path to the source file
	Line int    // 1-based line number within the file
	Text string // expression text, trimmed
}

// ReadFile reads all expressions from a single file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expression file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{File: path, Line: lineNo, Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	return entries, nil
}

// ScanDir recursively scans a directory for .mtx files and reads their
// expressions. Hidden files and directories are skipped.
func ScanDir(dir string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ExprFileExt) {
			return nil
		}

		fileEntries, err := ReadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, fileEntries...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	return entries, nil
}
