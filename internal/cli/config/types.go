// Package config provides configuration management for the mtx CLI.
//
// Configuration is layered: built-in defaults, then an optional mtx.yaml
// config file, then MTX_-prefixed environment variables, then CLI flags.
package config

// Default configuration values.
const (
	DefaultExprDir     = "expressions"
	DefaultOutput      = "auto"
	DefaultHistoryFile = ".mtx/history"
)

// Config holds all CLI configuration options.
type Config struct {
	// ExprDir is the directory scanned for .mtx expression files.
	ExprDir string `koanf:"expr_dir"`
	// OutputFormat selects the rendering mode: auto, text, markdown, json.
	OutputFormat string `koanf:"output"`
	// HistoryFile is the REPL history file path.
	HistoryFile string `koanf:"history_file"`
	// Verbose enables extra diagnostics.
	Verbose bool `koanf:"verbose"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		ExprDir:      DefaultExprDir,
		OutputFormat: DefaultOutput,
		HistoryFile:  DefaultHistoryFile,
	}
}
