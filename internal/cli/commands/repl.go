package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/twistorlab/mtx/internal/cli/output"
	"github.com/twistorlab/mtx/pkg/parser"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive expression shell",
		Long: `Start an interactive shell that parses each line as a
momentum-twistor expression and prints its canonical infix and prefix
forms. Dot-commands control the session; type .help for a list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd)
		},
	}
}

func runRepl(cmd *cobra.Command) error {
	r := RendererFrom(cmd)
	cfg := ConfigFrom(cmd)

	historyFile := cfg.HistoryFile
	if dir := filepath.Dir(historyFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			// History is a convenience; run without it.
			historyFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mtx> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start repl: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r.Printf("mtx repl (type .help for commands, .quit to exit)\n")

	showPrefix := true
	showTokens := false

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := runReplCommand(r, line, &showPrefix, &showTokens); quit {
				return nil
			}
			continue
		}

		evalLine(r, line, showPrefix, showTokens)
	}
}

// runReplCommand handles dot-commands and reports whether the session ends.
func runReplCommand(r *output.Renderer, line string, showPrefix, showTokens *bool) bool {
	switch line {
	case ".quit", ".exit":
		return true
	case ".help":
		r.Printf(".help           show this help\n")
		r.Printf(".prefix on|off  toggle prefix output (currently %s)\n", onOff(*showPrefix))
		r.Printf(".tokens on|off  toggle token dump (currently %s)\n", onOff(*showTokens))
		r.Printf(".quit, .exit    leave the repl\n")
	case ".prefix on":
		*showPrefix = true
	case ".prefix off":
		*showPrefix = false
	case ".tokens on":
		*showTokens = true
	case ".tokens off":
		*showTokens = false
	default:
		r.Errorf("unknown command %q (try .help)", line)
	}
	return false
}

// evalLine parses one expression and prints its forms. Errors are shown but
// never end the session.
func evalLine(r *output.Renderer, line string, showPrefix, showTokens bool) {
	if showTokens {
		tokens, err := parser.Tokenize(line)
		if err != nil {
			r.Errorf("%v", err)
			return
		}
		renderTokenTable(r, tokens)
	}

	expr, err := parser.Parse(line)
	if err != nil {
		r.Errorf("%v", err)
		return
	}

	r.Printf("%s\n", expr.String())
	if showPrefix {
		r.Printf("prefix: %s\n", strings.Join(expr.PrefixNotation(), " "))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
