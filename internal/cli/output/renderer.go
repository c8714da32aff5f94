// Package output renders CLI results in terminal-aware formats.
//
// The renderer picks a mode once at construction: styled text on a terminal,
// plain markdown when piped, or JSON when asked explicitly.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Mode selects the rendering format.
type Mode string

// Rendering modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode validates a mode name, mapping the empty string to ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return m, nil
	default:
		return "", fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", s)
	}
}

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Heading: lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes CLI output in the resolved mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer, resolving ModeAuto against the output
// destination: a terminal gets styled text, anything else gets markdown.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" || mode == ModeAuto {
		mode = detectMode(out)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: DefaultStyles(),
	}
}

func detectMode(w io.Writer) Mode {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Mode returns the resolved rendering mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Out returns the output writer for custom rendering (e.g. tables).
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Printf writes plain output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Headingf writes a heading line.
func (r *Renderer) Headingf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch r.mode {
	case ModeText:
		fmt.Fprintln(r.out, r.styles.Heading.Render(msg))
	case ModeMarkdown:
		fmt.Fprintf(r.out, "## %s\n", msg)
	default:
		fmt.Fprintln(r.out, msg)
	}
}

// Successf writes a success line.
func (r *Renderer) Successf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.mode == ModeText {
		msg = r.styles.Success.Render(msg)
	}
	fmt.Fprintln(r.out, msg)
}

// Errorf writes a diagnostic line to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.mode == ModeText {
		msg = r.styles.Error.Render(msg)
	}
	fmt.Fprintln(r.errOut, msg)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
