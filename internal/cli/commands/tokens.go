package commands

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/twistorlab/mtx/internal/cli/output"
	"github.com/twistorlab/mtx/pkg/parser"
	"github.com/twistorlab/mtx/pkg/token"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	Format string // Output format override: text, markdown, json
}

// tokenResult is the JSON shape of a single token.
type tokenResult struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Indices []int  `json:"indices,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}
	cmd := &cobra.Command{
		Use:   "tokens <expression>",
		Short: "Dump the token stream of an expression",
		Example: `  # Show how an expression tokenizes
  mtx tokens "Z1 + <1,2,3,4>"

  # Machine-readable output
  mtx tokens --format json "W3 ^ 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runTokens(cmd *cobra.Command, opts *TokensOptions, input string) error {
	r, err := rendererWithFormat(cmd, opts.Format)
	if err != nil {
		return err
	}

	tokens, err := parser.Tokenize(input)
	if err != nil {
		return err
	}

	if r.Mode() == output.ModeJSON {
		results := make([]tokenResult, len(tokens))
		for i, tok := range tokens {
			results[i] = tokenResult{
				Type:    tok.Type.String(),
				Literal: tok.Literal,
				Indices: tok.Indices,
				Line:    tok.Pos.Line,
				Column:  tok.Pos.Column,
			}
		}
		return r.JSON(results)
	}

	renderTokenTable(r, tokens)
	return nil
}

func renderTokenTable(r *output.Renderer, tokens []token.Token) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	if r.Mode() == output.ModeMarkdown {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}

	t.AppendHeader(table.Row{"#", "Type", "Literal", "Indices", "Pos"})
	for i, tok := range tokens {
		t.AppendRow(table.Row{i + 1, tok.Type.String(), tok.Literal, formatIndices(tok.Indices), tok.Pos.String()})
	}

	if r.Mode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	r.Printf("(%d tokens)\n", len(tokens))
}

func formatIndices(indices []int) string {
	if len(indices) == 0 {
		return ""
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}
