package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/twistorlab/mtx/internal/cli/output"
	"github.com/twistorlab/mtx/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Format string // Output format override: text, markdown, json
}

// parseResult is the JSON shape of a parsed expression.
type parseResult struct {
	Input  string   `json:"input"`
	Infix  string   `json:"infix"`
	Prefix []string `json:"prefix"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <expression>",
		Short: "Parse an expression and print its canonical forms",
		Long: `Parse a momentum-twistor expression and print the canonical
infix rendering and the prefix (Polish) encoding of its tree.`,
		Example: `  # Parse a simple sum
  mtx parse "Z1 + Z2"

  # Bracket contractions and precedence
  mtx parse "<1,2,3,4> * Z1 ^ 2"

  # Machine-readable output
  mtx parse --format json "(1 + 2) * 3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runParse(cmd *cobra.Command, opts *ParseOptions, input string) error {
	r, err := rendererWithFormat(cmd, opts.Format)
	if err != nil {
		return err
	}

	expr, err := parser.Parse(input)
	if err != nil {
		return err
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(parseResult{
			Input:  input,
			Infix:  expr.String(),
			Prefix: expr.PrefixNotation(),
		})
	}

	r.Printf("infix:  %s\n", expr.String())
	r.Printf("prefix: %s\n", strings.Join(expr.PrefixNotation(), " "))
	return nil
}
