package commands

import (
	"github.com/leapstack-labs/keikaku/internal/cli/output"
	"github.com/leapstack-labs/keikaku/pkg/parser"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its syntax tree",
		Long: `Parse a source file and print the resulting expressions.

Text output prints one expression per line; with --verbose each line is
followed by its source span. JSON and YAML output print the full tree with
node kinds and spans.`,
		Example: `  # Print the parsed program
  keikaku parse main.kk

  # Dump the tree as JSON
  keikaku parse main.kk -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunParse(cmd, args[0])
		},
	}
}

// RunParse parses path and renders the program.
func RunParse(cmd *cobra.Command, path string) error {
	c := NewCommandContext(cmd)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	exprs, err := parser.Parse(path, src)
	if err != nil {
		return c.Report(src, path, err)
	}
	c.Logger.Debug("parsed program", "file", path, "expressions", len(exprs))
	return renderProgram(c, exprs)
}

func renderProgram(c *CommandContext, exprs []parser.Expr) error {
	r := c.Renderer
	if ok, err := r.Structured(parser.Dump(exprs)); ok {
		return err
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	if markdown {
		r.Println("```lisp")
	}
	for _, e := range exprs {
		if c.Cfg.Verbose {
			r.Printf("%s %s\n", e, r.Styles().Muted.Render("; "+e.GetSpan().String()))
			continue
		}
		r.Println(e.String())
	}
	if markdown {
		r.Println("```")
	}
	return nil
}
