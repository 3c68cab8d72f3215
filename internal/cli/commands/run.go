package commands

import (
	"fmt"

	"github.com/leapstack-labs/keikaku/pkg/eval"
	"github.com/leapstack-labs/keikaku/pkg/parser"
	"github.com/spf13/cobra"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Watch bool
}

// ResultInfo is the serializable form of one evaluated expression.
type ResultInfo struct {
	Expr  string `json:"expr" yaml:"expr"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a file",
		Long: `Evaluate every top-level expression of a file in order.

Each result that is not () is printed on its own line. Evaluation stops at
the first error, which is shown with the offending source. With --watch the
file is evaluated again, in a fresh environment, every time it changes.`,
		Example: `  # Evaluate a program
  keikaku run main.kk

  # Re-run on every save
  keikaku run main.kk --watch

  # Raise the nesting limit
  keikaku run main.kk --max-depth 50000`,
		Aliases: []string{"eval"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the file whenever it changes")

	return cmd
}

func runRun(cmd *cobra.Command, path string, opts *RunOptions) error {
	c := NewCommandContext(cmd)

	runErr := runFile(c, path)
	if !opts.Watch {
		return runErr
	}
	// Diagnostics were shown and the file may be fixed while watching.
	// Anything else, such as a missing file, ends the command.
	if runErr != nil && !IsReported(runErr) {
		return runErr
	}

	w, err := newFileWatcher(path, c.Logger)
	if err != nil {
		return err
	}
	c.Renderer.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", path))
	return w.Run(cmd.Context(), func() {
		c.Renderer.Muted(fmt.Sprintf("--- %s changed, re-running", path))
		if err := runFile(c, path); err != nil && !IsReported(err) {
			c.Renderer.Error(fmt.Sprintf("Error: %v", err))
		}
	})
}

// runFile reads, parses and evaluates path in a fresh environment.
func runFile(c *CommandContext, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	exprs, err := parser.Parse(path, src)
	if err != nil {
		return c.Report(src, path, err)
	}

	ev := c.NewEvaluator()
	results, evalErr := ev.EvalAll(exprs)
	if err := renderResults(c, exprs, results); err != nil {
		return err
	}
	if evalErr != nil {
		c.Logger.Debug("evaluation failed", "file", path, "completed", len(results))
		return c.Report(src, path, evalErr)
	}
	return nil
}

func renderResults(c *CommandContext, exprs []parser.Expr, results []eval.Object) error {
	r := c.Renderer
	infos := make([]ResultInfo, 0, len(results))
	for i, obj := range results {
		infos = append(infos, ResultInfo{
			Expr:  exprs[i].String(),
			Type:  obj.TypeName(),
			Value: obj.String(),
		})
	}
	if ok, err := r.Structured(infos); ok {
		return err
	}

	for _, obj := range results {
		if eval.IsNil(obj) {
			continue
		}
		r.Println(obj.String())
	}
	return nil
}
