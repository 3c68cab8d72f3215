package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/keikaku/internal/cli/config"
	"github.com/leapstack-labs/keikaku/internal/cli/output"
	"github.com/leapstack-labs/keikaku/pkg/diag"
	"github.com/leapstack-labs/keikaku/pkg/eval"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewEvaluator creates an evaluator with a fresh environment, configured
// from the command context.
func (c *CommandContext) NewEvaluator() *eval.Evaluator {
	return eval.New(nil,
		eval.WithMaxDepth(c.Cfg.MaxDepth),
		eval.WithLogger(c.Logger),
	)
}

// ReportedError marks an error whose diagnostic has already been written,
// so the caller only needs to set the exit code.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// Report writes err to the error output as a source snippet and returns it
// wrapped in a ReportedError.
func (c *CommandContext) Report(src, name string, err error) error {
	_, _ = fmt.Fprint(c.Renderer.ErrWriter(), diag.Format(src, name, err))
	return &ReportedError{Err: err}
}

// readSource reads a whole source file.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
