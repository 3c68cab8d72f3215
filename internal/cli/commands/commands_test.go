// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/keikaku/internal/cli/testutil"
)

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand()

	assert.Equal(t, "parse <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewTokensCommand(t *testing.T) {
	cmd := NewTokensCommand()

	assert.Equal(t, "tokens <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// Verify flags exist (max-depth is a global flag on root, not local)
	assert.NotNil(t, cmd.Flags().Lookup("watch"), "flag %q should exist", "watch")

	// Verify alias exists
	assert.Equal(t, []string{"eval"}, cmd.Aliases, "run command should have 'eval' alias")
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

// executeWatch runs `run --watch path` with an already cancelled context, so
// the watch loop returns as soon as it starts.
func executeWatch(t *testing.T, path string) (string, string, error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRunCommand()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{path, "--watch"})
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestRunWatchMissingFile(t *testing.T) {
	out, _, err := executeWatch(t, filepath.Join(t.TempDir(), "missing.kk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
	assert.False(t, IsReported(err))
	assert.NotContains(t, out, "Watching", "watching must not start")
}

func TestRunWatchKeepsWatchingAfterDiagnostic(t *testing.T) {
	path := testutil.WriteSource(t, "main.kk", "(+ 1 2)\n(/ 1 0)")

	out, errOut, err := executeWatch(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "3\n")
	assert.Contains(t, out, "Watching")
	assert.Contains(t, errOut, "DivisionByZero")
}

func TestRunWatchStopsOnCancel(t *testing.T) {
	path := testutil.WriteSource(t, "main.kk", "(* 6 7)")

	out, errOut, err := executeWatch(t, path)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "42\n")
}
