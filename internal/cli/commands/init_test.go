package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/keikaku/internal/cli/config"
	"github.com/leapstack-labs/keikaku/pkg/eval"
	"github.com/leapstack-labs/keikaku/pkg/parser"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{ConfigFileName},
		},
		{
			name:      "init with example",
			args:      []string{"--example"},
			wantFiles: []string{ConfigFileName, ExampleFileName},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("existing"), 0600))
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("existing"), 0600))
			},
			args:      []string{"--force"},
			wantFiles: []string{ConfigFileName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(append([]string{dir}, tt.args...))

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(dir, f))
			}
		})
	}
}

func TestInitConfigLoads(t *testing.T) {
	dir := t.TempDir()
	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	config.ResetConfig()
	cfg, err := config.LoadConfig(filepath.Join(dir, ConfigFileName), nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestExampleProgramEvaluates(t *testing.T) {
	exprs, err := parser.Parse(ExampleFileName, exampleProgram)
	require.NoError(t, err)

	results, err := eval.New(nil).EvalAll(exprs)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, "144", results[2].String())
	assert.Equal(t, "18", results[3].String())
	assert.Equal(t, "20", results[4].String())
}
