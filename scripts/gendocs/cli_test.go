package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestGenerateCLIDocs(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, generateCLIDocs(outDir))

	index := readPage(t, outDir, "index.md")
	assert.Contains(t, index, generatedHeader)
	assert.Contains(t, index, "[`run`](/cli/run)")
	assert.Contains(t, index, "[`init`](/cli/init)")
	assert.NotContains(t, index, "[`completion`]")
	assert.Contains(t, index, "`-o`, `--output`")
	assert.Contains(t, index, "max_depth: 10000")
	assert.Contains(t, index, "| `repl.history_file` | `KEIKAKU_REPL__HISTORY_FILE` | `repl --history-file` |")
	assert.Contains(t, index, "| `yaml` | YAML of the tree, tokens or results |")

	run := readPage(t, outDir, "run.md")
	assert.Contains(t, run, "keikaku run <file> [flags]")
	assert.Contains(t, run, "`-w`, `--watch`")
	assert.Contains(t, run, "Aliases: `eval`")
	assert.Contains(t, run, "keikaku run main.kk --watch")

	repl := readPage(t, outDir, "repl.md")
	assert.Contains(t, repl, "`--history-file`")

	assert.FileExists(t, filepath.Join(outDir, "language.md"))
	assert.NoFileExists(t, filepath.Join(outDir, "completion.md"))
}

func TestLanguagePage(t *testing.T) {
	page := string(renderLanguage())

	for _, op := range []string{"| `+` |", "| `-` |", "| `*` |", "| `/` |"} {
		assert.Contains(t, page, op)
	}
	assert.Contains(t, page, "divides a by the sum of b")
	assert.Contains(t, page, "| `MismatchedClosingBrace` | parse | mismatched closing brace |")
	assert.Contains(t, page, "| `NestingTooDeep` | parse | nesting too deep |")
	assert.Contains(t, page, "| `DivisionByZero` | evaluation | division by zero |")
	assert.Contains(t, page, "| `Overflow` | evaluation | integer overflow |")
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "KEIKAKU_MAX_DEPTH", envVar("max_depth"))
	assert.Equal(t, "KEIKAKU_REPL__PROMPT", envVar("repl.prompt"))
}

func TestMarkdownTableEscapesPipes(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"Option", "Description"}, [][]string{{"`-o`", "auto|text"}})
	assert.Equal(t, "| Option | Description |\n| --- | --- |\n| `-o` | auto\\|text |\n\n", string(w.Bytes()))
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "# Run\nkeikaku run a.kk", dedent("  # Run\n  keikaku run a.kk\n"))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Evaluate a file", cleanDescription("Evaluate  a\nfile."))
}
