package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/keikaku/internal/cli/config"
	"github.com/leapstack-labs/keikaku/internal/cli/testutil"
	inttestutil "github.com/leapstack-labs/keikaku/internal/testutil"
)

func newTestSession(t *testing.T) (*Session, *testutil.TestRenderer) {
	t.Helper()
	tr := testutil.NewTestRendererText()
	c := &CommandContext{
		Cfg:      config.Default(),
		Logger:   inttestutil.NewTestLogger(t),
		Renderer: tr.Renderer,
	}
	return NewSession(c), tr
}

func TestSessionPersistsDefinitions(t *testing.T) {
	s, tr := newTestSession(t)

	assert.True(t, s.Feed("(def x 5)"))
	assert.Empty(t, tr.Output(), "nil results are not printed")

	assert.True(t, s.Feed("(+ x 1)"))
	assert.Equal(t, "6\n", tr.Output())
}

func TestSessionMultiLineInput(t *testing.T) {
	s, tr := newTestSession(t)

	s.Feed("(+ 1")
	assert.True(t, s.Pending())
	assert.Empty(t, tr.Output())

	s.Feed("   (* 2 3))")
	assert.False(t, s.Pending())
	assert.Equal(t, "7\n", tr.Output())
}

func TestSessionErrorsDoNotEndSession(t *testing.T) {
	s, tr := newTestSession(t)

	assert.True(t, s.Feed("(/ 1 0)"))
	assert.Contains(t, tr.ErrorOutput(), "DivisionByZero in repl at 1:5")

	tr.Reset()
	assert.True(t, s.Feed(")"))
	assert.Contains(t, tr.ErrorOutput(), "MismatchedClosingBrace")

	tr.Reset()
	assert.True(t, s.Feed("(+ 2 2)"))
	assert.Equal(t, "4\n", tr.Output())
}

func TestSessionDotCommands(t *testing.T) {
	s, tr := newTestSession(t)

	assert.True(t, s.Feed(".help"))
	assert.Contains(t, tr.Output(), ".env")

	tr.Reset()
	s.Feed("(def answer 42)")
	assert.True(t, s.Feed(".env"))
	assert.Contains(t, tr.Output(), "answer")
	assert.Contains(t, tr.Output(), "42")
	assert.Contains(t, tr.Output(), "#primop:+#")

	tr.Reset()
	assert.True(t, s.Feed(".reset"))
	_, ok := s.Env().Lookup("answer")
	assert.False(t, ok)

	tr.Reset()
	assert.True(t, s.Feed(".bogus"))
	assert.Contains(t, tr.ErrorOutput(), "Unknown command: .bogus")

	assert.False(t, s.Feed(".quit"))
	assert.False(t, s.Feed(".EXIT"))
}

func TestSessionResetDropsPendingInput(t *testing.T) {
	s, tr := newTestSession(t)

	s.Feed("(+ 1")
	s.Reset()
	assert.False(t, s.Pending())

	s.Feed("(+ 2 3)")
	assert.Equal(t, "5\n", tr.Output())
}

func TestBraceDepth(t *testing.T) {
	assert.Equal(t, 0, braceDepth("(+ 1 2)"))
	assert.Equal(t, 2, braceDepth("((def"))
	assert.Equal(t, -1, braceDepth(")"))
}

func TestSymbolCompleter(t *testing.T) {
	s, _ := newTestSession(t)
	s.Feed("(def square 1)")
	s.Feed("(def sum 2)")
	sc := &symbolCompleter{session: s}

	line := []rune("(+ s")
	got, length := sc.Do(line, len(line))
	assert.Equal(t, 1, length)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"quare", "um"}, []string{string(got[0]), string(got[1])})

	line = []rune(".he")
	got, length = sc.Do(line, len(line))
	assert.Equal(t, 3, length)
	require.Len(t, got, 1)
	assert.Equal(t, "lp", string(got[0]))
}

func TestHistoryPath(t *testing.T) {
	assert.Empty(t, historyPath(""))
	assert.Equal(t, "/tmp/h", historyPath("/tmp/h"))
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/.keikaku_history", historyPath(".keikaku_history"))
}
