package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/keikaku/pkg/eval"
	"github.com/leapstack-labs/keikaku/pkg/parser"
	"github.com/spf13/cobra"
)

// replSourceName names REPL input in diagnostics.
const replSourceName = "repl"

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive read-eval-print loop.

Definitions persist for the whole session. Input spanning several lines is
collected until its parentheses balance. Errors are shown and the session
continues. Type .help for the list of dot-commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}

	// Loaded into repl.prompt and repl.history_file by the config loader
	cmd.Flags().String("prompt", "", "Prompt string (default \"keikaku> \")")
	cmd.Flags().String("history-file", "", "History file, relative to the home directory unless absolute (empty disables history)")

	return cmd
}

func runREPL(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	session := NewSession(c)
	prompt := c.Cfg.REPL.Prompt
	continuation := strings.Repeat(" ", max(len(prompt)-5, 0)) + "...> "

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyPath(c.Cfg.REPL.HistoryFile),
		AutoComplete:    &symbolCompleter{session: session},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	r := c.Renderer
	r.Println(r.Styles().Bold.Render("keikaku REPL"))
	r.Muted("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if !session.Feed(line) {
			break
		}
		if session.Pending() {
			rl.SetPrompt(continuation)
		} else {
			rl.SetPrompt(prompt)
		}
	}
	return nil
}

// historyPath places relative history files in the home directory.
// An empty name disables history.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// Session is one REPL session: an evaluator whose environment persists
// across inputs, plus a buffer for input that is not yet balanced.
type Session struct {
	c   *CommandContext
	ev  *eval.Evaluator
	buf strings.Builder
}

// NewSession creates a session with a fresh environment.
func NewSession(c *CommandContext) *Session {
	return &Session{c: c, ev: c.NewEvaluator()}
}

// Env returns the session environment.
func (s *Session) Env() *eval.Env {
	return s.ev.Env()
}

// Pending reports whether an incomplete expression is buffered.
func (s *Session) Pending() bool {
	return s.buf.Len() > 0
}

// Reset discards buffered input.
func (s *Session) Reset() {
	s.buf.Reset()
}

// Feed handles one line of input. It returns false when the session should
// end.
func (s *Session) Feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !s.Pending() {
		if trimmed == "" {
			return true
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.dotCommand(trimmed)
		}
	}

	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	if braceDepth(s.buf.String()) > 0 {
		return true
	}

	src := s.buf.String()
	s.buf.Reset()
	s.evaluate(src)
	return true
}

func (s *Session) evaluate(src string) {
	r := s.c.Renderer
	exprs, err := parser.Parse(replSourceName, src)
	if err != nil {
		_ = s.c.Report(src, replSourceName, err)
		return
	}

	results, err := s.ev.EvalAll(exprs)
	for _, obj := range results {
		if !eval.IsNil(obj) {
			r.Println(r.Styles().Value.Render(obj.String()))
		}
	}
	if err != nil {
		_ = s.c.Report(src, replSourceName, err)
	}
}

func (s *Session) dotCommand(line string) bool {
	r := s.c.Renderer
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return false

	case ".help":
		printREPLHelp(r.Writer())

	case ".env":
		names := s.Env().Names()
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			obj, _ := s.Env().Lookup(name)
			rows = append(rows, []string{name, obj.TypeName(), obj.String()})
		}
		r.Table([]string{"Name", "Type", "Value"}, rows)

	case ".reset":
		s.Reset()
		s.ev = s.c.NewEvaluator()
		r.Muted("Environment reset")

	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return true
}

func printREPLHelp(w io.Writer) {
	help := `Commands:
  .help          Show this help
  .env           List the bindings of the session
  .reset         Discard all definitions
  .quit, .exit   Exit the REPL

Expressions:
  (def name value)            Bind a name
  (lambda (params) body...)   Create a function
  (+ 1 2) (- 5) (* 2 3) (/ 10 2)
`
	_, _ = fmt.Fprint(w, help)
}

// braceDepth returns the number of unclosed parentheses in src.
func braceDepth(src string) int {
	depth := 0
	for _, ch := range src {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth
}

// symbolCompleter completes bound names and dot-commands.
type symbolCompleter struct {
	session *Session
}

var dotCommands = []string{".env", ".exit", ".help", ".quit", ".reset"}

// Do implements readline.AutoCompleter.
func (sc *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])

	candidates := sc.session.Env().Names()
	if start == 0 && strings.HasPrefix(prefix, ".") {
		candidates = dotCommands
	}

	var out [][]rune
	for _, name := range candidates {
		if strings.HasPrefix(name, prefix) && name != prefix {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}

func isWordRune(r rune) bool {
	return r != '(' && r != ')' && r != ' ' && r != '\t' && r != '\n'
}
