package commands

import (
	"strconv"

	"github.com/leapstack-labs/keikaku/pkg/parser"
	"github.com/spf13/cobra"
)

// TokenInfo is the serializable form of one token.
type TokenInfo struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Span    string `json:"span" yaml:"span"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Long: `Tokenize a source file and print every token with its span.

Tokenizing never fails: malformed numbers are reported by parse and run.`,
		Example: `  # Show tokens as a table
  keikaku tokens main.kk

  # Show tokens as JSON
  keikaku tokens main.kk -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, path string) error {
	c := NewCommandContext(cmd)
	src, err := readSource(path)
	if err != nil {
		return err
	}

	toks := parser.Tokenize(path, src)
	infos := make([]TokenInfo, 0, len(toks))
	for _, ts := range toks {
		infos = append(infos, TokenInfo{
			Type:    ts.Token.Type.String(),
			Literal: ts.Token.Literal,
			Span:    ts.Span.String(),
		})
	}

	r := c.Renderer
	if ok, err := r.Structured(infos); ok {
		return err
	}
	if len(infos) == 0 {
		r.Muted("(0 tokens)")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for i, info := range infos {
		rows = append(rows, []string{strconv.Itoa(i + 1), info.Type, info.Literal, info.Span})
	}
	r.Table([]string{"#", "Type", "Literal", "Span"}, rows)
	return nil
}
