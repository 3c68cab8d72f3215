package commands

import (
	"runtime"
	"strings"

	"github.com/leapstack-labs/keikaku/pkg/eval"
	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version    string   `json:"version" yaml:"version"`
	GitCommit  string   `json:"git_commit" yaml:"git_commit"`
	BuildDate  string   `json:"build_date" yaml:"build_date"`
	GoVersion  string   `json:"go_version" yaml:"go_version"`
	Primitives []string `json:"primitives" yaml:"primitives"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display keikaku version and build information, together with the
built-in operators of the interpreter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(NewCommandContext(cmd), info)
		},
	}
}

func runVersion(c *CommandContext, info BuildInfo) error {
	info.GoVersion = runtime.Version()
	info.Primitives = eval.Primitives()

	r := c.Renderer
	if ok, err := r.Structured(info); ok {
		return err
	}

	r.Printf("keikaku v%s\n", info.Version)
	r.Muted("Lisp interpreter built with " + info.GoVersion)
	if c.Cfg.Verbose {
		r.Printf("commit:     %s\n", info.GitCommit)
		r.Printf("built:      %s\n", info.BuildDate)
		r.Printf("primitives: %s\n", strings.Join(info.Primitives, " "))
	}
	return nil
}
