package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/keikaku/internal/cli"
	"github.com/leapstack-labs/keikaku/internal/cli/config"
	"github.com/leapstack-labs/keikaku/internal/cli/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// configKey documents one configuration key and the flag that overrides it.
type configKey struct {
	Key  string
	Flag string
	Desc string
}

var configKeys = []configKey{
	{Key: "output", Flag: "--output", Desc: "Output format"},
	{Key: "verbose", Flag: "--verbose", Desc: "Verbose output"},
	{Key: "log_level", Flag: "--log-level", Desc: "Log level"},
	{Key: "max_depth", Flag: "--max-depth", Desc: "Maximum evaluation nesting depth"},
	{Key: "repl.prompt", Flag: "repl --prompt", Desc: "REPL prompt"},
	{Key: "repl.history_file", Flag: "repl --history-file", Desc: "REPL history file"},
}

var modeDescriptions = map[string]string{
	string(output.ModeAuto):     "text on a terminal, markdown otherwise",
	string(output.ModeText):     "styled text and tables",
	string(output.ModeMarkdown): "markdown, suitable for pasting into documents",
	string(output.ModeJSON):     "indented JSON of the tree, tokens or results",
	string(output.ModeYAML):     "YAML of the tree, tokens or results",
}

// envVar maps a config key to its environment variable, the inverse of
// the loader's env mapping.
func envVar(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// generateCLIDocs writes index.md, one page per command, and language.md.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	pages := map[string][]byte{
		"index.md":    renderIndex(rootCmd),
		"language.md": renderLanguage(),
	}
	for _, cmd := range documentedCommands(rootCmd) {
		pages[cmd.Name()+".md"] = renderCommand(cmd)
	}

	for name, data := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func documentedCommands(rootCmd *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func renderIndex(rootCmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for keikaku")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/keikaku/cmd/keikaku@latest\nkeikaku main.kk\nkeikaku <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documentedCommands(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)
	w.Paragraph("Shell completion scripts come from `keikaku completion bash|zsh|fish|powershell`. The language itself is described in [the language reference](/cli/language).")

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read from keikaku.yaml (or --config), searched upward from the working directory. Flags override environment variables, which override the file. `keikaku init` writes the defaults:")
	defaults, err := yaml.Marshal(config.Default())
	if err != nil {
		defaults = []byte(err.Error())
	}
	w.CodeBlock("yaml", strings.TrimSpace(string(defaults)))

	rows = rows[:0]
	for _, k := range configKeys {
		rows = append(rows, []string{InlineCode(k.Key), InlineCode(envVar(k.Key)), InlineCode(k.Flag), k.Desc})
	}
	w.Table([]string{"Key", "Environment", "Flag", "Description"}, rows)

	w.Header(2, "Output Modes")
	rows = rows[:0]
	for _, mode := range output.Modes() {
		rows = append(rows, []string{InlineCode(mode), modeDescriptions[mode]})
	}
	w.Table([]string{"Mode", "Output"}, rows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Parse, evaluation, configuration or I/O error (details on stderr)"},
	})
	return w.Bytes()
}

func renderCommand(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "keikaku "+cmd.Name())
	w.Paragraph(cmd.Long)
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	w.Paragraph("Global options are listed on the [CLI index](/cli/index).")

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w.Bytes()
}

// writeFlagsTable writes one row per visible flag, shorthand first.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		option := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			option = InlineCode("-"+f.Shorthand) + ", " + option
		}
		def := f.DefValue
		if def != "" && f.Value.Type() == "string" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{option, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Default", "Description"}, rows)
}

// dedent strips the two-space indent cobra examples are written with.
func dedent(example string) string {
	lines := strings.Split(strings.TrimRight(example, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "  ")
	}
	return strings.Join(lines, "\n")
}
