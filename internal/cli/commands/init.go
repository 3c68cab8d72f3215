package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/keikaku/internal/cli/config"
	"github.com/leapstack-labs/keikaku/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file written by init.
const ConfigFileName = "keikaku.yaml"

// ExampleFileName is the sample program written by init --example.
const ExampleFileName = "main.kk"

const exampleProgram = `(def square (lambda (n) (* n n)))
(def area (lambda (w h) (* w h)))

(square 12)
(area 3 (- 10 4))
(/ (+ 100 20) 4 1 1)
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a keikaku project",
		Long: `Initialize a project directory with a keikaku.yaml holding the default
configuration.

Use --example to also create main.kk, a small program to run.`,
		Example: `  # Initialize in current directory
  keikaku init

  # Initialize a new directory with an example program
  keikaku init my-project --example

  # Force overwrite existing files
  keikaku init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd).Renderer, dir, example, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Create an example program")

	return cmd
}

func runInit(r *output.Renderer, dir string, example, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	files := []struct {
		name    string
		content []byte
	}{
		{name: ConfigFileName, content: data},
	}
	if example {
		files = append(files, struct {
			name    string
			content []byte
		}{name: ExampleFileName, content: []byte(exampleProgram)})
	}

	// Check everything first so a refused init writes nothing
	if !force {
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists. Use --force to overwrite", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}
		}
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		r.Println(r.Styles().Success.Render("✓") + " " + path)
	}

	r.Println("")
	r.Success("keikaku project initialized!")
	if example {
		r.Println("")
		r.Println("Next steps:")
		r.Printf("  keikaku run %s      Evaluate the example\n", filepath.Join(dir, ExampleFileName))
		r.Println("  keikaku repl             Start an interactive session")
	}
	return nil
}
