// Package config provides configuration management for the keikaku CLI.
package config

// REPLConfig holds settings for the interactive REPL.
type REPLConfig struct {
	Prompt      string `koanf:"prompt" yaml:"prompt"`
	HistoryFile string `koanf:"history_file" yaml:"history_file"`
}

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string     `koanf:"output" yaml:"output"`
	Verbose      bool       `koanf:"verbose" yaml:"verbose"`
	LogLevel     string     `koanf:"log_level" yaml:"log_level"`
	MaxDepth     int        `koanf:"max_depth" yaml:"max_depth"`
	REPL         REPLConfig `koanf:"repl" yaml:"repl"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "warn"
	DefaultMaxDepth    = 10000
	DefaultPrompt      = "keikaku> "
	DefaultHistoryFile = ".keikaku_history"
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		MaxDepth:     DefaultMaxDepth,
		REPL: REPLConfig{
			Prompt:      DefaultPrompt,
			HistoryFile: DefaultHistoryFile,
		},
	}
}
