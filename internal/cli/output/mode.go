// Package output renders CLI results as styled text, markdown, JSON or YAML.
package output

import (
	"slices"
	"strings"
)

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto" // text on a TTY, markdown otherwise
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode name.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}
}

// ParseMode converts s to a Mode. Unknown or empty values become ModeAuto.
func ParseMode(s string) Mode {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		return ModeMarkdown
	}
	if slices.Contains(Modes(), s) {
		return Mode(s)
	}
	return ModeAuto
}

// IsStructured reports whether m emits machine-readable data.
func (m Mode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML
}
