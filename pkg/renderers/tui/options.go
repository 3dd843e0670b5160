package tui

import "fmt"

// OutputFormat controls how the page state is printed.
type OutputFormat string

const (
	// OutputFormatPrettyText prints one "label: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatJSON prints values and errors as a JSON document.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML prints the same document as OutputFormatJSON in YAML.
	OutputFormatYAML OutputFormat = "yaml"
)

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	switch f {
	case OutputFormatPrettyText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// Theme captures optional prefixes the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

type settings struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	locale       string
	maxAttempts  int
}

func buildSettings(options []Option) (settings, error) {
	cfg := defaultSettings()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !cfg.outputFormat.Valid() {
		return settings{}, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.outputFormat)
	}
	return cfg, nil
}

func defaultSettings() settings {
	return settings{
		outputFormat: OutputFormatPrettyText,
		theme:        Theme{ErrorPrefix: "! "},
		maxAttempts:  3,
	}
}

// Option configures the TUI renderer and session runner.
type Option func(*settings)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects how page state is printed.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *settings) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *settings) {
		s.theme = theme
	}
}

// WithLocale formats printed numbers for locale ("de", "en-US").
func WithLocale(locale string) Option {
	return func(s *settings) {
		s.locale = locale
	}
}

// WithMaxAttempts bounds how often invalid inputs are prompted again.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}
