package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
)

// Renderer implements render.Renderer for terminals: it prints the current
// value of every field, skipping layout.
type Renderer struct {
	outputFormat OutputFormat
	theme        Theme
	locale       string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer. Prompting options are accepted and ignored
// so the same option list can configure a Runner.
func New(options ...Option) (*Renderer, error) {
	cfg, err := buildSettings(options)
	if err != nil {
		return nil, err
	}
	return newRenderer(cfg), nil
}

func newRenderer(cfg settings) *Renderer {
	return &Renderer{
		outputFormat: cfg.outputFormat,
		theme:        cfg.theme,
		locale:       cfg.locale,
	}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatJSON:
		return "application/json"
	case OutputFormatYAML:
		return "application/yaml"
	}
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locale := opts.Locale
	if locale == "" {
		locale = r.locale
	}

	if r.outputFormat != OutputFormatPrettyText {
		return r.renderDocument(page, opts)
	}

	var b strings.Builder
	if title := strings.TrimSpace(page.Title); title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len([]rune(title))))
		b.WriteByte('\n')
	}
	if description := strings.TrimSpace(page.Description); description != "" {
		b.WriteString(description)
		b.WriteByte('\n')
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}

	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		b.WriteString(r.theme.ErrorPrefix + message + "\n")
	}

	for _, field := range page.Fields() {
		if field.Kind == model.FieldKindMarkdown && field.Label == "" {
			continue
		}
		value := opts.Value(field.ID, field.DefaultValue())
		fmt.Fprintf(&b, "%s%s: %s\n", r.theme.InfoPrefix, field.DisplayLabel(), render.FormatValue(value, locale))
		for _, message := range opts.Errors[field.ID] {
			b.WriteString("  " + r.theme.ErrorPrefix + message + "\n")
		}
	}
	return []byte(b.String()), nil
}

// renderDocument encodes the page state as JSON or YAML.
func (r *Renderer) renderDocument(page model.Page, opts render.RenderOptions) ([]byte, error) {
	values := make(map[string]any)
	for _, field := range page.Fields() {
		values[field.ID] = opts.Value(field.ID, field.DefaultValue())
	}
	payload := map[string]any{
		"title":  page.Title,
		"values": values,
	}
	if len(opts.Errors) > 0 || len(opts.FormErrors) > 0 {
		payload["errors"] = map[string]any{
			"fields": opts.Errors,
			"form":   render.MergeFormErrors(opts.FormErrors),
		}
	}
	if r.outputFormat == OutputFormatYAML {
		data, err := yaml.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode json: %w", err)
	}
	return data, nil
}
