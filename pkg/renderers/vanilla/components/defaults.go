package components

import (
	"bytes"
	"fmt"
	"strings"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, name := range []string{
		NameTextbox,
		NameTextarea,
		NameNumber,
		NameRange,
		NameSelect,
		NameRadio,
		NameCheckbox,
		NameOutput,
		NameMarkdown,
	} {
		registry.MustRegister(name, Descriptor{
			Renderer: TemplateRenderer(templatePrefix + name + ".tmpl"),
		})
	}
	return registry
}

// TemplateRenderer renders a component from a template that receives the
// view as "field". A theme partial registered as "forms.<widget>" replaces
// templateName.
func TemplateRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, view View, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials["forms."+view.Widget]); candidate != "" {
				resolved = candidate
			}
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"field": view,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(strings.TrimSpace(rendered))
		return nil
	}
}
