package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/render/template"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	widgets   *widgets.Registry
	partials  map[string]string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, widgetRegistry *widgets.Registry, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if widgetRegistry == nil {
		widgetRegistry = widgets.NewRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		widgets:        widgetRegistry,
		partials:       partials,
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(field model.Field, opts render.RenderOptions) (string, error) {
	view := r.buildView(field, opts)

	descriptor, ok := r.registry.Descriptor(view.Widget)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", view.Widget, field.ID)
	}

	var control bytes.Buffer
	err := descriptor.Renderer(&control, view, components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
	})
	if err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", view.Widget, field.ID, err)
	}

	r.usedComponents[view.Widget] = struct{}{}
	return buildFieldMarkup(field, view, control.String()), nil
}

func (r *componentRenderer) buildView(field model.Field, opts render.RenderOptions) components.View {
	widget, ok := r.widgets.Resolve(field)
	if !ok || widget == "" {
		widget = components.NameTextbox
	}

	value := opts.Value(field.ID, field.DefaultValue())
	view := components.View{
		ID:          field.ID,
		ControlID:   controlID(field.ID),
		Name:        field.ID,
		Label:       field.Label,
		Kind:        string(field.Kind),
		Widget:      widget,
		Value:       render.InputValue(field, value),
		Display:     render.FormatValue(value, opts.Locale),
		Placeholder: field.Placeholder,
		Info:        field.Info,
		ReadOnly:    !field.IsInteractive(true),
		Errors:      opts.Errors[field.ID],
	}
	view.Invalid = len(view.Errors) > 0
	if checked, isBool := value.(bool); isBool {
		view.Checked = checked
	}
	for _, choice := range field.Choices {
		view.Choices = append(view.Choices, components.Choice{
			Value:    choice,
			Label:    choice,
			Selected: choice == view.Value,
		})
	}
	if field.Min != nil {
		view.Min = model.FormatNumber(*field.Min)
	}
	if field.Max != nil {
		view.Max = model.FormatNumber(*field.Max)
	}
	if field.Step > 0 {
		view.Step = model.FormatNumber(field.Step)
	}
	if field.Lines > 1 {
		view.Rows = strconv.Itoa(field.Lines)
	}
	return view
}

func buildFieldMarkup(field model.Field, view components.View, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" data-kind="`)
	builder.WriteString(html.EscapeString(string(field.Kind)))
	builder.WriteString(`" data-widget="`)
	builder.WriteString(html.EscapeString(view.Widget))
	builder.WriteString(`">` + "\n")

	if shouldRenderLabel(field, view.Widget) {
		if labelSupportsFor(view.Widget) {
			builder.WriteString(`  <label for="`)
			builder.WriteString(html.EscapeString(view.ControlID))
			builder.WriteString(`" class="formbind-label">`)
			builder.WriteString(html.EscapeString(field.Label))
			builder.WriteString("</label>\n")
		} else {
			builder.WriteString(`  <span class="formbind-label">`)
			builder.WriteString(html.EscapeString(field.Label))
			builder.WriteString("</span>\n")
		}
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if info := strings.TrimSpace(field.Info); info != "" {
		builder.WriteString(`  <small class="formbind-info">`)
		builder.WriteString(html.EscapeString(info))
		builder.WriteString("</small>\n")
	}

	builder.WriteString(`  <ul class="formbind-field-errors" data-errors-for="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`">`)
	for _, message := range view.Errors {
		builder.WriteString("<li>")
		builder.WriteString(html.EscapeString(message))
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul>\n")

	builder.WriteString("</div>")
	return builder.String()
}

func shouldRenderLabel(field model.Field, widget string) bool {
	if widget == components.NameMarkdown {
		return false
	}
	return strings.TrimSpace(field.Label) != ""
}

// Radio groups have no single control to point a label at.
func labelSupportsFor(widget string) bool {
	return widget != components.NameRadio
}
