package vanilla

import (
	"html"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
)

// layoutRenderer turns the page tree into HTML. Containers and buttons are
// written directly; fields go through the component registry.
type layoutRenderer struct {
	page        model.Page
	opts        render.RenderOptions
	fields      *componentRenderer
	eventPrefix string
}

func (l *layoutRenderer) render() (string, error) {
	var b strings.Builder
	if err := l.renderNodes(&b, l.page.Nodes, 2); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (l *layoutRenderer) renderNodes(b *strings.Builder, nodes []model.Node, depth int) error {
	for _, node := range nodes {
		if err := l.renderNode(b, node, depth); err != nil {
			return err
		}
	}
	return nil
}

func (l *layoutRenderer) renderNode(b *strings.Builder, node model.Node, depth int) error {
	indent := strings.Repeat("  ", depth)

	switch {
	case node.Kind.IsContainer():
		class := string(containerClass(string(node.Kind)))
		if onlyButtons(node.Children) {
			class += " " + string(ClassActions)
		}
		b.WriteString(indent + `<div class="` + class + `">` + "\n")
		if err := l.renderNodes(b, node.Children, depth+1); err != nil {
			return err
		}
		b.WriteString(indent + "</div>\n")

	case node.Kind == model.NodeField && node.Field != nil:
		markup, err := l.fields.render(*node.Field, l.opts)
		if err != nil {
			return err
		}
		writeIndented(b, markup, indent)

	case node.Kind == model.NodeButton && node.Button != nil:
		b.WriteString(indent + l.buttonMarkup(node.Button) + "\n")

	case node.Kind == model.NodeMarkdown:
		b.WriteString(indent + `<div class="formbind-markdown">`)
		b.WriteString(RenderMarkdown(node.Text))
		b.WriteString("</div>\n")
	}
	return nil
}

func (l *layoutRenderer) buttonMarkup(btn *model.Button) string {
	variant := strings.TrimSpace(btn.Variant)
	if variant == "" {
		variant = "secondary"
	}
	class := string(ClassButton) + " " + string(ClassButton) + "--" + variant
	id := html.EscapeString(buttonControlID(btn.ID))
	label := html.EscapeString(btn.Label)
	if btn.Icon != "" {
		label = `<span class="formbind-button-icon" aria-hidden="true">` + btn.Icon + `</span>` + label
	}

	if btn.Link != "" {
		href := resolveLink(l.opts.PagePath, btn.Link)
		return `<a id="` + id + `" class="` + class + `" href="` + html.EscapeString(href) + `">` + label + `</a>`
	}

	event, ok := l.buttonEvent(btn.ID)
	if !ok {
		return `<button type="button" id="` + id + `" class="` + class + `">` + label + `</button>`
	}
	binding := html.EscapeString(event.Binding)
	return `<button type="submit" id="` + id + `" class="` + class + `" formaction="` +
		html.EscapeString(joinURL(l.eventPrefix, event.Binding)) + `" data-binding="` + binding + `">` + label + `</button>`
}

// buttonEvent returns the first click or submit event fired by the button.
// Without JavaScript a form submission can only reach one binding.
func (l *layoutRenderer) buttonEvent(buttonID string) (model.Event, bool) {
	for _, event := range l.page.Events {
		if event.Source != buttonID {
			continue
		}
		if event.Trigger == model.TriggerClick || event.Trigger == model.TriggerSubmit {
			return event, true
		}
	}
	return model.Event{}, false
}

// defaultAction is the form action used when the form is submitted without
// a submit button, e.g. by pressing Enter in a page that has none.
func (l *layoutRenderer) defaultAction() string {
	for _, event := range l.page.Events {
		if event.Trigger == model.TriggerClick || event.Trigger == model.TriggerSubmit {
			return joinURL(l.eventPrefix, event.Binding)
		}
	}
	return ""
}

func onlyButtons(nodes []model.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	for _, node := range nodes {
		if node.Kind != model.NodeButton {
			return false
		}
	}
	return true
}

func writeIndented(b *strings.Builder, markup, indent string) {
	for _, line := range strings.Split(markup, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
