package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbind/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetTextbox  = "textbox"
	WidgetTextarea = "textarea"
	WidgetNumber   = "number"
	WidgetRange    = "range"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetCheckbox = "checkbox"
	WidgetOutput   = "output"
	WidgetMarkdown = "markdown"
)

// MetadataKey is the field metadata entry holding the resolved widget.
const MetadataKey = "widget"

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit metadata or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit
// Metadata["widget"] is honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, recording the resolved widget in
// Metadata["widget"] of every field on the page. Existing values are kept.
func (r *Registry) Decorate(page *model.Page) error {
	if r == nil || page == nil {
		return nil
	}
	for _, field := range page.Fields() {
		widget, ok := r.Resolve(*field)
		if !ok || widget == "" {
			continue
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		if field.Metadata[MetadataKey] == "" {
			field.Metadata[MetadataKey] = widget
		}
	}
	return nil
}

func explicitWidget(field model.Field) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata[MetadataKey])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetMarkdown, 100, func(field model.Field) bool {
		return field.Kind == model.FieldKindMarkdown
	})

	// Checkboxes stay checkboxes when read-only; they are rendered disabled.
	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return field.Kind == model.FieldKindCheckbox
	})

	r.Register(WidgetOutput, 80, func(field model.Field) bool {
		return !field.IsInteractive(true)
	})

	r.Register(WidgetTextarea, 70, func(field model.Field) bool {
		return field.Kind == model.FieldKindText && field.Lines > 1
	})

	r.Register(WidgetRange, 60, func(field model.Field) bool {
		return field.Kind == model.FieldKindSlider
	})

	r.Register(WidgetNumber, 50, func(field model.Field) bool {
		return field.Kind == model.FieldKindNumber
	})

	r.Register(WidgetSelect, 40, func(field model.Field) bool {
		return field.Kind == model.FieldKindDropdown
	})

	r.Register(WidgetRadio, 30, func(field model.Field) bool {
		return field.Kind == model.FieldKindRadio
	})

	r.Register(WidgetTextbox, 0, func(model.Field) bool {
		return true
	})
}
