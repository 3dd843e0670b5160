package uischema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

// Decorator applies the overlay of one app to its page.
type Decorator struct {
	store *Store
	app   string
	// Strict rejects overlays that name unknown fields or buttons.
	Strict bool
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator for the named app. When store is nil or has
// no overlay for app, the decorator is a no-op.
func NewDecorator(store *Store, app string) *Decorator {
	return &Decorator{store: store, app: app}
}

// Decorate relabels the page in place.
func (d *Decorator) Decorate(page *model.Page) error {
	if d == nil || d.store.Empty() || page == nil {
		return nil
	}
	overlay, ok := d.store.Overlay(d.app)
	if !ok {
		return nil
	}

	if overlay.Page.Title != "" {
		page.Title = overlay.Page.Title
	}
	if overlay.Page.Description != "" {
		page.Description = overlay.Page.Description
	}
	page.Metadata = mergeStringMap(page.Metadata, overlay.Page.Metadata)

	seenFields := make(map[string]bool, len(overlay.Fields))
	seenButtons := make(map[string]bool, len(overlay.Buttons))
	page.Walk(func(node model.Node) bool {
		switch {
		case node.Kind == model.NodeField && node.Field != nil:
			if cfg, ok := overlay.Fields[node.Field.ID]; ok {
				applyFieldConfig(node.Field, cfg)
				seenFields[node.Field.ID] = true
			}
		case node.Kind == model.NodeButton && node.Button != nil:
			if cfg, ok := overlay.Buttons[node.Button.ID]; ok {
				applyButtonConfig(node.Button, cfg)
				seenButtons[node.Button.ID] = true
			}
		}
		return true
	})

	if !d.Strict {
		return nil
	}
	var unknown []string
	for id := range overlay.Fields {
		if !seenFields[id] {
			unknown = append(unknown, "field "+id)
		}
	}
	for id := range overlay.Buttons {
		if !seenButtons[id] {
			unknown = append(unknown, "button "+id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("uischema: overlay %q (file %s) references unknown %s", overlay.App, overlay.Source, strings.Join(unknown, ", "))
	}
	return nil
}

func applyFieldConfig(field *model.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Info != "" {
		field.Info = cfg.Info
	}
	if cfg.Lines > 0 {
		field.Lines = cfg.Lines
	}
	field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
	if widget := strings.TrimSpace(cfg.Widget); widget != "" {
		field.Metadata = mergeStringMap(field.Metadata, map[string]string{widgets.MetadataKey: widget})
	}
}

func applyButtonConfig(button *model.Button, cfg ButtonConfig) {
	if cfg.Label != "" {
		button.Label = cfg.Label
	}
	if cfg.Variant != "" {
		button.Variant = cfg.Variant
	}
	if cfg.Icon != "" {
		button.Icon = cfg.Icon
	}
}

func mergeStringMap(base, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}
