package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers use to show the
// current state of a page without mutating the page itself.
type RenderOptions struct {
	// Values holds the current value of each field keyed by field ID. Missing
	// entries fall back to the field default.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field ID.
	Errors map[string][]string
	// FormErrors are messages that belong to no particular field, such as a
	// failing backend function.
	FormErrors []string
	// Locale selects number formatting for output fields ("de", "en-US").
	Locale string
	// Theme carries resolved tokens and assets. Nil uses the built-in light
	// variant.
	Theme *theme.RendererConfig
	// EventPrefix is prepended to binding IDs to build event URLs. Defaults
	// to "/events/".
	EventPrefix string
	// APIPrefix is prepended to binding IDs for the JSON event endpoint used
	// by the browser script. Defaults to "/api/events/".
	APIPrefix string
	// PagePath is the URL the page itself is served at. Relative button
	// links resolve against it so they keep working after a form post to
	// an event URL. Empty leaves links untouched.
	PagePath string
	// AssetPrefix is where the embedded stylesheet and script are served.
	// Defaults to "/assets/".
	AssetPrefix string
	// Status is a short notice rendered above the form, e.g. the last
	// event ID.
	Status string
}

// Value returns the current value of a field or its default.
func (o RenderOptions) Value(fieldID string, fallback any) any {
	if o.Values != nil {
		if value, ok := o.Values[fieldID]; ok {
			return value
		}
	}
	return fallback
}
