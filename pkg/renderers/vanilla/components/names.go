package components

import "github.com/goliatone/go-formbind/pkg/widgets"

// Canonical component names used by the vanilla renderer and default
// registry. They match the widget names resolved by pkg/widgets.
const (
	NameTextbox  = widgets.WidgetTextbox
	NameTextarea = widgets.WidgetTextarea
	NameNumber   = widgets.WidgetNumber
	NameRange    = widgets.WidgetRange
	NameSelect   = widgets.WidgetSelect
	NameRadio    = widgets.WidgetRadio
	NameCheckbox = widgets.WidgetCheckbox
	NameOutput   = widgets.WidgetOutput
	NameMarkdown = widgets.WidgetMarkdown
)
