package uischema

// Store keeps the parsed overlays keyed by app name. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	apps map[string]Overlay
}

// Overlay describes the overrides for one app.
type Overlay struct {
	App     string
	Source  string
	Page    PageConfig
	Fields  map[string]FieldConfig
	Buttons map[string]ButtonConfig
}

// PageConfig overrides page-level texts.
type PageConfig struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FieldConfig customises how a field is labelled and rendered. Keys are field
// IDs.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Info        string            `json:"info,omitempty" yaml:"info,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Lines       int               `json:"lines,omitempty" yaml:"lines,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ButtonConfig customises a button. Keys are button IDs.
type ButtonConfig struct {
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty"`
}
