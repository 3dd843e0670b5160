package model

import "strings"

// FieldKind enumerates the UI element kinds a binding can read from or write
// to.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindNumber   FieldKind = "number"
	FieldKindSlider   FieldKind = "slider"
	FieldKindDropdown FieldKind = "dropdown"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindMarkdown FieldKind = "markdown"
)

// ValueType is the value domain a field kind produces and accepts.
type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeNumber ValueType = "number"
	ValueTypeBool   ValueType = "boolean"
)

// ValueType reports the value domain for the kind.
func (k FieldKind) ValueType() ValueType {
	switch k {
	case FieldKindNumber, FieldKindSlider:
		return ValueTypeNumber
	case FieldKindCheckbox:
		return ValueTypeBool
	default:
		return ValueTypeString
	}
}

// HasChoices reports whether the kind restricts values to a declared list.
func (k FieldKind) HasChoices() bool {
	return k == FieldKindDropdown || k == FieldKindRadio
}

// Field models an individual UI element. Struct fields are annotated so
// renderers and API descriptions can serialise them directly.
type Field struct {
	ID          string            `json:"id"`
	Kind        FieldKind         `json:"kind"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Info        string            `json:"info,omitempty"`
	Default     any               `json:"default,omitempty"`
	Choices     []string          `json:"choices,omitempty"`
	Min         *float64          `json:"min,omitempty"`
	Max         *float64          `json:"max,omitempty"`
	Step        float64           `json:"step,omitempty"`
	Lines       int               `json:"lines,omitempty"`
	Interactive *bool             `json:"interactive,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsInteractive reports whether users can edit the field. Fields without an
// explicit setting fall back to the supplied default, which apps derive from
// how the field is used (inputs are editable, pure outputs are not).
func (f Field) IsInteractive(fallback bool) bool {
	if f.Interactive == nil {
		return fallback
	}
	return *f.Interactive
}

// DefaultValue returns the configured default or the zero value of the kind.
// Sliders without a default start at their minimum.
func (f Field) DefaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind.ValueType() {
	case ValueTypeNumber:
		if f.Kind == FieldKindSlider && f.Min != nil {
			return *f.Min
		}
		return float64(0)
	case ValueTypeBool:
		return false
	default:
		return ""
	}
}

// DisplayLabel returns the label, falling back to the ID.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.ID
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Choices != nil {
		out.Choices = append([]string(nil), f.Choices...)
	}
	if f.Min != nil {
		v := *f.Min
		out.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	if f.Interactive != nil {
		v := *f.Interactive
		out.Interactive = &v
	}
	if f.Metadata != nil {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for key, value := range f.Metadata {
			out.Metadata[key] = value
		}
	}
	return out
}

// Trigger names the UI event that re-invokes a binding.
type Trigger string

const (
	// TriggerSubmit fires when the form is submitted (Interface submit button
	// or Enter inside a textbox).
	TriggerSubmit Trigger = "submit"
	// TriggerClick fires when a button is pressed.
	TriggerClick Trigger = "click"
	// TriggerChange fires when a field value changes.
	TriggerChange Trigger = "change"
)

// Valid reports whether the trigger is one of the known events.
func (t Trigger) Valid() bool {
	switch t {
	case TriggerSubmit, TriggerClick, TriggerChange:
		return true
	default:
		return false
	}
}
