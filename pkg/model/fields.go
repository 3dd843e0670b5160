package model

import "strings"

// FieldOption configures a field at construction time.
type FieldOption func(*Field)

// WithID pins the field ID instead of deriving it from the label.
func WithID(id string) FieldOption {
	return func(f *Field) {
		f.ID = strings.TrimSpace(id)
	}
}

// WithValue sets the default value shown before the first event.
func WithValue(value any) FieldOption {
	return func(f *Field) {
		f.Default = value
	}
}

// WithPlaceholder sets the placeholder text of text-like inputs.
func WithPlaceholder(text string) FieldOption {
	return func(f *Field) {
		f.Placeholder = text
	}
}

// WithInfo attaches a short help text rendered under the label.
func WithInfo(text string) FieldOption {
	return func(f *Field) {
		f.Info = text
	}
}

// WithLines renders a textbox as a multi-line text area when n > 1.
func WithLines(n int) FieldOption {
	return func(f *Field) {
		if n > 0 {
			f.Lines = n
		}
	}
}

// WithStep sets the increment of numeric inputs.
func WithStep(step float64) FieldOption {
	return func(f *Field) {
		if step > 0 {
			f.Step = step
		}
	}
}

// WithRange bounds numeric inputs.
func WithRange(min, max float64) FieldOption {
	return func(f *Field) {
		f.Min = &min
		f.Max = &max
	}
}

// WithInteractive forces the field to be editable (true) or read-only
// (false).
func WithInteractive(interactive bool) FieldOption {
	return func(f *Field) {
		f.Interactive = &interactive
	}
}

// WithMetadata merges renderer hints into the field metadata.
func WithMetadata(values map[string]string) FieldOption {
	return func(f *Field) {
		if len(values) == 0 {
			return
		}
		if f.Metadata == nil {
			f.Metadata = make(map[string]string, len(values))
		}
		for key, value := range values {
			f.Metadata[strings.TrimSpace(key)] = value
		}
	}
}

func newField(kind FieldKind, label string, options []FieldOption) *Field {
	field := &Field{
		Kind:  kind,
		Label: label,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(field)
	}
	return field
}

// Textbox creates a free text field.
func Textbox(label string, options ...FieldOption) *Field {
	return newField(FieldKindText, label, options)
}

// Number creates a free numeric field.
func Number(label string, options ...FieldOption) *Field {
	return newField(FieldKindNumber, label, options)
}

// Slider creates a number-in-range field. The step defaults to 1 and the
// value to the minimum.
func Slider(label string, min, max float64, options ...FieldOption) *Field {
	opts := append([]FieldOption{WithRange(min, max), WithStep(1)}, options...)
	return newField(FieldKindSlider, label, opts)
}

// Dropdown creates an enumerated choice rendered as a select box.
func Dropdown(label string, choices []string, options ...FieldOption) *Field {
	field := newField(FieldKindDropdown, label, options)
	field.Choices = append([]string(nil), choices...)
	return field
}

// Radio creates an enumerated choice rendered as a radio group.
func Radio(label string, choices []string, options ...FieldOption) *Field {
	field := newField(FieldKindRadio, label, options)
	field.Choices = append([]string(nil), choices...)
	return field
}

// Checkbox creates a yes/no field.
func Checkbox(label string, options ...FieldOption) *Field {
	return newField(FieldKindCheckbox, label, options)
}

// Markdown creates a formatted text block. Used as an output it renders the
// returned string as Markdown.
func Markdown(text string, options ...FieldOption) *Field {
	field := newField(FieldKindMarkdown, "", options)
	if field.Default == nil {
		field.Default = text
	}
	return field
}
