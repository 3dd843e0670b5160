package binding

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
)

// Spec declares a binding: firing Trigger on Source reads Inputs in order,
// calls Fn positionally and writes the results to Outputs in order.
type Spec struct {
	ID      string
	Trigger model.Trigger
	Source  string
	Fn      any
	Inputs  []*model.Field
	Outputs []*model.Field
}

// Binding is a validated Spec. The input and output lists are fixed at
// registration; the field pointers are shared with the page so label
// overlays stay visible to every consumer.
type Binding struct {
	id      string
	trigger model.Trigger
	source  string
	fn      Func
	inputs  []*model.Field
	outputs []*model.Field
}

// New validates spec and returns the binding. Every arity or kind mismatch
// is reported as a *ConfigError wrapping ErrArity where relevant.
func New(spec Spec) (*Binding, error) {
	id := strings.TrimSpace(spec.ID)

	fn, err := FuncOf(spec.Fn)
	if err != nil {
		return nil, &ConfigError{Binding: id, Reason: err.Error(), Err: err}
	}
	if id == "" {
		id = fn.Name()
	}

	trigger := spec.Trigger
	if trigger == "" {
		trigger = model.TriggerSubmit
	}
	if !trigger.Valid() {
		return nil, &ConfigError{Binding: id, Reason: fmt.Sprintf("unknown trigger %q", trigger)}
	}

	if len(spec.Inputs) != fn.Arity() {
		return nil, &ConfigError{
			Binding: id,
			Reason:  fmt.Sprintf("%s takes %d parameters but %d input fields are bound", fn.Name(), fn.Arity(), len(spec.Inputs)),
			Err:     ErrArity,
		}
	}
	if len(spec.Outputs) != fn.NumResults() {
		return nil, &ConfigError{
			Binding: id,
			Reason:  fmt.Sprintf("%s returns %d values but %d output fields are bound", fn.Name(), fn.NumResults(), len(spec.Outputs)),
			Err:     ErrArity,
		}
	}

	params := fn.Params()
	for i, field := range spec.Inputs {
		if field == nil {
			return nil, &ConfigError{Binding: id, Reason: fmt.Sprintf("input %d is nil", i)}
		}
		if !acceptsInput(field.Kind, params[i]) {
			return nil, &ConfigError{
				Binding: id,
				Reason:  fmt.Sprintf("input %d (%s %q) cannot feed parameter of type %s", i, field.Kind, field.ID, params[i]),
			}
		}
	}
	results := fn.Results()
	for i, field := range spec.Outputs {
		if field == nil {
			return nil, &ConfigError{Binding: id, Reason: fmt.Sprintf("output %d is nil", i)}
		}
		if !acceptsOutput(field.Kind, results[i]) {
			return nil, &ConfigError{
				Binding: id,
				Reason:  fmt.Sprintf("output %d (%s %q) cannot display result of type %s", i, field.Kind, field.ID, results[i]),
			}
		}
	}

	return &Binding{
		id:      id,
		trigger: trigger,
		source:  strings.TrimSpace(spec.Source),
		fn:      fn,
		inputs:  append([]*model.Field(nil), spec.Inputs...),
		outputs: append([]*model.Field(nil), spec.Outputs...),
	}, nil
}

// ID returns the binding identifier used in event routes.
func (b *Binding) ID() string { return b.id }

// Trigger returns the UI event that fires the binding.
func (b *Binding) Trigger() model.Trigger { return b.trigger }

// Source returns the ID of the component whose trigger fires the binding.
func (b *Binding) Source() string { return b.source }

// Func returns the inspected backend function.
func (b *Binding) Func() Func { return b.fn }

// Inputs returns the ordered input fields.
func (b *Binding) Inputs() []*model.Field {
	return append([]*model.Field(nil), b.inputs...)
}

// Outputs returns the ordered output fields.
func (b *Binding) Outputs() []*model.Field {
	return append([]*model.Field(nil), b.outputs...)
}

// InputIDs returns the ordered input field IDs.
func (b *Binding) InputIDs() []string {
	return fieldIDs(b.inputs)
}

// OutputIDs returns the ordered output field IDs.
func (b *Binding) OutputIDs() []string {
	return fieldIDs(b.outputs)
}

// Event describes the binding as a page subscription.
func (b *Binding) Event() model.Event {
	return model.Event{
		Binding: b.id,
		Trigger: b.trigger,
		Source:  b.source,
		Inputs:  b.InputIDs(),
		Outputs: b.OutputIDs(),
	}
}

// Defaults returns the default value of every input, in order.
func (b *Binding) Defaults() []any {
	out := make([]any, len(b.inputs))
	for i, field := range b.inputs {
		out[i] = field.DefaultValue()
	}
	return out
}

// Invoke reads values positionally (one per input field, raw form text or
// decoded JSON), coerces and validates them against their fields, calls the
// backend function and returns one value per output field. All invalid
// inputs are reported together as joined *ArgumentError values.
func (b *Binding) Invoke(ctx context.Context, values []any) ([]any, error) {
	if len(values) != len(b.inputs) {
		return nil, fmt.Errorf("%w: binding %q expects %d values, got %d", ErrArity, b.id, len(b.inputs), len(values))
	}

	args := make([]any, len(values))
	var errs []error
	for i, field := range b.inputs {
		value, err := model.CoerceValue(*field, values[i])
		if err != nil {
			errs = append(errs, &ArgumentError{Index: i, FieldID: field.ID, Err: err})
			continue
		}
		args[i] = value
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	results, err := b.fn.Call(ctx, args)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) && argErr.FieldID == "" && argErr.Index < len(b.inputs) {
			argErr.FieldID = b.inputs[argErr.Index].ID
		}
		return nil, err
	}
	return results, nil
}

func acceptsInput(kind model.FieldKind, param reflect.Type) bool {
	if param.Kind() == reflect.Interface {
		return param.NumMethod() == 0
	}
	switch kind.ValueType() {
	case model.ValueTypeNumber:
		return isNumeric(param.Kind())
	case model.ValueTypeBool:
		return param.Kind() == reflect.Bool
	default:
		return param.Kind() == reflect.String
	}
}

func acceptsOutput(kind model.FieldKind, result reflect.Type) bool {
	if result.Kind() == reflect.Interface {
		return true
	}
	switch kind {
	case model.FieldKindText, model.FieldKindMarkdown:
		return true
	case model.FieldKindNumber, model.FieldKindSlider:
		return isNumeric(result.Kind())
	case model.FieldKindCheckbox:
		return result.Kind() == reflect.Bool
	default:
		return result.Kind() == reflect.String
	}
}

func fieldIDs(fields []*model.Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.ID
	}
	return out
}
