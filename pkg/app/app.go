package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
)

// ErrUnknownBinding reports a dispatch to a binding ID the app never
// registered.
var ErrUnknownBinding = errors.New("app: unknown binding")

// App is a built demo: a page plus the bindings its events fire. Apps are
// immutable after construction apart from Decorate, which is meant to run
// once during startup.
type App struct {
	page     model.Page
	bindings *binding.Registry
}

// Page returns a copy of the component tree with the event list attached.
func (a *App) Page() model.Page {
	return a.page.Clone()
}

// Bindings returns the bindings in registration order.
func (a *App) Bindings() []*binding.Binding {
	return a.bindings.List()
}

// Binding looks up a binding by ID.
func (a *App) Binding(id string) (*binding.Binding, error) {
	b, ok := a.bindings.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBinding, id)
	}
	return b, nil
}

// Dispatch invokes the binding with positional input values and returns its
// positional outputs.
func (a *App) Dispatch(ctx context.Context, id string, values []any) ([]any, error) {
	b, err := a.Binding(id)
	if err != nil {
		return nil, err
	}
	return b.Invoke(ctx, values)
}

// Decorate applies decorators to the app page in place. Field pointers are
// shared with the bindings, so relabelled fields are visible everywhere.
func (a *App) Decorate(decorators ...model.Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&a.page); err != nil {
			return fmt.Errorf("app: decorate: %w", err)
		}
	}
	return nil
}

// assembler collects nodes and bindings while an app is being built and
// enforces the page-level invariants once construction ends.
type assembler struct {
	ids        *idAllocator
	bindingIDs *idAllocator
	page       model.Page
	bindings   *binding.Registry
	placed     map[*model.Field]bool
	buttons    map[*model.Button]bool
	usedIn     map[*model.Field]bool
	usedOut    map[*model.Field]bool
	errs       []error
}

func newAssembler() *assembler {
	return &assembler{
		ids:        newIDAllocator(),
		bindingIDs: newIDAllocator(),
		bindings:   binding.NewRegistry(),
		placed:     make(map[*model.Field]bool),
		buttons:    make(map[*model.Button]bool),
		usedIn:     make(map[*model.Field]bool),
		usedOut:    make(map[*model.Field]bool),
	}
}

func (s *assembler) fail(err error) {
	if err != nil {
		s.errs = append(s.errs, err)
	}
}

// place assigns an ID to field and returns its node.
func (s *assembler) place(field *model.Field) (model.Node, bool) {
	if field == nil {
		s.fail(errors.New("app: field is nil"))
		return model.Node{}, false
	}
	if s.placed[field] {
		s.fail(fmt.Errorf("app: field %q placed twice", field.DisplayLabel()))
		return model.Node{}, false
	}
	if field.ID != "" {
		if !s.ids.reserve(field.ID) {
			s.fail(fmt.Errorf("app: duplicate field id %q", field.ID))
			return model.Node{}, false
		}
	} else {
		field.ID = s.ids.next(field.Label, string(field.Kind))
	}
	s.placed[field] = true
	return model.Node{Kind: model.NodeField, Field: field}, true
}

func (s *assembler) button(label string, options []ButtonOption) *model.Button {
	btn := &model.Button{Label: label, Variant: "secondary"}
	for _, opt := range options {
		if opt != nil {
			opt(btn)
		}
	}
	if btn.ID != "" {
		if !s.ids.reserve(btn.ID) {
			s.fail(fmt.Errorf("app: duplicate button id %q", btn.ID))
		}
	} else {
		btn.ID = s.ids.next(label, "button")
	}
	s.buttons[btn] = true
	return btn
}

func (s *assembler) bind(trigger model.Trigger, source string, fn any, inputs, outputs []*model.Field) {
	f, err := binding.FuncOf(fn)
	if err != nil {
		s.fail(err)
		return
	}
	id := s.bindingIDs.next(f.Name(), "binding")
	b, err := binding.New(binding.Spec{
		ID:      id,
		Trigger: trigger,
		Source:  source,
		Fn:      f,
		Inputs:  inputs,
		Outputs: outputs,
	})
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.bindings.Register(b); err != nil {
		s.fail(err)
		return
	}
	for _, field := range inputs {
		s.usedIn[field] = true
	}
	for _, field := range outputs {
		s.usedOut[field] = true
	}
}

// finish verifies every bound field is on the page, marks pure outputs as
// read-only and returns the app.
func (s *assembler) finish() (*App, error) {
	for _, b := range s.bindings.List() {
		for _, field := range append(b.Inputs(), b.Outputs()...) {
			if !s.placed[field] {
				s.fail(&binding.ConfigError{
					Binding: b.ID(),
					Reason:  fmt.Sprintf("field %q is not part of the page", field.DisplayLabel()),
				})
			}
		}
	}
	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}

	for field := range s.usedOut {
		if field.Interactive == nil && !s.usedIn[field] {
			readOnly := false
			field.Interactive = &readOnly
		}
	}

	for _, b := range s.bindings.List() {
		s.page.Events = append(s.page.Events, b.Event())
	}
	return &App{page: s.page, bindings: s.bindings}, nil
}

// ButtonOption configures a button.
type ButtonOption func(*model.Button)

// WithButtonID pins the button ID.
func WithButtonID(id string) ButtonOption {
	return func(b *model.Button) {
		b.ID = id
	}
}

// WithVariant selects the button style ("primary", "secondary", "stop").
func WithVariant(variant string) ButtonOption {
	return func(b *model.Button) {
		if variant != "" {
			b.Variant = variant
		}
	}
}
