package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
)

// Runner drives an app from a terminal: it prompts for the inputs of a
// binding, invokes it and prints the resulting page state.
type Runner struct {
	app      *app.App
	driver   PromptDriver
	renderer *Renderer
	theme    Theme
	locale   string
	attempts int
}

// NewRunner constructs a session runner for a. Without WithPromptDriver the
// interactive survey driver is used.
func NewRunner(a *app.App, options ...Option) (*Runner, error) {
	if a == nil {
		return nil, errors.New("tui: app is nil")
	}
	cfg, err := buildSettings(options)
	if err != nil {
		return nil, err
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(nil)
	}
	return &Runner{
		app:      a,
		driver:   cfg.driver,
		renderer: newRenderer(cfg),
		theme:    cfg.theme,
		locale:   cfg.locale,
		attempts: cfg.maxAttempts,
	}, nil
}

// Run prompts for the inputs of bindingID, invokes it and prints the page.
// An empty bindingID picks the only binding, or asks when there are several.
// Rejected inputs are prompted again, keeping the accepted ones.
func (r *Runner) Run(ctx context.Context, bindingID string) ([]any, error) {
	b, err := r.chooseBinding(ctx, bindingID)
	if err != nil {
		return nil, err
	}

	state := NewState(nil)
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		for _, field := range b.Inputs() {
			if !state.NeedsPrompt(field.ID) {
				continue
			}
			value, err := r.promptField(ctx, *field, state)
			if err != nil {
				return nil, err
			}
			state.SetValue(field.ID, value)
		}

		values := make([]any, len(b.Inputs()))
		for i, field := range b.Inputs() {
			values[i], _ = state.Value(field.ID)
		}

		results, err := b.Invoke(ctx, values)
		if err == nil {
			state.SetErrors(nil)
			for i, field := range b.Outputs() {
				state.SetValue(field.ID, results[i])
			}
			if err := r.print(ctx, state, nil); err != nil {
				return nil, err
			}
			return results, nil
		}

		fieldErrs, formErrs := binding.FieldErrors(err)
		if len(fieldErrs) == 0 {
			if printErr := r.print(ctx, state, formErrs); printErr != nil {
				return nil, errors.Join(err, printErr)
			}
			return nil, err
		}
		lastErr = err
		state.SetErrors(fieldErrs)
		for _, field := range b.Inputs() {
			for _, message := range fieldErrs[field.ID] {
				if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.DisplayLabel(), message)); err != nil {
					return nil, err
				}
			}
		}
	}
	return nil, lastErr
}

func (r *Runner) chooseBinding(ctx context.Context, id string) (*binding.Binding, error) {
	if id != "" {
		return r.app.Binding(id)
	}
	bindings := r.app.Bindings()
	switch len(bindings) {
	case 0:
		return nil, ErrNoBindings
	case 1:
		return bindings[0], nil
	}

	options := make([]string, len(bindings))
	for i, b := range bindings {
		options[i] = fmt.Sprintf("%s (%s %s)", b.ID(), b.Trigger(), b.Source())
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Event",
		Options: options,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(bindings) {
		return nil, fmt.Errorf("tui: invalid binding selection %d", idx)
	}
	return bindings[idx], nil
}

func (r *Runner) promptField(ctx context.Context, field model.Field, state *State) (any, error) {
	current, ok := state.Value(field.ID)
	if !ok {
		current = field.DefaultValue()
	}
	label := field.DisplayLabel()
	help := field.Info

	switch {
	case field.Kind == model.FieldKindCheckbox:
		checked, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: checked,
			Help:    help,
		})

	case field.Kind.HasChoices():
		currentText := render.InputValue(field, current)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Choices,
			DefaultIndex: indexOf(field.Choices, currentText),
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Choices) {
			return "", nil
		}
		return field.Choices[idx], nil

	case field.Kind.ValueType() == model.ValueTypeNumber:
		if help == "" && field.Min != nil && field.Max != nil {
			help = model.FormatNumber(*field.Min) + ".." + model.FormatNumber(*field.Max)
		}
		return r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: render.InputValue(field, current),
			Help:    help,
			Validator: func(text string) error {
				_, err := model.ParseValue(field, strings.TrimSpace(text))
				return err
			},
		})

	case field.Lines > 1 || field.Kind == model.FieldKindMarkdown:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: render.InputValue(field, current),
			Help:    help,
		})

	default:
		return r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: render.InputValue(field, current),
			Help:    help,
		})
	}
}

func (r *Runner) print(ctx context.Context, state *State, formErrs []string) error {
	out, err := r.renderer.Render(ctx, r.app.Page(), render.RenderOptions{
		Values:     state.Values(),
		Errors:     state.Errors(),
		FormErrors: formErrs,
		Locale:     r.locale,
	})
	if err != nil {
		return err
	}
	return r.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}
