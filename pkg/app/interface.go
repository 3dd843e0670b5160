package app

import (
	"github.com/goliatone/go-formbind/pkg/model"
)

// InterfaceOption configures NewInterface.
type InterfaceOption func(*interfaceConfig)

type interfaceConfig struct {
	title       string
	description string
	submitLabel string
	clearLabel  string
	allowClear  bool
}

// WithTitle sets the page title.
func WithTitle(title string) InterfaceOption {
	return func(cfg *interfaceConfig) {
		cfg.title = title
	}
}

// WithDescription sets the Markdown description shown under the title.
func WithDescription(description string) InterfaceOption {
	return func(cfg *interfaceConfig) {
		cfg.description = description
	}
}

// WithSubmitLabel overrides the submit button label.
func WithSubmitLabel(label string) InterfaceOption {
	return func(cfg *interfaceConfig) {
		if label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithClearLabel overrides the clear link label.
func WithClearLabel(label string) InterfaceOption {
	return func(cfg *interfaceConfig) {
		if label != "" {
			cfg.clearLabel = label
		}
	}
}

// WithoutClear drops the clear link.
func WithoutClear() InterfaceOption {
	return func(cfg *interfaceConfig) {
		cfg.allowClear = false
	}
}

// NewInterface builds the fixed-layout app: inputs on the left with a Clear
// link and a Submit button, outputs on the right. Submitting the form invokes
// fn with the inputs in order and writes the results to outputs in order.
func NewInterface(fn any, inputs, outputs []*model.Field, options ...InterfaceOption) (*App, error) {
	cfg := interfaceConfig{
		submitLabel: "Submit",
		clearLabel:  "Clear",
		allowClear:  true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := newAssembler()
	s.page.Title = cfg.title
	s.page.Description = cfg.description

	inputColumn := model.Node{Kind: model.NodeColumn}
	for _, field := range inputs {
		if node, ok := s.place(field); ok {
			inputColumn.Children = append(inputColumn.Children, node)
		}
	}

	actions := model.Node{Kind: model.NodeRow}
	if cfg.allowClear {
		clearBtn := s.button(cfg.clearLabel, []ButtonOption{WithButtonID("clear")})
		clearBtn.Link = "./"
		actions.Children = append(actions.Children, model.Node{Kind: model.NodeButton, Button: clearBtn})
	}
	submit := s.button(cfg.submitLabel, []ButtonOption{WithButtonID("submit"), WithVariant("primary")})
	actions.Children = append(actions.Children, model.Node{Kind: model.NodeButton, Button: submit})
	inputColumn.Children = append(inputColumn.Children, actions)

	outputColumn := model.Node{Kind: model.NodeColumn}
	for _, field := range outputs {
		if field != nil && field.Interactive == nil {
			field.Interactive = new(bool)
		}
		if node, ok := s.place(field); ok {
			outputColumn.Children = append(outputColumn.Children, node)
		}
	}

	s.page.Nodes = []model.Node{{
		Kind:     model.NodeRow,
		Children: []model.Node{inputColumn, outputColumn},
	}}

	s.bind(model.TriggerSubmit, submit.ID, fn, inputs, outputs)
	return s.finish()
}
