package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
)

// Builder lays out a Blocks app. Components land in the current container in
// call order; Row, Column and Group open nested containers for the duration
// of their callback. Errors are collected and returned by NewBlocks.
type Builder struct {
	s     *assembler
	nodes *[]model.Node
}

// NewBlocks builds a free-layout app. build receives a Builder rooted at the
// page; event registrations (Click, Change, Submit) are validated
// immediately and again once the layout is complete, when every bound field
// must have been placed.
func NewBlocks(title string, build func(*Builder)) (*App, error) {
	if build == nil {
		return nil, errors.New("app: blocks build function is required")
	}
	s := newAssembler()
	s.page.Title = title

	root := &Builder{s: s, nodes: &s.page.Nodes}
	build(root)
	return s.finish()
}

// Describe sets the Markdown description shown under the title.
func (b *Builder) Describe(description string) {
	b.s.page.Description = description
}

// Markdown adds a static formatted text block.
func (b *Builder) Markdown(text string) {
	*b.nodes = append(*b.nodes, model.Node{Kind: model.NodeMarkdown, Text: text})
}

// Add places fields in the current container.
func (b *Builder) Add(fields ...*model.Field) {
	for _, field := range fields {
		if node, ok := b.s.place(field); ok {
			*b.nodes = append(*b.nodes, node)
		}
	}
}

// Button places a button in the current container and returns it so events
// can be attached.
func (b *Builder) Button(label string, options ...ButtonOption) *model.Button {
	btn := b.s.button(label, options)
	*b.nodes = append(*b.nodes, model.Node{Kind: model.NodeButton, Button: btn})
	return btn
}

// Row lays out the components added inside fn side by side.
func (b *Builder) Row(fn func(*Builder)) {
	b.container(model.NodeRow, fn)
}

// Column stacks the components added inside fn vertically.
func (b *Builder) Column(fn func(*Builder)) {
	b.container(model.NodeColumn, fn)
}

// Group visually groups the components added inside fn.
func (b *Builder) Group(fn func(*Builder)) {
	b.container(model.NodeGroup, fn)
}

func (b *Builder) container(kind model.NodeKind, fn func(*Builder)) {
	node := model.Node{Kind: kind}
	if fn != nil {
		child := &Builder{s: b.s, nodes: &node.Children}
		fn(child)
	}
	*b.nodes = append(*b.nodes, node)
}

// Click binds fn to presses of btn.
func (b *Builder) Click(btn *model.Button, fn any, inputs, outputs []*model.Field) {
	if btn == nil || !b.s.buttons[btn] {
		b.s.fail(errors.New("app: click source must be a button created by this builder"))
		return
	}
	b.s.bind(model.TriggerClick, btn.ID, fn, inputs, outputs)
}

// Change binds fn to value changes of field.
func (b *Builder) Change(field *model.Field, fn any, inputs, outputs []*model.Field) {
	b.fieldEvent(model.TriggerChange, field, fn, inputs, outputs)
}

// Submit binds fn to Enter presses inside a textbox.
func (b *Builder) Submit(field *model.Field, fn any, inputs, outputs []*model.Field) {
	if field != nil && field.Kind != model.FieldKindText {
		b.s.fail(fmt.Errorf("app: submit source %q must be a textbox", field.DisplayLabel()))
		return
	}
	b.fieldEvent(model.TriggerSubmit, field, fn, inputs, outputs)
}

func (b *Builder) fieldEvent(trigger model.Trigger, field *model.Field, fn any, inputs, outputs []*model.Field) {
	if field == nil {
		b.s.fail(fmt.Errorf("app: %s source field is nil", trigger))
		return
	}
	if !b.s.placed[field] || strings.TrimSpace(field.ID) == "" {
		b.s.fail(fmt.Errorf("app: %s source %q must be placed before events are attached", trigger, field.DisplayLabel()))
		return
	}
	b.s.bind(trigger, field.ID, fn, inputs, outputs)
}
