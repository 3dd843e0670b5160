package widgets

import (
	"testing"

	"github.com/goliatone/go-formbind/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Kind:     model.FieldKindCheckbox,
		Metadata: map[string]string{MetadataKey: "toggle"},
	}

	if got, ok := reg.Resolve(field); !ok || got != "toggle" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()
	readOnly := false

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{name: "textbox", field: model.Field{Kind: model.FieldKindText}, expect: WidgetTextbox},
		{name: "textarea", field: model.Field{Kind: model.FieldKindText, Lines: 4}, expect: WidgetTextarea},
		{name: "number", field: model.Field{Kind: model.FieldKindNumber}, expect: WidgetNumber},
		{name: "slider", field: model.Field{Kind: model.FieldKindSlider}, expect: WidgetRange},
		{name: "dropdown", field: model.Field{Kind: model.FieldKindDropdown}, expect: WidgetSelect},
		{name: "radio", field: model.Field{Kind: model.FieldKindRadio}, expect: WidgetRadio},
		{name: "checkbox", field: model.Field{Kind: model.FieldKindCheckbox}, expect: WidgetCheckbox},
		{name: "read-only checkbox", field: model.Field{Kind: model.FieldKindCheckbox, Interactive: &readOnly}, expect: WidgetCheckbox},
		{name: "read-only number", field: model.Field{Kind: model.FieldKindNumber, Interactive: &readOnly}, expect: WidgetOutput},
		{name: "markdown", field: model.Field{Kind: model.FieldKindMarkdown, Interactive: &readOnly}, expect: WidgetMarkdown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Register("stars", 65, func(field model.Field) bool {
		return field.Kind == model.FieldKindSlider
	})

	got, ok := reg.Resolve(model.Field{Kind: model.FieldKindSlider})
	if !ok || got != "stars" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestEmptyRegistry(t *testing.T) {
	reg := &Registry{}
	if got, ok := reg.Resolve(model.Field{Kind: model.FieldKindText}); ok {
		t.Fatalf("empty registry should not resolve, got %q", got)
	}
}

func TestDecorator_AppliesWidgetMetadata(t *testing.T) {
	reg := NewRegistry()
	readOnly := false

	page := model.Page{
		Nodes: []model.Node{
			{Kind: model.NodeField, Field: &model.Field{ID: "name", Kind: model.FieldKindText}},
			{Kind: model.NodeRow, Children: []model.Node{
				{Kind: model.NodeField, Field: &model.Field{ID: "score", Kind: model.FieldKindNumber, Interactive: &readOnly}},
				{Kind: model.NodeField, Field: &model.Field{ID: "mood", Kind: model.FieldKindDropdown, Metadata: map[string]string{MetadataKey: "chips"}}},
			}},
		},
	}

	if err := reg.Decorate(&page); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	want := map[string]string{"name": WidgetTextbox, "score": WidgetOutput, "mood": "chips"}
	for id, widget := range want {
		field, ok := page.Field(id)
		if !ok {
			t.Fatalf("field %q not found", id)
		}
		if field.Metadata[MetadataKey] != widget {
			t.Fatalf("field %q: expected widget %q, got %q", id, widget, field.Metadata[MetadataKey])
		}
	}
}
