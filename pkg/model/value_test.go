package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formbind/pkg/model"
)

func TestParseValue(t *testing.T) {
	slider := *model.Slider("Intensität", 1, 10)
	dropdown := *model.Dropdown("Stimmung", []string{"glücklich", "traurig"})
	checkbox := *model.Checkbox("Einverstanden")
	text := *model.Textbox("Name")

	cases := []struct {
		name    string
		field   model.Field
		raw     string
		want    any
		wantErr error
	}{
		{name: "text keeps whitespace", field: text, raw: " Anna ", want: " Anna "},
		{name: "slider integer", field: slider, raw: "5", want: float64(5)},
		{name: "slider trims", field: slider, raw: " 7 ", want: float64(7)},
		{name: "slider empty uses minimum", field: slider, raw: "", want: float64(1)},
		{name: "slider above max", field: slider, raw: "11", wantErr: model.ErrOutOfRange},
		{name: "slider below min", field: slider, raw: "0", wantErr: model.ErrOutOfRange},
		{name: "slider not a number", field: slider, raw: "five", wantErr: model.ErrInvalidNumber},
		{name: "slider rejects NaN", field: slider, raw: "NaN", wantErr: model.ErrInvalidNumber},
		{name: "dropdown choice", field: dropdown, raw: "traurig", want: "traurig"},
		{name: "dropdown empty selection", field: dropdown, raw: "", want: ""},
		{name: "dropdown unknown", field: dropdown, raw: "wütend", wantErr: model.ErrInvalidChoice},
		{name: "checkbox on", field: checkbox, raw: "on", want: true},
		{name: "checkbox missing", field: checkbox, raw: "", want: false},
		{name: "checkbox garbage", field: checkbox, raw: "maybe", wantErr: model.ErrInvalidBool},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := model.ParseValue(tc.field, tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestCoerceValue_JSONValues(t *testing.T) {
	slider := *model.Slider("Intensität", 1, 10, model.WithValue(5))

	got, err := model.CoerceValue(slider, nil)
	if err != nil {
		t.Fatalf("coerce default: %v", err)
	}
	if got != float64(5) {
		t.Fatalf("expected default 5, got %#v", got)
	}

	got, err = model.CoerceValue(slider, 3)
	if err != nil {
		t.Fatalf("coerce int: %v", err)
	}
	if got != float64(3) {
		t.Fatalf("expected 3, got %#v", got)
	}

	if _, err := model.CoerceValue(*model.Textbox("Name"), []string{"x"}); err == nil {
		t.Fatalf("expected error for slice value")
	}
}

func TestFieldDefaults(t *testing.T) {
	if got := model.Slider("s", 2, 4).DefaultValue(); got != float64(2) {
		t.Fatalf("slider default should be minimum, got %#v", got)
	}
	if got := model.Number("n").DefaultValue(); got != float64(0) {
		t.Fatalf("number default should be zero, got %#v", got)
	}
	if got := model.Checkbox("c").DefaultValue(); got != false {
		t.Fatalf("checkbox default should be false, got %#v", got)
	}
	if got := model.Textbox("t", model.WithValue("x")).DefaultValue(); got != "x" {
		t.Fatalf("textbox default mismatch, got %#v", got)
	}
}

func TestPageCloneIsDeep(t *testing.T) {
	field := model.Textbox("Name", model.WithID("name"))
	page := model.Page{
		Title: "Demo",
		Nodes: []model.Node{{
			Kind:     model.NodeRow,
			Children: []model.Node{{Kind: model.NodeField, Field: field}},
		}},
	}

	clone := page.Clone()
	cloned, ok := clone.Field("name")
	if !ok {
		t.Fatalf("expected cloned field")
	}
	cloned.Label = "Changed"

	if field.Label != "Name" {
		t.Fatalf("clone mutated original field: %q", field.Label)
	}
	if len(page.Fields()) != 1 {
		t.Fatalf("expected one field, got %d", len(page.Fields()))
	}
}
