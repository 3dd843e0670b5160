package render_test

import (
	"testing"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		locale string
		want   string
	}{
		{name: "int without locale", value: 50, want: "50"},
		{name: "int german grouping", value: 1234567, locale: "de", want: "1.234.567"},
		{name: "int english grouping", value: 1234567, locale: "en", want: "1,234,567"},
		{name: "float german decimal", value: 2.5, locale: "de", want: "2,5"},
		{name: "float plain", value: 2.5, want: "2.5"},
		{name: "string passthrough", value: "Anna fühlt sich glücklich", locale: "de", want: "Anna fühlt sich glücklich"},
		{name: "bool", value: true, want: "true"},
		{name: "nil", value: nil, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render.FormatValue(tc.value, tc.locale); got != tc.want {
				t.Fatalf("FormatValue(%v, %q) = %q, want %q", tc.value, tc.locale, got, tc.want)
			}
		})
	}
}

func TestInputValue(t *testing.T) {
	slider := model.Field{Kind: model.FieldKindSlider}
	if got := render.InputValue(slider, 5); got != "5" {
		t.Fatalf("expected 5, got %q", got)
	}
	if got := render.InputValue(slider, 7.5); got != "7.5" {
		t.Fatalf("expected 7.5, got %q", got)
	}
	if got := render.InputValue(model.Field{Kind: model.FieldKindText}, nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
