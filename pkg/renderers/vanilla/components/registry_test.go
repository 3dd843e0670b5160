package components

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_RegisterAndClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, view View, data ComponentData) error { return nil }

	if err := reg.Register(" Stars ", Descriptor{Renderer: renderer}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("broken", Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	desc, ok := reg.Descriptor("stars")
	if !ok || desc.Name != "stars" {
		t.Fatalf("descriptor not normalised: %+v (ok=%v)", desc, ok)
	}

	clone := reg.Clone()
	clone.MustRegister("extra", Descriptor{Renderer: renderer})
	if reg.Has("extra") {
		t.Fatalf("clone mutation leaked into original registry")
	}
}

func TestDefaultRegistry_Names(t *testing.T) {
	want := []string{
		NameCheckbox, NameMarkdown, NameNumber, NameOutput, NameRadio,
		NameRange, NameSelect, NameTextarea, NameTextbox,
	}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateRenderer_UsesThemePartial(t *testing.T) {
	stub := &recordingTemplates{}
	render := TemplateRenderer(templatePrefix + "textbox.tmpl")

	var buf bytes.Buffer
	err := render(&buf, View{ID: "name", Widget: NameTextbox}, ComponentData{
		Template:      stub,
		ThemePartials: map[string]string{"forms.textbox": "themes/acme/textbox.tmpl"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stub.last != "themes/acme/textbox.tmpl" {
		t.Fatalf("expected theme partial, got %q", stub.last)
	}
	if buf.String() != "<rendered>" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTemplateRenderer_RequiresTemplates(t *testing.T) {
	var buf bytes.Buffer
	err := TemplateRenderer("x.tmpl")(&buf, View{}, ComponentData{})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

type recordingTemplates struct {
	last string
}

func (r *recordingTemplates) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.last = name
	return "  <rendered>\n", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingTemplates) GlobalContext(any) error {
	return nil
}
