package openapi_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbind/pkg/demos"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func TestBuild_DemosValidate(t *testing.T) {
	for _, name := range demos.Names() {
		t.Run(name, func(t *testing.T) {
			factory, _ := demos.Lookup(name)
			doc, err := openapi.Build(testsupport.Context(), testsupport.MustBuild(t, factory))
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if len(doc.Raw()) == 0 {
				t.Fatalf("expected encoded document")
			}
		})
	}
}

func TestBuild_Operations(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Components)
	doc, err := openapi.Build(testsupport.Context(), a, openapi.WithServerURL("http://localhost:7860"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var paths []string
	for _, op := range doc.Operations() {
		paths = append(paths, op.Method+" "+op.Path)
	}
	want := []string{
		"GET /",
		"POST /api/events/compute",
		"GET /api/info",
		"POST /events/compute",
		"GET /healthz",
		"GET /openapi.json",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	op, ok := doc.Operation("api-event-compute")
	if !ok || op.Path != "/api/events/compute" {
		t.Fatalf("api operation missing: %#v", op)
	}
}

func TestBuild_FieldSchemas(t *testing.T) {
	a := testsupport.MustBuild(t, demos.ComponentsBlocks)
	doc, err := openapi.Build(testsupport.Context(), a, openapi.WithTitle("Stimmung"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var decoded struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			RequestBody struct {
				Content map[string]struct {
					Schema struct {
						Properties map[string]struct {
							Type    string   `json:"type"`
							Enum    []string `json:"enum"`
							Minimum *float64 `json:"minimum"`
							Maximum *float64 `json:"maximum"`
							Default any      `json:"default"`
						} `json:"properties"`
					} `json:"schema"`
				} `json:"content"`
			} `json:"requestBody"`
			Inputs []string `json:"x-formbind-inputs"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(doc.Raw(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Info.Title != "Stimmung" {
		t.Fatalf("unexpected title %q", decoded.Info.Title)
	}

	post := decoded.Paths["/events/compute"]["post"]
	props := post.RequestBody.Content["application/x-www-form-urlencoded"].Schema.Properties

	mood := props["stimmung-auswaehlen"]
	if diff := cmp.Diff([]string{"glücklich", "traurig", "aufgeregt"}, mood.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if mood.Default != nil {
		t.Fatalf("unselected dropdown must not carry a default, got %v", mood.Default)
	}

	slider := props["intensitaet-der-stimmung"]
	if slider.Type != "number" || *slider.Minimum != 1 || *slider.Maximum != 10 || slider.Default != float64(5) {
		t.Fatalf("unexpected slider schema %#v", slider)
	}

	wantInputs := []string{"name-eingeben", "stimmung-auswaehlen", "intensitaet-der-stimmung"}
	if diff := cmp.Diff(wantInputs, post.Inputs); diff != "" {
		t.Fatalf("inputs extension mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Hello)
	built, err := openapi.Build(testsupport.Context(), a)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	loaded, err := openapi.Load(testsupport.Context(), built.Raw())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ignoreExtensions := cmpopts.IgnoreFields(openapi.Operation{}, "Extensions")
	if diff := cmp.Diff(built.Operations(), loaded.Operations(), ignoreExtensions); diff != "" {
		t.Fatalf("operations mismatch (-built +loaded):\n%s", diff)
	}

	op, ok := loaded.Operation("api-event-greet")
	if !ok {
		t.Fatalf("api-event-greet missing after load")
	}
	if op.Extensions["x-formbind-binding"] != "greet" {
		t.Fatalf("binding extension lost: %#v", op.Extensions)
	}
	if diff := cmp.Diff([]any{"name-eingeben"}, op.Extensions["x-formbind-inputs"]); diff != "" {
		t.Fatalf("inputs extension mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := openapi.Load(testsupport.Context(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := openapi.Load(testsupport.Context(), []byte(`{"openapi":"3.0.3","info":{"title":"x"},"paths":{}}`)); err == nil {
		t.Fatalf("expected validation error for missing version")
	}
}

func TestLint_GeneratedDocumentsAreClean(t *testing.T) {
	for _, name := range demos.Names() {
		factory, _ := demos.Lookup(name)
		doc, err := openapi.Build(testsupport.Context(), testsupport.MustBuild(t, factory))
		if err != nil {
			t.Fatalf("%s: build: %v", name, err)
		}
		if violations := openapi.Lint(doc); len(violations) > 0 {
			t.Fatalf("%s: unexpected violations %v", name, violations)
		}
	}
}

func TestLint_ReportsBadExtensions(t *testing.T) {
	raw := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "x", "version": "1"},
  "paths": {
    "/events/greet": {
      "post": {
        "operationId": "event-greet",
        "x-formbind-trigger": "hover",
        "x-formbind-inputs": ["name", 3],
        "x-formbind-colour": "red",
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`)
	doc, err := openapi.Load(testsupport.Context(), raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var got []string
	for _, v := range openapi.Lint(doc) {
		got = append(got, v.Key)
	}
	want := []string{"x-formbind-binding", "x-formbind-colour", "x-formbind-inputs", "x-formbind-trigger"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}
