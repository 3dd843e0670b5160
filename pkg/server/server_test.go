package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/internal/observability"
	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/demos"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/server"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func reject(text string) (string, error) {
	return "", &binding.ValidationError{Payload: map[string][]string{
		"/data/0": {"zu kurz"},
		"form":    {"bitte erneut versuchen"},
	}}
}

func boom(text string) string {
	panic("kaputt")
}

func thousandfold(n float64) float64 {
	return n * 1000
}

func preview(text string) string {
	return text
}

func toggle(on bool) string {
	if on {
		return "an"
	}
	return "aus"
}

func newServer(t *testing.T, factory func() (*app.App, error), options ...server.Option) http.Handler {
	t.Helper()
	a := testsupport.MustBuild(t, factory)
	options = append([]server.Option{
		server.WithLogger(observability.Discard()),
		server.WithRateLimit(server.RateLimitConfig{}),
	}, options...)
	srv, err := server.New(a, options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Handler()
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected body to contain %q\n%s", fragment, body)
		}
	}
}

func TestPage_RendersDefaults(t *testing.T) {
	h := newServer(t, demos.Hello)
	rec := get(t, h, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}
	assertContains(t, rec.Body.String(),
		`formaction="/events/greet"`,
		`href="/assets/formbind.css"`,
	)

	if rec := get(t, h, "/missing"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestFormEvent_RendersOutputs(t *testing.T) {
	h := newServer(t, demos.Hello)
	rec := postForm(t, h, "/events/greet", url.Values{"name-eingeben": {"World"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	eventID := rec.Header().Get("X-Event-ID")
	if eventID == "" {
		t.Fatalf("expected an event id header")
	}
	assertContains(t, rec.Body.String(),
		`value="World"`,
		`data-output="begruessung">Hallo, World!! 🙂</output>`,
		"Event "+eventID,
	)
}

func TestFormEvent_ClearLinkReachesPage(t *testing.T) {
	h := newServer(t, demos.Hello)
	rec := postForm(t, h, "/events/greet", url.Values{"name-eingeben": {"World"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	match := regexp.MustCompile(`id="fb-btn-clear"[^>]*href="([^"]*)"`).FindStringSubmatch(rec.Body.String())
	if match == nil {
		t.Fatalf("clear link not found in:\n%s", rec.Body.String())
	}
	target, err := url.Parse("/events/greet")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	href, err := url.Parse(match[1])
	if err != nil {
		t.Fatalf("parse href %q: %v", match[1], err)
	}

	page := get(t, h, target.ResolveReference(href).Path)
	if page.Code != http.StatusOK {
		t.Fatalf("clear link %q: status %d", match[1], page.Code)
	}
	if strings.Contains(page.Body.String(), "Hallo, World") {
		t.Fatalf("clear link should load the defaults")
	}
}

func TestFormEvent_InvalidInputKeepsValues(t *testing.T) {
	h := newServer(t, demos.ComponentsBlocks)
	rec := postForm(t, h, "/events/compute", url.Values{
		"name-eingeben":            {"Anna"},
		"stimmung-auswaehlen":      {"glücklich"},
		"intensitaet-der-stimmung": {"15"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		`value="Anna"`,
		`aria-invalid="true"`,
		"15 is above 10",
	)
}

func TestFormEvent_CheckboxUsesLastValue(t *testing.T) {
	h := newServer(t, func() (*app.App, error) {
		return app.NewInterface(toggle,
			[]*model.Field{model.Checkbox("Laut")},
			[]*model.Field{model.Textbox("Ergebnis")},
		)
	})

	rec := postForm(t, h, "/events/toggle", url.Values{"laut": {"false", "true"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	assertContains(t, rec.Body.String(), `data-output="ergebnis">an</output>`)

	rec = postForm(t, h, "/events/toggle", url.Values{"laut": {"false"}})
	assertContains(t, rec.Body.String(), `data-output="ergebnis">aus</output>`)
}

func TestFormEvent_UnknownBinding(t *testing.T) {
	h := newServer(t, demos.Hello)
	if rec := postForm(t, h, "/events/nope", url.Values{}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAPIEvent_Success(t *testing.T) {
	h := newServer(t, demos.Components)
	rec, body := postJSON(t, h, "/api/events/compute", `{"data":["Anna","glücklich",5]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", rec.Code, body)
	}
	if diff := cmp.Diff([]any{"Anna fühlt sich glücklich", float64(50)}, body["data"]); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if id, _ := body["event_id"].(string); id == "" || id != rec.Header().Get("X-Event-ID") {
		t.Fatalf("event id mismatch: body %v header %q", body["event_id"], rec.Header().Get("X-Event-ID"))
	}
}

func TestAPIEvent_Errors(t *testing.T) {
	h := newServer(t, demos.Components)

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		fields map[string]any
	}{
		{name: "bad json", path: "/api/events/compute", body: `{"data":`, status: http.StatusBadRequest, fields: map[string]any{}},
		{name: "arity", path: "/api/events/compute", body: `{"data":["Anna"]}`, status: http.StatusBadRequest, fields: map[string]any{}},
		{name: "unknown", path: "/api/events/nope", body: `{"data":[]}`, status: http.StatusNotFound},
		{
			name:   "invalid input",
			path:   "/api/events/compute",
			body:   `{"data":["Anna","wütend",0]}`,
			status: http.StatusUnprocessableEntity,
			fields: map[string]any{
				"stimmung-auswaehlen":      []any{`not one of the choices: "wütend"`},
				"intensitaet-der-stimmung": []any{"out of range: 0 is below 1"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := postJSON(t, h, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %v", tc.status, rec.Code, body)
			}
			if tc.fields == nil {
				return
			}
			errs, _ := body["errors"].(map[string]any)
			if diff := cmp.Diff(tc.fields, errs["fields"]); diff != "" {
				t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAPIEvent_ValidationErrorMapsPositionalKeys(t *testing.T) {
	h := newServer(t, func() (*app.App, error) {
		return app.NewInterface(reject,
			[]*model.Field{model.Textbox("Text")},
			[]*model.Field{model.Textbox("Ergebnis")},
		)
	})

	rec, body := postJSON(t, h, "/api/events/reject", `{"data":["x"]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	want := map[string]any{
		"fields": map[string]any{"text": []any{"zu kurz"}},
		"form":   []any{"bitte erneut versuchen"},
	}
	if diff := cmp.Diff(want, body["errors"]); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIEvent_PanicBecomesFormError(t *testing.T) {
	h := newServer(t, func() (*app.App, error) {
		return app.NewInterface(boom,
			[]*model.Field{model.Textbox("Text")},
			[]*model.Field{model.Textbox("Ergebnis")},
		)
	})

	rec, body := postJSON(t, h, "/api/events/boom", `{"data":["x"]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	errs, _ := body["errors"].(map[string]any)
	if diff := cmp.Diff([]any{"internal error while running boom"}, errs["form"]); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIEvent_RendersMarkdownOutputs(t *testing.T) {
	h := newServer(t, func() (*app.App, error) {
		return app.NewInterface(preview,
			[]*model.Field{model.Textbox("Text")},
			[]*model.Field{model.Markdown("", model.WithID("vorschau"))},
		)
	})

	_, body := postJSON(t, h, "/api/events/preview", `{"data":["**fett**"]}`)
	rendered, _ := body["rendered"].(map[string]any)
	if got, _ := rendered["vorschau"].(string); !strings.Contains(got, "<strong>fett</strong>") {
		t.Fatalf("expected rendered markdown, got %v", body)
	}
}

func TestInfoHealthAndSpec(t *testing.T) {
	h := newServer(t, demos.ComponentsBlocks)

	rec := get(t, h, "/api/info")
	var info struct {
		Title  string        `json:"title"`
		Events []model.Event `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.Title != "Gradio Komponenten Beispiel" || len(info.Events) != 1 || info.Events[0].Binding != "compute" {
		t.Fatalf("unexpected info %+v", info)
	}

	rec = get(t, h, "/healthz")
	assertContains(t, rec.Body.String(), `"status":"ok"`)

	rec = get(t, h, "/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("openapi status %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), `"/api/events/compute"`, `"/events/compute"`)

	rec = get(t, h, "/assets/formbind.css")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("unexpected asset response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	h := newServer(t, demos.Hello)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got == "<script>" || got == "" {
		t.Fatalf("expected unsafe request id to be replaced, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := newServer(t, demos.Hello, server.WithRateLimit(server.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))

	first := postForm(t, h, "/events/greet", url.Values{"name-eingeben": {"A"}})
	if first.Code != http.StatusOK {
		t.Fatalf("first request: %d", first.Code)
	}
	second := postForm(t, h, "/events/greet", url.Values{"name-eingeben": {"B"}})
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if rec := get(t, h, "/"); rec.Code != http.StatusOK {
		t.Fatalf("page should not be rate limited, got %d", rec.Code)
	}
}

func TestLocaleFromAcceptLanguage(t *testing.T) {
	h := newServer(t, func() (*app.App, error) {
		return app.NewInterface(thousandfold,
			[]*model.Field{model.Number("Zahl")},
			[]*model.Field{model.Number("Ergebnis")},
		)
	})

	for lang, want := range map[string]string{"de-DE,de;q=0.9": "1.234.000", "en-US": "1,234,000"} {
		form := url.Values{"zahl": {"1234"}}
		req := httptest.NewRequest(http.MethodPost, "/events/thousandfold", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept-Language", lang)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assertContains(t, rec.Body.String(), `data-output="ergebnis">`+want+`</output>`)
	}
}

func TestAPIEvent_DisplayFollowsLocale(t *testing.T) {
	h := newServer(t, func() (*app.App, error) {
		return app.NewInterface(thousandfold,
			[]*model.Field{model.Number("Zahl")},
			[]*model.Field{model.Number("Ergebnis")},
		)
	})

	for lang, want := range map[string]string{"de-DE,de;q=0.9": "1.234.000", "en-US": "1,234,000"} {
		req := httptest.NewRequest(http.MethodPost, "/api/events/thousandfold", strings.NewReader(`{"data":[1234]}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept-Language", lang)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d: %s", lang, rec.Code, rec.Body.String())
		}

		var body struct {
			Data    []any             `json:"data"`
			Display map[string]string `json:"display"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff([]any{float64(1234000)}, body.Data); diff != "" {
			t.Fatalf("%s: data mismatch (-want +got):\n%s", lang, diff)
		}
		if diff := cmp.Diff(map[string]string{"ergebnis": want}, body.Display); diff != "" {
			t.Fatalf("%s: display mismatch (-want +got):\n%s", lang, diff)
		}
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Hello)
	srv, err := server.New(a, server.WithLogger(observability.Discard()), server.WithGrace(time.Second))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}

func TestNew_RejectsNilApp(t *testing.T) {
	if _, err := server.New(nil); err == nil {
		t.Fatalf("expected error for nil app, got %v", err)
	}
}
