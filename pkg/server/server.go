// Package server exposes an app over HTTP: the rendered page, form and JSON
// event endpoints, the OpenAPI description and the embedded assets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbind/internal/observability"
	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
)

const (
	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 10 * time.Second
	eventIDHeader     = "X-Event-ID"
)

// Server serves a single app.
type Server struct {
	app     *app.App
	cfg     config
	logger  *slog.Logger
	spec    openapi.Document
	handler http.Handler
}

// New builds the handler tree for a. The OpenAPI document is generated and
// validated up front so a broken description fails at startup.
func New(a *app.App, options ...Option) (*Server, error) {
	if a == nil {
		return nil, errors.New("server: app is nil")
	}
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("server: default renderer: %w", err)
		}
		cfg.renderer = renderer
	}

	specOptions := append([]openapi.Option{openapi.WithPrefixes(EventPrefix, APIPrefix)}, cfg.openapi...)
	spec, err := openapi.Build(context.Background(), a, specOptions...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		app:    a,
		cfg:    cfg,
		logger: observability.Component(cfg.logger, "server"),
		spec:   spec,
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	limit := RateLimitMiddleware(s.cfg.rate, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.Handle("POST "+EventPrefix+"{id}", limit(http.HandlerFunc(s.handleFormEvent)))
	mux.Handle("POST "+APIPrefix+"{id}", limit(http.HandlerFunc(s.handleAPIEvent)))
	mux.HandleFunc("GET /api/info", s.handleInfo)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET "+AssetPrefix, http.StripPrefix(AssetPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))

	return ApplyMiddlewares(mux,
		RequestIDMiddleware(),
		LoggingMiddleware(s.logger),
	)
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Spec returns the OpenAPI document served at /openapi.json.
func (s *Server) Spec() openapi.Document {
	return s.spec
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "grace", s.cfg.grace.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

// Launch serves a on the configured address and blocks until ctx is
// cancelled or the process receives SIGINT or SIGTERM.
func Launch(ctx context.Context, a *app.App, options ...Option) error {
	s, err := New(a, options...)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx, ln)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, s.app.Page(), render.RenderOptions{})
}

func (s *Server) handleFormEvent(w http.ResponseWriter, r *http.Request) {
	b, err := s.app.Binding(r.PathValue("id"))
	if err != nil {
		http.Error(w, "unknown event", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	page := s.app.Page()
	values := submittedValues(page, r)

	inputs := make([]any, 0, len(b.Inputs()))
	for _, field := range b.Inputs() {
		if raw, ok := lastFormValue(r, field.ID); ok {
			inputs = append(inputs, raw)
			continue
		}
		inputs = append(inputs, nil)
	}

	results, err := b.Invoke(r.Context(), inputs)
	if err != nil {
		fields, form := s.invocationErrors(r.Context(), page, b, err)
		s.renderPage(w, r, http.StatusUnprocessableEntity, page, render.RenderOptions{
			Values:     values,
			Errors:     fields,
			FormErrors: form,
		})
		return
	}

	for i, field := range b.Outputs() {
		values[field.ID] = results[i]
	}
	eventID := uuid.NewString()
	w.Header().Set(eventIDHeader, eventID)
	s.renderPage(w, r, http.StatusOK, page, render.RenderOptions{
		Values: values,
		Status: "Event " + eventID,
	})
}

type eventRequest struct {
	Data []any `json:"data"`
}

type eventResponse struct {
	Data     []any             `json:"data"`
	EventID  string            `json:"event_id"`
	Rendered map[string]string `json:"rendered,omitempty"`
	// Display holds output values formatted for the request locale, the
	// same text the form flow puts into <output> elements.
	Display map[string]string `json:"display,omitempty"`
}

type errorBody struct {
	Error  string       `json:"error"`
	Errors *errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Fields map[string][]string `json:"fields"`
	Form   []string            `json:"form"`
}

func (s *Server) handleAPIEvent(w http.ResponseWriter, r *http.Request) {
	b, err := s.app.Binding(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown event"})
		return
	}

	var req eventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:  "invalid JSON body",
			Errors: newErrorDetail(nil, []string{err.Error()}),
		})
		return
	}

	results, err := b.Invoke(r.Context(), req.Data)
	if err != nil {
		if errors.Is(err, binding.ErrArity) {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Error:  "wrong number of values",
				Errors: newErrorDetail(nil, []string{err.Error()}),
			})
			return
		}
		fields, form := s.invocationErrors(r.Context(), s.app.Page(), b, err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  "event failed",
			Errors: newErrorDetail(fields, form),
		})
		return
	}

	resp := eventResponse{
		Data:    results,
		EventID: uuid.NewString(),
		Display: make(map[string]string, len(results)),
	}
	locale := s.locale(r)
	for i, field := range b.Outputs() {
		if field.Kind != model.FieldKindMarkdown {
			resp.Display[field.ID] = render.FormatValue(results[i], locale)
			continue
		}
		text, _ := results[i].(string)
		if resp.Rendered == nil {
			resp.Rendered = make(map[string]string)
		}
		resp.Rendered[field.ID] = vanilla.RenderMarkdown(text)
	}
	w.Header().Set(eventIDHeader, resp.EventID)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	page := s.app.Page()
	events := page.Events
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":  page.Title,
		"events": events,
	})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.spec.Raw())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page model.Page, opts render.RenderOptions) {
	opts.Theme = s.cfg.theme
	opts.Locale = s.locale(r)
	opts.EventPrefix = EventPrefix
	opts.APIPrefix = APIPrefix
	opts.AssetPrefix = AssetPrefix
	opts.PagePath = PagePath

	body, err := s.cfg.renderer.Render(r.Context(), page, opts)
	if err != nil {
		attrs := observability.AppendRequestID(r.Context(), []any{"error", err})
		s.logger.ErrorContext(r.Context(), "render page", attrs...)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.cfg.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) locale(r *http.Request) string {
	if s.cfg.locale != "" {
		return s.cfg.locale
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

// invocationErrors splits a failed invocation into field and form messages.
// Panics are reported to Sentry and replaced by a generic message.
func (s *Server) invocationErrors(ctx context.Context, page model.Page, b *binding.Binding, err error) (map[string][]string, []string) {
	attrs := observability.AppendRequestID(ctx, []any{"binding", b.ID(), "error", err})

	var panicErr *binding.PanicError
	if errors.As(err, &panicErr) {
		s.logger.ErrorContext(ctx, "binding panicked", attrs...)
		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		hub.CaptureException(err)
		return nil, []string{fmt.Sprintf("internal error while running %s", b.ID())}
	}

	s.logger.WarnContext(ctx, "binding rejected input", attrs...)

	var validationErr *binding.ValidationError
	if errors.As(err, &validationErr) {
		mapping := render.MapErrorPayload(page, validationErr.Payload, b.InputIDs()...)
		return mapping.Fields, mapping.Form
	}
	return binding.FieldErrors(err)
}

// submittedValues collects the posted value of every field on the page so
// the re-rendered form keeps what the user typed. Values that fail to parse
// are kept verbatim.
func submittedValues(page model.Page, r *http.Request) map[string]any {
	values := make(map[string]any)
	for _, field := range page.Fields() {
		raw, ok := lastFormValue(r, field.ID)
		if !ok {
			continue
		}
		if parsed, err := model.ParseValue(*field, raw); err == nil {
			values[field.ID] = parsed
			continue
		}
		values[field.ID] = raw
	}
	return values
}

// lastFormValue returns the last posted value for key. Checkboxes post a
// hidden "false" followed by "true" when ticked.
func lastFormValue(r *http.Request, key string) (string, bool) {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

func newErrorDetail(fields map[string][]string, form []string) *errorDetail {
	if fields == nil {
		fields = map[string][]string{}
	}
	if form == nil {
		form = []string{}
	}
	return &errorDetail{Fields: fields, Form: form}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
