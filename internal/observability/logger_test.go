package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(NewLogger(Config{Level: "debug", Format: "json", Output: &buf}), "server")
	logger.Debug("hello", "binding", "greet")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["component"] != "server" || entry["binding"] != "greet" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn", Output: &buf})
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if RequestIDFromContext(ctx) != "abc" {
		t.Fatalf("request id not stored")
	}
	if WithRequestID(ctx, "") != ctx {
		t.Fatalf("empty id should keep the context")
	}
	attrs := AppendRequestID(ctx, []any{"k", "v"})
	if len(attrs) != 4 || attrs[3] != "abc" {
		t.Fatalf("unexpected attrs %v", attrs)
	}
}

func TestInitSentry_Disabled(t *testing.T) {
	flush := InitSentry(SentryConfig{}, Discard())
	flush()
}
