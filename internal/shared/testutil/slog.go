package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// LogRecord represents a captured log record for testing
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type logStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// CaptureHandler records every log entry, including attributes added with
// Logger.With, so tests can assert on them
type CaptureHandler struct {
	store *logStore
	attrs []slog.Attr
}

// NewTestLogger returns a logger whose output is captured by the handler
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	t.Helper()
	h := &CaptureHandler{store: &logStore{}}
	return slog.New(h), h
}

// Enabled implements slog.Handler
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

// WithAttrs implements slog.Handler
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &CaptureHandler{store: h.store, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of all captured records
func (h *CaptureHandler) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]LogRecord(nil), h.store.records...)
}

// Find returns the records at level whose message contains msg
func (h *CaptureHandler) Find(level slog.Level, msg string) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, msg) {
			out = append(out, r)
		}
	}
	return out
}

// AssertLogged checks that a record at level containing msg was captured and
// that it carries every key/value pair in attrs
func AssertLogged(t *testing.T, h *CaptureHandler, level slog.Level, msg string, attrs map[string]any) bool {
	t.Helper()

	for _, r := range h.Find(level, msg) {
		matched := true
		for k, v := range attrs {
			if r.Attrs[k] != v {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return assert.Fail(t, "log record not found",
		"level=%s msg=%q attrs=%v\ncaptured: %v", level, msg, attrs, h.Records())
}

// AssertNoErrors checks that no error-level logs were recorded
func AssertNoErrors(t *testing.T, h *CaptureHandler) bool {
	t.Helper()
	var errs []LogRecord
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			errs = append(errs, r)
		}
	}
	return assert.Empty(t, errs, "unexpected error logs")
}
