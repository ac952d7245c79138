package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/model"
)

// newTestLogger creates a logger that writes JSON to a buffer for assertion.
func newTestLogger(buf *bytes.Buffer) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(buf), zapcore.DebugLevel)
	return zap.New(core)
}

func TestNewLogger_defaultLevel(t *testing.T) {
	cfg := config.ObservabilityConfig{LogLevel: "info"}
	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should be enabled")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should NOT be enabled at info level")
	}
}

func TestNewLogger_debugLevel(t *testing.T) {
	cfg := config.ObservabilityConfig{LogLevel: "debug"}
	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}
}

func TestNewLogger_invalidLevel_defaultsToInfo(t *testing.T) {
	cfg := config.ObservabilityConfig{LogLevel: "bogus"}
	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("should default to info level")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should NOT be enabled with invalid level (defaults to info)")
	}
}

func TestWithLogger_and_LoggerFrom(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithLogger(context.Background(), logger)

	got := LoggerFrom(ctx, nil)
	if got != logger {
		t.Error("LoggerFrom should return the stored logger")
	}
}

func TestLoggerFrom_fallback(t *testing.T) {
	fallback := zap.NewNop()
	got := LoggerFrom(context.Background(), fallback)
	if got != fallback {
		t.Error("LoggerFrom should return fallback when no logger in context")
	}
}

func TestRequestLogger_enrichesWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	rctx := &model.RequestContext{
		TenantID:      "tenant-1",
		SubjectID:     "user-42",
		CorrelationID: "corr-7",
		TraceID:       "0123456789abcdef0123456789abcdef",
	}
	ctx := model.WithRequestContext(context.Background(), rctx)
	ctx = WithLogger(ctx, logger)

	RequestLogger(ctx, nil).Info("check-in recorded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}

	if entry["tenant_id"] != "tenant-1" {
		t.Errorf("tenant_id = %v, want tenant-1", entry["tenant_id"])
	}
	if entry["subject_id"] != "user-42" {
		t.Errorf("subject_id = %v, want user-42", entry["subject_id"])
	}
	if entry["correlation_id"] != "corr-7" {
		t.Errorf("correlation_id = %v, want corr-7", entry["correlation_id"])
	}
	if entry["trace_id"] != "0123456789abcdef0123456789abcdef" {
		t.Errorf("trace_id = %v", entry["trace_id"])
	}
}

func TestRequestLogger_noTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	rctx := &model.RequestContext{
		TenantID:  "tenant-1",
		SubjectID: "user-42",
	}
	ctx := model.WithRequestContext(context.Background(), rctx)
	ctx = WithLogger(ctx, logger)

	RequestLogger(ctx, nil).Info("msg")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if _, ok := entry["trace_id"]; ok {
		t.Error("trace_id should be omitted when empty")
	}
}

func TestRequestLogger_noRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	RequestLogger(WithLogger(context.Background(), logger), nil).Info("msg")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if _, ok := entry["tenant_id"]; ok {
		t.Error("tenant_id should not be set without a request context")
	}
}

func TestRedactBody_defaultFields(t *testing.T) {
	body := map[string]any{
		"title":    "Ship onboarding revamp",
		"password": "hunter2",
		"token":    "abc",
	}
	got := RedactBody(body, nil)

	if got["title"] != "Ship onboarding revamp" {
		t.Errorf("title = %v, should be untouched", got["title"])
	}
	if got["password"] != "[REDACTED]" {
		t.Errorf("password = %v, want [REDACTED]", got["password"])
	}
	if got["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", got["token"])
	}
}

func TestRedactBody_customFields(t *testing.T) {
	body := map[string]any{
		"owner_email": "a@example.com",
		"comment":     "on track",
	}
	got := RedactBody(body, []string{"owner_email"})

	if got["owner_email"] != "[REDACTED]" {
		t.Errorf("owner_email = %v, want [REDACTED]", got["owner_email"])
	}
	if got["comment"] != "on track" {
		t.Errorf("comment = %v, should be untouched", got["comment"])
	}
}

func TestRedactBody_nested(t *testing.T) {
	body := map[string]any{
		"outer": map[string]any{
			"secret": "s3cret",
			"value":  "42",
		},
	}
	got := RedactBody(body, nil)

	nested, ok := got["outer"].(map[string]any)
	if !ok {
		t.Fatal("nested map lost during redaction")
	}
	if nested["secret"] != "[REDACTED]" {
		t.Errorf("nested secret = %v, want [REDACTED]", nested["secret"])
	}
	if nested["value"] != "42" {
		t.Errorf("nested value = %v, should be untouched", nested["value"])
	}
}

func TestRedactBody_nil(t *testing.T) {
	if got := RedactBody(nil, nil); got != nil {
		t.Errorf("RedactBody(nil) = %v, want nil", got)
	}
}

func TestRedactBody_doesNotMutateOriginal(t *testing.T) {
	body := map[string]any{"password": "hunter2"}
	RedactBody(body, nil)

	if body["password"] != "hunter2" {
		t.Error("RedactBody should not mutate the input map")
	}
}
