package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// withRequestID mimics the request ID middleware by storing id under chi's key.
func withRequestID(id string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestAccessLoggerUsesRequestLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	access := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/tea", nil)
	req = req.WithContext(contextWithLogger(req.Context(), logger))
	access.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "request completed" {
		t.Fatalf("unexpected log message: %s", entries[0].Message)
	}
	fields := fieldMap(entries[0])
	if f := fields["status"]; f.Integer != http.StatusTeapot {
		t.Fatalf("expected status 418, got %+v", f)
	}
	if f := fields["path"]; f.String != "/tea" {
		t.Fatalf("expected path /tea, got %+v", f)
	}
	if f := fields["bytes"]; f.Integer != int64(len("short and stout")) {
		t.Fatalf("expected bytes to match body, got %+v", f)
	}
	if _, ok := fields["duration"]; !ok {
		t.Fatal("expected duration field")
	}
}

func TestRequestLoggerFallsBackToRequestID(t *testing.T) {
	var traceID *string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", sampledHeader)
	withRequestID("req-42", RequestLogger("")(inner)).ServeHTTP(httptest.NewRecorder(), req)

	if traceID == nil || *traceID != "req-42" {
		t.Fatalf("expected request ID as trace ID without a project, got %v", traceID)
	}
}

func TestRequestLoggerUsesTraceResource(t *testing.T) {
	var traceID *string
	var logger *zap.Logger
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
		logger = LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", sampledHeader)
	withRequestID("req-42", RequestLogger("mama-ai")(inner)).ServeHTTP(httptest.NewRecorder(), req)

	if traceID == nil || *traceID != wantResource {
		t.Fatalf("expected trace resource, got %v", traceID)
	}
	if logger == nil || logger == Logger() {
		t.Fatal("expected a request-scoped logger in context")
	}
}

func TestRequestLoggerWithoutIdentifiers(t *testing.T) {
	var traceID *string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	})

	RequestLogger("")(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if traceID != nil {
		t.Fatalf("expected no trace ID, got %q", *traceID)
	}
}
