package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetupDevMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	Setup(&buf, true)

	slog.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("test debug")) {
		t.Error("expected debug message visible in dev mode")
	}
	if !bytes.Contains([]byte(output), []byte("test info")) {
		t.Error("expected info message visible in dev mode")
	}
}

func TestSetupProdMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	Setup(&buf, false)

	slog.Debug("hidden debug")
	slog.Info("prod test")

	if bytes.Contains(buf.Bytes(), []byte("hidden debug")) {
		t.Error("expected debug message suppressed in prod mode")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"prod test"`)) {
		t.Errorf("expected JSON info line, got %q", buf.String())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequestLogger(inner)

	req := httptest.NewRequest("GET", "/api/properties", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	output := buf.String()
	if output == "" {
		t.Fatal("expected log output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("GET")) {
		t.Error("expected method in log")
	}
	if !bytes.Contains(buf.Bytes(), []byte("/api/properties")) {
		t.Error("expected path in log")
	}
}

func TestRequestLoggerSkipsMetrics(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequestLogger(inner)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if buf.Len() > 0 {
		t.Error("expected no log for /metrics path")
	}
}

func TestRequestLoggerSkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequestLogger(inner)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if buf.Len() > 0 {
		t.Error("expected no log for /health path")
	}
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := RequestLogger(inner)

	req := httptest.NewRequest("GET", "/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !bytes.Contains(buf.Bytes(), []byte("404")) {
		t.Error("expected 404 status in log")
	}
}

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"generates id", ""},
		{"keeps incoming id", "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestID(r.Context())
			})

			req := httptest.NewRequest("GET", "/api/tenants", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			WithRequestID(inner).ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("expected request id in context")
			}
			if tt.incoming != "" && seen != tt.incoming {
				t.Errorf("request id = %q, want %q", seen, tt.incoming)
			}
			if got := rec.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("response header = %q, want %q", got, seen)
			}
		})
	}
}

func TestRequestLoggerIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	handler := WithRequestID(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest("GET", "/api/leases", nil)
	req.Header.Set(RequestIDHeader, "abc-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !bytes.Contains(buf.Bytes(), []byte("request_id=abc-42")) {
		t.Errorf("expected request id in log, got %q", buf.String())
	}
}
