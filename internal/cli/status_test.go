package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusConnected(t *testing.T) {
	testAPI(t)

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "✓ connected") {
		t.Errorf("status output:\n%s", out)
	}
}

func TestStatusJSON(t *testing.T) {
	testAPI(t)

	var s struct {
		Server  string `json:"server"`
		Healthy bool   `json:"healthy"`
	}
	runJSON(t, &s, "status")
	if !s.Healthy || !strings.HasSuffix(s.Server, "/api") {
		t.Errorf("status = %+v", s)
	}
}

func TestStatusUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("RD_SERVER_URL", srv.URL+"/api")

	// An unhealthy server is reported, not returned as an error.
	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "unhealthy (503)") {
		t.Errorf("status output:\n%s", out)
	}
}

func TestStatusUnreachable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand("status", "--server", "http://127.0.0.1:1/api")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "cannot reach server") {
		t.Errorf("status output:\n%s", out)
	}
}
