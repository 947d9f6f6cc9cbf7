package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/rentdesk/internal/resource"
)

type testTenant struct {
	resource.Base
	Name string `json:"name"`
}

var tenants = resource.NewHandle[testTenant](resource.Tenants)

type testSettings struct {
	ID       int64  `json:"id,omitempty"`
	Currency string `json:"currency"`
}

var settingsHandle = resource.NewHandle[testSettings](resource.Settings)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tenants" {
			t.Errorf("path = %q, want /api/tenants", r.URL.Path)
		}
		if got := r.URL.Query().Get("propertyId"); got != "3" {
			t.Errorf("propertyId = %q, want 3", got)
		}
		if got := r.URL.Query().Get("_sort"); got != "name" {
			t.Errorf("_sort = %q, want name", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]testTenant{{Base: resource.Base{ID: 1}, Name: "Amina"}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	q := resource.Query{}.Where("propertyId", 3).SortBy("name", resource.Asc)
	items, err := List(context.Background(), c, tenants, q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Name != "Amina" || items[0].ID != 1 {
		t.Errorf("item = %+v", items[0])
	}
}

func TestListEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	items, err := List(context.Background(), New(srv.URL), tenants, resource.Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty slice", items)
	}
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := got["id"]; ok {
			t.Error("create body should not carry an id")
		}
		if got["archived"] != false {
			t.Errorf("archived = %v, want false", got["archived"])
		}
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"id":12,"name":"Brian","archived":false}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	created, err := Create(context.Background(), New(srv.URL), tenants, testTenant{Name: "Brian"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("id = %d, want 12", created.ID)
	}
}

func TestUpdateSendsPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/tenants/4" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if _, err := w.Write([]byte(`{"id":4,"name":"Carol","archived":true}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	got, err := Update(context.Background(), New(srv.URL), tenants, 4, map[string]bool{"archived": true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Archived {
		t.Error("expected archived record")
	}
}

func TestRemoveNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL).Remove(context.Background(), resource.Tenants, 9); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody string
	}{
		{"body text", http.StatusBadRequest, "bad input", "bad input"},
		{"empty body uses status text", http.StatusNotFound, "", "Not Found"},
		{"json error", http.StatusConflict, `{"error":"taken"}`, `{"error":"taken"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Fatalf("write: %v", err)
				}
			}))
			defer srv.Close()

			_, err := Get(context.Background(), New(srv.URL), tenants, 1)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", apiErr.Body, tt.wantBody)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{StatusCode: 404}) {
		t.Error("expected 404 to be not found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("plain error is not a not-found")
	}
}

func TestGetSingletonFallback(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/settings/1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if _, err := w.Write([]byte(`{"currency":"KES"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	got, err := GetSingleton(context.Background(), New(srv.URL), settingsHandle)
	if err != nil {
		t.Fatalf("get singleton: %v", err)
	}
	if got.Currency != "KES" {
		t.Errorf("currency = %q, want KES", got.Currency)
	}
	if len(paths) != 2 || paths[0] != "/settings/1" || paths[1] != "/settings" {
		t.Errorf("paths = %v", paths)
	}
}

func TestGetSingletonDirect(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if _, err := w.Write([]byte(`{"id":1,"currency":"USD"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	got, err := GetSingleton(context.Background(), New(srv.URL), settingsHandle)
	if err != nil {
		t.Fatalf("get singleton: %v", err)
	}
	if got.Currency != "USD" || calls != 1 {
		t.Errorf("currency = %q, calls = %d", got.Currency, calls)
	}
}

func TestBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_batch" {
			t.Errorf("path = %q, want /_batch", r.URL.Path)
		}
		var body struct {
			Ops []resource.Op `json:"ops"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Ops) != 2 || body.Ops[0].Resource != resource.Leases {
			t.Errorf("ops = %+v", body.Ops)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ops := []resource.Op{resource.Delete(resource.Leases, 1), resource.Delete(resource.Tenants, 2)}
	if err := New(srv.URL).Batch(context.Background(), ops); err != nil {
		t.Fatalf("batch: %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := List(ctx, New(srv.URL), tenants, resource.Query{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
