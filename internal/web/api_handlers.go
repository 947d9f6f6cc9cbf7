package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evcraddock/rentdesk/internal/logging"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/store"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// storeError maps a store error onto an API error response.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUnknownResource):
		apiError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidQuery), errors.Is(err, store.ErrInvalidBody):
		apiError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("store failure", "error", err, "request_id", logging.RequestID(r.Context()))
		apiError(w, "internal error", http.StatusInternalServerError)
	}
}

// readBody reads a JSON request body up to maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		apiError(w, "reading request body", http.StatusBadRequest)
		return nil, false
	}
	if !json.Valid(data) {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

// routeParams extracts the resource name and, when present, the id.
func routeParams(r *http.Request) (resource.Name, int64) {
	vars := mux.Vars(r)
	id, _ := strconv.ParseInt(vars["id"], 10, 64)
	return resource.Name(vars["resource"]), id
}

// apiList returns the records of a resource matching the query string.
func (s *Server) apiList(w http.ResponseWriter, r *http.Request) {
	name, _ := routeParams(r)

	q, err := resource.ParseQuery(r.URL.Query())
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := s.store.List(r.Context(), name, q)
	if err != nil {
		storeError(w, r, err)
		return
	}
	apiJSON(w, recs, http.StatusOK)
}

// apiCreate stores a new record.
func (s *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	name, _ := routeParams(r)
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Insert(r.Context(), name, body)
	if err != nil {
		storeError(w, r, err)
		return
	}
	apiJSON(w, rec, http.StatusCreated)
}

// apiGet returns one record.
func (s *Server) apiGet(w http.ResponseWriter, r *http.Request) {
	name, id := routeParams(r)

	rec, err := s.store.Get(r.Context(), name, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	apiJSON(w, rec, http.StatusOK)
}

// apiPatch merges the body into one record.
func (s *Server) apiPatch(w http.ResponseWriter, r *http.Request) {
	name, id := routeParams(r)
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Patch(r.Context(), name, id, body)
	if err != nil {
		storeError(w, r, err)
		return
	}
	apiJSON(w, rec, http.StatusOK)
}

// apiDelete removes one record.
func (s *Server) apiDelete(w http.ResponseWriter, r *http.Request) {
	name, id := routeParams(r)

	if err := s.store.Delete(r.Context(), name, id); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// apiGetSettings returns the settings singleton.
func (s *Server) apiGetSettings(w http.ResponseWriter, r *http.Request) {
	if _, id := routeParams(r); id > 1 {
		apiError(w, "settings not found", http.StatusNotFound)
		return
	}

	rec, err := s.store.Settings(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	apiJSON(w, rec, http.StatusOK)
}

// apiPatchSettings merges the body into the settings singleton.
func (s *Server) apiPatchSettings(w http.ResponseWriter, r *http.Request) {
	if _, id := routeParams(r); id > 1 {
		apiError(w, "settings not found", http.StatusNotFound)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rec, err := s.store.PatchSettings(r.Context(), body)
	if err != nil {
		storeError(w, r, err)
		return
	}
	apiJSON(w, rec, http.StatusOK)
}

// apiBatch applies a list of writes atomically. A missing record fails the
// whole batch with 409 so clients can tell it apart from a missing
// endpoint.
func (s *Server) apiBatch(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req struct {
		Ops []resource.Op `json:"ops"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		apiError(w, "invalid batch body", http.StatusBadRequest)
		return
	}

	err := s.store.Batch(r.Context(), req.Ops)
	switch {
	case err == nil:
		apiJSON(w, map[string]int{"applied": len(req.Ops)}, http.StatusOK)
	case errors.Is(err, store.ErrNotFound):
		apiError(w, err.Error(), http.StatusConflict)
	default:
		storeError(w, r, err)
	}
}
