package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/flute-go/reflection/internal/snapshot"
	"github.com/flute-go/reflection/runtime/metadata"
)

// Source supplies the schema served by the API. It is consulted on every
// request so a rewritten snapshot file is picked up without a restart.
type Source interface {
	Schema() (*metadata.Schema, error)
}

// FileSource reads a snapshot file written by snapshot.WriteFile.
type FileSource string

// Schema implements Source.
func (f FileSource) Schema() (*metadata.Schema, error) {
	return snapshot.ReadFile(string(f))
}

// RegistrySource serves a live registry.
type RegistrySource struct {
	Registry *metadata.Registry
}

// Schema implements Source.
func (s RegistrySource) Schema() (*metadata.Schema, error) {
	reg := s.Registry
	if reg == nil {
		reg = metadata.Default()
	}
	return reg.Snapshot(), nil
}

// TypeSummary is one row of GET /types.
type TypeSummary struct {
	Name    string `json:"name"`
	Short   string `json:"short"`
	Kind    string `json:"kind"`
	Class   int    `json:"class"`
	Members int    `json:"members"`
}

// TypeList is the body of GET /types.
type TypeList struct {
	ID        string        `json:"id"`
	Version   string        `json:"version"`
	Generated time.Time     `json:"generated"`
	Types     []TypeSummary `json:"types"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Matches []string `json:"matches,omitempty"`
}

type handler struct {
	source Source
	logger *zap.Logger
}

// NewHandler builds the API router. prefix may be empty or a path such as
// "/api"; routes are mounted beneath it.
func NewHandler(source Source, prefix string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{source: source, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	routes := func(r chi.Router) {
		r.Get("/healthz", h.health)
		r.Get("/types", h.listTypes)
		// Qualified type names contain slashes.
		r.Get("/types/*", h.getType)
	}

	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		routes(r)
	} else {
		r.Route(prefix, routes)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed", nil)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listTypes(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, Summarize(schema))
}

// Summarize builds the GET /types body from a schema.
func Summarize(schema *metadata.Schema) TypeList {
	list := TypeList{
		ID:        schema.ID,
		Version:   schema.Version,
		Generated: schema.Generated,
		Types:     make([]TypeSummary, 0, len(schema.Types)),
	}
	for _, t := range schema.Types {
		list.Types = append(list.Types, TypeSummary{
			Name:    t.Name,
			Short:   t.Short,
			Kind:    t.Kind,
			Class:   len(t.Class),
			Members: len(t.Members),
		})
	}
	return list
}

func (h *handler) getType(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "type name is required", nil)
		return
	}

	schema, ok := h.load(w, r)
	if !ok {
		return
	}

	t, err := schema.Lookup(name)
	switch {
	case errors.Is(err, metadata.ErrAmbiguousType):
		writeError(w, http.StatusConflict, "ambiguous_type", err.Error(), matches(schema, name))
		return
	case err != nil:
		writeError(w, http.StatusNotFound, "type_not_found", err.Error(), matches(schema, name))
		return
	}
	writeJSON(w, r, http.StatusOK, t)
}

func (h *handler) load(w http.ResponseWriter, r *http.Request) (*metadata.Schema, bool) {
	schema, err := h.source.Schema()
	if err != nil {
		h.logger.Error("failed to load snapshot",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, "snapshot_unavailable", err.Error(), nil)
		return nil, false
	}
	return schema, true
}

// matches lists types whose names contain name, for ambiguous or partial
// lookups.
func matches(schema *metadata.Schema, name string) []string {
	needle := strings.ToLower(name)
	var out []string
	for _, t := range schema.Types {
		if strings.Contains(strings.ToLower(t.Short), needle) {
			out = append(out, t.Name)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_server_error", err.Error(), nil)
		return
	}

	tag := etag(body)
	w.Header().Set("ETag", tag)
	if status == http.StatusOK && notModified(r, tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, message string, matches []string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message, Matches: matches})
}
