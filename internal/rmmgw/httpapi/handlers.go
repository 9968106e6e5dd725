// Package httpapi is the Resource Router (spec.md §2): a thin adapter
// that picks the target collection and forwards to the Envelope
// Executor, contributing no pipeline logic of its own.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/usnistgov/rmm-go/internal/rmmgw/envelope"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/jsoncodec"
	"github.com/usnistgov/rmm-go/internal/rmmgw/params"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

// Collections is the fixed set of resource collections a search
// gateway exposes (spec.md §6).
var Collections = []string{
	"records", "fields", "apis", "releasesets",
	"taxonomy", "versions", "code", "patents", "papers",
}

// Server wires a CollectionStore and logger into chi handlers.
type Server struct {
	Store  store.CollectionStore
	Logger *zap.Logger
}

// NewServer builds a Server for s, logging through logger.
func NewServer(s store.CollectionStore, logger *zap.Logger) *Server {
	return &Server{Store: s, Logger: logger}
}

// Router builds the full chi.Router: one search+get pair per
// collection in Collections, the usagemetrics surface, and
// /openapi.json.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(withRequestID(s.Logger))

	for _, collection := range Collections {
		collection := collection
		r.Get("/"+collection, s.handleSearch(collection))
		r.Get("/"+collection+"/", s.handleSearch(collection))
		r.Get("/"+collection+"/*", s.handleGet(collection))
	}

	s.mountUsageMetrics(r)

	r.Get("/openapi.json", s.handleOpenAPI)

	return r
}

// handleSearch runs the full pipeline (Validator → Classifier →
// Encoder → Composer → Plan Builder → Executor) for a collection
// search.
func (s *Server) handleSearch(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := params.FromRawQuery(r.URL.RawQuery)

		validated, err := params.Validate(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		classified := params.Classify(validated)
		node := filter.Compose(classified)

		plan, err := queryplan.Build(classified.Control, node)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		env, err := envelope.Execute(r.Context(), s.Store, collection, plan)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusOK, env)
	}
}

// handleGet runs the single-document lookup specialization
// (spec.md §4.6).
func (s *Server) handleGet(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "*")
		env, err := envelope.LookupOne(r.Context(), s.Store, collection, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, env)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := jsoncodec.Marshal(v)
	if err != nil {
		s.Logger.Error("failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	info := errorInfoFor(r.URL.Path, err)
	s.Logger.Warn("request failed",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", info.HTTPStatus),
		zap.String("message", info.Message),
	)
	s.writeJSON(w, info.HTTPStatus, info)
}
