package httpapi

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/usnistgov/rmm-go/internal/rmmgw/envelope"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/metrics"
	"github.com/usnistgov/rmm-go/internal/rmmgw/params"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
)

// mountUsageMetrics wires the /usagemetrics/* surface (spec.md §6). Each
// route runs the same Validator → Classifier → Composer → Plan Builder →
// Executor pipeline as a resource collection, then reshapes the generic
// ResultEnvelope into the named DataSetMetrics/FilesMetrics/RepoMetrics
// envelope original_source's metrics_base.py returns.
func (s *Server) mountUsageMetrics(r chi.Router) {
	r.Get("/usagemetrics/records/{id}", s.handleDataSetMetricsLookup)
	r.Get("/usagemetrics/records", s.handleDataSetMetricsSearch)
	r.Get("/usagemetrics/files/*", s.handleFilesMetricsLookup)
	r.Get("/usagemetrics/files", s.handleFilesMetricsSearch)
	r.Get("/usagemetrics/repo", s.handleRepoMetricsSearch)
	r.Get("/usagemetrics/totalusers", s.handleTotalUsers)
}

func (s *Server) handleDataSetMetricsSearch(w http.ResponseWriter, r *http.Request) {
	env, err := s.runMetricsSearch(r, metrics.RecordSummaryCollection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.NewDataSetMetricsEnvelope(env))
}

// handleDataSetMetricsLookup mirrors MetricsCRUD.get_record_metrics:
// pdrid/ediid/@id exact match, plus (when the id lacks an "ark:" prefix)
// a suffix-regex match against all three fields.
func (s *Server) handleDataSetMetricsLookup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	node := recordIdentifierFilter(id, "pdrid", "ediid", "@id")
	env, err := s.executeMetricsLookup(r, metrics.RecordSummaryCollection, node, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.NewDataSetMetricsEnvelope(env))
}

func (s *Server) handleFilesMetricsSearch(w http.ResponseWriter, r *http.Request) {
	env, err := s.runMetricsSearch(r, metrics.FileSummaryCollection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.NewFilesMetricsEnvelope(env))
}

// handleFilesMetricsLookup mirrors MetricsCRUD.get_file_metrics: first
// try an exact filepath match; if that misses and the path segment
// doesn't look like a real filepath (no "/" or "."), treat it as a
// record identifier and return every file under that record instead.
func (s *Server) handleFilesMetricsLookup(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	exact := filter.Leaf{Field: "filepath", Match: filter.Equals{Value: path}}
	env, err := s.executeMetricsLookup(r, metrics.FileSummaryCollection, exact, "path")
	if err == nil {
		s.writeJSON(w, http.StatusOK, metrics.NewFilesMetricsEnvelope(env))
		return
	}
	if strings.ContainsAny(path, "/.") {
		s.writeError(w, r, err)
		return
	}

	node := recordIdentifierFilter(path, "ediid", "pdrid")
	env, err = s.executeMetricsLookup(r, metrics.FileSummaryCollection, node, "path")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.NewFilesMetricsEnvelope(env))
}

func (s *Server) handleRepoMetricsSearch(w http.ResponseWriter, r *http.Request) {
	env, err := s.runMetricsSearch(r, metrics.RepoSummaryCollection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.NewRepoMetricsEnvelope(env))
}

func (s *Server) handleTotalUsers(w http.ResponseWriter, r *http.Request) {
	env, err := s.runMetricsSearch(r, metrics.UniqueUsersCollection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.NewTotalUsersEnvelope(env))
}

// runMetricsSearch runs the full param pipeline for a metrics list route.
func (s *Server) runMetricsSearch(r *http.Request, collection string) (envelope.ResultEnvelope, error) {
	raw := params.FromRawQuery(r.URL.RawQuery)
	validated, err := params.Validate(raw)
	if err != nil {
		return envelope.ResultEnvelope{}, err
	}
	classified := params.Classify(validated)
	node := filter.Compose(classified)
	plan, err := queryplan.Build(classified.Control, node)
	if err != nil {
		return envelope.ResultEnvelope{}, err
	}
	return envelope.Execute(r.Context(), s.Store, collection, plan)
}

// executeMetricsLookup runs a single-filter lookup and maps a zero-match
// result to ResourceNotFound, like the resource handleGet specialization.
func (s *Server) executeMetricsLookup(r *http.Request, collection string, node filter.Node, param string) (envelope.ResultEnvelope, error) {
	plan := queryplan.Plan{Filter: node}
	env, err := envelope.Execute(r.Context(), s.Store, collection, plan)
	if err != nil {
		return envelope.ResultEnvelope{}, err
	}
	if env.ResultCount == 0 {
		return envelope.ResultEnvelope{}, notFound(param)
	}
	return env, nil
}

// recordIdentifierFilter builds the Or(field==id, ...suffix-regex...)
// filter MetricsCRUD's record-identifier lookups use across fields:
// exact match on every field always, plus a suffix-regex match on every
// field when id doesn't already start with "ark:".
func recordIdentifierFilter(id string, fields ...string) filter.Node {
	var children []filter.Node
	for _, f := range fields {
		children = append(children, filter.Leaf{Field: f, Match: filter.Equals{Value: id}})
	}
	if !strings.HasPrefix(id, "ark:") {
		for _, f := range fields {
			children = append(children, filter.Leaf{Field: f, Match: filter.Regex{Pattern: suffixPattern(id)}})
		}
	}
	return filter.NewOr(children)
}

// suffixPattern anchors a regex so it matches any stored value ending in
// value, the MDS-suffix fallback MetricsCRUD's lookups use throughout.
func suffixPattern(value string) string {
	return regexp.QuoteMeta(value) + "$"
}
