package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store/memstore"
)

func newTestServer(t *testing.T) (*Server, *memstore.Store) {
	t.Helper()
	s := memstore.New()
	srv := NewServer(s, zap.NewNop())
	return srv, s
}

func TestHandleSearchReturnsEnvelope(t *testing.T) {
	srv, s := newTestServer(t)
	s.Seed("records", store.Document{"title": "Radiation Physics"})

	req := httptest.NewRequest(http.MethodGet, "/records?title=Radiation%20Physics", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["ResultCount"])
}

func TestHandleSearchBadPageReturns400(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/records?page=invalid", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSearchNulByteReturns400WithNoStoreCall(t *testing.T) {
	srv, s := newTestServer(t)
	s.Seed("records", store.Document{"title": "x"})

	req := httptest.NewRequest(http.MethodGet, "/records?title=test%00malicious", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "title")
}

func TestHandleGetMissingReturns404(t *testing.T) {
	srv, s := newTestServer(t)
	s.Seed("records", store.Document{"ediid": "E1"})

	req := httptest.NewRequest(http.MethodGet, "/records/does-not-exist", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetFound(t *testing.T) {
	srv, s := newTestServer(t)
	s.Seed("records", store.Document{"ediid": "E1"})

	req := httptest.NewRequest(http.MethodGet, "/records/E1", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOpenAPIEndpointServesDocument(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
}
