package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
	"git.home.luguber.info/inful/pagebuilder/internal/page"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
	"git.home.luguber.info/inful/pagebuilder/internal/server/handlers"
	"git.home.luguber.info/inful/pagebuilder/internal/server/middleware"
	"git.home.luguber.info/inful/pagebuilder/internal/server/responses"
)

type stubStore struct {
	results map[query.Kind]string
}

func (s *stubStore) Execute(_ context.Context, q query.Query, _ bool) (json.RawMessage, error) {
	if res, ok := s.results[q.Kind]; ok {
		return json.RawMessage(res), nil
	}
	return json.RawMessage("null"), nil
}

const homeDoc = `{
  "_id": "home",
  "_type": "homePage",
  "title": "Home",
  "sections": [{"_type": "sectionHeader", "_key": "hero", "displayTitle": "Hello"}]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := &stubStore{results: map[query.Kind]string{
		query.KindPage:     homeDoc,
		query.KindAllPages: `[{"_id":"home","_type":"homePage","slug":"home","_updatedAt":"2024-05-01T10:00:00Z"}]`,
		query.KindAllPosts: `[]`,
	}}
	reg := prom.NewRegistry()
	a := page.NewAssembler(store, page.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	cfg := &config.Config{Site: config.SiteConfig{BaseURL: "https://example.com/"}}
	return New(cfg, a, "snapshot", reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPageEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/homepage", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "homepage,homePage,post,category", rec.Header().Get(handlers.CacheTagHeader))
	_, err := uuid.Parse(rec.Header().Get(middleware.RequestIDHeader))
	assert.NoError(t, err)

	var body struct {
		ID    string `json:"id"`
		Items []struct {
			Key       string `json:"key"`
			Component string `json:"component"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "home", body.ID)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "hero", body.Items[0].Key)
	assert.Equal(t, "HeaderSection", body.Items[0].Component)
}

func TestSitemapEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/</loc>")
	assert.Contains(t, rec.Body.String(), "<lastmod>2024-05-01</lastmod>")
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health responses.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "snapshot", health.Source)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/pages/homePage", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pagebuilder_page_results_total")
	assert.Contains(t, rec.Body.String(), "pagebuilder_sections_rendered_total")
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	srv := newTestServer(t)
	srv.cfg.Addr = addr
	srv.cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
