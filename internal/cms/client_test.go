package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*config.CMSConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.CMSConfig{
		ProjectID:  "abc123",
		Dataset:    "production",
		APIVersion: "2024-01-01",
		APIHost:    srv.URL,
		UseCDN:     true,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := NewClient(cfg, srv.Client())
	require.NoError(t, err)
	return c
}

func TestClientExecutePublished(t *testing.T) {
	q, err := query.BuildPageQuery(query.AboutPage)
	require.NoError(t, err)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, q.Text, r.URL.Query().Get("query"))
		assert.Equal(t, `"aboutPage"`, r.URL.Query().Get("$type"))
		assert.Equal(t, "published", r.URL.Query().Get("perspective"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ms": 3, "query": "...", "result": {"_id": "about", "_type": "aboutPage"}}`))
	}, nil)

	raw, err := c.Execute(context.Background(), q, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id": "about", "_type": "aboutPage"}`, string(raw))
}

func TestClientExecuteDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "drafts", r.URL.Query().Get("perspective"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"result": null}`))
	}, func(cfg *config.CMSConfig) {
		cfg.Token = "secret"
		cfg.AllowDrafts = true
	})

	raw, err := c.Execute(context.Background(), query.BuildAllPostsQuery(), true)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestClientRejectsDraftsWhenDisabled(t *testing.T) {
	called := false
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) { called = true }, nil)

	_, err := c.Execute(context.Background(), query.BuildAllPostsQuery(), true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.False(t, called)
}

func TestClientHTTPErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantMsg   string
		wantRetry bool
	}{
		{name: "bad query", status: http.StatusBadRequest, body: `{"error": {"description": "expected '}'", "type": "queryParseError"}}`, wantMsg: "expected '}'"},
		{name: "server error", status: http.StatusBadGateway, body: `upstream down`, wantMsg: "HTTP 502", wantRetry: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			_, err := c.Execute(context.Background(), query.BuildAllPostsQuery(), false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, ferrors.CategoryStore, ce.Category())
			assert.Equal(t, tt.wantRetry, ce.CanRetry())
		})
	}
}

func TestClientMissingResultIsNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ms": 1}`))
	}, nil)
	raw, err := c.Execute(context.Background(), query.BuildAllPostsQuery(), false)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(config.CMSConfig{ProjectID: "p"}, nil)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = NewClient(config.CMSConfig{Dataset: "production"}, nil)
	require.Error(t, err)

	_, err = NewClient(config.CMSConfig{Dataset: "production", APIHost: "ftp://example.com"}, nil)
	require.Error(t, err)
}

func TestQueryURLUsesCDNOnlyForPublished(t *testing.T) {
	c, err := NewClient(config.CMSConfig{ProjectID: "abc123", Dataset: "production", APIVersion: "v2024-01-01", UseCDN: true}, nil)
	require.NoError(t, err)

	published, err := c.queryURL(query.BuildAllPostsQuery(), false)
	require.NoError(t, err)
	assert.Contains(t, published, "https://abc123.apicdn.sanity.io/v2024-01-01/data/query/production?")

	draft, err := c.queryURL(query.BuildAllPostsQuery(), true)
	require.NoError(t, err)
	assert.Contains(t, draft, "https://abc123.api.sanity.io/v2024-01-01/data/query/production?")
}

func TestNewClientWithAPIHostOnly(t *testing.T) {
	c, err := NewClient(config.CMSConfig{Dataset: "production", APIVersion: "v2024-01-01", APIHost: "https://cms.internal.test"}, nil)
	require.NoError(t, err)

	u, err := c.queryURL(query.BuildAllPostsQuery(), false)
	require.NoError(t, err)
	assert.Contains(t, u, "https://cms.internal.test/v2024-01-01/data/query/production?")
}
