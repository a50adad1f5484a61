package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/page"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
	"git.home.luguber.info/inful/pagebuilder/internal/server/responses"
)

type fakeAssembler struct {
	pageErr error
	opts    []page.Options
}

func (f *fakeAssembler) AssemblePage(_ context.Context, t query.DocumentType, opts page.Options) (*page.Page, error) {
	f.opts = append(f.opts, opts)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return &page.Page{ID: "doc", Type: string(t), Tags: []string{"homepage", "homePage"}}, nil
}

func (f *fakeAssembler) AssemblePost(_ context.Context, slug string, _ page.Options) (*page.PostPage, error) {
	return nil, &content.PageNotFoundError{Type: "post", Slug: slug}
}

func (f *fakeAssembler) ListPages(context.Context, page.Options) ([]page.SitemapEntry, error) {
	return []page.SitemapEntry{{Path: "/", Type: "homePage"}, {Path: "/blog/hello", Type: "post", LastMod: "2024-03-01"}}, nil
}

func newMux(a Assembler, allowDrafts bool) *http.ServeMux {
	h := NewPageHandlers(a, "https://example.com", allowDrafts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pages/{type}", h.HandlePage)
	mux.HandleFunc("GET /api/posts/{slug}", h.HandlePost)
	mux.HandleFunc("GET /api/pages", h.HandleListPages)
	mux.HandleFunc("GET /sitemap.xml", h.HandleSitemap)
	return mux
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandlePage(t *testing.T) {
	a := &fakeAssembler{}
	rec := serve(newMux(a, false), "/api/pages/HOMEPAGE?pretty=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "homepage,homePage", rec.Header().Get(CacheTagHeader))
	assert.Empty(t, rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "\n  \"id\": \"doc\"")
	assert.Equal(t, []page.Options{{Draft: false}}, a.opts)
}

func TestHandlePageErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   ferrors.ErrorCategory
	}{
		{"unknown type", "/api/pages/landingPage", nil, http.StatusBadRequest, ferrors.CategoryValidation},
		{"draft disabled", "/api/pages/homePage?draft=1", nil, http.StatusBadRequest, ferrors.CategoryValidation},
		{"bad draft value", "/api/pages/homePage?draft=maybe", nil, http.StatusBadRequest, ferrors.CategoryValidation},
		{"not found", "/api/pages/homePage", &content.PageNotFoundError{Type: "homePage"}, http.StatusNotFound, ferrors.CategoryNotFound},
		{"transform mismatch", "/api/pages/homePage", &content.InvalidSectionDataError{Expected: content.TagFAQ, Actual: content.TagCards}, http.StatusInternalServerError, ferrors.CategoryContent},
		{"store failure", "/api/pages/homePage", ferrors.StoreError("upstream down").Build(), http.StatusBadGateway, ferrors.CategoryStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newMux(&fakeAssembler{pageErr: tt.err}, false), tt.target)
			assert.Equal(t, tt.status, rec.Code)

			var body ferrors.HTTPErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, string(tt.code), body.Code)
		})
	}
}

func TestHandlePageDraft(t *testing.T) {
	a := &fakeAssembler{}
	rec := serve(newMux(a, true), "/api/pages/homePage?draft=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, []page.Options{{Draft: true}}, a.opts)
}

func TestHandlePostNotFound(t *testing.T) {
	rec := serve(newMux(&fakeAssembler{}, false), "/api/posts/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ferrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing", body.Details["slug"])
}

func TestHandleListPages(t *testing.T) {
	rec := serve(newMux(&fakeAssembler{}, false), "/api/pages")
	require.Equal(t, http.StatusOK, rec.Code)

	var body responses.PageListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "/blog/hello", body.Pages[1].Path)
}

func TestHandleSitemap(t *testing.T) {
	rec := serve(newMux(&fakeAssembler{}, false), "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/</loc>")
	assert.Contains(t, rec.Body.String(), "<lastmod>2024-03-01</lastmod>")
}

func TestHandlersWrapUnclassifiedErrors(t *testing.T) {
	rec := serve(newMux(&fakeAssembler{pageErr: errors.New("boom")}, false), "/api/pages/homePage")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
