package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/page"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
	"git.home.luguber.info/inful/pagebuilder/internal/server/responses"
)

// Assembler is the page pipeline surface the handlers need.
type Assembler interface {
	AssemblePage(ctx context.Context, t query.DocumentType, opts page.Options) (*page.Page, error)
	AssemblePost(ctx context.Context, slug string, opts page.Options) (*page.PostPage, error)
	ListPages(ctx context.Context, opts page.Options) ([]page.SitemapEntry, error)
}

// PageHandlers serves assembled content.
type PageHandlers struct {
	assembler    Assembler
	baseURL      string
	allowDrafts  bool
	errorAdapter *ferrors.HTTPErrorAdapter
}

// NewPageHandlers creates page handlers. baseURL prefixes sitemap locations.
func NewPageHandlers(assembler Assembler, baseURL string, allowDrafts bool, logger *slog.Logger) *PageHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandlers{
		assembler:    assembler,
		baseURL:      baseURL,
		allowDrafts:  allowDrafts,
		errorAdapter: ferrors.NewHTTPErrorAdapter(logger),
	}
}

// draftRequested reads ?draft=1 and rejects it when drafts are disabled.
func (h *PageHandlers) draftRequested(r *http.Request) (bool, error) {
	switch v := r.URL.Query().Get("draft"); v {
	case "", "0", "false":
		return false, nil
	case "1", "true":
		if !h.allowDrafts {
			return false, ferrors.ValidationError("draft content is not enabled").Build()
		}
		return true, nil
	default:
		return false, ferrors.ValidationError("invalid draft parameter").
			WithContext("draft", v).
			Build()
	}
}

// HandlePage serves GET /api/pages/{type}.
func (h *PageHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftRequested(r)
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	docType, err := query.ParseDocumentType(r.PathValue("type"))
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	p, err := h.assembler.AssemblePage(r.Context(), docType, page.Options{Draft: draft})
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	setContentHeaders(w, p.Tags, draft)
	respond(w, r, h.errorAdapter, p)
}

// HandlePost serves GET /api/posts/{slug}.
func (h *PageHandlers) HandlePost(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftRequested(r)
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	p, err := h.assembler.AssemblePost(r.Context(), r.PathValue("slug"), page.Options{Draft: draft})
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	setContentHeaders(w, p.Tags, draft)
	respond(w, r, h.errorAdapter, p)
}

// HandleListPages serves GET /api/pages.
func (h *PageHandlers) HandleListPages(w http.ResponseWriter, r *http.Request) {
	draft, err := h.draftRequested(r)
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	entries, err := h.assembler.ListPages(r.Context(), page.Options{Draft: draft})
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	respond(w, r, h.errorAdapter, &responses.PageListResponse{Pages: entries, Count: len(entries)})
}

// HandleSitemap serves GET /sitemap.xml with published content only.
func (h *PageHandlers) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.assembler.ListPages(r.Context(), page.Options{})
	if err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	var buf bytes.Buffer
	if err := page.WriteSitemap(&buf, h.baseURL, entries); err != nil {
		writeError(w, r, h.errorAdapter, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing sitemap", "error", err)
	}
}
