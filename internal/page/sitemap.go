package page

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/metadata"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one addressable page or post.
type SitemapEntry struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	LastMod string `json:"lastMod,omitempty"`
}

// ListPages enumerates every page with a slug, followed by every post.
func (a *Assembler) ListPages(ctx context.Context, opts Options) ([]SitemapEntry, error) {
	q, err := query.BuildAllPagesQuery(nil)
	if err != nil {
		return nil, err
	}
	raw, err := a.execute(ctx, q, opts.Draft)
	if err != nil {
		return nil, err
	}
	refs, err := content.DecodePageRefs(raw)
	if err != nil {
		return nil, err
	}

	entries := make([]SitemapEntry, 0, len(refs))
	for _, ref := range refs {
		entries = append(entries, SitemapEntry{
			Path:    metadata.PagePath(ref.Type, ref.Slug),
			Type:    ref.Type,
			LastMod: lastMod(ref.UpdatedAt),
		})
	}

	posts, err := a.envFor(opts).Posts.FetchAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == "" {
			continue
		}
		mod := lastMod(p.UpdatedAt)
		if mod == "" && !p.PublishedAt.IsZero() {
			mod = p.PublishedAt.UTC().Format(time.DateOnly)
		}
		entries = append(entries, SitemapEntry{Path: metadata.PostPath(p.Slug), Type: postDocumentType, LastMod: mod})
	}
	return entries, nil
}

func lastMod(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes entries as a sitemaps.org urlset rooted at baseURL.
func WriteSitemap(w io.Writer, baseURL string, entries []SitemapEntry) error {
	set := urlset{XMLNS: sitemapNamespace, URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{Loc: baseURL + e.Path, LastMod: e.LastMod})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}
