package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/page"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Type  string `arg:"" help:"Page document type (e.g. homePage)"`
	Draft bool   `help:"Read draft content"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	docType, err := query.ParseDocumentType(r.Type)
	if err != nil {
		return classify(err)
	}
	return withAssembler(g, root, func(_ *config.Config, a *page.Assembler) error {
		p, err := a.AssemblePage(g.context(), docType, page.Options{Draft: r.Draft})
		if err != nil {
			return classify(err)
		}
		g.Logger.Debug("Assembled page", "document_type", p.Type, "count", len(p.Items), "tags", p.Tags)
		return writeJSON(g.out(), p)
	})
}

// PostCmd implements the 'post' command.
type PostCmd struct {
	Slug  string `arg:"" help:"Post slug"`
	Draft bool   `help:"Read draft content"`
}

func (p *PostCmd) Run(g *Global, root *CLI) error {
	return withAssembler(g, root, func(_ *config.Config, a *page.Assembler) error {
		post, err := a.AssemblePost(g.context(), p.Slug, page.Options{Draft: p.Draft})
		if err != nil {
			return classify(err)
		}
		return writeJSON(g.out(), post)
	})
}

// SitemapCmd implements the 'sitemap' command.
type SitemapCmd struct {
	BaseURL string `name:"base-url" help:"Override site.base_url"`
}

func (s *SitemapCmd) Run(g *Global, root *CLI) error {
	return withAssembler(g, root, func(cfg *config.Config, a *page.Assembler) error {
		entries, err := a.ListPages(g.context(), page.Options{})
		if err != nil {
			return classify(err)
		}
		base := s.BaseURL
		if base == "" {
			base = cfg.Site.BaseURL
		}
		return page.WriteSitemap(g.out(), strings.TrimRight(base, "/"), entries)
	})
}

func classify(err error) error {
	return content.Classify(err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
