package page

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/metadata"
	"git.home.luguber.info/inful/pagebuilder/internal/observability"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
	"git.home.luguber.info/inful/pagebuilder/internal/sections"
)

// postDocumentType labels post assembly in metrics.
const postDocumentType = "post"

// PostPage is an assembled blog post.
type PostPage struct {
	Card     sections.PostCardProps `json:"card"`
	BodyHTML string                 `json:"bodyHtml"`
	Metadata *metadata.Metadata     `json:"metadata,omitempty"`
	Tags     []string               `json:"-"`

	Post *content.Post `json:"-"`
}

// AssemblePost fetches the post with the given slug.
func (a *Assembler) AssemblePost(ctx context.Context, slug string, opts Options) (*PostPage, error) {
	ctx = observability.WithSlug(ctx, slug)
	ctx = observability.WithDraft(ctx, opts.Draft)
	start := time.Now()

	post, err := a.assemblePost(ctx, slug, opts)
	a.recorder.ObservePageDuration(postDocumentType, time.Since(start))
	a.recorder.IncPageResult(postDocumentType, resultLabel(err))
	return post, err
}

func (a *Assembler) assemblePost(ctx context.Context, slug string, opts Options) (*PostPage, error) {
	q, err := query.BuildPostQuery(slug)
	if err != nil {
		return nil, err
	}
	raw, err := a.execute(ctx, q, opts.Draft)
	if err != nil {
		return nil, err
	}
	post, err := content.DecodePost(raw)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Slug == "" {
		return nil, &content.PageNotFoundError{Type: postDocumentType, Slug: slug}
	}

	env := a.envFor(opts)
	out := &PostPage{
		Card: sections.PostCard(post, env),
		Tags: q.Tags,
		Post: post,
	}
	if env.RichText != nil {
		if out.BodyHTML, err = env.RichText.Render(post.Body); err != nil {
			return nil, fmt.Errorf("post %s body: %w", slug, err)
		}
	}
	if a.meta != nil {
		m := a.meta.ForPost(post)
		out.Metadata = &m
	}
	return out, nil
}
