package cms

import (
	"context"
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

// Executor runs assembled queries. Client and Snapshot implement it.
type Executor interface {
	Execute(ctx context.Context, q query.Query, draft bool) (json.RawMessage, error)
}

// PostSource lists posts through any Executor.
type PostSource struct {
	store Executor
	draft bool
}

// NewPostSource creates a post lookup reading published (or, with draft,
// draft) content from store.
func NewPostSource(store Executor, draft bool) *PostSource {
	return &PostSource{store: store, draft: draft}
}

// FetchAllPosts returns every post with a slug, newest first.
func (p *PostSource) FetchAllPosts(ctx context.Context) ([]content.Post, error) {
	raw, err := p.store.Execute(ctx, query.BuildAllPostsQuery(), p.draft)
	if err != nil {
		return nil, fmt.Errorf("fetch all posts: %w", err)
	}
	posts, err := content.DecodePosts(raw)
	if err != nil {
		return nil, err
	}
	return posts, nil
}
