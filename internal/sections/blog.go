package sections

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

// PostDateLayout is the display format for post dates.
const PostDateLayout = "January 2, 2006"

// ModeShowAllPosts names the blog mode that lists every post.
const ModeShowAllPosts = "showAllPosts"

// ErrNoPostLookup is returned when a fetching blog transform runs without
// a PostLookup in its Env.
var ErrNoPostLookup = errors.New("post lookup not configured")

// transformBlog maps the editor-curated posts of a blog section.
func transformBlog(s content.Section, env Env) (Props, error) {
	b, err := as[content.BlogSection](s, content.TagBlog)
	if err != nil {
		return nil, err
	}
	if b.ShowAllPosts {
		return nil, &content.UnsupportedModeError{Tag: content.TagBlog, Mode: ModeShowAllPosts}
	}
	return &BlogProps{SectionProps: sectionProps(b.SectionBase), Posts: postCards(b.Posts, env)}, nil
}

// transformBlogWithFetch lists every post from env.Posts, optionally only
// the featured ones, newest first unless the section asks for oldest first.
// Sections without ShowAllPosts fall back to the curated list.
func transformBlogWithFetch(ctx context.Context, s content.Section, env Env) (Props, error) {
	b, err := as[content.BlogSection](s, content.TagBlog)
	if err != nil {
		return nil, err
	}
	if !b.ShowAllPosts {
		return transformBlog(s, env)
	}
	if env.Posts == nil {
		return nil, ErrNoPostLookup
	}

	posts, err := env.Posts.FetchAllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for blog section: %w", err)
	}
	if b.ShowFeaturedOnly {
		posts = slices.DeleteFunc(slices.Clone(posts), func(p content.Post) bool { return !p.Featured })
	}
	cards := postCards(posts, env)
	if b.SortOrder == content.SortOldest {
		slices.Reverse(cards)
	}
	return &BlogProps{SectionProps: sectionProps(b.SectionBase), Posts: cards}, nil
}

func postCards(posts []content.Post, env Env) []PostCardProps {
	cards := make([]PostCardProps, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		if !present(p.Slug) {
			continue
		}
		cards = append(cards, PostCard(p, env))
	}
	return cards
}

// PostCard maps a post onto its listing props.
func PostCard(p *content.Post, env Env) PostCardProps {
	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if present(c.Title) {
			categories = append(categories, c.Title)
		}
	}
	return PostCardProps{
		Title:       p.Title,
		Description: p.Description,
		Slug:        p.Slug,
		Date:        FormatPostDate(p.PublishedAt),
		PublishedAt: formatTimestamp(p.PublishedAt),
		Categories:  categories,
		Image:       env.resolveImage(p.Image, postCardImage),
		Featured:    p.Featured,
		Variant:     p.Variant,
	}
}

// FormatPostDate renders t for display; the zero time renders as "".
func FormatPostDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(PostDateLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
