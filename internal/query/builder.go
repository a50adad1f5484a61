package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// Kind identifies which query shape a Query carries. Stores that cannot
// evaluate GROQ dispatch on it.
type Kind string

const (
	KindPage     Kind = "page"
	KindAllPages Kind = "allPages"
	KindAllPosts Kind = "allPosts"
	KindPost     Kind = "post"
)

// Static cache tags for content referenced from pages.
const (
	TagPost     = "post"
	TagCategory = "category"
)

// Query is an assembled GROQ query with its parameters and the cache tags
// the fetch layer should attach.
type Query struct {
	Kind   Kind
	Text   string
	Params map[string]any
	Tags   []string
}

const pageQuery = `*[_type == $type][0]{
  ...,
  "slug": slug.current,
  seo {` + SEOFields + `
  },
  sections[] {` + SectionFields + `
  }
}`

const allPagesQuery = `*[_type in $types && defined(slug.current)] | order(_type asc, slug.current asc) {
  _id,
  _type,
  _updatedAt,
  "slug": slug.current
}`

const allPostsQuery = `*[_type == "post" && defined(slug.current)] | order(publishedAt desc) {` + PostFields + `
}`

const postQuery = `*[_type == "post" && slug.current == $slug][0]{` + PostFields + `,
    body,
    seo {` + SEOFields + `
    }
}`

// BuildPageQuery assembles the query for the single document of type t.
// Tags are the lower-cased type, the literal type, then the post and
// category tags so post edits also invalidate pages embedding blog sections.
func BuildPageQuery(t DocumentType) (Query, error) {
	if !t.Valid() {
		return Query{}, &content.UnknownDocumentTypeError{Type: string(t)}
	}
	return Query{
		Kind:   KindPage,
		Text:   pageQuery,
		Params: map[string]any{"type": string(t)},
		Tags:   uniqueTags(lower(string(t)), string(t), TagPost, TagCategory),
	}, nil
}

// BuildAllPagesQuery assembles the sitemap enumeration query over types.
// An empty list selects every known type.
func BuildAllPagesQuery(types []DocumentType) (Query, error) {
	if len(types) == 0 {
		types = documentTypes
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		if !t.Valid() {
			return Query{}, &content.UnknownDocumentTypeError{Type: string(t)}
		}
		names = append(names, string(t))
	}
	return Query{
		Kind:   KindAllPages,
		Text:   allPagesQuery,
		Params: map[string]any{"types": names},
		Tags:   uniqueTags(names...),
	}, nil
}

// BuildAllPostsQuery assembles the query listing every post, newest first.
func BuildAllPostsQuery() Query {
	return Query{
		Kind:   KindAllPosts,
		Text:   allPostsQuery,
		Params: map[string]any{},
		Tags:   []string{TagPost, TagCategory},
	}
}

// BuildPostQuery assembles the query for a single post by slug.
func BuildPostQuery(slug string) (Query, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Query{}, ferrors.ValidationError("post slug is required").Build()
	}
	return Query{
		Kind:   KindPost,
		Text:   postQuery,
		Params: map[string]any{"slug": slug},
		Tags:   []string{TagPost, TagPost + ":" + slug, TagCategory},
	}, nil
}

func lower(s string) string {
	// Casers are stateful; one per call.
	return cases.Lower(language.Und).String(s)
}

func uniqueTags(tags ...string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
