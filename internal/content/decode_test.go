package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aboutPageJSON = `{
  "_id": "about",
  "_type": "aboutPage",
  "_rev": "r1",
  "_updatedAt": "2025-03-01T10:00:00Z",
  "title": "About",
  "slug": "about",
  "seo": {"title": "About us", "description": "Who we are", "noIndex": true},
  "sections": [
    {"_type": "sectionHeader", "_key": "h1", "title": "internal", "displayTitle": "Welcome",
     "cta": {"text": "Book", "link": "/contact"},
     "image": {"asset": {"_id": "image-abc-800x600-jpg", "url": "https://cdn.example/abc.jpg",
               "metadata": {"lqip": "data:x", "dimensions": {"width": 800, "height": 600}}},
               "alt": "Team", "hotspot": {"x": 0.5, "y": 0.4, "width": 1, "height": 1}}},
    {"_type": "sectionUnknownFuture", "_key": "u1"},
    {"_type": "sectionFAQ", "_key": "f1", "items": [{"_key": "q1", "question": "Q1", "answer": "A1"}, {"question": "Q2"}]},
    "not-an-object"
  ]
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(json.RawMessage(aboutPageJSON))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "about", doc.ID)
	assert.Equal(t, "aboutPage", doc.Type)
	assert.Equal(t, "r1", doc.Rev)
	require.NotNil(t, doc.SEO)
	assert.True(t, doc.SEO.NoIndex)
	require.Len(t, doc.Sections, 4)

	header, ok := doc.Sections[0].(*HeaderSection)
	require.True(t, ok)
	assert.Equal(t, "h1", header.Key)
	assert.Equal(t, "internal", header.InternalTitle)
	assert.Equal(t, "Welcome", header.DisplayTitle)
	assert.Equal(t, &Link{Text: "Book", Href: "/contact"}, header.CTA)
	assert.Nil(t, header.SecondaryCTA)
	require.NotNil(t, header.Image)
	assert.Equal(t, "image-abc-800x600-jpg", header.Image.AssetRef)
	assert.Equal(t, 800, header.Image.Width)
	assert.Equal(t, "Team", header.Image.Alt)
	require.NotNil(t, header.Image.Hotspot)
	assert.InDelta(t, 0.4, header.Image.Hotspot.Y, 1e-9)

	unknown, ok := doc.Sections[1].(*UnknownSection)
	require.True(t, ok)
	assert.Equal(t, Tag("sectionUnknownFuture"), unknown.Tag())
	assert.False(t, unknown.Tag().IsKnown())

	faq, ok := doc.Sections[2].(*FAQSection)
	require.True(t, ok)
	assert.Len(t, faq.Items, 2, "decoding keeps incomplete items; transformers drop them")

	_, ok = doc.Sections[3].(*UnknownSection)
	assert.True(t, ok, "non-object records decode as unknown")
}

func TestDecodeDocumentNull(t *testing.T) {
	for _, raw := range []string{"", "null", "  null \n"} {
		doc, err := DecodeDocument(json.RawMessage(raw))
		require.NoError(t, err)
		assert.Nil(t, doc)
	}
}

func TestDecodeLenientFields(t *testing.T) {
	raw := `{"_type": "sectionCards", "_key": 42, "displayTitle": ["bad"], "showDivider": "yes",
	  "columns": "3",
	  "cards": [{"title": "One", "image": "not-an-object", "link": {"text": "Go", "href": "/one"}}, 7, {"title": 12}],
	  "cta": "oops"}`
	sec := DecodeSection(json.RawMessage(raw))
	cards, ok := sec.(*CardsSection)
	require.True(t, ok)

	assert.Equal(t, "42", cards.Key)
	assert.Equal(t, "", cards.DisplayTitle)
	assert.False(t, cards.ShowDivider)
	assert.Equal(t, 3, cards.Columns)
	require.Len(t, cards.Cards, 2, "non-object card is dropped")
	assert.Nil(t, cards.Cards[0].Image)
	assert.Equal(t, &Link{Text: "Go", Href: "/one"}, cards.Cards[0].Link)
	assert.Equal(t, "12", cards.Cards[1].Title)
}

func TestDecodeBlogSection(t *testing.T) {
	raw := `{"_type": "sectionBlog", "showAllPosts": true, "showFeaturedOnly": true, "sortOrder": "Oldest",
	  "posts": [{"_id": "p1", "title": "Hello", "slug": "hello", "publishedAt": "2024-05-01T08:00:00Z",
	             "featured": true, "categories": [{"_id": "c1", "title": "News", "slug": "news"}]}]}`
	blog, ok := DecodeSection(json.RawMessage(raw)).(*BlogSection)
	require.True(t, ok)

	assert.True(t, blog.ShowAllPosts)
	assert.True(t, blog.ShowFeaturedOnly)
	assert.Equal(t, SortOldest, blog.SortOrder)
	require.Len(t, blog.Posts, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), blog.Posts[0].PublishedAt.UTC())
	assert.Equal(t, "News", blog.Posts[0].Categories[0].Title)

	blog, ok = DecodeSection(json.RawMessage(`{"_type": "sectionBlog", "sortOrder": 5}`)).(*BlogSection)
	require.True(t, ok)
	assert.Equal(t, SortNewest, blog.SortOrder)
	assert.Empty(t, blog.Posts)
}

func TestDecodePosts(t *testing.T) {
	posts, err := DecodePosts(json.RawMessage(`[{"_id": "a", "slug": "a", "publishedAt": "2024-01-02"}, "x", {"_id": "b", "publishedAt": "garbage"}]`))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, 2024, posts[0].PublishedAt.Year())
	assert.True(t, posts[1].PublishedAt.IsZero())

	_, err = DecodePosts(json.RawMessage(`{"_id": "a"}`))
	require.Error(t, err)

	posts, err = DecodePosts(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDecodePageRefsSkipsMissingSlug(t *testing.T) {
	refs, err := DecodePageRefs(json.RawMessage(`[{"_id": "1", "_type": "homePage", "slug": "home"}, {"_id": "2", "_type": "aboutPage"}]`))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "home", refs[0].Slug)
}

func TestKnownTags(t *testing.T) {
	tags := KnownTags()
	assert.Len(t, tags, 11)
	seen := map[Tag]bool{}
	for _, tag := range tags {
		assert.False(t, seen[tag], "duplicate tag %s", tag)
		seen[tag] = true
		assert.True(t, tag.IsKnown())
	}
	tags[0] = "mutated"
	assert.Equal(t, TagHeader, KnownTags()[0], "KnownTags returns a copy")
}

func TestTagOf(t *testing.T) {
	assert.Equal(t, TagFAQ, TagOf(&FAQSection{}))
	assert.Equal(t, TagHeader, TagOf(HeaderSection{}))
	assert.Equal(t, Tag("sectionFuture"), TagOf(&UnknownSection{RawTag: "sectionFuture"}))
	assert.Equal(t, Tag(""), TagOf(nil))
	assert.Equal(t, Tag(""), TagOf((*HeaderSection)(nil)))
}
