package metadata

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/imageurl"
	"git.home.luguber.info/inful/pagebuilder/internal/richtext"
)

var site = SiteDefaults{
	Name:        "Studio",
	Title:       "Studio Home",
	Description: "We build things",
	BaseURL:     "https://studio.example",
	Locale:      "en_US",
}

func newGenerator() *Generator {
	return &Generator{
		Site:       site,
		OGEndpoint: "https://studio.example/api/og",
		Images:     imageurl.NewBuilder(config.ImagesConfig{ProjectID: "p", Dataset: "d"}),
		Excerpts:   richtext.New(),
	}
}

func ogQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/api/og", u.Path)
	return u.Query()
}

func TestForPageUsesSEOBlock(t *testing.T) {
	doc := &content.Document{
		Type:  "aboutPage",
		Title: "About",
		Slug:  "about",
		SEO:   &content.SEO{Title: "About us", Description: "Who we are", NoIndex: true},
	}
	m := newGenerator().ForPage(doc)

	assert.Equal(t, "About us | Studio", m.Title)
	assert.Equal(t, "Who we are", m.Description)
	assert.Equal(t, "https://studio.example/about", m.Canonical)
	assert.Equal(t, "noindex, nofollow", m.Robots)
	assert.Equal(t, "website", m.OpenGraph.Type)
	assert.Equal(t, "WebSite", m.JSONLD["@type"])
	assert.Equal(t, "Studio", m.JSONLD["name"])

	q := ogQuery(t, m.OpenGraph.Image)
	assert.Equal(t, "About us", q.Get("title"))
	assert.Equal(t, "Who we are", q.Get("description"))
	for _, key := range []string{"image", "category", "date"} {
		assert.False(t, q.Has(key), key)
	}
}

func TestForPageFallsBackToSiteDefaults(t *testing.T) {
	m := newGenerator().ForPage(&content.Document{Type: "homePage", Slug: "home"})

	assert.Equal(t, "Studio Home | Studio", m.Title)
	assert.Equal(t, "We build things", m.Description)
	assert.Equal(t, "https://studio.example/", m.Canonical)
	assert.Equal(t, "index, follow", m.Robots)
}

func TestTitleIsNotSuffixedTwice(t *testing.T) {
	g := newGenerator()
	m := g.ForPage(&content.Document{Type: "aboutPage", Title: "Studio", Slug: "about"})
	assert.Equal(t, "Studio", m.Title)

	g.Site.Name = ""
	m = g.ForPage(&content.Document{Type: "aboutPage", Title: "About", Slug: "about"})
	assert.Equal(t, "About", m.Title)
}

func TestForPost(t *testing.T) {
	post := &content.Post{
		Title:       "Shipping Go",
		Slug:        "shipping-go",
		PublishedAt: time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt:   "2024-05-02T10:00:00Z",
		Categories:  []content.Category{{Title: "Engineering"}, {Title: "News"}},
		Image:       &content.Image{AssetRef: "image-abc-1200x630-png"},
		Body:        "We **shipped** it.",
	}
	m := newGenerator().ForPost(post)

	assert.Equal(t, "Shipping Go | Studio", m.Title)
	assert.Equal(t, "We shipped it.", m.Description, "description falls back to body excerpt")
	assert.Equal(t, "https://studio.example/blog/shipping-go", m.Canonical)
	assert.Equal(t, "article", m.OpenGraph.Type)
	assert.Equal(t, "2024-05-01T08:00:00Z", m.OpenGraph.PublishedTime)
	assert.Equal(t, "summary_large_image", m.Twitter.Card)

	assert.Equal(t, "Article", m.JSONLD["@type"])
	assert.Equal(t, "Shipping Go", m.JSONLD["headline"])
	assert.Equal(t, "2024-05-01T08:00:00Z", m.JSONLD["datePublished"])
	assert.Equal(t, "2024-05-02T10:00:00Z", m.JSONLD["dateModified"])

	q := ogQuery(t, m.OpenGraph.Image)
	assert.Equal(t, "Engineering", q.Get("category"))
	assert.Equal(t, "May 1, 2024", q.Get("date"))
	assert.Contains(t, q.Get("image"), "/images/p/d/abc-1200x630.png")
}

func TestWithoutOGEndpointUsesImageDirectly(t *testing.T) {
	g := newGenerator()
	g.OGEndpoint = ""

	m := g.ForPost(&content.Post{Title: "T", Slug: "t", Image: &content.Image{URL: "https://cdn.example/raw.png"}})
	assert.Equal(t, "https://cdn.example/raw.png", m.OpenGraph.Image)

	g.Site.Image = "https://studio.example/default.png"
	m = g.ForPage(&content.Document{Type: "aboutPage", Slug: "about"})
	assert.Equal(t, "https://studio.example/default.png", m.OpenGraph.Image)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/", PagePath("homePage", "home"))
	assert.Equal(t, "/pricing", PagePath("pricingPage", "/pricing/"))
	assert.Equal(t, "/", PagePath("aboutPage", ""))
	assert.Equal(t, "/blog/hello", PostPath("hello"))
}

func TestSiteFromConfig(t *testing.T) {
	s := SiteFromConfig(config.SiteConfig{Name: "N", BaseURL: "https://x.example/"})
	assert.Equal(t, "https://x.example", s.BaseURL)
	assert.Equal(t, "N", s.Name)
}
