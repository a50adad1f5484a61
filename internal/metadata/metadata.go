// Package metadata derives SEO, Open Graph and structured-data metadata for
// assembled pages and posts.
package metadata

import (
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/imageurl"
	"git.home.luguber.info/inful/pagebuilder/internal/query"
)

const (
	robotsIndex   = "index, follow"
	robotsNoIndex = "noindex, nofollow"

	descriptionLimit = 160
	ogDateLayout     = "January 2, 2006"
)

// SiteDefaults are the site-wide fallbacks.
type SiteDefaults struct {
	Name        string
	Title       string
	Description string
	BaseURL     string
	Locale      string
	Twitter     string
	Image       string
}

// SiteFromConfig converts the site configuration block.
func SiteFromConfig(c config.SiteConfig) SiteDefaults {
	return SiteDefaults{
		Name:        c.Name,
		Title:       c.Title,
		Description: c.Description,
		BaseURL:     strings.TrimSuffix(c.BaseURL, "/"),
		Locale:      c.Locale,
		Twitter:     c.Twitter,
		Image:       c.Image,
	}
}

// ImageURLBuilder resolves preview images.
type ImageURLBuilder interface {
	URL(img *content.Image, opts imageurl.Options) (string, error)
}

// Excerpter extracts plain text from a markdown body.
type Excerpter interface {
	PlainText(body string, limit int) string
}

// Generator derives metadata. Only Site is required; without OGEndpoint
// the preview image is the resolved content image.
type Generator struct {
	Site       SiteDefaults
	OGEndpoint string
	Images     ImageURLBuilder
	Excerpts   Excerpter
}

// Metadata is the head content for one page or post.
type Metadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Canonical   string         `json:"canonical"`
	Robots      string         `json:"robots"`
	OpenGraph   OpenGraph      `json:"openGraph"`
	Twitter     TwitterCard    `json:"twitter"`
	JSONLD      map[string]any `json:"jsonLd"`
}

// OpenGraph holds og:* properties.
type OpenGraph struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	SiteName      string `json:"siteName"`
	Locale        string `json:"locale,omitempty"`
	Image         string `json:"image,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`
}

// TwitterCard holds twitter:* properties.
type TwitterCard struct {
	Card  string `json:"card"`
	Site  string `json:"site,omitempty"`
	Image string `json:"image,omitempty"`
}

// Kind selects the structured-data shape.
type Kind int

const (
	KindWebsite Kind = iota
	KindArticle
)

var previewImage = imageurl.Options{Width: 1200, Height: 630}

// subject is the common input of ForPage and ForPost.
type subject struct {
	kind        Kind
	title       string
	description string
	path        string
	image       *content.Image
	noIndex     bool
	category    string
	published   time.Time
	modified    string
}

// ForPage derives metadata for a page document.
func (g *Generator) ForPage(doc *content.Document) Metadata {
	s := subject{kind: KindWebsite, path: PagePath(doc.Type, doc.Slug), title: doc.Title, modified: doc.UpdatedAt}
	if doc.SEO != nil {
		s.title = firstNonEmpty(doc.SEO.Title, s.title)
		s.description = doc.SEO.Description
		s.image = doc.SEO.Image
		s.noIndex = doc.SEO.NoIndex
	}
	return g.build(s)
}

// ForPost derives metadata for a post.
func (g *Generator) ForPost(post *content.Post) Metadata {
	s := subject{
		kind:        KindArticle,
		title:       post.Title,
		description: post.Description,
		path:        PostPath(post.Slug),
		image:       post.Image,
		published:   post.PublishedAt,
		modified:    post.UpdatedAt,
	}
	if post.SEO != nil {
		s.title = firstNonEmpty(post.SEO.Title, s.title)
		s.description = firstNonEmpty(post.SEO.Description, s.description)
		if post.SEO.Image != nil {
			s.image = post.SEO.Image
		}
		s.noIndex = post.SEO.NoIndex
	}
	if s.description == "" && g.Excerpts != nil && post.Body != "" {
		s.description = g.Excerpts.PlainText(post.Body, descriptionLimit)
	}
	if len(post.Categories) > 0 {
		s.category = post.Categories[0].Title
	}
	return g.build(s)
}

func (g *Generator) build(s subject) Metadata {
	title := strings.TrimSpace(firstNonEmpty(s.title, g.Site.Title))
	description := strings.TrimSpace(firstNonEmpty(s.description, g.Site.Description))
	canonical := g.Site.BaseURL + s.path

	imageURL := g.resolveImage(s.image)
	var date string
	if !s.published.IsZero() {
		date = s.published.UTC().Format(ogDateLayout)
	}
	ogImage := g.ogImageURL(title, description, imageURL, s.category, date)

	m := Metadata{
		Title:       g.fullTitle(title),
		Description: description,
		Canonical:   canonical,
		Robots:      robotsIndex,
		OpenGraph: OpenGraph{
			Type:        "website",
			Title:       title,
			Description: description,
			URL:         canonical,
			SiteName:    g.Site.Name,
			Locale:      g.Site.Locale,
			Image:       ogImage,
		},
		Twitter: TwitterCard{Card: "summary", Site: g.Site.Twitter, Image: ogImage},
		JSONLD:  g.jsonLD(s.kind, title, description, canonical, ogImage, s),
	}
	if s.noIndex {
		m.Robots = robotsNoIndex
	}
	if ogImage != "" {
		m.Twitter.Card = "summary_large_image"
	}
	if s.kind == KindArticle {
		m.OpenGraph.Type = "article"
		if !s.published.IsZero() {
			m.OpenGraph.PublishedTime = s.published.UTC().Format(time.RFC3339)
		}
	}
	return m
}

// fullTitle appends the site name unless title already is the site name.
func (g *Generator) fullTitle(title string) string {
	switch {
	case g.Site.Name == "" || title == g.Site.Name:
		return title
	case title == "":
		return g.Site.Name
	default:
		return title + " | " + g.Site.Name
	}
}

func (g *Generator) resolveImage(img *content.Image) string {
	if img == nil {
		return g.Site.Image
	}
	if g.Images != nil {
		if u, err := g.Images.URL(img, previewImage); err == nil {
			return u
		}
	}
	if img.URL != "" {
		return img.URL
	}
	return g.Site.Image
}

// ogImageURL encodes the preview fields onto the image-generation endpoint.
// Empty values are omitted.
func (g *Generator) ogImageURL(title, description, image, category, date string) string {
	if g.OGEndpoint == "" {
		return image
	}
	q := url.Values{}
	for _, kv := range [][2]string{
		{"title", title},
		{"description", description},
		{"image", image},
		{"category", category},
		{"date", date},
	} {
		if kv[1] != "" {
			q.Set(kv[0], kv[1])
		}
	}
	if len(q) == 0 {
		return g.OGEndpoint
	}
	sep := "?"
	if strings.Contains(g.OGEndpoint, "?") {
		sep = "&"
	}
	return g.OGEndpoint + sep + q.Encode()
}

func (g *Generator) jsonLD(kind Kind, title, description, canonical, image string, s subject) map[string]any {
	ld := map[string]any{"@context": "https://schema.org"}
	switch kind {
	case KindArticle:
		ld["@type"] = "Article"
		ld["headline"] = title
		ld["description"] = description
		ld["url"] = canonical
		ld["mainEntityOfPage"] = canonical
		if image != "" {
			ld["image"] = image
		}
		if !s.published.IsZero() {
			ld["datePublished"] = s.published.UTC().Format(time.RFC3339)
		}
		if s.modified != "" {
			ld["dateModified"] = s.modified
		}
		org := map[string]any{"@type": "Organization", "name": g.Site.Name}
		ld["author"] = org
		ld["publisher"] = org
	default:
		ld["@type"] = "WebSite"
		ld["name"] = firstNonEmpty(g.Site.Name, title)
		ld["url"] = canonical
		ld["description"] = description
	}
	return ld
}

// PagePath returns the site path of a page document. The home page lives
// at the root; other pages live under their slug.
func PagePath(docType, slug string) string {
	slug = strings.Trim(slug, "/ ")
	if docType == string(query.HomePage) || slug == "" {
		return "/"
	}
	return "/" + slug
}

// PostPath returns the site path of a post.
func PostPath(slug string) string {
	return "/blog/" + strings.Trim(slug, "/ ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
