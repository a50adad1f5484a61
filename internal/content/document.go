package content

import "time"

// Document is a page fetched from the content store.
type Document struct {
	ID       string
	Type     string
	Title    string
	Slug     string
	SEO      *SEO
	Sections []Section

	// Revision fields are passed through for cache invalidation only.
	Rev       string
	UpdatedAt string
}

// SEO is the optional per-document search metadata block.
type SEO struct {
	Title       string
	Description string
	Image       *Image
	NoIndex     bool
}

// Category is a post category.
type Category struct {
	ID    string
	Title string
	Slug  string
	Color string
}

// Post is a blog post, embedded in blog sections or fetched in bulk.
type Post struct {
	ID          string
	Title       string
	Description string
	Slug        string
	PublishedAt time.Time
	Categories  []Category
	Featured    bool
	Image       *Image
	Variant     string
	Body        string
	SEO         *SEO
	UpdatedAt   string
}

// Image is an image reference as returned by the image fragment.
type Image struct {
	AssetRef string // image-<hash>-<w>x<h>-<ext>
	URL      string // original asset URL, when projected
	Alt      string
	LQIP     string
	Width    int
	Height   int
	Crop     *Crop
	Hotspot  *Hotspot
}

// Crop is the editor-selected crop, as fractions of each edge.
type Crop struct {
	Top, Bottom, Left, Right float64
}

// Hotspot is the editor-selected focal area, as fractions.
type Hotspot struct {
	X, Y, Width, Height float64
}
