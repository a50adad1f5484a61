// Package imageurl builds CDN URLs for CMS image assets.
package imageurl

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

// DefaultBaseURL is the image CDN host.
const DefaultBaseURL = "https://cdn.sanity.io"

// ErrMalformedRef is returned for asset references that do not follow
// the image-<id>-<w>x<h>-<ext> shape.
var ErrMalformedRef = errors.New("malformed image asset reference")

var assetRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z0-9]+)$`)

// Options are the requested output dimensions. Zero values leave the
// dimension to the CDN.
type Options struct {
	Width   int
	Height  int
	Quality int
}

// Builder constructs image URLs for one project and dataset.
type Builder struct {
	baseURL   string
	projectID string
	dataset   string
	quality   int
}

// NewBuilder creates a builder from the images configuration block.
func NewBuilder(cfg config.ImagesConfig) *Builder {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Builder{
		baseURL:   base,
		projectID: cfg.ProjectID,
		dataset:   cfg.Dataset,
		quality:   cfg.Quality,
	}
}

// asset is a parsed image reference.
type asset struct {
	id     string
	width  int
	height int
	format string
}

func parseAssetRef(ref string) (asset, error) {
	m := assetRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return asset{}, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	w, _ := strconv.Atoi(m[2])
	h, _ := strconv.Atoi(m[3])
	return asset{id: m[1], width: w, height: h, format: m[4]}, nil
}

// URL returns the CDN URL for img at the requested size. Editor crops are
// applied as a source rectangle and the hotspot as the focal point when
// both dimensions are requested.
func (b *Builder) URL(img *content.Image, opts Options) (string, error) {
	if img == nil || img.AssetRef == "" {
		return "", ErrMalformedRef
	}
	a, err := parseAssetRef(img.AssetRef)
	if err != nil {
		return "", err
	}
	if b.projectID == "" || b.dataset == "" {
		return "", errors.New("image builder requires project id and dataset")
	}

	q := url.Values{}
	if opts.Width > 0 {
		q.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = b.quality
	}
	if quality > 0 {
		q.Set("q", strconv.Itoa(quality))
	}
	q.Set("auto", "format")

	if rect, ok := cropRect(img.Crop, a); ok {
		q.Set("rect", rect)
	}
	if img.Hotspot != nil && opts.Width > 0 && opts.Height > 0 {
		q.Set("fit", "crop")
		q.Set("crop", "focalpoint")
		q.Set("fp-x", formatFraction(img.Hotspot.X))
		q.Set("fp-y", formatFraction(img.Hotspot.Y))
	}

	return fmt.Sprintf("%s/images/%s/%s/%s-%dx%d.%s?%s",
		b.baseURL, b.projectID, b.dataset, a.id, a.width, a.height, a.format, q.Encode()), nil
}

// cropRect converts fractional crop insets to a pixel rectangle
// "left,top,width,height". An empty crop yields no rectangle.
func cropRect(c *content.Crop, a asset) (string, bool) {
	if c == nil || (c.Top == 0 && c.Bottom == 0 && c.Left == 0 && c.Right == 0) {
		return "", false
	}
	left := int(math.Round(c.Left * float64(a.width)))
	top := int(math.Round(c.Top * float64(a.height)))
	width := int(math.Round((1 - c.Left - c.Right) * float64(a.width)))
	height := int(math.Round((1 - c.Top - c.Bottom) * float64(a.height)))
	if width <= 0 || height <= 0 {
		return "", false
	}
	return fmt.Sprintf("%d,%d,%d,%d", left, top, width, height), true
}

func formatFraction(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
