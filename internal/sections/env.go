package sections

import (
	"context"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/imageurl"
)

// ImageURLBuilder resolves image references to CDN URLs.
type ImageURLBuilder interface {
	URL(img *content.Image, opts imageurl.Options) (string, error)
}

// RichTextRenderer converts markdown bodies to HTML.
type RichTextRenderer interface {
	Render(body string) (string, error)
}

// PostLookup fetches every published post, newest first.
type PostLookup interface {
	FetchAllPosts(ctx context.Context) ([]content.Post, error)
}

// Env carries the capabilities transformers may call. Any field may be nil;
// images then resolve to nil and bodies to "".
type Env struct {
	Images   ImageURLBuilder
	RichText RichTextRenderer
	Posts    PostLookup
}

// Image sizes requested per renderer slot.
var (
	headerImage      = imageurl.Options{Width: 1920}
	contentImage     = imageurl.Options{Width: 1200}
	cardImage        = imageurl.Options{Width: 800, Height: 600}
	featuredImage    = imageurl.Options{Width: 1200}
	testimonialImage = imageurl.Options{Width: 160, Height: 160}
	postCardImage    = imageurl.Options{Width: 800, Height: 450}
)

// resolveImage converts img to renderer props. Any failure yields nil.
func (e Env) resolveImage(img *content.Image, opts imageurl.Options) *ImageProps {
	if img == nil || e.Images == nil {
		return nil
	}
	u, err := e.Images.URL(img, opts)
	if err != nil || u == "" {
		return nil
	}
	return &ImageProps{
		URL:    u,
		Alt:    img.Alt,
		LQIP:   img.LQIP,
		Width:  img.Width,
		Height: img.Height,
	}
}
