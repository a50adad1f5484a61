package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/config"
	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

func newTestBuilder() *Builder {
	return NewBuilder(config.ImagesConfig{ProjectID: "abc123", Dataset: "production", Quality: 80})
}

func TestURL(t *testing.T) {
	b := newTestBuilder()
	img := &content.Image{AssetRef: "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg"}

	got, err := b.URL(img, Options{Width: 800, Height: 600})
	require.NoError(t, err)
	assert.Equal(t,
		"https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?auto=format&h=600&q=80&w=800",
		got)
}

func TestURLQualityOverride(t *testing.T) {
	b := NewBuilder(config.ImagesConfig{ProjectID: "p", Dataset: "d", BaseURL: "https://img.example.com/"})
	got, err := b.URL(&content.Image{AssetRef: "image-abc-10x20-png"}, Options{Quality: 55})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/images/p/d/abc-10x20.png?auto=format&q=55", got)
}

func TestURLCropAndHotspot(t *testing.T) {
	b := newTestBuilder()
	img := &content.Image{
		AssetRef: "image-abc-1000x500-jpg",
		Crop:     &content.Crop{Top: 0.1, Bottom: 0.1, Left: 0.2, Right: 0},
		Hotspot:  &content.Hotspot{X: 0.5, Y: 0.25},
	}
	got, err := b.URL(img, Options{Width: 400, Height: 400})
	require.NoError(t, err)
	assert.Contains(t, got, "rect=200%2C50%2C800%2C400")
	assert.Contains(t, got, "fp-x=0.5")
	assert.Contains(t, got, "fp-y=0.25")
	assert.Contains(t, got, "crop=focalpoint")

	// Without both dimensions the hotspot is ignored.
	got, err = b.URL(img, Options{Width: 400})
	require.NoError(t, err)
	assert.NotContains(t, got, "fp-x")
}

func TestURLMalformedRef(t *testing.T) {
	b := newTestBuilder()
	for _, img := range []*content.Image{
		nil,
		{},
		{AssetRef: "file-abc-pdf"},
		{AssetRef: "image-abc-12-jpg"},
	} {
		_, err := b.URL(img, Options{})
		assert.ErrorIs(t, err, ErrMalformedRef)
	}
}

func TestURLRequiresProject(t *testing.T) {
	b := NewBuilder(config.ImagesConfig{})
	_, err := b.URL(&content.Image{AssetRef: "image-abc-10x20-png"}, Options{})
	require.Error(t, err)
}
