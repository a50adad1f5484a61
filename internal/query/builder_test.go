package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

func TestBuildPageQuery(t *testing.T) {
	q, err := BuildPageQuery(AboutPage)
	require.NoError(t, err)

	assert.Equal(t, KindPage, q.Kind)
	assert.Equal(t, map[string]any{"type": "aboutPage"}, q.Params)
	assert.Equal(t, []string{"aboutpage", "aboutPage", TagPost, TagCategory}, q.Tags)
	assert.True(t, strings.HasPrefix(q.Text, "*[_type == $type][0]{"))
	assert.Contains(t, q.Text, SectionFields)
	assert.Contains(t, q.Text, SEOFields)
}

func TestBuildPageQueryIsDeterministic(t *testing.T) {
	for _, dt := range DocumentTypes() {
		a, err := BuildPageQuery(dt)
		require.NoError(t, err)
		b, err := BuildPageQuery(dt)
		require.NoError(t, err)
		assert.Equal(t, a, b, dt)
	}
}

func TestBuildPageQueryRejectsUnknownType(t *testing.T) {
	_, err := BuildPageQuery(DocumentType("landingPage"))
	require.Error(t, err)

	var unknown *content.UnknownDocumentTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "landingPage", unknown.Type)
}

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		raw     string
		want    DocumentType
		wantErr bool
	}{
		{raw: "homePage", want: HomePage},
		{raw: " PRICINGPAGE ", want: PricingPage},
		{raw: "eventspage", want: EventsPage},
		{raw: "post", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDocumentType(tt.raw)
			if tt.wantErr {
				var unknown *content.UnknownDocumentTypeError
				require.ErrorAs(t, err, &unknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildAllPagesQuery(t *testing.T) {
	q, err := BuildAllPagesQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, KindAllPages, q.Kind)
	assert.Contains(t, q.Text, "defined(slug.current)")
	assert.Len(t, q.Params["types"], len(DocumentTypes()))

	q, err = BuildAllPagesQuery([]DocumentType{HomePage, BlogPage, HomePage})
	require.NoError(t, err)
	assert.Equal(t, []string{"homePage", "blogPage", "homePage"}, q.Params["types"])
	assert.Equal(t, []string{"homePage", "blogPage"}, q.Tags)

	_, err = BuildAllPagesQuery([]DocumentType{"nope"})
	require.Error(t, err)
}

func TestBuildPostQueries(t *testing.T) {
	all := BuildAllPostsQuery()
	assert.Equal(t, KindAllPosts, all.Kind)
	assert.Contains(t, all.Text, "order(publishedAt desc)")
	assert.Contains(t, all.Text, PostFields)

	q, err := BuildPostQuery("  hello-world ")
	require.NoError(t, err)
	assert.Equal(t, KindPost, q.Kind)
	assert.Equal(t, map[string]any{"slug": "hello-world"}, q.Params)
	assert.Equal(t, []string{"post", "post:hello-world", "category"}, q.Tags)

	_, err = BuildPostQuery(" ")
	require.Error(t, err)
}

func TestFragmentsComposeImageFields(t *testing.T) {
	assert.Contains(t, PostFields, ImageFields)
	assert.Contains(t, PostFields, CategoryFields)
	assert.Contains(t, SectionFields, CTAFields)
	assert.Contains(t, SectionFields, PostFields)
}
