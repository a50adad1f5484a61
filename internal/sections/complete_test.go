package sections

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

func fullImage() *content.Image {
	return &content.Image{AssetRef: heroRef, Alt: "Alt", LQIP: "data:image/jpeg;base64,AA", Width: 1600, Height: 900}
}

func fullBase(key string) content.SectionBase {
	return content.SectionBase{
		Key:             key,
		InternalTitle:   "editor " + key,
		DisplayTitle:    "Title " + key,
		Subtitle:        "Subtitle",
		Description:     "Description",
		BackgroundColor: "muted",
		ShowDivider:     true,
	}
}

func fullLink() *content.Link { return &content.Link{Text: "Go", Href: "/go"} }

// requireDefined fails for every zero-valued leaf reachable from v.
func requireDefined(t *testing.T, v reflect.Value, path string) {
	t.Helper()
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		require.False(t, v.IsNil(), "%s is nil", path)
		requireDefined(t, v.Elem(), path)
	case reflect.Struct:
		for i := range v.NumField() {
			requireDefined(t, v.Field(i), path+"."+v.Type().Field(i).Name)
		}
	case reflect.Slice:
		require.NotZero(t, v.Len(), "%s is empty", path)
		for i := range v.Len() {
			requireDefined(t, v.Index(i), path)
		}
	default:
		require.False(t, v.IsZero(), "%s is unset", path)
	}
}

func TestCompleteInputDefinesEveryField(t *testing.T) {
	published := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []content.Section{
		&content.HeaderSection{
			SectionBase:  fullBase("header"),
			CTA:          fullLink(),
			SecondaryCTA: &content.Link{Text: "More", Href: "/more"},
			Image:        fullImage(),
			Alignment:    "left",
		},
		&content.ContentSection{
			SectionBase:   fullBase("content"),
			Body:          "Some *body*",
			Image:         fullImage(),
			ImagePosition: "left",
		},
		&content.CardsSection{
			SectionBase: fullBase("cards"),
			Cards:       []content.Card{{Key: "c1", Title: "Card", Description: "About", Image: fullImage(), Link: fullLink()}},
			Columns:     2,
		},
		&content.FAQSection{
			SectionBase: fullBase("faq"),
			Items:       []content.FAQItem{{Key: "q1", Question: "Why?", Answer: "Because."}},
		},
		&content.FeaturedSection{
			SectionBase: fullBase("featured"),
			Image:       fullImage(),
			CTA:         fullLink(),
			Features:    []content.Feature{{Key: "f1", Title: "Fast", Description: "Very", Icon: "bolt"}},
		},
		&content.FormSection{
			SectionBase:    fullBase("form"),
			FormName:       "contact",
			SubmitLabel:    "Send",
			SuccessMessage: "Thanks",
			Fields:         []content.FormField{{Key: "e", Name: "email", Label: "Email", Type: "email", Placeholder: "you@example.com", Required: true}},
		},
		&content.PricingSection{
			SectionBase: fullBase("pricing"),
			Packages: []content.PricingPackage{{
				Key: "p1", Name: "Basic", Price: "10", Currency: "EUR", Interval: "month",
				Description: "Starter", Features: []string{"one"}, Highlighted: true, CTA: fullLink(),
			}},
		},
		&content.TestimonialSection{
			SectionBase: fullBase("testimonial"),
			Testimonials: []content.Testimonial{{
				Key: "t1", Quote: "Great", Author: "Kim", Role: "CTO", Company: "Acme", Image: fullImage(),
			}},
		},
		&content.TimelineSection{
			SectionBase: fullBase("timeline"),
			Steps:       []content.TimelineStep{{Key: "s1", Title: "Founded", Description: "Day one", Date: "2019"}},
		},
		&content.CalendarSection{
			SectionBase: fullBase("calendar"),
			EmbedURL:    "https://cal.example.com/embed",
			Events: []content.CalendarEvent{{
				Key: "e1", Title: "Workshop", Start: "2025-03-01T10:00:00Z", End: "2025-03-01T12:00:00Z",
				Location: "Oslo", Link: "https://example.com/workshop",
			}},
		},
		&content.BlogSection{
			SectionBase: fullBase("blog"),
			Posts: []content.Post{{
				Title: "Post", Description: "Summary", Slug: "post", PublishedAt: published,
				Categories: []content.Category{{Title: "News"}}, Featured: true, Image: fullImage(), Variant: "wide",
			}},
		},
	}
	require.Len(t, cases, len(content.KnownTags()))

	env := testEnv()
	for _, s := range cases {
		t.Run(string(s.Tag()), func(t *testing.T) {
			p := mustTransform(t, s, env)
			requireDefined(t, reflect.ValueOf(p), reflect.TypeOf(p).Elem().Name())
		})
	}
}
