package sections

import (
	"context"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

// TransformFunc maps a section to its renderer props.
type TransformFunc func(s content.Section, env Env) (Props, error)

// FetchTransformFunc is a transform that may read from the content store.
type FetchTransformFunc func(ctx context.Context, s content.Section, env Env) (Props, error)

// Entry binds a section tag to its renderer and transformers.
// TransformWithFetch is nil for every variant that never needs I/O.
type Entry struct {
	Tag                content.Tag
	Component          string
	Transform          TransformFunc
	TransformWithFetch FetchTransformFunc
}

// Registry is an immutable tag → entry table.
type Registry struct {
	entries map[content.Tag]Entry
	order   []content.Tag
}

var defaultRegistry = newRegistry([]Entry{
	{Tag: content.TagHeader, Component: "HeaderSection", Transform: transformHeader},
	{Tag: content.TagContent, Component: "ContentSection", Transform: transformContent},
	{Tag: content.TagCards, Component: "CardsSection", Transform: transformCards},
	{Tag: content.TagFAQ, Component: "FAQSection", Transform: transformFAQ},
	{Tag: content.TagFeatured, Component: "FeaturedSection", Transform: transformFeatured},
	{Tag: content.TagForm, Component: "FormSection", Transform: transformForm},
	{Tag: content.TagPricing, Component: "PricingSection", Transform: transformPricing},
	{Tag: content.TagTestimonial, Component: "TestimonialSection", Transform: transformTestimonial},
	{Tag: content.TagTimeline, Component: "TimelineSection", Transform: transformTimeline},
	{Tag: content.TagCalendar, Component: "CalendarSection", Transform: transformCalendar},
	{Tag: content.TagBlog, Component: "BlogSection", Transform: transformBlog, TransformWithFetch: transformBlogWithFetch},
})

func newRegistry(entries []Entry) *Registry {
	r := &Registry{entries: make(map[content.Tag]Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.Tag] = e
		r.order = append(r.order, e.Tag)
	}
	return r
}

// DefaultRegistry returns the registry of every known section variant.
// The returned value is shared and must not be modified.
func DefaultRegistry() *Registry { return defaultRegistry }

// IsKnownSection reports whether tag has a registered renderer.
func IsKnownSection(tag content.Tag) bool {
	_, ok := defaultRegistry.entries[tag]
	return ok
}

// Lookup returns the entry for tag.
func (r *Registry) Lookup(tag content.Tag) (Entry, bool) {
	e, ok := r.entries[tag]
	return e, ok
}

// Tags returns the registered tags in registration order.
func (r *Registry) Tags() []content.Tag {
	out := make([]content.Tag, len(r.order))
	copy(out, r.order)
	return out
}

// NeedsFetch reports whether s must be transformed with TransformWithFetch.
func NeedsFetch(s content.Section) bool {
	b, ok := s.(*content.BlogSection)
	return ok && b != nil && b.ShowAllPosts
}
