package content

// Tag is a section discriminator as stored in the CMS `_type` field.
type Tag string

const (
	TagHeader      Tag = "sectionHeader"
	TagContent     Tag = "sectionContent"
	TagCards       Tag = "sectionCards"
	TagFAQ         Tag = "sectionFAQ"
	TagFeatured    Tag = "sectionFeatured"
	TagForm        Tag = "sectionForm"
	TagPricing     Tag = "sectionPricing"
	TagTestimonial Tag = "sectionTestimonial"
	TagTimeline    Tag = "sectionTimeline"
	TagCalendar    Tag = "sectionCalendar"
	TagBlog        Tag = "sectionBlog"
)

var knownTags = []Tag{
	TagHeader,
	TagContent,
	TagCards,
	TagFAQ,
	TagFeatured,
	TagForm,
	TagPricing,
	TagTestimonial,
	TagTimeline,
	TagCalendar,
	TagBlog,
}

// KnownTags returns every section tag in declaration order.
func KnownTags() []Tag {
	out := make([]Tag, len(knownTags))
	copy(out, knownTags)
	return out
}

// IsKnown reports whether t names one of the section variants.
func (t Tag) IsKnown() bool {
	for _, k := range knownTags {
		if k == t {
			return true
		}
	}
	return false
}

func (t Tag) String() string { return string(t) }
