package content

import "reflect"

// Section is one block of page content. The set of implementations is closed:
// the eleven variants below plus UnknownSection.
type Section interface {
	// Tag returns the discriminator the record was decoded from.
	Tag() Tag
	// Common returns the fields shared by every variant.
	Common() SectionBase
	isSection()
}

// SectionBase holds the fields shared by every section variant.
type SectionBase struct {
	Key             string
	InternalTitle   string // editor-facing only, never rendered
	DisplayTitle    string
	Subtitle        string
	Description     string
	BackgroundColor string
	ShowDivider     bool
}

func (b SectionBase) Common() SectionBase { return b }
func (SectionBase) isSection()            {}

// Link is a call-to-action or navigation target.
type Link struct {
	Text string
	Href string
}

// HeaderSection is the page hero.
type HeaderSection struct {
	SectionBase
	CTA          *Link
	SecondaryCTA *Link
	Image        *Image
	Alignment    string
}

// ContentSection is a block of markdown body text with an optional image.
type ContentSection struct {
	SectionBase
	Body          string
	Image         *Image
	ImagePosition string
}

// Card is one element of a CardsSection.
type Card struct {
	Key         string
	Title       string
	Description string
	Image       *Image
	Link        *Link
}

// CardsSection is a grid of cards.
type CardsSection struct {
	SectionBase
	Cards   []Card
	Columns int
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Key      string
	Question string
	Answer   string
}

// FAQSection is a list of questions and answers.
type FAQSection struct {
	SectionBase
	Items []FAQItem
}

// Feature is one highlight of a FeaturedSection.
type Feature struct {
	Key         string
	Title       string
	Description string
	Icon        string
}

// FeaturedSection highlights a product or service.
type FeaturedSection struct {
	SectionBase
	Image    *Image
	CTA      *Link
	Features []Feature
}

// FormField is one input of a FormSection.
type FormField struct {
	Key         string
	Name        string
	Label       string
	Type        string
	Placeholder string
	Required    bool
}

// FormSection is a contact or signup form.
type FormSection struct {
	SectionBase
	FormName       string
	SubmitLabel    string
	SuccessMessage string
	Fields         []FormField
}

// PricingPackage is one plan of a PricingSection.
type PricingPackage struct {
	Key         string
	Name        string
	Price       string
	Currency    string
	Interval    string
	Description string
	Features    []string
	Highlighted bool
	CTA         *Link
}

// PricingSection lists pricing packages.
type PricingSection struct {
	SectionBase
	Packages []PricingPackage
}

// Testimonial is one customer quote.
type Testimonial struct {
	Key     string
	Quote   string
	Author  string
	Role    string
	Company string
	Image   *Image
}

// TestimonialSection lists testimonials.
type TestimonialSection struct {
	SectionBase
	Testimonials []Testimonial
}

// TimelineStep is one milestone of a TimelineSection.
type TimelineStep struct {
	Key         string
	Title       string
	Description string
	Date        string
}

// TimelineSection lists milestones in editor order.
type TimelineSection struct {
	SectionBase
	Steps []TimelineStep
}

// CalendarEvent is one entry of a CalendarSection.
type CalendarEvent struct {
	Key      string
	Title    string
	Start    string
	End      string
	Location string
	Link     string
}

// CalendarSection embeds a booking calendar and/or lists events.
type CalendarSection struct {
	SectionBase
	EmbedURL string
	Events   []CalendarEvent
}

// SortOrder controls blog post ordering.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// BlogSection lists posts, either editor-curated (Posts) or every post
// (ShowAllPosts) fetched at render time.
type BlogSection struct {
	SectionBase
	Posts            []Post
	ShowAllPosts     bool
	ShowFeaturedOnly bool
	SortOrder        SortOrder
}

// UnknownSection is a record whose tag is not a known variant.
type UnknownSection struct {
	SectionBase
	RawTag string
}

func (HeaderSection) Tag() Tag      { return TagHeader }
func (ContentSection) Tag() Tag     { return TagContent }
func (CardsSection) Tag() Tag       { return TagCards }
func (FAQSection) Tag() Tag         { return TagFAQ }
func (FeaturedSection) Tag() Tag    { return TagFeatured }
func (FormSection) Tag() Tag        { return TagForm }
func (PricingSection) Tag() Tag     { return TagPricing }
func (TestimonialSection) Tag() Tag { return TagTestimonial }
func (TimelineSection) Tag() Tag    { return TagTimeline }
func (CalendarSection) Tag() Tag    { return TagCalendar }
func (BlogSection) Tag() Tag        { return TagBlog }
func (u UnknownSection) Tag() Tag   { return Tag(u.RawTag) }

// TagOf returns the tag of s, or "" when s is nil or a nil variant pointer.
func TagOf(s Section) Tag {
	if s == nil {
		return ""
	}
	if v := reflect.ValueOf(s); v.Kind() == reflect.Pointer && v.IsNil() {
		return ""
	}
	return s.Tag()
}
