package sections

// Props is the renderer input produced by a transformer. The concrete type
// is one of the *XxxProps structs in this file.
type Props interface {
	props() SectionProps
}

// SectionProps holds the renderer fields shared by every section.
type SectionProps struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description"`
	BackgroundColor string `json:"backgroundColor"`
	ShowDivider     bool   `json:"showDivider"`
}

func (p SectionProps) props() SectionProps { return p }

// LinkProps is a resolved call-to-action.
type LinkProps struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// ImageProps is a resolved image.
type ImageProps struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	LQIP   string `json:"lqip,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type HeaderProps struct {
	SectionProps
	CTA          *LinkProps  `json:"cta"`
	SecondaryCTA *LinkProps  `json:"secondaryCta"`
	Image        *ImageProps `json:"image"`
	Alignment    string      `json:"alignment"`
}

type ContentProps struct {
	SectionProps
	BodyHTML      string      `json:"bodyHtml"`
	Image         *ImageProps `json:"image"`
	ImagePosition string      `json:"imagePosition"`
}

type CardProps struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       *ImageProps `json:"image"`
	Link        *LinkProps  `json:"link"`
}

type CardsProps struct {
	SectionProps
	Cards   []CardProps `json:"cards"`
	Columns int         `json:"columns"`
}

type FAQItemProps struct {
	Key      string `json:"key"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQProps struct {
	SectionProps
	Items []FAQItemProps `json:"items"`
}

type FeatureProps struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type FeaturedProps struct {
	SectionProps
	Image    *ImageProps    `json:"image"`
	CTA      *LinkProps     `json:"cta"`
	Features []FeatureProps `json:"features"`
}

type FormFieldProps struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

type FormProps struct {
	SectionProps
	FormName       string           `json:"formName"`
	SubmitLabel    string           `json:"submitLabel"`
	SuccessMessage string           `json:"successMessage"`
	Fields         []FormFieldProps `json:"fields"`
}

type PricingPackageProps struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Price       string     `json:"price"`
	Currency    string     `json:"currency"`
	Interval    string     `json:"interval"`
	Description string     `json:"description"`
	Features    []string   `json:"features"`
	Highlighted bool       `json:"highlighted"`
	CTA         *LinkProps `json:"cta"`
}

type PricingProps struct {
	SectionProps
	Packages []PricingPackageProps `json:"packages"`
}

type TestimonialItemProps struct {
	Key     string      `json:"key"`
	Quote   string      `json:"quote"`
	Author  string      `json:"author"`
	Role    string      `json:"role"`
	Company string      `json:"company"`
	Image   *ImageProps `json:"image"`
}

type TestimonialProps struct {
	SectionProps
	Testimonials []TestimonialItemProps `json:"testimonials"`
}

type TimelineStepProps struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type TimelineProps struct {
	SectionProps
	Steps []TimelineStepProps `json:"steps"`
}

type CalendarEventProps struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
	Link     string `json:"link"`
}

type CalendarProps struct {
	SectionProps
	EmbedURL string               `json:"embedUrl"`
	Events   []CalendarEventProps `json:"events"`
}

// PostCardProps is one post as listed by a blog section.
type PostCardProps struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Slug        string      `json:"slug"`
	Date        string      `json:"date"`
	PublishedAt string      `json:"publishedAt"`
	Categories  []string    `json:"categories"`
	Image       *ImageProps `json:"image"`
	Featured    bool        `json:"featured"`
	Variant     string      `json:"variant"`
}

type BlogProps struct {
	SectionProps
	Posts []PostCardProps `json:"posts"`
}
