package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type wireLink struct {
	Text text `json:"text"`
	Link text `json:"link"`
	Href text `json:"href"`
}

func (w *wireLink) toLink() *Link {
	if w == nil {
		return nil
	}
	href := string(w.Link)
	if href == "" {
		href = string(w.Href)
	}
	l := Link{Text: strings.TrimSpace(string(w.Text)), Href: strings.TrimSpace(href)}
	if l.Text == "" && l.Href == "" {
		return nil
	}
	return &l
}

type wireAsset struct {
	ID       text `json:"_id"`
	Ref      text `json:"_ref"`
	URL      text `json:"url"`
	Metadata struct {
		LQIP       text `json:"lqip"`
		Dimensions struct {
			Width  number `json:"width"`
			Height number `json:"height"`
		} `json:"dimensions"`
	} `json:"metadata"`
}

type wireImage struct {
	Asset   optional[wireAsset] `json:"asset"`
	Alt     text                `json:"alt"`
	Crop    optional[struct {
		Top    fraction `json:"top"`
		Bottom fraction `json:"bottom"`
		Left   fraction `json:"left"`
		Right  fraction `json:"right"`
	}] `json:"crop"`
	Hotspot optional[struct {
		X      fraction `json:"x"`
		Y      fraction `json:"y"`
		Width  fraction `json:"width"`
		Height fraction `json:"height"`
	}] `json:"hotspot"`
}

func (w *wireImage) toImage() *Image {
	if w == nil {
		return nil
	}
	asset := w.Asset.get()
	if asset == nil {
		return nil
	}
	ref := string(asset.ID)
	if ref == "" {
		ref = string(asset.Ref)
	}
	if ref == "" && asset.URL == "" {
		return nil
	}
	img := &Image{
		AssetRef: ref,
		URL:      string(asset.URL),
		Alt:      string(w.Alt),
		LQIP:     string(asset.Metadata.LQIP),
		Width:    int(asset.Metadata.Dimensions.Width),
		Height:   int(asset.Metadata.Dimensions.Height),
	}
	if c := w.Crop.get(); c != nil {
		img.Crop = &Crop{Top: float64(c.Top), Bottom: float64(c.Bottom), Left: float64(c.Left), Right: float64(c.Right)}
	}
	if h := w.Hotspot.get(); h != nil {
		img.Hotspot = &Hotspot{X: float64(h.X), Y: float64(h.Y), Width: float64(h.Width), Height: float64(h.Height)}
	}
	return img
}

type wireSEO struct {
	Title       text                `json:"title"`
	Description text                `json:"description"`
	Image       optional[wireImage] `json:"image"`
	NoIndex     flag                `json:"noIndex"`
}

func (w *wireSEO) toSEO() *SEO {
	if w == nil {
		return nil
	}
	return &SEO{
		Title:       string(w.Title),
		Description: string(w.Description),
		Image:       w.Image.get().toImage(),
		NoIndex:     bool(w.NoIndex),
	}
}

type wireCategory struct {
	ID    text `json:"_id"`
	Title text `json:"title"`
	Slug  text `json:"slug"`
	Color text `json:"color"`
}

type wirePost struct {
	ID          text                `json:"_id"`
	Title       text                `json:"title"`
	Description text                `json:"description"`
	Slug        text                `json:"slug"`
	PublishedAt text                `json:"publishedAt"`
	Categories  list[wireCategory]  `json:"categories"`
	Featured    flag                `json:"featured"`
	Image       optional[wireImage] `json:"image"`
	Variant     text                `json:"variant"`
	Body        text                `json:"body"`
	SEO         optional[wireSEO]   `json:"seo"`
	UpdatedAt   text                `json:"_updatedAt"`
}

func (w wirePost) toPost() Post {
	cats := make([]Category, 0, len(w.Categories))
	for _, c := range w.Categories {
		cats = append(cats, Category{ID: string(c.ID), Title: string(c.Title), Slug: string(c.Slug), Color: string(c.Color)})
	}
	return Post{
		ID:          string(w.ID),
		Title:       string(w.Title),
		Description: string(w.Description),
		Slug:        string(w.Slug),
		PublishedAt: parseTime(string(w.PublishedAt)),
		Categories:  cats,
		Featured:    bool(w.Featured),
		Image:       w.Image.get().toImage(),
		Variant:     string(w.Variant),
		Body:        string(w.Body),
		SEO:         w.SEO.get().toSEO(),
		UpdatedAt:   string(w.UpdatedAt),
	}
}

// wireSection is the union of every variant's fields. Each record fills the
// subset its tag uses.
type wireSection struct {
	Type            text `json:"_type"`
	Key             text `json:"_key"`
	Title           text `json:"title"`
	DisplayTitle    text `json:"displayTitle"`
	Subtitle        text `json:"subtitle"`
	Description     text `json:"description"`
	BackgroundColor text `json:"backgroundColor"`
	ShowDivider     flag `json:"showDivider"`

	CTA           optional[wireLink]  `json:"cta"`
	SecondaryCTA  optional[wireLink]  `json:"secondaryCta"`
	Image         optional[wireImage] `json:"image"`
	Alignment     text                `json:"alignment"`
	Body          text                `json:"body"`
	ImagePosition text                `json:"imagePosition"`

	Cards   list[struct {
		Key         text                `json:"_key"`
		Title       text                `json:"title"`
		Description text                `json:"description"`
		Image       optional[wireImage] `json:"image"`
		Link        optional[wireLink]  `json:"link"`
	}] `json:"cards"`
	Columns number `json:"columns"`

	Items list[struct {
		Key      text `json:"_key"`
		Question text `json:"question"`
		Answer   text `json:"answer"`
	}] `json:"items"`

	Features list[struct {
		Key         text `json:"_key"`
		Title       text `json:"title"`
		Description text `json:"description"`
		Icon        text `json:"icon"`
	}] `json:"features"`

	FormName       text `json:"formName"`
	SubmitLabel    text `json:"submitLabel"`
	SuccessMessage text `json:"successMessage"`
	Fields         list[struct {
		Key         text `json:"_key"`
		Name        text `json:"name"`
		Label       text `json:"label"`
		Type        text `json:"type"`
		Placeholder text `json:"placeholder"`
		Required    flag `json:"required"`
	}] `json:"fields"`

	Packages list[struct {
		Key         text               `json:"_key"`
		Name        text               `json:"name"`
		Price       text               `json:"price"`
		Currency    text               `json:"currency"`
		Interval    text               `json:"interval"`
		Description text               `json:"description"`
		Features    list[text]         `json:"features"`
		Highlighted flag               `json:"highlighted"`
		CTA         optional[wireLink] `json:"cta"`
	}] `json:"packages"`

	Testimonials list[struct {
		Key     text                `json:"_key"`
		Quote   text                `json:"quote"`
		Author  text                `json:"author"`
		Role    text                `json:"role"`
		Company text                `json:"company"`
		Image   optional[wireImage] `json:"image"`
	}] `json:"testimonials"`

	Steps list[struct {
		Key         text `json:"_key"`
		Title       text `json:"title"`
		Description text `json:"description"`
		Date        text `json:"date"`
	}] `json:"steps"`

	EmbedURL text `json:"embedUrl"`
	Events   list[struct {
		Key      text `json:"_key"`
		Title    text `json:"title"`
		Start    text `json:"start"`
		End      text `json:"end"`
		Location text `json:"location"`
		Link     text `json:"link"`
	}] `json:"events"`

	Posts            list[wirePost] `json:"posts"`
	ShowAllPosts     flag           `json:"showAllPosts"`
	ShowFeaturedOnly flag           `json:"showFeaturedOnly"`
	SortOrder        text           `json:"sortOrder"`
}

func (w *wireSection) base() SectionBase {
	return SectionBase{
		Key:             strings.TrimSpace(string(w.Key)),
		InternalTitle:   string(w.Title),
		DisplayTitle:    string(w.DisplayTitle),
		Subtitle:        string(w.Subtitle),
		Description:     string(w.Description),
		BackgroundColor: string(w.BackgroundColor),
		ShowDivider:     bool(w.ShowDivider),
	}
}

// toSection builds the discriminated value for the record's tag.
func (w *wireSection) toSection() Section {
	base := w.base()
	switch Tag(w.Type) {
	case TagHeader:
		return &HeaderSection{
			SectionBase:  base,
			CTA:          w.CTA.get().toLink(),
			SecondaryCTA: w.SecondaryCTA.get().toLink(),
			Image:        w.Image.get().toImage(),
			Alignment:    string(w.Alignment),
		}
	case TagContent:
		return &ContentSection{
			SectionBase:   base,
			Body:          string(w.Body),
			Image:         w.Image.get().toImage(),
			ImagePosition: string(w.ImagePosition),
		}
	case TagCards:
		cards := make([]Card, 0, len(w.Cards))
		for _, c := range w.Cards {
			cards = append(cards, Card{
				Key:         string(c.Key),
				Title:       string(c.Title),
				Description: string(c.Description),
				Image:       c.Image.get().toImage(),
				Link:        c.Link.get().toLink(),
			})
		}
		return &CardsSection{SectionBase: base, Cards: cards, Columns: int(w.Columns)}
	case TagFAQ:
		items := make([]FAQItem, 0, len(w.Items))
		for _, it := range w.Items {
			items = append(items, FAQItem{Key: string(it.Key), Question: string(it.Question), Answer: string(it.Answer)})
		}
		return &FAQSection{SectionBase: base, Items: items}
	case TagFeatured:
		features := make([]Feature, 0, len(w.Features))
		for _, f := range w.Features {
			features = append(features, Feature{Key: string(f.Key), Title: string(f.Title), Description: string(f.Description), Icon: string(f.Icon)})
		}
		return &FeaturedSection{
			SectionBase: base,
			Image:       w.Image.get().toImage(),
			CTA:         w.CTA.get().toLink(),
			Features:    features,
		}
	case TagForm:
		fields := make([]FormField, 0, len(w.Fields))
		for _, f := range w.Fields {
			fields = append(fields, FormField{
				Key:         string(f.Key),
				Name:        string(f.Name),
				Label:       string(f.Label),
				Type:        string(f.Type),
				Placeholder: string(f.Placeholder),
				Required:    bool(f.Required),
			})
		}
		return &FormSection{
			SectionBase:    base,
			FormName:       string(w.FormName),
			SubmitLabel:    string(w.SubmitLabel),
			SuccessMessage: string(w.SuccessMessage),
			Fields:         fields,
		}
	case TagPricing:
		packages := make([]PricingPackage, 0, len(w.Packages))
		for _, p := range w.Packages {
			features := make([]string, 0, len(p.Features))
			for _, f := range p.Features {
				features = append(features, string(f))
			}
			packages = append(packages, PricingPackage{
				Key:         string(p.Key),
				Name:        string(p.Name),
				Price:       string(p.Price),
				Currency:    string(p.Currency),
				Interval:    string(p.Interval),
				Description: string(p.Description),
				Features:    features,
				Highlighted: bool(p.Highlighted),
				CTA:         p.CTA.get().toLink(),
			})
		}
		return &PricingSection{SectionBase: base, Packages: packages}
	case TagTestimonial:
		testimonials := make([]Testimonial, 0, len(w.Testimonials))
		for _, t := range w.Testimonials {
			testimonials = append(testimonials, Testimonial{
				Key:     string(t.Key),
				Quote:   string(t.Quote),
				Author:  string(t.Author),
				Role:    string(t.Role),
				Company: string(t.Company),
				Image:   t.Image.get().toImage(),
			})
		}
		return &TestimonialSection{SectionBase: base, Testimonials: testimonials}
	case TagTimeline:
		steps := make([]TimelineStep, 0, len(w.Steps))
		for _, s := range w.Steps {
			steps = append(steps, TimelineStep{Key: string(s.Key), Title: string(s.Title), Description: string(s.Description), Date: string(s.Date)})
		}
		return &TimelineSection{SectionBase: base, Steps: steps}
	case TagCalendar:
		events := make([]CalendarEvent, 0, len(w.Events))
		for _, e := range w.Events {
			events = append(events, CalendarEvent{
				Key:      string(e.Key),
				Title:    string(e.Title),
				Start:    string(e.Start),
				End:      string(e.End),
				Location: string(e.Location),
				Link:     string(e.Link),
			})
		}
		return &CalendarSection{SectionBase: base, EmbedURL: string(w.EmbedURL), Events: events}
	case TagBlog:
		posts := make([]Post, 0, len(w.Posts))
		for _, p := range w.Posts {
			posts = append(posts, p.toPost())
		}
		return &BlogSection{
			SectionBase:      base,
			Posts:            posts,
			ShowAllPosts:     bool(w.ShowAllPosts),
			ShowFeaturedOnly: bool(w.ShowFeaturedOnly),
			SortOrder:        parseSortOrder(string(w.SortOrder)),
		}
	default:
		return &UnknownSection{SectionBase: base, RawTag: string(w.Type)}
	}
}

type wireDocument struct {
	ID        text                  `json:"_id"`
	Type      text                  `json:"_type"`
	Rev       text                  `json:"_rev"`
	UpdatedAt text                  `json:"_updatedAt"`
	Title     text                  `json:"title"`
	Slug      text                  `json:"slug"`
	SEO       optional[wireSEO]     `json:"seo"`
	Sections  list[json.RawMessage] `json:"sections"`
}

// DecodeSection parses a single raw section record. Records that are not
// JSON objects decode to an UnknownSection with an empty tag.
func DecodeSection(raw json.RawMessage) Section {
	var w wireSection
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &UnknownSection{}
	}
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return &UnknownSection{}
	}
	return w.toSection()
}

// DecodeDocument parses a page document. A null or empty result yields
// (nil, nil): the store found no document.
func DecodeDocument(raw json.RawMessage) (*Document, error) {
	if isNull(raw) {
		return nil, nil
	}
	var w wireDocument
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc := &Document{
		ID:        string(w.ID),
		Type:      string(w.Type),
		Title:     string(w.Title),
		Slug:      string(w.Slug),
		SEO:       w.SEO.get().toSEO(),
		Rev:       string(w.Rev),
		UpdatedAt: string(w.UpdatedAt),
		Sections:  make([]Section, 0, len(w.Sections)),
	}
	for _, raw := range w.Sections {
		doc.Sections = append(doc.Sections, DecodeSection(raw))
	}
	return doc, nil
}

// DecodePost parses a single post. A null result yields (nil, nil).
func DecodePost(raw json.RawMessage) (*Post, error) {
	if isNull(raw) {
		return nil, nil
	}
	var w wirePost
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	p := w.toPost()
	return &p, nil
}

// DecodePosts parses a list of posts, preserving order. Elements that are
// not objects are dropped.
func DecodePosts(raw json.RawMessage) ([]Post, error) {
	if isNull(raw) {
		return []Post{}, nil
	}
	if bytes.TrimSpace(raw)[0] != '[' {
		return nil, errors.New("decode posts: expected array")
	}
	var ws list[wirePost]
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]Post, 0, len(ws))
	for _, w := range ws {
		posts = append(posts, w.toPost())
	}
	return posts, nil
}

// PageRef is a sitemap entry: a document with a defined slug.
type PageRef struct {
	ID        string
	Type      string
	Slug      string
	UpdatedAt string
}

// DecodePageRefs parses the result of an all-pages query.
func DecodePageRefs(raw json.RawMessage) ([]PageRef, error) {
	if isNull(raw) {
		return []PageRef{}, nil
	}
	var ws []struct {
		ID        text `json:"_id"`
		Type      text `json:"_type"`
		Slug      text `json:"slug"`
		UpdatedAt text `json:"_updatedAt"`
	}
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, fmt.Errorf("decode page refs: %w", err)
	}
	refs := make([]PageRef, 0, len(ws))
	for _, w := range ws {
		if w.Slug == "" {
			continue
		}
		refs = append(refs, PageRef{ID: string(w.ID), Type: string(w.Type), Slug: string(w.Slug), UpdatedAt: string(w.UpdatedAt)})
	}
	return refs, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func parseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortOldest)) {
		return SortOldest
	}
	return SortNewest
}

// parseTime accepts RFC 3339 timestamps and plain dates; anything else is the
// zero time.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
