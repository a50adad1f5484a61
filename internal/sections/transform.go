package sections

import (
	"strings"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

const (
	defaultAlignment     = "center"
	defaultImagePosition = "right"
	defaultColumns       = 3
	maxColumns           = 4
)

// as asserts that s is the variant registered under want.
func as[T any, PT interface {
	*T
	content.Section
}](s content.Section, want content.Tag) (*T, error) {
	v, ok := s.(PT)
	if !ok || (*T)(v) == nil {
		return nil, &content.InvalidSectionDataError{Expected: want, Actual: content.TagOf(s)}
	}
	return (*T)(v), nil
}

func sectionProps(b content.SectionBase) SectionProps {
	return SectionProps{
		Title:           strings.TrimSpace(b.DisplayTitle),
		Subtitle:        b.Subtitle,
		Description:     b.Description,
		BackgroundColor: b.BackgroundColor,
		ShowDivider:     b.ShowDivider,
	}
}

func linkProps(l *content.Link) *LinkProps {
	if l == nil || strings.TrimSpace(l.Href) == "" {
		return nil
	}
	return &LinkProps{Text: l.Text, Href: strings.TrimSpace(l.Href)}
}

func present(s string) bool { return strings.TrimSpace(s) != "" }

func oneOf(v, fallback string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

func transformHeader(s content.Section, env Env) (Props, error) {
	h, err := as[content.HeaderSection](s, content.TagHeader)
	if err != nil {
		return nil, err
	}
	return &HeaderProps{
		SectionProps: sectionProps(h.SectionBase),
		CTA:          linkProps(h.CTA),
		SecondaryCTA: linkProps(h.SecondaryCTA),
		Image:        env.resolveImage(h.Image, headerImage),
		Alignment:    oneOf(h.Alignment, defaultAlignment, "left", "center", "right"),
	}, nil
}

func transformContent(s content.Section, env Env) (Props, error) {
	c, err := as[content.ContentSection](s, content.TagContent)
	if err != nil {
		return nil, err
	}
	var body string
	if env.RichText != nil {
		if body, err = env.RichText.Render(c.Body); err != nil {
			return nil, err
		}
	}
	return &ContentProps{
		SectionProps:  sectionProps(c.SectionBase),
		BodyHTML:      body,
		Image:         env.resolveImage(c.Image, contentImage),
		ImagePosition: oneOf(c.ImagePosition, defaultImagePosition, "left", "right"),
	}, nil
}

func transformCards(s content.Section, env Env) (Props, error) {
	c, err := as[content.CardsSection](s, content.TagCards)
	if err != nil {
		return nil, err
	}
	cards := make([]CardProps, 0, len(c.Cards))
	for _, card := range c.Cards {
		if !present(card.Title) {
			continue
		}
		cards = append(cards, CardProps{
			Key:         card.Key,
			Title:       card.Title,
			Description: card.Description,
			Image:       env.resolveImage(card.Image, cardImage),
			Link:        linkProps(card.Link),
		})
	}
	columns := c.Columns
	if columns < 1 || columns > maxColumns {
		columns = defaultColumns
	}
	return &CardsProps{SectionProps: sectionProps(c.SectionBase), Cards: cards, Columns: columns}, nil
}

func transformFAQ(s content.Section, _ Env) (Props, error) {
	f, err := as[content.FAQSection](s, content.TagFAQ)
	if err != nil {
		return nil, err
	}
	items := make([]FAQItemProps, 0, len(f.Items))
	for _, it := range f.Items {
		if !present(it.Question) || !present(it.Answer) {
			continue
		}
		items = append(items, FAQItemProps{Key: it.Key, Question: it.Question, Answer: it.Answer})
	}
	return &FAQProps{SectionProps: sectionProps(f.SectionBase), Items: items}, nil
}

func transformFeatured(s content.Section, env Env) (Props, error) {
	f, err := as[content.FeaturedSection](s, content.TagFeatured)
	if err != nil {
		return nil, err
	}
	features := make([]FeatureProps, 0, len(f.Features))
	for _, ft := range f.Features {
		if !present(ft.Title) {
			continue
		}
		features = append(features, FeatureProps{Key: ft.Key, Title: ft.Title, Description: ft.Description, Icon: ft.Icon})
	}
	return &FeaturedProps{
		SectionProps: sectionProps(f.SectionBase),
		Image:        env.resolveImage(f.Image, featuredImage),
		CTA:          linkProps(f.CTA),
		Features:     features,
	}, nil
}

func transformForm(s content.Section, _ Env) (Props, error) {
	f, err := as[content.FormSection](s, content.TagForm)
	if err != nil {
		return nil, err
	}
	fields := make([]FormFieldProps, 0, len(f.Fields))
	for _, fd := range f.Fields {
		if !present(fd.Name) {
			continue
		}
		fields = append(fields, FormFieldProps{
			Key:         fd.Key,
			Name:        strings.TrimSpace(fd.Name),
			Label:       fd.Label,
			Type:        oneOf(fd.Type, "text", "text", "email", "tel", "textarea", "select", "checkbox", "number", "date"),
			Placeholder: fd.Placeholder,
			Required:    fd.Required,
		})
	}
	return &FormProps{
		SectionProps:   sectionProps(f.SectionBase),
		FormName:       f.FormName,
		SubmitLabel:    f.SubmitLabel,
		SuccessMessage: f.SuccessMessage,
		Fields:         fields,
	}, nil
}

func transformPricing(s content.Section, _ Env) (Props, error) {
	p, err := as[content.PricingSection](s, content.TagPricing)
	if err != nil {
		return nil, err
	}
	packages := make([]PricingPackageProps, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		if !present(pkg.Name) {
			continue
		}
		features := make([]string, 0, len(pkg.Features))
		for _, f := range pkg.Features {
			if present(f) {
				features = append(features, f)
			}
		}
		packages = append(packages, PricingPackageProps{
			Key:         pkg.Key,
			Name:        pkg.Name,
			Price:       pkg.Price,
			Currency:    pkg.Currency,
			Interval:    pkg.Interval,
			Description: pkg.Description,
			Features:    features,
			Highlighted: pkg.Highlighted,
			CTA:         linkProps(pkg.CTA),
		})
	}
	return &PricingProps{SectionProps: sectionProps(p.SectionBase), Packages: packages}, nil
}

func transformTestimonial(s content.Section, env Env) (Props, error) {
	t, err := as[content.TestimonialSection](s, content.TagTestimonial)
	if err != nil {
		return nil, err
	}
	items := make([]TestimonialItemProps, 0, len(t.Testimonials))
	for _, it := range t.Testimonials {
		if !present(it.Quote) || !present(it.Author) {
			continue
		}
		items = append(items, TestimonialItemProps{
			Key:     it.Key,
			Quote:   it.Quote,
			Author:  it.Author,
			Role:    it.Role,
			Company: it.Company,
			Image:   env.resolveImage(it.Image, testimonialImage),
		})
	}
	return &TestimonialProps{SectionProps: sectionProps(t.SectionBase), Testimonials: items}, nil
}

func transformTimeline(s content.Section, _ Env) (Props, error) {
	t, err := as[content.TimelineSection](s, content.TagTimeline)
	if err != nil {
		return nil, err
	}
	steps := make([]TimelineStepProps, 0, len(t.Steps))
	for _, st := range t.Steps {
		if !present(st.Title) {
			continue
		}
		steps = append(steps, TimelineStepProps{Key: st.Key, Title: st.Title, Description: st.Description, Date: st.Date})
	}
	return &TimelineProps{SectionProps: sectionProps(t.SectionBase), Steps: steps}, nil
}

func transformCalendar(s content.Section, _ Env) (Props, error) {
	c, err := as[content.CalendarSection](s, content.TagCalendar)
	if err != nil {
		return nil, err
	}
	events := make([]CalendarEventProps, 0, len(c.Events))
	for _, ev := range c.Events {
		if !present(ev.Title) || !present(ev.Start) {
			continue
		}
		events = append(events, CalendarEventProps{
			Key:      ev.Key,
			Title:    ev.Title,
			Start:    ev.Start,
			End:      ev.End,
			Location: ev.Location,
			Link:     ev.Link,
		})
	}
	return &CalendarProps{
		SectionProps: sectionProps(c.SectionBase),
		EmbedURL:     strings.TrimSpace(c.EmbedURL),
		Events:       events,
	}, nil
}
