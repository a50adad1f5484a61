package query

import (
	"git.home.luguber.info/inful/pagebuilder/internal/content"
	"git.home.luguber.info/inful/pagebuilder/internal/foundation"
)

// DocumentType is a page schema type. The set is closed.
type DocumentType string

const (
	HomePage     DocumentType = "homePage"
	AboutPage    DocumentType = "aboutPage"
	ServicesPage DocumentType = "servicesPage"
	ContactPage  DocumentType = "contactPage"
	BlogPage     DocumentType = "blogPage"
	EventsPage   DocumentType = "eventsPage"
	PricingPage  DocumentType = "pricingPage"
)

var documentTypes = []DocumentType{HomePage, AboutPage, ServicesPage, ContactPage, BlogPage, EventsPage, PricingPage}

var documentTypeNormalizer = func() *foundation.Normalizer[DocumentType] {
	values := make(map[string]DocumentType, len(documentTypes))
	for _, t := range documentTypes {
		values[string(t)] = t
	}
	return foundation.NewNormalizer(values, "")
}()

// DocumentTypes returns every known page type.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, len(documentTypes))
	copy(out, documentTypes)
	return out
}

// ParseDocumentType resolves raw (case-insensitively) to a known page type.
func ParseDocumentType(raw string) (DocumentType, error) {
	t, err := documentTypeNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", &content.UnknownDocumentTypeError{Type: raw}
	}
	return t, nil
}

// Valid reports whether t is a known page type.
func (t DocumentType) Valid() bool {
	for _, known := range documentTypes {
		if known == t {
			return true
		}
	}
	return false
}

func (t DocumentType) String() string { return string(t) }
