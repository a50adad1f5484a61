package content

import (
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// Typed pipeline errors enabling errors.As classification upstream.

// UnknownDocumentTypeError reports a document type outside the closed schema set.
type UnknownDocumentTypeError struct{ Type string }

func (e *UnknownDocumentTypeError) Error() string {
	return fmt.Sprintf("unknown document type %q", e.Type)
}

// PageNotFoundError reports that the store returned no document.
type PageNotFoundError struct{ Type, Slug string }

func (e *PageNotFoundError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("no %s document with slug %q", e.Type, e.Slug)
	}
	return fmt.Sprintf("no %s document found", e.Type)
}

// InvalidSectionDataError reports a transformer invoked on the wrong variant.
type InvalidSectionDataError struct{ Expected, Actual Tag }

func (e *InvalidSectionDataError) Error() string {
	return fmt.Sprintf("invalid section data: expected %s, got %q", e.Expected, e.Actual)
}

// UnsupportedModeError reports a synchronous transform of a section that
// needs a fetch.
type UnsupportedModeError struct {
	Tag  Tag
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("%s: mode %q requires the fetching transformer", e.Tag, e.Mode)
}

// Classify maps pipeline errors onto the foundation categories used by the
// HTTP and CLI adapters. Errors that are already classified, and unknown
// errors, are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}

	var (
		unknownType *UnknownDocumentTypeError
		notFound    *PageNotFoundError
		invalid     *InvalidSectionDataError
		mode        *UnsupportedModeError
	)
	switch {
	case errors.As(err, &unknownType):
		return ferrors.WrapError(err, ferrors.CategoryValidation, "unknown document type").
			WithContext("document_type", unknownType.Type).
			Build()
	case errors.As(err, &notFound):
		b := ferrors.WrapError(err, ferrors.CategoryNotFound, "page not found").
			WithSeverity(ferrors.SeverityInfo).
			WithContext("document_type", notFound.Type)
		if notFound.Slug != "" {
			b = b.WithContext("slug", notFound.Slug)
		}
		return b.Build()
	case errors.As(err, &invalid):
		return ferrors.WrapError(err, ferrors.CategoryContent, "section transformer mismatch").
			Fatal().
			WithContext("expected", string(invalid.Expected)).
			WithContext("actual", string(invalid.Actual)).
			Build()
	case errors.As(err, &mode):
		return ferrors.WrapError(err, ferrors.CategoryContent, "unsupported transform mode").
			Fatal().
			WithContext("section", string(mode.Tag)).
			Build()
	default:
		return err
	}
}
