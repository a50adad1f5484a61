package page

import (
	"errors"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
)

func isNotFound(err error) bool {
	var nf *content.PageNotFoundError
	return errors.As(err, &nf)
}

func isInvalid(err error) bool {
	var (
		unknown *content.UnknownDocumentTypeError
		invalid *content.InvalidSectionDataError
		mode    *content.UnsupportedModeError
	)
	return errors.As(err, &unknown) || errors.As(err, &invalid) || errors.As(err, &mode)
}
