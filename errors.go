package strut

import (
	serrors "github.com/xraph/strut/errors"
)

// HTTPError carries an HTTP status alongside an error message.
type HTTPError = serrors.HTTPError

var (
	BadRequest          = serrors.BadRequest
	Unauthorized        = serrors.Unauthorized
	Forbidden           = serrors.Forbidden
	NotFound            = serrors.NotFound
	UnprocessableEntity = serrors.UnprocessableEntity
	TooManyRequests     = serrors.TooManyRequests
	InternalError       = serrors.InternalError

	// GetHTTPStatusCode derives a status code from an error chain,
	// defaulting to 500.
	GetHTTPStatusCode = serrors.GetHTTPStatusCode

	// IsDependencyNotFound reports whether err is a missing-dependency
	// resolution failure.
	IsDependencyNotFound = serrors.IsDependencyNotFound

	// IsCradleAbsent reports whether err came from a cradle-style container
	// without a cradle.
	IsCradleAbsent = serrors.IsCradleAbsent
)
