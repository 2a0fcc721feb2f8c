package fetcher

import (
	"errors"
	"fmt"

	"tldr/internal/domain/entity"
)

var (
	// ErrPrivateIP indicates the URL host resolves to a loopback, private or
	// link-local address.
	ErrPrivateIP = fmt.Errorf("%w: URL resolves to a private address", entity.ErrInvalidInput)

	// ErrTooManyRedirects indicates the redirect limit was reached.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded MaxBodySize.
	ErrBodyTooLarge = fmt.Errorf("%w: response body too large", entity.ErrFetch)

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = fmt.Errorf("%w: request timed out", entity.ErrFetch)
)
