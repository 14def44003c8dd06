package content

import "errors"

// ErrQueryTooShort rejects free-text searches that would scan the
// whole corpus.
var ErrQueryTooShort = errors.New("search query must be longer than 2 characters")

// ErrUnknownResource is returned when a revalidation request names a
// resource this service does not serve.
var ErrUnknownResource = errors.New("unknown content resource")
