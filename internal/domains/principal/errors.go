package principal

import "errors"

var ErrNotFound = errors.New("principal message not found")
