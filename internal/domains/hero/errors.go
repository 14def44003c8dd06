package hero

import "errors"

var ErrNotFound = errors.New("hero image not found")
