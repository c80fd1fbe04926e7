package carousel

import "errors"

var ErrImageNotFound = errors.New("carousel image not found")
