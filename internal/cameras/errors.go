package cameras

import "errors"

var ErrNotFound = errors.New("camera not found")
