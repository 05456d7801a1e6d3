package viewer

import "errors"

// ErrNoDocument is returned by operations that need a loaded document before
// the first successful fetch.
var ErrNoDocument = errors.New("no graph document loaded")
