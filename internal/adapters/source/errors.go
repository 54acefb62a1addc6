package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrRead   = errors.New("read records failed")
	ErrDecode = errors.New("decode records failed")
)
