package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Services and
// handlers match on these with errors.Is to pick a response.
var (
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a uniqueness constraint (username, email, slug, or
	// the one-review-per-author-per-title index) rejected the write.
	ErrDuplicate = errors.New("record already exists")
)
