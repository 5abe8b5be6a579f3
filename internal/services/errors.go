package services

import "errors"

// Domain errors returned by the services. Handlers match on these with
// errors.Is to pick a status code and a field-keyed message.
var (
	// ErrReservedUsername rejects the reserved username "me".
	ErrReservedUsername = errors.New("username 'me' is reserved")
	// ErrUsernameTaken means the username belongs to a different account.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrEmailTaken means the email belongs to a different account.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidConfirmationCode rejects a stale, consumed or forged code.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	// ErrReviewExists is the canonical one-review-per-title message.
	ErrReviewExists = errors.New("only one review per title is allowed")
	// ErrUnknownCategory means a write referenced a category slug that does
	// not exist.
	ErrUnknownCategory = errors.New("unknown category slug")
	// ErrUnknownGenre means a write referenced a genre slug that does not
	// exist.
	ErrUnknownGenre = errors.New("unknown genre slug")
)
