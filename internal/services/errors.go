package services

import (
	"context"
	"errors"
)

// Domain errors returned by the services. Each one maps to exactly one HTTP
// status at the handler layer; anything else is a server error.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("relationship not found")
	ErrContentLength      = errors.New("content must be 1-200 characters")
	ErrStoreUnavailable   = errors.New("storage unavailable")
)

// storeErr folds a repository failure into the domain error set. A deadline
// expiry means the store did not answer within the per-request budget.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreUnavailable
	}
	return err
}
