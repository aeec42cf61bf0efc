package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Services branch
// on these with errors.Is instead of matching error strings.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
