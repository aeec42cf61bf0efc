package repositories

import (
	"context"

	"sosmed/internal/models"
)

// FollowRepository defines the interface for follow-edge data access.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	// Delete removes the edge (followerID -> followeeID). It returns
	// ErrNotFound when no such edge exists.
	Delete(ctx context.Context, followerID, followeeID uint) error
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
}
