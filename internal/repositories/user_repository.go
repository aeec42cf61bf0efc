package repositories

import (
	"context"

	"sosmed/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// UsernamesByIDs resolves a batch of user ids to usernames in one query.
	// IDs with no matching user are simply absent from the result map.
	UsernamesByIDs(ctx context.Context, ids []uint) (map[uint]string, error)
}
