package repositories

import (
	"context"

	"sosmed/internal/models"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// ListByAuthors returns posts authored by any of authorIDs, newest first
	// (creation time descending, id descending as tiebreak), skipping offset
	// rows and returning at most limit rows.
	ListByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, error)
}
