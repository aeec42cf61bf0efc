package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sosmed/internal/models"
)

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{
		db: db,
	}
}

// Create inserts a follow edge. A collision on the (follower, followee)
// unique index is reported as ErrDuplicate.
func (r *GORMFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("follow %d -> %d: %w", follow.FollowerID, follow.FolloweeID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// Delete removes the edge (followerID -> followeeID).
func (r *GORMFollowRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow %d -> %d: %w", followerID, followeeID, ErrNotFound)
	}
	return nil
}

// Exists reports whether the edge (followerID -> followeeID) is present.
func (r *GORMFollowRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

// FolloweeIDs returns the ids of every user that followerID follows.
func (r *GORMFollowRepository) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followees: %w", err)
	}
	return ids, nil
}
