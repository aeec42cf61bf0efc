package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sosmed/internal/models"
)

type followKey struct {
	follower uint
	followee uint
}

// MemoryFollowRepository is an in-memory implementation of FollowRepository.
type MemoryFollowRepository struct {
	edges  map[followKey]models.Follow
	nextID uint
	mu     sync.RWMutex
}

// NewMemoryFollowRepository creates a new instance of MemoryFollowRepository.
func NewMemoryFollowRepository() *MemoryFollowRepository {
	return &MemoryFollowRepository{
		edges:  make(map[followKey]models.Follow),
		nextID: 1,
	}
}

// Create adds a follow edge, rejecting duplicates of the same ordered pair.
func (r *MemoryFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{follower: follow.FollowerID, followee: follow.FolloweeID}
	if _, ok := r.edges[key]; ok {
		return fmt.Errorf("follow %d -> %d: %w", follow.FollowerID, follow.FolloweeID, ErrDuplicate)
	}
	follow.ID = r.nextID
	r.nextID++
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	r.edges[key] = *follow
	return nil
}

// Delete removes the edge (followerID -> followeeID).
func (r *MemoryFollowRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{follower: followerID, followee: followeeID}
	if _, ok := r.edges[key]; !ok {
		return fmt.Errorf("follow %d -> %d: %w", followerID, followeeID, ErrNotFound)
	}
	delete(r.edges, key)
	return nil
}

// Exists reports whether the edge (followerID -> followeeID) is present.
func (r *MemoryFollowRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.edges[followKey{follower: followerID, followee: followeeID}]
	return ok, nil
}

// FolloweeIDs returns the ids of every user that followerID follows.
func (r *MemoryFollowRepository) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := []uint{}
	for key := range r.edges {
		if key.follower == followerID {
			ids = append(ids, key.followee)
		}
	}
	return ids, nil
}
