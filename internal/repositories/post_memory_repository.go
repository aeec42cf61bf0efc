package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"sosmed/internal/models"
)

// MemoryPostRepository is an in-memory implementation of PostRepository.
type MemoryPostRepository struct {
	posts  map[uint]models.Post
	nextID uint
	mu     sync.RWMutex
}

// NewMemoryPostRepository creates a new instance of MemoryPostRepository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		posts:  make(map[uint]models.Post),
		nextID: 1,
	}
}

// Create adds a new post, assigning the next free id. A zero CreatedAt is
// stamped with the current time; a preset one is kept so tests can control
// ordering.
func (r *MemoryPostRepository) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.posts[post.ID] = *post
	return nil
}

// ListByAuthors returns a page of posts by the given authors, newest first
// with id descending as tiebreak.
func (r *MemoryPostRepository) ListByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid page window: offset=%d limit=%d", offset, limit)
	}

	authors := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}

	matched := []models.Post{}
	for _, p := range r.posts {
		if authors[p.UserID] {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []models.Post{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}
