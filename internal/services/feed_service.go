package services

import (
	"context"
	"time"

	"sosmed/internal/repositories"
)

const (
	defaultFeedLimit = 10
	// maxFeedLimit caps a single feed page so one request cannot pull an
	// unbounded result set.
	maxFeedLimit = 100
)

// FeedPost is a post as it appears in a feed, with the author's username
// attached.
type FeedPost struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userid"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdat"`
	Author    string    `json:"author"`
}

// Feed is one page of a user's reverse-chronological timeline.
type Feed struct {
	Page  int        `json:"page"`
	Posts []FeedPost `json:"posts"`
}

// FeedService composes the follow graph, posts, and usernames into feeds.
type FeedService struct {
	followRepo   repositories.FollowRepository
	postRepo     repositories.PostRepository
	userRepo     repositories.UserRepository
	storeTimeout time.Duration
}

// NewFeedService creates a new FeedService.
func NewFeedService(followRepo repositories.FollowRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedService {
	return &FeedService{
		followRepo:   followRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		storeTimeout: 5 * time.Second,
	}
}

// GetFeed returns the page of posts authored by users that userID follows,
// newest first. Out-of-range page and limit values fall back to 1 and 10,
// and limit is capped at maxFeedLimit. Following nobody yields an empty
// post list, not an error.
func (s *FeedService) GetFeed(ctx context.Context, userID uint, page, limit int) (*Feed, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	followees, err := s.followRepo.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}

	feed := &Feed{Page: page, Posts: []FeedPost{}}
	if len(followees) == 0 {
		return feed, nil
	}

	posts, err := s.postRepo.ListByAuthors(ctx, followees, (page-1)*limit, limit)
	if err != nil {
		return nil, storeErr(err)
	}

	// Secondary lookup instead of a join: one batch query resolves every
	// author username for the page.
	seen := make(map[uint]bool, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}
	names, err := s.userRepo.UsernamesByIDs(ctx, authorIDs)
	if err != nil {
		return nil, storeErr(err)
	}

	for _, p := range posts {
		feed.Posts = append(feed.Posts, FeedPost{
			ID:        p.ID,
			UserID:    p.UserID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Author:    names[p.UserID],
		})
	}
	return feed, nil
}
