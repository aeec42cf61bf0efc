package services

import (
	"context"
	"log"
	"time"
	"unicode/utf8"

	"sosmed/internal/models"
	"sosmed/internal/repositories"
	"sosmed/pkg/rabbitmq"
)

// PostService handles business logic for creating posts.
type PostService struct {
	postRepo     repositories.PostRepository
	mqClient     *rabbitmq.Client
	storeTimeout time.Duration
}

// NewPostService creates a new PostService. mqClient may be nil when no
// broker is configured; publishing is skipped in that case.
func NewPostService(postRepo repositories.PostRepository, mqClient *rabbitmq.Client) *PostService {
	return &PostService{
		postRepo:     postRepo,
		mqClient:     mqClient,
		storeTimeout: 5 * time.Second,
	}
}

// CreatePost persists a post owned by the authenticated caller. Content must
// be 1 to 200 characters (code points, not bytes).
func (s *PostService) CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error) {
	if n := utf8.RuneCountInString(content); n < 1 || n > 200 {
		return nil, ErrContentLength
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	post := &models.Post{Content: content, UserID: userID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, storeErr(err)
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"postID": post.ID,
			"userID": post.UserID,
		}
		if err := s.mqClient.PublishActivity("post.created", event); err != nil {
			log.Printf("Warning: failed to publish post created event for post %d: %v", post.ID, err)
		}
	}

	return post, nil
}
