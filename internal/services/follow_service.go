package services

import (
	"context"
	"errors"
	"log"
	"time"

	"sosmed/internal/models"
	"sosmed/internal/repositories"
	"sosmed/pkg/rabbitmq"
)

// FollowService handles business logic for the follow graph.
type FollowService struct {
	followRepo   repositories.FollowRepository
	userRepo     repositories.UserRepository
	mqClient     *rabbitmq.Client
	storeTimeout time.Duration
}

// NewFollowService creates a new FollowService. mqClient may be nil when no
// broker is configured.
func NewFollowService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *FollowService {
	return &FollowService{
		followRepo:   followRepo,
		userRepo:     userRepo,
		mqClient:     mqClient,
		storeTimeout: 5 * time.Second,
	}
}

// Follow creates the edge followerID -> followeeID. The followee must exist,
// must not be the follower, and must not already be followed. A concurrent
// duplicate insert caught by the store's unique index is still reported as
// ErrAlreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return storeErr(err)
	}

	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return storeErr(err)
	}
	if exists {
		return ErrAlreadyFollowing
	}

	edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.followRepo.Create(ctx, edge); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return storeErr(err)
	}

	s.publish("follow.created", followerID, followeeID)
	return nil
}

// Unfollow removes the edge followerID -> followeeID.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFollowing
		}
		return storeErr(err)
	}

	s.publish("follow.removed", followerID, followeeID)
	return nil
}

func (s *FollowService) publish(event string, followerID, followeeID uint) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"followerID": followerID,
		"followeeID": followeeID,
	}
	if err := s.mqClient.PublishActivity(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for %d -> %d: %v", event, followerID, followeeID, err)
	}
}
