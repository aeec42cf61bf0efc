package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sosmed/internal/models"
	"sosmed/internal/repositories"
	"sosmed/internal/services"
)

type feedFixture struct {
	users   *repositories.MemoryUserRepository
	posts   *repositories.MemoryPostRepository
	follows *repositories.MemoryFollowRepository
	service *services.FeedService
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	f := &feedFixture{
		users:   repositories.NewMemoryUserRepository(),
		posts:   repositories.NewMemoryPostRepository(),
		follows: repositories.NewMemoryFollowRepository(),
	}
	f.service = services.NewFeedService(f.follows, f.posts, f.users)
	return f
}

func (f *feedFixture) addUser(t *testing.T, username string) uint {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	assert.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *feedFixture) addPost(t *testing.T, userID uint, content string, at time.Time) uint {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content, CreatedAt: at}
	assert.NoError(t, f.posts.Create(context.Background(), post))
	return post.ID
}

func (f *feedFixture) addFollow(t *testing.T, follower, followee uint) {
	t.Helper()
	edge := &models.Follow{FollowerID: follower, FolloweeID: followee}
	assert.NoError(t, f.follows.Create(context.Background(), edge))
}

func TestFeedService_EmptyWhenFollowingNobody(t *testing.T) {
	f := newFeedFixture(t)
	reader := f.addUser(t, "reader")

	// Out-of-range page/limit fall back to the defaults.
	feed, err := f.service.GetFeed(context.Background(), reader, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, feed.Page)
	assert.NotNil(t, feed.Posts)
	assert.Empty(t, feed.Posts)
}

func TestFeedService_OrderingAndAuthors(t *testing.T) {
	f := newFeedFixture(t)
	ana := f.addUser(t, "ana")
	budi := f.addUser(t, "budi")
	reader := f.addUser(t, "reader")
	f.addFollow(t, reader, ana)
	f.addFollow(t, reader, budi)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := f.addPost(t, ana, "first", base)
	tied1 := f.addPost(t, budi, "second", base.Add(time.Minute))
	tied2 := f.addPost(t, ana, "third", base.Add(time.Minute))

	feed, err := f.service.GetFeed(context.Background(), reader, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, feed.Posts, 3)

	// Newest first; the creation-time tie resolves by id descending.
	assert.Equal(t, tied2, feed.Posts[0].ID)
	assert.Equal(t, tied1, feed.Posts[1].ID)
	assert.Equal(t, old, feed.Posts[2].ID)

	assert.Equal(t, "ana", feed.Posts[0].Author)
	assert.Equal(t, "budi", feed.Posts[1].Author)
	assert.Equal(t, "ana", feed.Posts[2].Author)
}

func TestFeedService_PaginationIsMonotonic(t *testing.T) {
	f := newFeedFixture(t)
	ana := f.addUser(t, "ana")
	reader := f.addUser(t, "reader")
	f.addFollow(t, reader, ana)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		f.addPost(t, ana, fmt.Sprintf("post-%d", i+1), base.Add(time.Duration(i)*time.Second))
	}

	page1, err := f.service.GetFeed(context.Background(), reader, 1, 5)
	assert.NoError(t, err)
	page2, err := f.service.GetFeed(context.Background(), reader, 2, 5)
	assert.NoError(t, err)
	page3, err := f.service.GetFeed(context.Background(), reader, 3, 5)
	assert.NoError(t, err)

	assert.Len(t, page1.Posts, 5)
	assert.Len(t, page2.Posts, 5)
	assert.Len(t, page3.Posts, 2)
	assert.Equal(t, "post-12", page1.Posts[0].Content)
	assert.Equal(t, "post-1", page3.Posts[1].Content)

	seen := make(map[uint]bool)
	for _, p := range page1.Posts {
		seen[p.ID] = true
	}
	for _, p := range page2.Posts {
		assert.False(t, seen[p.ID], "page 2 repeated post %d from page 1", p.ID)
	}
}

func TestFeedService_LimitIsCapped(t *testing.T) {
	f := newFeedFixture(t)
	ana := f.addUser(t, "ana")
	reader := f.addUser(t, "reader")
	f.addFollow(t, reader, ana)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		f.addPost(t, ana, fmt.Sprintf("post-%d", i+1), base.Add(time.Duration(i)*time.Second))
	}

	feed, err := f.service.GetFeed(context.Background(), reader, 1, 500)
	assert.NoError(t, err)
	assert.Len(t, feed.Posts, 100)
}

func TestFeedService_SkipsPostsFromNonFollowees(t *testing.T) {
	f := newFeedFixture(t)
	ana := f.addUser(t, "ana")
	budi := f.addUser(t, "budi")
	reader := f.addUser(t, "reader")
	f.addFollow(t, reader, ana)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.addPost(t, ana, "from ana", now)
	f.addPost(t, budi, "from budi", now.Add(time.Minute))

	feed, err := f.service.GetFeed(context.Background(), reader, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, feed.Posts, 1)
	assert.Equal(t, "from ana", feed.Posts[0].Content)
}
