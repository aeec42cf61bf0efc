package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"sosmed/internal/services"
)

// FeedHandler handles HTTP requests for the feed.
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// RegisterRoutes registers the feed route behind the auth guard.
func (h *FeedHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Get("/feed", guard, h.HandleGetFeed)
}

// HandleGetFeed returns one page of the caller's timeline. Absent or
// non-numeric page and limit query values fall back to 1 and 10.
func (h *FeedHandler) HandleGetFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	feed, err := h.feedService.GetFeed(c.UserContext(), userID, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service unavailable",
			})
		}
		log.Printf("Error fetching feed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch feed",
		})
	}

	return c.JSON(feed)
}
