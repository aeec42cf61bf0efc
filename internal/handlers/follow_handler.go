package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"sosmed/internal/services"
)

// FollowHandler handles HTTP requests for the follow graph.
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

// RegisterRoutes registers the follow routes behind the auth guard.
func (h *FollowHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Post("/follow/:userid", guard, h.HandleFollow)
	router.Delete("/follow/:userid", guard, h.HandleUnfollow)
}

// HandleFollow creates a follow edge from the caller to :userid.
func (h *FollowHandler) HandleFollow(c *fiber.Ctx) error {
	followeeID, err := c.ParamsInt("userid")
	if err != nil || followeeID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	followerID := c.Locals("user_id").(uint)

	if err := h.followService.Follow(c.UserContext(), followerID, uint(followeeID)); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot follow yourself",
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		case errors.Is(err, services.ErrAlreadyFollowing):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Already following this user",
			})
		case errors.Is(err, services.ErrStoreUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service unavailable",
			})
		default:
			log.Printf("Error following user %d -> %d: %v", followerID, followeeID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You are now following user %d", followeeID),
	})
}

// HandleUnfollow removes the follow edge from the caller to :userid.
func (h *FollowHandler) HandleUnfollow(c *fiber.Ctx) error {
	followeeID, err := c.ParamsInt("userid")
	if err != nil || followeeID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	followerID := c.Locals("user_id").(uint)

	if err := h.followService.Unfollow(c.UserContext(), followerID, uint(followeeID)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFollowing):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Relationship not found",
			})
		case errors.Is(err, services.ErrStoreUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service unavailable",
			})
		default:
			log.Printf("Error unfollowing user %d -> %d: %v", followerID, followeeID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You unfollowed user %d", followeeID),
	})
}
