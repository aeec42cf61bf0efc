package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"sosmed/internal/services"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// RegisterRoutes registers the post routes behind the auth guard.
func (h *PostHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Post("/posts", guard, h.HandleCreatePost)
}

// HandleCreatePost creates a post owned by the authenticated caller.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	post, err := h.postService.CreatePost(c.UserContext(), userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentLength):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Content must be 1-200 characters",
			})
		case errors.Is(err, services.ErrStoreUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service unavailable",
			})
		default:
			log.Printf("Error creating post for user %d: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
