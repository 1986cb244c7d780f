package server

import (
	"strings"

	"postly/internal/middleware"
	"postly/internal/models"
	"postly/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	observability.PostsCreated.Inc()
	middleware.Logger.InfoContext(c.UserContext(), "post created", "post_id", post.ID)

	return c.Redirect("/profile", fiber.StatusFound)
}

// LikePost handles GET /like/:id. A like toggles: present rows are removed,
// absent ones inserted. Both primitives are idempotent so concurrent
// double-submission cannot duplicate a liker.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	liked, err := s.postRepo.IsLiked(c.Context(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if liked {
		err = s.postRepo.Unlike(c.Context(), userID, postID)
	} else {
		err = s.postRepo.Like(c.Context(), userID, postID)
	}
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	action := "like"
	if liked {
		action = "unlike"
	}
	observability.LikeToggles.WithLabelValues(action).Inc()

	return c.Redirect("/profile", fiber.StatusFound)
}

// EditPostPage handles GET /edit/:id. Only the owner may fetch the edit form.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only edit your own posts"))
	}

	return c.Render("edit", fiber.Map{"Post": post})
}

// UpdatePost handles POST /edit/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only edit your own posts"))
	}

	post.Content = content
	if err := s.postRepo.Update(c.Context(), post); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post updated", "post_id", post.ID)

	return c.Redirect("/profile", fiber.StatusFound)
}
