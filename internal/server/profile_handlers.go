package server

import (
	"path/filepath"

	"postly/internal/middleware"
	"postly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Profile handles GET /profile
func (s *Server) Profile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByIDWithPosts(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Render("profile", fiber.Map{"User": user})
}

// UploadPage handles GET /profile/upload
func (s *Server) UploadPage(c *fiber.Ctx) error {
	return c.Render("upload", fiber.Map{})
}

// Upload handles POST /upload. The file is stored under the configured
// upload directory with a random name; the original filename is discarded
// except for its extension.
func (s *Server) Upload(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(s.config.UploadDir, filename)
	if err := c.SaveFile(file, dest); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	if _, err := s.userRepo.GetByID(c.Context(), userID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if err := s.userRepo.UpdateProfilePic(c.Context(), userID, filename); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "profile picture updated",
		"user_id", userID, "file", filename)

	return c.SendString("File uploaded successfully")
}
