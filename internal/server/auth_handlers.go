package server

import (
	"strconv"
	"strings"
	"time"

	"postly/internal/auth"
	"postly/internal/middleware"
	"postly/internal/models"
	"postly/internal/observability"
	"postly/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterPage handles GET /register
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{})
}

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	name := strings.TrimSpace(c.FormValue("name"))
	ageStr := strings.TrimSpace(c.FormValue("age"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if username == "" || name == "" || ageStr == "" || email == "" || password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, name, age, email and password are required"))
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Age must be a number"))
	}

	// Validate input formats
	if err := validation.ValidateUsername(username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateAge(age); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	user := &models.User{
		Username: username,
		Name:     name,
		Age:      age,
		Email:    email,
		Password: hashedPassword,
	}

	// The unique index on email makes the duplicate check race-free; a
	// concurrent duplicate surfaces as a ValidationError here.
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, models.StatusForError(createErr), createErr)
	}

	observability.RegistrationsTotal.Inc()
	middleware.Logger.InfoContext(c.UserContext(), "account registered",
		"user_id", user.ID, "username", user.Username)

	return c.Status(fiber.StatusCreated).SendString("Account created successfully")
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Unknown email and wrong password are indistinguishable to the client.
	if user == nil || !auth.CheckPassword(password, user.Password) {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid email or password"))
	}

	token, err := s.issuer.Issue(user.Email, user.ID)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(auth.TokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	observability.LoginsTotal.WithLabelValues("success").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "login succeeded", "user_id", user.ID)

	return c.Redirect("/profile", fiber.StatusFound)
}

// Logout handles GET /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/login", fiber.StatusFound)
}
