package middleware

import (
	"context"
	"errors"
	"log/slog"

	"postly/internal/auth"
	"postly/internal/models"
	"postly/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the name of the session cookie.
const TokenCookie = "token"

var issuer *auth.TokenIssuer

// InitMiddleware initializes the auth gate with the given token issuer.
func InitMiddleware(i *auth.TokenIssuer) {
	issuer = i
}

// LoginRequired enforces authentication for protected routes.
//
// A request with no session cookie is treated as never-logged-in and is
// redirected to /login. A request with a cookie that fails verification gets
// a 403, not a redirect; the asymmetry distinguishes "not logged in" from
// "bad credential" and is relied on by callers.
func LoginRequired(c *fiber.Ctx) error {
	tokenString := c.Cookies(TokenCookie)
	if tokenString == "" {
		observability.AuthFailures.WithLabelValues("missing").Inc()
		return c.Redirect("/login", fiber.StatusFound)
	}

	claims, err := issuer.Verify(tokenString)
	if err != nil {
		reason := rejectionReason(err)
		observability.AuthFailures.WithLabelValues(reason).Inc()
		Logger.WarnContext(c.UserContext(), "session token rejected",
			slog.String("reason", reason),
			slog.String("path", c.Path()),
		)
		authErr := models.NewAuthenticationError("Invalid or expired token")
		return models.RespondWithError(c, models.StatusForError(authErr), authErr)
	}

	c.Locals("userID", claims.UserID)
	c.Locals("email", claims.Email)
	ctx := context.WithValue(c.UserContext(), UserIDKey, claims.UserID)
	c.SetUserContext(ctx)

	return c.Next()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenSignatureInvalid):
		return "signature"
	default:
		return "malformed"
	}
}
