package middleware

import (
	"strings"

	"imageshare/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token for
// browser clients. API clients may send the same token as a bearer token.
const SessionCookieName = "session_token"

// TokenFromRequest extracts the session token from the cookie or the
// Authorization header. Returns "" when neither is present.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookieName); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthRequired resolves the current user from the request's session token
// and stores it in the request context. A missing or invalid session
// short-circuits with a redirect to the login entry point.
func AuthRequired(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := sessions.Resolve(TokenFromRequest(c))
		if err != nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)

		return c.Next()
	}
}
