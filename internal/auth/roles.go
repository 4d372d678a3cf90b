package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/domain"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// RequireAdmin restricts a route to administrator principals. It runs
// after the access guard: a request that reaches it carries a verified
// identity, so an insufficient role is 403, never 401.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.RoleAdministrator {
			return apperrors.NewForbidden("administrator role required")
		}
		return c.Next()
	}
}
