package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/domain"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the identity attached to a request after token
// verification. It carries the claims snapshot only; the live account
// record is deliberately not consulted on this path.
type Principal struct {
	SubjectID string
	Username  string
	Email     string
	Role      domain.Role
}

// Middleware validates bearer tokens and attaches the principal.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the access guard.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Missing, invalid
// or expired tokens fail closed with 401; the handler chain is never
// reached without a verified principal.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, ok := BearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or malformed authorization header")
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{
		SubjectID: claims.Subject,
		Username:  claims.Username,
		Email:     claims.Email,
		Role:      claims.Role,
	})
	return c.Next()
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
