package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/auth"
	"github.com/spec-kit/social-network/internal/service"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// UsersHandler exposes the authenticated user's own profile routes.
type UsersHandler struct {
	users *service.UsersService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(usersService *service.UsersService) *UsersHandler {
	return &UsersHandler{users: usersService}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.Profile(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// MyPosts handles GET /users/me/posts.
func (h *UsersHandler) MyPosts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit := queryInt64(c, "limit", 3)
	posts, err := h.users.LatestPosts(c.Context(), principal.SubjectID, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": posts})
}

func queryInt64(c *fiber.Ctx, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
