package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/api/dto"
	"github.com/spec-kit/social-network/internal/domain"
	"github.com/spec-kit/social-network/internal/service"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// AdminUsersHandler exposes administrator-only account management.
// Every route behind it runs after the role guard.
type AdminUsersHandler struct {
	users *service.UsersService
}

// NewAdminUsersHandler constructs the handler.
func NewAdminUsersHandler(usersService *service.UsersService) *AdminUsersHandler {
	return &AdminUsersHandler{users: usersService}
}

// Create handles POST /admin/users.
func (h *AdminUsersHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	birthDate, err := req.ParsedBirthDate()
	if err != nil {
		return apperrors.NewValidationError("birth_date must be YYYY-MM-DD", nil)
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleStandard
	}

	user, err := h.users.CreateUser(c.Context(), service.AdminCreateInput{
		RegisterInput: service.RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Username:  req.Username,
			Password:  req.Password,
			BirthDate: birthDate,
			Bio:       req.Bio,
		},
		Role: role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": user})
}

// List handles GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// UpdateStatus handles PATCH /admin/users/:id/status.
func (h *AdminUsersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	user, err := h.users.SetActive(c.Context(), c.Params("id"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}
