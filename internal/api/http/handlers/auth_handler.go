package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/api/dto"
	"github.com/spec-kit/social-network/internal/auth"
	"github.com/spec-kit/social-network/internal/service"
	"github.com/spec-kit/social-network/internal/storage"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// AuthHandler exposes registration, login and token endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	images *storage.ImageStore
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, images *storage.ImageStore) *AuthHandler {
	return &AuthHandler{auth: authService, images: images}
}

// Register handles POST /auth/register. Accepts multipart form data
// with an optional avatar image.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
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

	var avatarURL *string
	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		url, err := h.images.Save(file)
		if err != nil {
			return err
		}
		avatarURL = &url
	}

	user, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		BirthDate: birthDate,
		Bio:       req.Bio,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Validate handles POST /auth/validate: a caller holding a raw token
// string gets it checked against the live account record.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	user, err := h.auth.ValidateToken(c.Context(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"valid": true,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
			},
		},
	})
}

// Refresh handles POST /auth/refresh. The access guard has already run;
// the same bearer token is re-verified and re-issued with a fresh TTL.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, ok := auth.BearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or malformed authorization header")
	}

	newToken, exp, err := h.auth.Refresh(c.Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: newToken, ExpiresAt: exp},
	})
}

// validationError flattens ozzo field errors into the error envelope.
func validationError(err error) error {
	if fieldErrs, ok := err.(validation.Errors); ok {
		details := make(map[string]any, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
		return apperrors.NewValidationError("invalid request", details)
	}
	return apperrors.NewValidationError(err.Error(), nil)
}
