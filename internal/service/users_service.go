package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/social-network/internal/auth"
	"github.com/spec-kit/social-network/internal/config"
	"github.com/spec-kit/social-network/internal/domain"
	"github.com/spec-kit/social-network/internal/repository"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// AdminCreateInput carries fields for admin-created accounts; unlike
// self-registration the role is selectable.
type AdminCreateInput struct {
	RegisterInput
	Role domain.Role
}

// UsersService serves profile reads and admin account management.
type UsersService struct {
	users      repository.UserRepository
	posts      repository.PostRepository
	bcryptCost int
}

// NewUsersService builds the service.
func NewUsersService(cfg config.Config, users repository.UserRepository, posts repository.PostRepository) *UsersService {
	return &UsersService{users: users, posts: posts, bcryptCost: cfg.Auth.BcryptCost}
}

// Profile returns the account for the given id.
func (s *UsersService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// LatestPosts returns the most recent posts authored by the user.
func (s *UsersService) LatestPosts(ctx context.Context, userID string, limit int64) ([]domain.Post, error) {
	posts, err := s.posts.FindByAuthor(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return posts, nil
}

// CreateUser creates an account on behalf of an administrator. Reuses
// the registration normalization and conflict rules.
func (s *UsersService) CreateUser(ctx context.Context, in AdminCreateInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleStandard
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(in.Role)})
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		BirthDate:    in.BirthDate,
		Bio:          in.Bio,
		Role:         role,
		Active:       true,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if dup, ok := repository.AsDuplicateIdentifier(err); ok {
			return nil, conflictField(dup.Field)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// ListUsers returns every account, newest first.
func (s *UsersService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// SetActive soft-enables or soft-disables an account. Tokens already
// issued stay valid until expiry; only fresh logins observe the flag.
func (s *UsersService) SetActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}
