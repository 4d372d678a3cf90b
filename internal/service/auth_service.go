package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/social-network/internal/auth"
	"github.com/spec-kit/social-network/internal/config"
	"github.com/spec-kit/social-network/internal/domain"
	"github.com/spec-kit/social-network/internal/events"
	"github.com/spec-kit/social-network/internal/repository"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
	BirthDate time.Time
	Bio       string
	AvatarURL *string
}

// AuthService coordinates registration, login and the token lifecycle.
// It is stateless per call; the user collection is the only shared
// mutable resource and its unique indexes arbitrate registration races.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new account and issues its first session token.
// Identifiers are normalized to lowercase. When both identifiers
// collide, the username conflict is reported.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, time.Time, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByIdentifier(ctx, username)
	if err == nil {
		return nil, "", time.Time{}, conflictFor(existing, username, email)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	existing, err = s.users.FindByIdentifier(ctx, email)
	if err == nil {
		return nil, "", time.Time{}, conflictFor(existing, username, email)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		BirthDate:    in.BirthDate,
		Bio:          in.Bio,
		AvatarURL:    in.AvatarURL,
		Role:         domain.RoleStandard,
		Active:       true,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		// a concurrent registration may win between the pre-check and
		// the insert; the unique index reports it the same way
		if dup, ok := repository.AsDuplicateIdentifier(err); ok {
			return nil, "", time.Time{}, conflictField(dup.Field)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
	})

	return user, token, exp, nil
}

// Login authenticates by email or username. Unknown identifier and
// wrong password are indistinguishable to the caller. Claims come from
// the just-fetched record, never from a cached value.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if !auth.ComparePassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account is disabled")
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Refresh verifies a token, re-checks the subject still exists and
// re-issues the same claims payload with a fresh TTL. Role or activity
// changes after issuance do not surface until the next login.
func (s *AuthService) Refresh(ctx context.Context, tokenStr string) (string, time.Time, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("token cannot be refreshed")
	}

	if _, err := s.users.FindByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, apperrors.NewUnauthorized("token cannot be refreshed")
		}
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokens.Issue(claims.Subject, claims.Username, claims.Email, claims.Role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// ValidateToken verifies a raw token and re-fetches the live record, so
// this path, unlike the guard path, always reflects current state. A
// deactivated but existing account still validates; only deletion of
// the record fails it.
func (s *AuthService) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("token subject no longer exists")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying codec for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, typ events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// conflictFor names the colliding field, checking username before email
// when both collide.
func conflictFor(existing *domain.User, username, email string) error {
	if existing.Username == username {
		return conflictField("username")
	}
	if existing.Email == email {
		return conflictField("email")
	}
	return conflictField("identifier")
}

func conflictField(field string) error {
	switch field {
	case "username":
		return apperrors.NewConflict("username already in use", field)
	case "email":
		return apperrors.NewConflict("email already in use", field)
	default:
		return apperrors.NewConflict("identifier already in use", field)
	}
}
