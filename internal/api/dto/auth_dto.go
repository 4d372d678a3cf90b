package dto

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	usernameRe  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	digitRe     = regexp.MustCompile(`[0-9]`)
)

// RegisterRequest is the self-registration payload. It arrives as
// multipart form fields so an avatar image can ride along.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	BirthDate string `json:"birth_date" form:"birth_date"`
	Bio       string `json:"bio" form:"bio"`
}

// Validate applies the registration field rules.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(3, 20),
			validation.Match(usernameRe).Error("may only contain letters, numbers and underscores")),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 0),
			validation.Match(uppercaseRe).Error("must contain an uppercase letter"),
			validation.Match(digitRe).Error("must contain a digit")),
		validation.Field(&r.BirthDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

// ParsedBirthDate converts the validated date string.
func (r RegisterRequest) ParsedBirthDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.BirthDate)
}

// LoginRequest accepts either an email or a username plus a password.
type LoginRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Password   string `json:"password" form:"password"`
}

// Validate requires both fields non-empty; complexity rules apply only
// at registration.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ValidateTokenRequest carries a raw token for server-side validation.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate requires a token.
func (r ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

// AuthResponse is the standard token envelope.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
