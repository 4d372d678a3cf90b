package domain

import "time"

// Role is the coarse permission tier attached to an account.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdministrator
}

// User is the domain model for an account in the network.
//
// Email and Username are stored lowercased; the unique indexes on both
// fields are the source of truth for identifier uniqueness. Active is a
// soft-disable flag: accounts are never hard-deleted.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	BirthDate    time.Time `bson:"birth_date" json:"birth_date"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL    *string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}
