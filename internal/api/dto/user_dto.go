package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// AdminCreateUserRequest is the admin account-creation payload; the
// role is selectable, unlike self-registration.
type AdminCreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" form:"role"`
}

// Validate applies the registration rules plus the role constraint.
func (r AdminCreateUserRequest) Validate() error {
	if err := r.RegisterRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.In("", "standard", "administrator")),
	)
}

// UpdateUserStatusRequest toggles the soft-disable flag.
type UpdateUserStatusRequest struct {
	Active *bool `json:"active"`
}

// Validate requires an explicit active value.
func (r UpdateUserStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Active, validation.NotNil),
	)
}
