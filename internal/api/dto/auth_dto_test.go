package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Username:  "ana_01",
		Password:  "Sup3rSecret",
		BirthDate: "1995-03-10",
	}
}

func TestRegisterRequest_Valid(t *testing.T) {
	require.NoError(t, validRegister().Validate())
}

func TestRegisterRequest_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing first name", func(r *RegisterRequest) { r.FirstName = "" }},
		{"first name too short", func(r *RegisterRequest) { r.FirstName = "A" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"username too short", func(r *RegisterRequest) { r.Username = "ab" }},
		{"username with spaces", func(r *RegisterRequest) { r.Username = "ana souza" }},
		{"username with symbols", func(r *RegisterRequest) { r.Username = "ana!" }},
		{"password too short", func(r *RegisterRequest) { r.Password = "Ab1" }},
		{"password without uppercase", func(r *RegisterRequest) { r.Password = "sup3rsecret" }},
		{"password without digit", func(r *RegisterRequest) { r.Password = "SuperSecret" }},
		{"missing birth date", func(r *RegisterRequest) { r.BirthDate = "" }},
		{"malformed birth date", func(r *RegisterRequest) { r.BirthDate = "10/03/1995" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			tc.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestRegisterRequest_ParsedBirthDate(t *testing.T) {
	req := validRegister()
	parsed, err := req.ParsedBirthDate()
	require.NoError(t, err)
	assert.Equal(t, 1995, parsed.Year())
}

func TestLoginRequest_RequiresBothFields(t *testing.T) {
	require.NoError(t, LoginRequest{Identifier: "ana_01", Password: "whatever"}.Validate())
	assert.Error(t, LoginRequest{Password: "whatever"}.Validate())
	assert.Error(t, LoginRequest{Identifier: "ana_01"}.Validate())
}

func TestValidateTokenRequest(t *testing.T) {
	require.NoError(t, ValidateTokenRequest{Token: "abc"}.Validate())
	assert.Error(t, ValidateTokenRequest{}.Validate())
}
