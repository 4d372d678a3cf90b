package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/social-network/internal/domain"
)

func newUsersService(users *fakeUserRepo) *UsersService {
	return NewUsersService(testConfig(), users, newFakePostRepo())
}

func TestCreateUser_DefaultsToStandardRole(t *testing.T) {
	svc := newUsersService(newFakeUserRepo())

	user, err := svc.CreateUser(context.Background(), AdminCreateInput{RegisterInput: registerInput()})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStandard, user.Role)
	assert.Equal(t, "ana_01", user.Username)
	assert.True(t, user.Active)
}

func TestCreateUser_AdministratorRole(t *testing.T) {
	svc := newUsersService(newFakeUserRepo())

	user, err := svc.CreateUser(context.Background(), AdminCreateInput{
		RegisterInput: registerInput(),
		Role:          domain.RoleAdministrator,
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc := newUsersService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), AdminCreateInput{
		RegisterInput: registerInput(),
		Role:          domain.Role("superuser"),
	})
	derr := domainErr(t, err)
	assert.Equal(t, "VALIDATION_FAILED", derr.Code)
}

func TestCreateUser_DuplicateIdentifier(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUsersService(users)

	_, err := svc.CreateUser(context.Background(), AdminCreateInput{RegisterInput: registerInput()})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), AdminCreateInput{RegisterInput: registerInput()})
	derr := domainErr(t, err)
	assert.Equal(t, "CONFLICT", derr.Code)
	assert.Equal(t, "username", derr.Details["field"])
}

func TestSetActive_TogglesFlag(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUsersService(users)

	created, err := svc.CreateUser(context.Background(), AdminCreateInput{RegisterInput: registerInput()})
	require.NoError(t, err)

	disabled, err := svc.SetActive(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	enabled, err := svc.SetActive(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, enabled.Active)
}

func TestSetActive_UnknownUser(t *testing.T) {
	svc := newUsersService(newFakeUserRepo())

	_, err := svc.SetActive(context.Background(), "missing", false)
	derr := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", derr.Code)
}

func TestProfile_UnknownUser(t *testing.T) {
	svc := newUsersService(newFakeUserRepo())

	_, err := svc.Profile(context.Background(), "missing")
	derr := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", derr.Code)
}
