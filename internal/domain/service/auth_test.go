package service

import (
	"testing"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapIsIdempotent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Bootstrap(f.ctx))

	users, err := f.storage.Users(f.ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin-001", users[0].ID)
	assert.Equal(t, entity.Admin, users[0].Role)
	assert.True(t, users[0].IsActive)

	session := f.loginAdmin(t)
	assert.Equal(t, "admin-001", session.ID)
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)

	user := f.register(t, "Ana", "  Ana@Uni.BR ", "")
	assert.Equal(t, "ana@uni.br", user.Email)
	assert.Equal(t, entity.Participant, user.Role)
	assert.Empty(t, user.Password)
	assert.True(t, user.IsActive)

	session, err := f.manager.Login(f.ctx, "ANA@uni.br ", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.ID)

	current, err := f.manager.CurrentUser(f.ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, "Ana", current.Name)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "ana@uni.br", entity.Organizer)

	_, err := f.manager.RegisterUser(f.ctx, dto.UserRegistration{
		Name: "Other", Email: "ANA@uni.br", Password: "x",
	})
	assert.ErrorIs(t, err, errorz.ErrDuplicateEmail)

	_, err = f.manager.RegisterUser(f.ctx, dto.UserRegistration{
		Name: "Admin", Email: "admin@admin.com", Password: "x",
	})
	assert.ErrorIs(t, err, errorz.ErrDuplicateEmail)
}

func TestRegisterUserValidation(t *testing.T) {
	f := newFixture(t)

	cases := []dto.UserRegistration{
		{Email: "a@b.com", Password: "x"},
		{Name: "A", Email: "not-an-email", Password: "x"},
		{Name: "A", Email: "a@b.com"},
		{Name: "A", Email: "a@b.com", Password: "x", Role: "speaker"},
	}
	for _, in := range cases {
		_, err := f.manager.RegisterUser(f.ctx, in)
		assert.ErrorIs(t, err, errorz.ErrInvalidInput, "%+v", in)
	}
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "Bia", "bia@uni.br", entity.Participant)

	_, err := f.manager.Login(f.ctx, "bia@uni.br", "wrong")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	_, err = f.manager.Login(f.ctx, "", "secret")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	_, err = f.manager.Login(f.ctx, "bia@uni.br", "")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	_, err = f.manager.Login(f.ctx, "nobody@uni.br", "secret")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	f.loginAdmin(t)
	_, err = f.manager.Deactivate(f.ctx, user.ID)
	require.NoError(t, err)

	_, err = f.manager.Login(f.ctx, "bia@uni.br", "secret")
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	session, err := f.manager.CurrentUser(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin-001", session.ID, "failed logins keep the current session")
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.loginAdmin(t)

	require.NoError(t, f.manager.Logout(f.ctx))
	require.NoError(t, f.manager.Logout(f.ctx))

	session, err := f.manager.CurrentUser(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestDeactivatedSessionStaysOpen(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "Caio", "caio@uni.br", entity.Organizer)
	stale := f.login(t, "caio@uni.br")

	f.loginAdmin(t)
	deactivated, err := f.manager.Deactivate(f.ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
	require.NotNil(t, deactivated.UpdatedAt)

	// Sessions are snapshots and are not re-validated against the user.
	require.NoError(t, f.storage.Save(f.ctx, dto.Changes{SessionSet: true, Session: stale}))
	_, err = f.manager.CreateEvent(f.ctx, dto.EventInput{
		Title: "Still allowed", Type: entity.Talk, Date: "2024-06-01",
	})
	assert.NoError(t, err)

	f.loginAdmin(t)
	activated, err := f.manager.Activate(f.ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)
	f.login(t, "caio@uni.br")
}
