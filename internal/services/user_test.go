package services

import (
	"testing"

	"koyomi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *AuthService) {
	t.Helper()
	auth, db, cfg := newTestAuthService(t)
	return NewUserService(db, auth, cfg), auth
}

func TestUserCreate(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create("alice@example.com", "alice", "secret123", models.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)
	assert.True(t, user.Enabled)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Create("alice@example.com", "alice2", "secret123", models.RoleMember)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		_, err := svc.Create("alice2@example.com", "alice", "secret123", models.RoleMember)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown role is invalid", func(t *testing.T) {
		_, err := svc.Create("bob@example.com", "bob", "secret123", "OVERLORD")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestUserUpdate(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create("alice@example.com", "alice", "secret123", models.RoleMember)
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, "", "", models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = svc.Update(99999, "", "", models.RoleMember)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserPasswords(t *testing.T) {
	svc, auth := newTestUserService(t)

	user, err := svc.Create("alice@example.com", "alice", "secret123", models.RoleMember)
	require.NoError(t, err)

	t.Run("change requires the current password", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, "wrong", "next456")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		require.NoError(t, svc.ChangePassword(user.ID, "secret123", "next456"))
		_, err = auth.Authenticate("alice@example.com", "next456")
		assert.NoError(t, err)
	})

	t.Run("admin reset does not", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(user.ID, "reset789"))
		_, err := auth.Authenticate("alice@example.com", "reset789")
		assert.NoError(t, err)
	})
}

func TestUserDelete(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create("alice@example.com", "alice", "secret123", models.RoleMember)
	require.NoError(t, err)

	t.Run("owner of events cannot be deleted", func(t *testing.T) {
		event := &models.Event{Title: "owned", CreatorID: user.ID}
		require.NoError(t, svc.db.Create(event).Error)

		assert.ErrorIs(t, svc.Delete(user.ID), ErrConflict)

		require.NoError(t, svc.db.Delete(event).Error)
	})

	t.Run("delete cascades the user's comments", func(t *testing.T) {
		other, err := svc.Create("bob@example.com", "bob", "secret123", models.RoleEditor)
		require.NoError(t, err)
		event := &models.Event{Title: "bob's", CreatorID: other.ID}
		require.NoError(t, svc.db.Create(event).Error)
		require.NoError(t, svc.db.Create(&models.Comment{Content: "hi", EventID: event.ID, CreatorID: user.ID}).Error)

		require.NoError(t, svc.Delete(user.ID))

		var comments int64
		svc.db.Model(&models.Comment{}).Where("creator_id = ?", user.ID).Count(&comments)
		assert.EqualValues(t, 0, comments)

		_, err = svc.Get(user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
