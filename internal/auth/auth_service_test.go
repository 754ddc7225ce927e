package auth

import (
	"context"
	"testing"

	"library-api/db"
	"library-api/models"
	"library-api/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) (*AuthService, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)

	dbManager := db.NewDBManager()
	tokens := NewTokenService(testutils.GetTestConfig())
	svc := NewAuthService(factory.NewUserRepository(), dbManager, tokens)

	return svc, func() {
		dbManager.Stop()
		cleanup()
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("AssignsIDAndHashesPassword", func(t *testing.T) {
		user, err := svc.Register(ctx, "alice", "secret", models.RoleMember)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "secret", user.PasswordHash)
		assert.NotContains(t, user.PasswordHash, "secret")
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other", models.RoleMember)
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("RoleCollapsesToMember", func(t *testing.T) {
		user, err := svc.Register(ctx, "bob", "secret", "")
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, user.Role)

		user, err = svc.Register(ctx, "carol", "secret", "LIBRARIAN")
		require.NoError(t, err)
		assert.Equal(t, models.RoleMember, user.Role)
	})

	t.Run("ExplicitAdminIsHonored", func(t *testing.T) {
		user, err := svc.Register(ctx, "root", "secret", models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret", models.RoleMember)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, string(models.RoleMember), claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
