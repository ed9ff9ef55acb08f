package bloglist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bloglist "github.com/goliatone/go-bloglist"
)

func registeredUser(t *testing.T, username, password string) (*memUsers, *bloglist.User) {
	t.Helper()

	hash, err := bloglist.HashPassword(password)
	require.NoError(t, err)

	users := newMemUsers()
	user, err := users.Register(context.Background(), &bloglist.User{
		Username:     username,
		Name:         "Matti Luukkainen",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	return users, user
}

func TestAuthenticatorLogin(t *testing.T) {
	users, user := registeredUser(t, "mluukkai", "salainen")
	tokens := newTestTokenService(24)
	authenticator := bloglist.NewAuthenticator(users, tokens)

	t.Run("valid credentials mint a verifiable token", func(t *testing.T) {
		token, got, err := authenticator.Login(context.Background(), "mluukkai", "salainen")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID())
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := authenticator.Login(context.Background(), "mluukkai", "wrong")
		assert.Equal(t, bloglist.ErrInvalidCredentials, err)
	})

	t.Run("unknown username is rejected with the same error", func(t *testing.T) {
		_, _, err := authenticator.Login(context.Background(), "nobody", "salainen")
		assert.Equal(t, bloglist.ErrInvalidCredentials, err)
	})
}

func TestAuthenticatorExposesTokenService(t *testing.T) {
	tokens := newTestTokenService(24)
	authenticator := bloglist.NewAuthenticator(newMemUsers(), tokens)

	assert.Equal(t, tokens, authenticator.TokenService())
}
