package bloglist_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bloglist "github.com/goliatone/go-bloglist"
)

func newTestTokenService(expirationHours int) bloglist.TokenService {
	return bloglist.NewTokenService(
		[]byte("test-signing-key"),
		expirationHours,
		"test-issuer",
		jwt.ClaimStrings{"test-audience"},
		nil,
	)
}

func signToken(t *testing.T, key []byte, claims jwt.Claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestTokenServiceGenerate(t *testing.T) {
	service := newTestTokenService(24)

	t.Run("generates a verifiable token", func(t *testing.T) {
		token, err := service.Generate("user-123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID())
		assert.Equal(t, "user-123", claims.Subject())
		assert.False(t, claims.IssuedAt().IsZero())
	})

	t.Run("rejects an empty user id", func(t *testing.T) {
		_, err := service.Generate("")
		assert.Error(t, err)
	})

	t.Run("sets expiration when configured", func(t *testing.T) {
		token, err := service.Generate("user-123")
		require.NoError(t, err)

		claims, err := service.Verify(token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)
	})

	t.Run("omits expiration when not configured", func(t *testing.T) {
		eternal := newTestTokenService(0)

		token, err := eternal.Generate("user-123")
		require.NoError(t, err)

		claims, err := eternal.Verify(token)
		require.NoError(t, err)
		assert.True(t, claims.Expires().IsZero())
	})
}

func TestTokenServiceVerify(t *testing.T) {
	service := newTestTokenService(24)

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := service.Verify("not.a.token")

		var richErr *goerrors.Error
		require.ErrorAs(t, err, &richErr)
		assert.Equal(t, goerrors.CategoryAuth, richErr.Category)
		assert.Equal(t, bloglist.TextCodeInvalidToken, richErr.TextCode)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		forged := signToken(t, []byte("other-key"), &bloglist.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:   "test-issuer",
				Subject:  "user-123",
				Audience: jwt.ClaimStrings{"test-audience"},
			},
		})

		_, err := service.Verify(forged)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := signToken(t, []byte("test-signing-key"), &bloglist.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test-issuer",
				Subject:   "user-123",
				Audience:  jwt.ClaimStrings{"test-audience"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		_, err := service.Verify(expired)
		assert.Equal(t, bloglist.ErrTokenExpired, err)
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		anonymous := signToken(t, []byte("test-signing-key"), &bloglist.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test-issuer",
				Audience:  jwt.ClaimStrings{"test-audience"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := service.Verify(anonymous)
		assert.Equal(t, bloglist.ErrTokenMissingSubject, err)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		stranger := signToken(t, []byte("test-signing-key"), &bloglist.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Subject:   "user-123",
				Audience:  jwt.ClaimStrings{"test-audience"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		_, err := service.Verify(stranger)
		assert.Error(t, err)
	})
}

func TestJWTClaimsUserIDFallsBackToSubject(t *testing.T) {
	claims := &bloglist.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
	}

	assert.Equal(t, "user-123", claims.UserID())

	claims.UID = "uid-override"
	assert.Equal(t, "uid-override", claims.UserID())
}
