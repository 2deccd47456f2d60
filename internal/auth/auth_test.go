package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "mySecurePassword123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		password := "samePassword"
		hash1, _ := HashPassword(password)
		hash2, _ := HashPassword(password)

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	password := "correctPassword"
	hashed, _ := HashPassword(password)

	t.Run("Correct password", func(t *testing.T) {
		assert.True(t, CheckPassword(hashed, password))
	})

	t.Run("Incorrect password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, "wrongPassword"))
	})

	t.Run("Empty password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, ""))
	})
}

func TestGenerateAccessToken(t *testing.T) {
	t.Run("Successfully generate access token", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "client@example.com", RoleClient, testSecret)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Fail with empty secret", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "client@example.com", RoleClient, "")

		assert.Error(t, err)
		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Empty(t, token)
	})

	t.Run("Token contains correct claims", func(t *testing.T) {
		accountID := 42
		email := "specialist@example.com"
		role := RoleSpecialist

		token, err := GenerateAccessToken(accountID, email, role, testSecret)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, accountID, claims.AccountID)
		assert.Equal(t, email, claims.Email)
		assert.Equal(t, role, claims.Role)
		assert.Equal(t, "access", claims.TokenType)
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	t.Run("Refresh token has longer expiration", func(t *testing.T) {
		token, err := GenerateRefreshToken(1, "client@example.com", RoleClient, testSecret)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, "refresh", claims.TokenType)

		expectedExpiry := time.Now().Add(RefreshTokenTTL)
		actualExpiry := claims.ExpiresAt.Time

		diff := actualExpiry.Sub(expectedExpiry).Abs()
		assert.Less(t, diff, 2*time.Second)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Reject token signed with different secret", func(t *testing.T) {
		token, err := GenerateAccessToken(7, "admin@example.com", RoleAdmin, "other-secret")
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("Reject garbage token", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.Error(t, err)
	})
}

func TestRefreshAccessToken(t *testing.T) {
	accessSecret := "access-secret"
	refreshSecret := "refresh-secret"

	t.Run("Successfully refresh", func(t *testing.T) {
		_, refreshToken, err := GenerateTokens(9, "s@example.com", RoleSpecialist, accessSecret, refreshSecret)
		require.NoError(t, err)

		newAccess, claims, err := RefreshAccessToken(refreshToken, refreshSecret, accessSecret)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.Equal(t, 9, claims.AccountID)
	})

	t.Run("Reject access token used as refresh", func(t *testing.T) {
		accessToken, err := GenerateAccessToken(9, "s@example.com", RoleSpecialist, refreshSecret)
		require.NoError(t, err)

		_, _, err = RefreshAccessToken(accessToken, refreshSecret, accessSecret)
		assert.Equal(t, ErrInvalidTokenType, err)
	})
}
