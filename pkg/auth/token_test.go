package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/config"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "dp-api", ExpirationMinutes: 30}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 42, Role: enums.UserRoleModerator, JTI: "jti-1"})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, enums.UserRoleModerator, claims.Role)
	assert.Equal(t, "jti-1", claims.ID)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestMintAccessTokenValidatesInput(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	_, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 1, Role: "ROOT"})
	assert.Error(t, err)
	_, err = MintAccessToken(cfg, now, AccessTokenPayload{Role: enums.UserRoleUser})
	assert.Error(t, err)
	_, err = MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, now, AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser})
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpiredAndForeign(t *testing.T) {
	cfg := testJWTConfig()

	expired, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser})
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other := cfg
	other.Issuer = "someone-else"
	foreign, err := MintAccessToken(other, time.Now(), AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser})
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, foreign)
	assert.Error(t, err)

	wrongKey := cfg
	wrongKey.Secret = "different"
	_, err = ParseAccessToken(wrongKey, expired)
	assert.Error(t, err)
}
