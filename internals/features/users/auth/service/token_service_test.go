package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "ecclesia_backend/internals/features/users/users/model"
)

func TestBuildAccessClaims(t *testing.T) {
	churchID := uuid.New()
	user := userModel.UserModel{ID: uuid.New(), UserName: "maria", Role: "user", ChurchID: &churchID}
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	claims := BuildAccessClaims(user, "pastor", now, 15*time.Minute)

	assert.Equal(t, "access", claims["typ"])
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, churchID.String(), claims["church_id"])
	assert.Equal(t, "pastor", claims["church_role"])
	assert.Equal(t, now.Add(15*time.Minute).Unix(), claims["exp"])
}

func TestBuildAccessClaimsWithoutChurch(t *testing.T) {
	user := userModel.UserModel{ID: uuid.New(), UserName: "root", Role: "superadmin"}
	claims := BuildAccessClaims(user, "", time.Now(), time.Minute)

	_, hasChurch := claims["church_id"]
	_, hasRole := claims["church_role"]
	assert.False(t, hasChurch)
	assert.False(t, hasRole)
	assert.Equal(t, "superadmin", claims["role"])
}

func TestBuildRefreshClaimsUniqueJTI(t *testing.T) {
	id := uuid.New()
	a := BuildRefreshClaims(id, time.Now(), time.Hour)
	b := BuildRefreshClaims(id, time.Now(), time.Hour)
	assert.Equal(t, "refresh", a["typ"])
	assert.NotEqual(t, a["jti"], b["jti"])
}

func TestComputeRefreshHash(t *testing.T) {
	h1 := ComputeRefreshHash("token", "secret")
	h2 := ComputeRefreshHash("token", "secret")
	h3 := ComputeRefreshHash("token", "other")
	assert.Len(t, h1, 32)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestResolveBlacklistTTL(t *testing.T) {
	secret := "s3cret"
	now := time.Now().UTC()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(10 * time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	ttl := ResolveBlacklistTTL(signed, secret, now)
	assert.InDelta(t, (11 * time.Minute).Seconds(), ttl.Seconds(), 2)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(-time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ResolveBlacklistTTL(expired, secret, now))

	assert.Equal(t, accessTTL()+time.Minute, ResolveBlacklistTTL("garbage", secret, now))
	assert.Equal(t, accessTTL()+time.Minute, ResolveBlacklistTTL("", secret, now))
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)

	hash, err := HashPassword("long-enough-pass")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash(hash, "long-enough-pass"))
	assert.Error(t, CheckPasswordHash(hash, "wrong-pass"))
}
