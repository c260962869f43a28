package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ecclesia_backend/internals/configs"
	authModel "ecclesia_backend/internals/features/users/auth/model"
	authRepo "ecclesia_backend/internals/features/users/auth/repository"
	userModel "ecclesia_backend/internals/features/users/users/model"
)

const (
	accessTTLDefault  = 15 * time.Minute
	refreshTTLDefault = 7 * 24 * time.Hour
)

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	ChurchRole   string    `json:"church_role,omitempty"`
}

func nowUTC() time.Time { return time.Now().UTC() }

func accessTTL() time.Duration {
	if configs.App.AccessTTL > 0 {
		return configs.App.AccessTTL
	}
	return accessTTLDefault
}

func refreshTTL() time.Duration {
	if configs.App.RefreshTTL > 0 {
		return configs.App.RefreshTTL
	}
	return refreshTTLDefault
}

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ComputeRefreshHash is what refresh_tokens.refresh_token_hash stores.
func ComputeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func BuildAccessClaims(user userModel.UserModel, churchRole string, now time.Time, ttl time.Duration) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	if user.ChurchID != nil {
		claims["church_id"] = user.ChurchID.String()
	}
	if churchRole != "" {
		claims["church_role"] = churchRole
	}
	return claims
}

func BuildRefreshClaims(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
}

// churchRoleOf reads the role from the member row linked to the user.
func churchRoleOf(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) (string, error) {
	if user.ChurchID == nil {
		return "", nil
	}
	m, err := authRepo.FindMembership(c.UserContext(), db, user.ID, *user.ChurchID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	return m.MemberRole, nil
}

// IssueTokens signs a new access/refresh pair, stores the refresh hash and sets cookies.
func IssueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) (*TokenPair, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}

	churchRole, err := churchRoleOf(c, db, user)
	if err != nil {
		return nil, errors.Wrap(err, "load church role")
	}

	now := nowUTC()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, BuildAccessClaims(user, churchRole, now, accessTTL())).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, BuildRefreshClaims(user.ID, now, refreshTTL())).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return nil, errors.Wrap(err, "sign refresh token")
	}

	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshTokenModel{
		RefreshTokenUserID:    user.ID,
		RefreshTokenHash:      ComputeRefreshHash(refresh, refreshSecret),
		RefreshTokenExpiresAt: now.Add(refreshTTL()),
		RefreshTokenUserAgent: strptr(c.Get(fiber.HeaderUserAgent)),
		RefreshTokenIP:        strptr(c.IP()),
	}); err != nil {
		return nil, errors.Wrap(err, "store refresh token")
	}

	setAuthCookies(c, access, refresh, now)
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(accessTTL()),
		ChurchRole:   churchRole,
	}, nil
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTL()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/api/auth",
		Expires:  now.Add(refreshTTL()),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := nowUTC().Add(-time.Hour)
	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     path,
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

// ResolveBlacklistTTL keeps a revoked token listed until it would have expired anyway.
func ResolveBlacklistTTL(accessToken, secret string, now time.Time) time.Duration {
	fallback := accessTTL() + time.Minute
	if accessToken == "" || secret == "" {
		return fallback
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return fallback
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fallback
	}
	until := time.Unix(int64(exp), 0).Sub(now)
	if until <= 0 {
		return time.Minute
	}
	return until + time.Minute
}
