package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

// Guard answers the per-request questions the token alone cannot.
type Guard interface {
	IsBlacklisted(ctx context.Context, rawToken string) (bool, error)
	// UserActive returns gorm.ErrRecordNotFound for unknown users.
	UserActive(ctx context.Context, userID uuid.UUID) (bool, error)
}

type AuthJWTOpts struct {
	Secret              string
	Guard               Guard // nil skips blacklist and active-user checks
	AllowCookieFallback bool  // read access_token cookie when no Bearer header
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := extractToken(c, o.AllowCookieFallback)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - no token provided")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or expired token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok || strClaim(claims, "typ") == "refresh" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid token claims")
		}

		userID, err := uuid.Parse(strClaim(claims, "id"))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or missing user id")
		}

		if o.Guard != nil {
			ctx := c.UserContext()
			black, err := o.Guard.IsBlacklisted(ctx, raw)
			if err != nil {
				log.Printf("[ERROR] blacklist check: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token is revoked")
			}

			active, err := o.Guard.UserActive(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user not found")
				}
				log.Printf("[ERROR] user active check: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			if !active {
				return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
			}
		}

		c.Locals(helper.LocRawToken, raw)
		c.Locals(helperAuth.LocUserID, userID.String())
		c.Locals(helperAuth.LocUserName, strClaim(claims, "user_name"))
		c.Locals(helperAuth.LocRole, strClaim(claims, "role"))
		if cid := strClaim(claims, "church_id"); cid != "" {
			c.Locals(helperAuth.LocChurchID, cid)
		}
		if role := strClaim(claims, "church_role"); role != "" {
			c.Locals(helperAuth.LocChurchRole, role)
		}
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieFallback bool) string {
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) >= 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	}
	if cookieFallback {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

/* ===== DB-backed guard ===== */

type DBGuard struct {
	DB *gorm.DB
}

func (g DBGuard) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	var exists bool
	err := g.DB.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM revoked_access_tokens WHERE revoked_token_hash = ?)`, helper.AccessTokenDigest(rawToken)).
		Scan(&exists).Error
	return exists, err
}

func (g DBGuard) UserActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	var row struct{ IsActive bool }
	if err := g.DB.WithContext(ctx).
		Table("users").
		Select("is_active").
		Where("id = ? AND deleted_at IS NULL", userID).
		Take(&row).Error; err != nil {
		return false, err
	}
	return row.IsActive, nil
}
