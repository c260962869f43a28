package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/constants"
)

// Locals keys filled by the auth and church-scope middlewares.
const (
	LocUserID         = "user_id"
	LocUserName       = "user_name"
	LocRole           = "userRole"
	LocChurchID       = "church_id"
	LocChurchRole     = "church_role"
	LocChurchParentID = "church_parent_id"
	LocChurchStatus   = "church_status"
)

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(localString(c, LocUserID))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id")
	}
	return id, nil
}

func GetUserName(c *fiber.Ctx) string { return localString(c, LocUserName) }

// GetChurchID returns the church the token is scoped to.
func GetChurchID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(localString(c, LocChurchID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "No church linked to this account")
	}
	return id, nil
}

// GetParentChurchID is nil for root churches. Set by the church-scope middleware.
func GetParentChurchID(c *fiber.Ctx) *uuid.UUID {
	if id, err := uuid.Parse(localString(c, LocChurchParentID)); err == nil && id != uuid.Nil {
		return &id
	}
	return nil
}

func GetChurchRole(c *fiber.Ctx) string { return localString(c, LocChurchRole) }

func GetChurchStatus(c *fiber.Ctx) string { return localString(c, LocChurchStatus) }

func IsSuperadmin(c *fiber.Ctx) bool {
	return localString(c, LocRole) == constants.RoleSuperadmin
}

// HasChurchRole is true for superadmins and for members holding one of roles.
func HasChurchRole(c *fiber.Ctx, roles ...string) bool {
	if IsSuperadmin(c) {
		return true
	}
	return constants.HasRole(GetChurchRole(c), roles)
}

func IsStaff(c *fiber.Ctx) bool {
	return HasChurchRole(c, constants.StaffRoles...)
}
