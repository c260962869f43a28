package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ecclesia_backend/internals/constants"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

// OnlyChurchRoles lets superadmins and members holding one of roles through.
func OnlyChurchRoles(message string, roles ...string) fiber.Handler {
	if message == "" {
		message = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		if helperAuth.IsSuperadmin(c) {
			return c.Next()
		}
		if helperAuth.GetChurchRole(c) == "" {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden: no church role on this account")
		}
		if !helperAuth.HasChurchRole(c, roles...) {
			return fiber.NewError(fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

func IsStaff() fiber.Handler {
	return OnlyChurchRoles(constants.RoleErrorStaff("this feature"), constants.StaffRoles...)
}

func OnlySuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsSuperadmin(c) {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorSuperadmin("vendor administration"))
		}
		return c.Next()
	}
}

// BlockSuspendedWrites answers 402 to mutating requests of suspended or
// canceled churches. Paths under exempt prefixes (billing) stay open.
func BlockSuspendedWrites(exempt ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if helperAuth.IsSuperadmin(c) || !constants.IsWriteBlocked(helperAuth.GetChurchStatus(c)) {
			return c.Next()
		}
		for _, p := range exempt {
			if strings.HasPrefix(c.Path(), p) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusPaymentRequired, "Subscription inactive - settle billing to continue")
	}
}
