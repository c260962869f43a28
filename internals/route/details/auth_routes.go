package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "ecclesia_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, d Deps, requireAuth fiber.Handler) {
	authRoute.AuthRoutes(app, d.DB, requireAuth)
}

func JoinPublicRoutes(public fiber.Router, d Deps) {
	authRoute.JoinRoutes(public, d.DB)
}
