package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/users/auth/controller"
	rateLimiter "ecclesia_backend/internals/middlewares"
)

// AuthRoutes mounts /api/auth. requireAuth guards the session endpoints.
func AuthRoutes(app *fiber.App, db *gorm.DB, requireAuth fiber.Handler) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/refresh-token", authController.RefreshToken)
	baseAuth.Post("/logout", authController.Logout)

	protected := baseAuth.Group("", requireAuth)
	protected.Get("/me", authController.Me)
	protected.Post("/change-password", authController.ChangePassword)
}

// JoinRoutes is the public self sign-up under /api/public.
func JoinRoutes(public fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	public.Post("/churches/:slug/join", rateLimiter.RegisterRateLimiter(), authController.JoinChurch)
}
