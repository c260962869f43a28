package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/notifications/notifications/controller"
	"ecclesia_backend/internals/helpers/email"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewNotificationController(db, nil)
	g := user.Group("/notifications")
	g.Get("/", ctl.Mine)
	g.Post("/read-all", ctl.MarkAllRead)
	g.Patch("/:id/read", ctl.MarkRead)
}

func NotificationAdminRoutes(admin fiber.Router, db *gorm.DB, mailer email.EmailService) {
	ctl := controller.NewNotificationController(db, mailer)
	g := admin.Group("/notifications", authMiddleware.IsStaff())
	g.Get("/", ctl.ListSent)
	g.Post("/", ctl.Broadcast)
}
