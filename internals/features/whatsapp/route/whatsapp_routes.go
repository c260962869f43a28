package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/whatsapp/controller"
	"ecclesia_backend/internals/features/whatsapp/gateway"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func WhatsappAdminRoutes(admin fiber.Router, db *gorm.DB, gw gateway.Gateway) {
	ctl := controller.NewWhatsappController(db, gw)
	g := admin.Group("/whatsapp",
		authMiddleware.OnlyChurchRoles(constants.RoleErrorAdmin("WhatsApp"), constants.AdminRoles...))

	g.Post("/session/init", ctl.InitSession)
	g.Get("/session", ctl.GetSession)
	g.Delete("/session", ctl.Logout)

	g.Post("/messages", ctl.Enqueue)
	g.Get("/messages", ctl.ListMessages)
}
