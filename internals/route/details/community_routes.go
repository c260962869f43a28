package details

import (
	"github.com/gofiber/fiber/v2"

	documentRoute "ecclesia_backend/internals/features/documents/documents/route"
	kidRoute "ecclesia_backend/internals/features/kids/kids/route"
	notificationRoute "ecclesia_backend/internals/features/notifications/notifications/route"
	realtimeRoute "ecclesia_backend/internals/features/realtime/route"
	whatsappRoute "ecclesia_backend/internals/features/whatsapp/route"
)

func CommunityUserRoutes(user fiber.Router, d Deps) {
	kidRoute.KidUserRoutes(user, d.DB)
	notificationRoute.NotificationUserRoutes(user, d.DB)
	realtimeRoute.RealtimeUserRoutes(user, d.Broker)
}

func CommunityAdminRoutes(admin fiber.Router, d Deps) {
	kidRoute.KidAdminRoutes(admin, d.DB)
	notificationRoute.NotificationAdminRoutes(admin, d.DB, d.Mailer)
	whatsappRoute.WhatsappAdminRoutes(admin, d.DB, d.Whatsapp)
	documentRoute.DocumentAdminRoutes(admin, d.DB, d.Store)
}
