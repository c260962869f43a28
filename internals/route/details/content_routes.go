package details

import (
	"github.com/gofiber/fiber/v2"

	devotionalRoute "ecclesia_backend/internals/features/content/devotionals/route"
	eventRoute "ecclesia_backend/internals/features/content/events/route"
	schoolRoute "ecclesia_backend/internals/features/content/schools/route"
	journeyRoute "ecclesia_backend/internals/features/journeys/trilhas/route"
)

func ContentUserRoutes(user fiber.Router, d Deps) {
	eventRoute.EventUserRoutes(user, d.DB)
	devotionalRoute.DevotionalUserRoutes(user, d.DB)
	schoolRoute.SchoolUserRoutes(user, d.DB)
	journeyRoute.JourneyUserRoutes(user, d.DB)
}

func ContentAdminRoutes(admin fiber.Router, d Deps) {
	eventRoute.EventAdminRoutes(admin, d.DB)
	devotionalRoute.DevotionalAdminRoutes(admin, d.DB)
	schoolRoute.SchoolAdminRoutes(admin, d.DB)
	journeyRoute.JourneyAdminRoutes(admin, d.DB)
}
