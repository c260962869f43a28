package details

import (
	"github.com/gofiber/fiber/v2"

	demandRoute "ecclesia_backend/internals/features/ministries/demands/route"
	ministryRoute "ecclesia_backend/internals/features/ministries/ministries/route"
	scheduleRoute "ecclesia_backend/internals/features/ministries/schedules/route"
)

func MinistryUserRoutes(user fiber.Router, d Deps) {
	scheduleRoute.ScheduleUserRoutes(user, d.DB)
}

func MinistryAdminRoutes(admin fiber.Router, d Deps) {
	ministryRoute.MinistryAdminRoutes(admin, d.DB)
	scheduleRoute.ScheduleAdminRoutes(admin, d.DB)
	demandRoute.DemandAdminRoutes(admin, d.DB)
}
