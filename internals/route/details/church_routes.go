package details

import (
	"github.com/gofiber/fiber/v2"

	churchRoute "ecclesia_backend/internals/features/churches/churches/route"
	provisioningRoute "ecclesia_backend/internals/features/churches/provisioning/route"
	memberRoute "ecclesia_backend/internals/features/members/members/route"
)

func ChurchPublicRoutes(public fiber.Router, d Deps) {
	provisioningRoute.ProvisioningPublicRoutes(public, d.DB)
}

func ChurchUserRoutes(user fiber.Router, d Deps) {
	churchRoute.ChurchUserRoutes(user, d.DB)
	memberRoute.MemberUserRoutes(user, d.DB)
}

func ChurchAdminRoutes(admin fiber.Router, d Deps) {
	churchRoute.ChurchAdminRoutes(admin, d.DB, d.Store)
	provisioningRoute.ProvisioningAdminRoutes(admin, d.DB, d.Store)
	memberRoute.MemberAdminRoutes(admin, d.DB, d.Store, d.Mailer)
}

func ChurchOwnerRoutes(owner fiber.Router, d Deps) {
	churchRoute.ChurchOwnerRoutes(owner, d.DB)
	provisioningRoute.ProvisioningOwnerRoutes(owner, d.DB, d.Store)
}
