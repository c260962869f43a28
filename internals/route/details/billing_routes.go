package details

import (
	"github.com/gofiber/fiber/v2"

	"ecclesia_backend/internals/constants"
	paymentRoute "ecclesia_backend/internals/features/billing/payments/route"
	planChangeRoute "ecclesia_backend/internals/features/billing/planchanges/route"
	planRoute "ecclesia_backend/internals/features/billing/plans/route"
	statsRoute "ecclesia_backend/internals/features/owner/stats/route"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func BillingPublicRoutes(public fiber.Router, d Deps) {
	planRoute.PlanPublicRoutes(public, d.DB)
}

// BillingAdminRoutes mounts /api/a/billing, which stays writable for suspended churches.
func BillingAdminRoutes(admin fiber.Router, d Deps) {
	billing := admin.Group("/billing",
		authMiddleware.OnlyChurchRoles(constants.RoleErrorAdmin("billing"), constants.AdminRoles...),
	)
	paymentRoute.BillingAdminRoutes(billing, d.DB, d.Charger)
	planChangeRoute.PlanChangeAdminRoutes(billing, d.DB, d.Mailer)
}

func BillingOwnerRoutes(owner fiber.Router, d Deps) {
	planRoute.PlanOwnerRoutes(owner, d.DB)
	planChangeRoute.PlanChangeOwnerRoutes(owner, d.DB, d.Mailer)
	paymentRoute.BillingOwnerRoutes(owner, d.DB)
	statsRoute.StatsOwnerRoutes(owner, d.DB)
}

func WebhookRoutes(webhooks fiber.Router, d Deps) {
	paymentRoute.WebhookRoutes(webhooks, d.DB, d.Cfg.MidtransServerKey, d.Cfg.AsaasWebhookToken)
}
