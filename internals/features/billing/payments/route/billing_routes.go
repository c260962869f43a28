package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/payments/controller"
	"ecclesia_backend/internals/features/billing/payments/service"
)

// BillingAdminRoutes expects a billing group already guarded by admin roles.
func BillingAdminRoutes(billing fiber.Router, db *gorm.DB, charger service.Charger) {
	ctl := controller.NewBillingController(db, charger)
	billing.Get("/", ctl.Overview)
	billing.Get("/payments", ctl.ListPayments)
	billing.Post("/checkout", ctl.Checkout)
}

func BillingOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	ctl := controller.NewBillingController(db, nil)
	owner.Get("/payments", ctl.OwnerList)
}

func WebhookRoutes(webhooks fiber.Router, db *gorm.DB, midtransServerKey, asaasToken string) {
	h := controller.NewWebhookController(service.NewProcessor(db), midtransServerKey, asaasToken)
	webhooks.Post("/midtrans", h.Midtrans)
	webhooks.Post("/asaas", h.Asaas)
}
