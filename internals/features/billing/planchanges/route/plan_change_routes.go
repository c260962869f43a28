package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/planchanges/controller"
	"ecclesia_backend/internals/helpers/email"
)

// PlanChangeAdminRoutes expects a billing group already guarded by admin roles.
func PlanChangeAdminRoutes(billing fiber.Router, db *gorm.DB, mailer email.EmailService) {
	ctl := controller.NewPlanChangeController(db, mailer)
	billing.Get("/plan-requests", ctl.Mine)
	billing.Post("/plan-requests", ctl.Create)
}

func PlanChangeOwnerRoutes(owner fiber.Router, db *gorm.DB, mailer email.EmailService) {
	ctl := controller.NewPlanChangeController(db, mailer)
	g := owner.Group("/plan-requests")
	g.Get("/", ctl.OwnerList)
	g.Post("/:id/approve", ctl.Approve)
	g.Post("/:id/reject", ctl.Reject)
}
