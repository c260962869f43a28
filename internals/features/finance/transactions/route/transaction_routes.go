package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/finance/transactions/controller"
)

func TransactionRoutes(finance fiber.Router, db *gorm.DB) {
	ctl := controller.NewTransactionController(db)
	finance.Get("/summary", ctl.Summary)

	g := finance.Group("/transactions")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
