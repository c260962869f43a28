package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/finance/budgets/controller"
)

func BudgetRoutes(finance fiber.Router, db *gorm.DB) {
	ctl := controller.NewBudgetController(db)
	g := finance.Group("/budgets")
	g.Get("/", ctl.List)
	g.Put("/", ctl.Upsert)
	g.Delete("/:id", ctl.Delete)
}
