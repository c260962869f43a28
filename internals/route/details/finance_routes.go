package details

import (
	"github.com/gofiber/fiber/v2"

	"ecclesia_backend/internals/constants"
	budgetRoute "ecclesia_backend/internals/features/finance/budgets/route"
	categoryRoute "ecclesia_backend/internals/features/finance/categories/route"
	transactionRoute "ecclesia_backend/internals/features/finance/transactions/route"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

// FinanceAdminRoutes mounts /api/a/finance for pastor, admin and treasurer.
func FinanceAdminRoutes(admin fiber.Router, d Deps) {
	finance := admin.Group("/finance",
		authMiddleware.OnlyChurchRoles(constants.RoleErrorFinance("finance"), constants.FinanceRoles...),
	)
	categoryRoute.CategoryRoutes(finance, d.DB)
	transactionRoute.TransactionRoutes(finance, d.DB)
	budgetRoute.BudgetRoutes(finance, d.DB)
}
