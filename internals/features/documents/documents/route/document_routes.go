package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/documents/documents/controller"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func DocumentAdminRoutes(admin fiber.Router, db *gorm.DB, store helperOSS.BlobStore) {
	ctl := controller.NewDocumentController(db, store)
	g := admin.Group("/documents",
		authMiddleware.OnlyChurchRoles(constants.RoleErrorAdmin("pastor documents"), constants.AdminRoles...))
	g.Get("/", ctl.List)
	g.Post("/", ctl.Upload)
	g.Delete("/:id", ctl.Delete)
}
