package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/churches/churches/controller"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func ChurchUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewChurchController(db, nil)
	user.Get("/church", ctl.GetCurrent)
}

func ChurchAdminRoutes(admin fiber.Router, db *gorm.DB, store helperOSS.BlobStore) {
	ctl := controller.NewChurchController(db, store)
	g := admin.Group("/church", authMiddleware.OnlyChurchRoles(constants.RoleErrorAdmin("church settings"), constants.AdminRoles...))
	g.Patch("/", ctl.Update)
	g.Post("/logo", ctl.UploadLogo)
	g.Get("/children", ctl.ListChildren)
}

func ChurchOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	ctl := controller.NewChurchController(db, nil)
	g := owner.Group("/churches")
	g.Get("/", ctl.OwnerList)
	g.Get("/:id", ctl.OwnerDetail)
	g.Patch("/:id/status", ctl.OwnerSetStatus)
}
