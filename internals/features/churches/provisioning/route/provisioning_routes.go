package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/churches/provisioning/controller"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	"ecclesia_backend/internals/middlewares"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func ProvisioningPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewProvisioningController(db, nil)
	public.Post("/churches/register", middlewares.RegisterRateLimiter(), ctl.Register)
}

func ProvisioningAdminRoutes(admin fiber.Router, db *gorm.DB, store helperOSS.BlobStore) {
	ctl := controller.NewProvisioningController(db, store)
	onlyAdmins := authMiddleware.OnlyChurchRoles(constants.RoleErrorAdmin("church provisioning"), constants.AdminRoles...)

	children := admin.Group("/church/children", onlyAdmins)
	children.Post("/", ctl.CreateChild)
	children.Post("/:id/reset", ctl.ResetChild)
	children.Delete("/:id", ctl.DeleteChild)

	admin.Delete("/users/:id", onlyAdmins, ctl.DeleteUser)
}

func ProvisioningOwnerRoutes(owner fiber.Router, db *gorm.DB, store helperOSS.BlobStore) {
	ctl := controller.NewProvisioningController(db, store)
	owner.Delete("/churches/:id", ctl.OwnerDelete)
	owner.Post("/system/reset", ctl.SystemReset)
}
