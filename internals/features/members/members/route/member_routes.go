package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/members/members/controller"
	"ecclesia_backend/internals/helpers/email"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

// MemberAdminRoutes mounts /api/a/members. Staff read; pastor/admin write.
func MemberAdminRoutes(admin fiber.Router, db *gorm.DB, store helperOSS.BlobStore, mailer email.EmailService) {
	ctl := controller.NewMemberController(db, store, mailer)
	onlyAdmins := authMiddleware.OnlyChurchRoles(constants.RoleErrorAdmin("member management"), constants.AdminRoles...)

	g := admin.Group("/members", authMiddleware.IsStaff())
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", onlyAdmins, ctl.Create)
	g.Patch("/:id", onlyAdmins, ctl.Update)
	g.Delete("/:id", onlyAdmins, ctl.Delete)
	g.Post("/:id/photo", onlyAdmins, ctl.UploadPhoto)
}

func MemberUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewMemberController(db, nil, nil)
	user.Get("/members/me", ctl.Me)
}
