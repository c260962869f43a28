package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/journeys/trilhas/controller"
	authMiddleware "ecclesia_backend/internals/middlewares/auth"
)

func JourneyUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewJourneyController(db)
	user.Get("/trilhas", ctl.List)
	user.Get("/trilhas/:id/tree", ctl.Tree)
	user.Get("/trilhas/:id/progress", ctl.Progress)
	user.Post("/passos/:id/complete", ctl.Complete)
	user.Post("/passos/:id/quiz", ctl.SubmitQuiz)
}

func JourneyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewJourneyController(db)
	staff := authMiddleware.IsStaff()

	trilhas := admin.Group("/trilhas", staff)
	trilhas.Post("/", ctl.CreateTrilha)
	trilhas.Patch("/:id", ctl.UpdateTrilha)
	trilhas.Delete("/:id", ctl.DeleteTrilha)
	trilhas.Post("/:id/etapas", ctl.CreateEtapa)

	etapas := admin.Group("/etapas", staff)
	etapas.Patch("/:id", ctl.UpdateEtapa)
	etapas.Delete("/:id", ctl.DeleteEtapa)
	etapas.Post("/:id/passos", ctl.CreatePasso)

	passos := admin.Group("/passos", staff)
	passos.Patch("/:id", ctl.UpdatePasso)
	passos.Delete("/:id", ctl.DeletePasso)
	passos.Post("/:id/questions", ctl.CreateQuestion)

	questions := admin.Group("/questions", staff)
	questions.Patch("/:id", ctl.UpdateQuestion)
	questions.Delete("/:id", ctl.DeleteQuestion)
}
