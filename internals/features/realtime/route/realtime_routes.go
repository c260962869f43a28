package route

import (
	"github.com/gofiber/fiber/v2"

	"ecclesia_backend/internals/features/realtime/controller"
	"ecclesia_backend/internals/helpers/realtime"
)

func RealtimeUserRoutes(user fiber.Router, broker *realtime.Broker) {
	ctl := controller.NewStreamController(broker)
	user.Get("/realtime/stream", ctl.Stream)
}
