package route

import (
	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/events/controller"
	"kntista_backend/internals/features/activity/events/service"
)

// /events
func EventRoutes(api fiber.Router, svc *service.EventService) {
	ctl := controller.NewEventController(svc)

	g := api.Group("/events")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/", ctl.DeleteMany)
}
