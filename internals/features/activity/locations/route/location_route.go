package route

import (
	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/locations/controller"
	"kntista_backend/internals/features/activity/locations/model"
	"kntista_backend/internals/features/activity/locations/service"
	refController "kntista_backend/internals/features/activity/references/controller"
)

// /locations
func LocationRoutes(api fiber.Router, svc *service.LocationService) {
	ctl := controller.NewLocationController(svc)

	g := api.Group("/locations")
	g.Get("/", refController.ListHandler[model.LocationModel](svc))
	g.Get("/search", ctl.Search)
	g.Delete("/unused", refController.DeleteUnusedHandler(svc))
	g.Get("/:id", refController.GetHandler[model.LocationModel](svc))
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", refController.DeleteHandler(svc))
}
