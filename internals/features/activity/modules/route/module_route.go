package route

import (
	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/modules/controller"
	"kntista_backend/internals/features/activity/modules/service"
)

// /modules
func ModuleRoutes(api fiber.Router, svc *service.ModuleService) {
	ctl := controller.NewModuleController(svc)

	g := api.Group("/modules")
	g.Put("/order", ctl.Reorder)
	ctl.Mount(g)
}
