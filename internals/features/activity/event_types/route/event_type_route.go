package route

import (
	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/event_types/model"
	"kntista_backend/internals/features/activity/event_types/service"
	refController "kntista_backend/internals/features/activity/references/controller"
)

// /event-types
func EventTypeRoutes(api fiber.Router, svc *service.EventTypeService) {
	refController.New[model.EventTypeModel](svc).Mount(api.Group("/event-types"))
}
