package route

import (
	"github.com/gofiber/fiber/v2"

	refController "kntista_backend/internals/features/activity/references/controller"
	"kntista_backend/internals/features/activity/responsible_persons/model"
	"kntista_backend/internals/features/activity/responsible_persons/service"
)

// /responsible-persons
func ResponsiblePersonRoutes(api fiber.Router, svc *service.ResponsiblePersonService) {
	refController.New[model.ResponsiblePersonModel](svc).Mount(api.Group("/responsible-persons"))
}
