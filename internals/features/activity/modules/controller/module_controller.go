package controller

import (
	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/modules/dto"
	"kntista_backend/internals/features/activity/modules/model"
	"kntista_backend/internals/features/activity/modules/service"
	refController "kntista_backend/internals/features/activity/references/controller"
	helper "kntista_backend/internals/helpers"
)

type ModuleController struct {
	*refController.ReferenceController[model.ModuleModel]
	Modules *service.ModuleService
}

func NewModuleController(svc *service.ModuleService) *ModuleController {
	return &ModuleController{
		ReferenceController: refController.New[model.ModuleModel](svc),
		Modules:             svc,
	}
}

// PUT /order {ids}
func (ctl *ModuleController) Reorder(c *fiber.Ctx) error {
	var body dto.ReorderRequest
	if ok, err := refController.Bind(c, &body); !ok {
		return err
	}

	rows, err := ctl.Modules.ReorderTo(c.UserContext(), body.IDs)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "reordered", dto.ToModuleOrderDTOs(rows))
}
