package dto

import (
	"github.com/google/uuid"

	"kntista_backend/internals/features/activity/modules/model"
)

type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required"`
}

type ModuleOrderDTO struct {
	ModuleID     uuid.UUID `json:"module_id"`
	ModuleName   string    `json:"module_name"`
	ModuleNumber int       `json:"module_number"`
}

func ToModuleOrderDTOs(rows []model.ModuleModel) []ModuleOrderDTO {
	out := make([]ModuleOrderDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, ModuleOrderDTO{
			ModuleID:     m.ModuleID,
			ModuleName:   m.ModuleName,
			ModuleNumber: m.ModuleNumber,
		})
	}
	return out
}
