package service

import (
	"context"

	"gorm.io/gorm"

	"kntista_backend/internals/features/activity/responsible_persons/model"
	refService "kntista_backend/internals/features/activity/references/service"
)

type ResponsiblePersonService = refService.Service[model.ResponsiblePersonModel, *model.ResponsiblePersonModel]

func New(db *gorm.DB) *ResponsiblePersonService {
	return refService.New[model.ResponsiblePersonModel](db, model.Table,
		func(_ context.Context, _ *gorm.DB, name string) (*model.ResponsiblePersonModel, error) {
			return &model.ResponsiblePersonModel{ResponsiblePersonName: name}, nil
		})
}
