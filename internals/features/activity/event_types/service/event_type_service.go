package service

import (
	"context"

	"gorm.io/gorm"

	"kntista_backend/internals/features/activity/event_types/model"
	refService "kntista_backend/internals/features/activity/references/service"
)

type EventTypeService = refService.Service[model.EventTypeModel, *model.EventTypeModel]

func New(db *gorm.DB) *EventTypeService {
	return refService.New[model.EventTypeModel](db, model.Table,
		func(_ context.Context, _ *gorm.DB, name string) (*model.EventTypeModel, error) {
			return &model.EventTypeModel{EventTypeName: name}, nil
		})
}
