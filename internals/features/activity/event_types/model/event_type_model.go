package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	refModel "kntista_backend/internals/features/activity/references/model"
)

type EventTypeModel struct {
	EventTypeID        uuid.UUID `json:"event_type_id" gorm:"type:uuid;primaryKey;column:event_type_id"`
	EventTypeName      string    `json:"event_type_name" gorm:"type:text;not null;uniqueIndex:uq_event_types_name;column:event_type_name"`
	EventTypeIsDeleted bool      `json:"event_type_is_deleted" gorm:"not null;default:false;index;column:event_type_is_deleted"`

	EventTypeCreatedAt time.Time `json:"event_type_created_at" gorm:"column:event_type_created_at;autoCreateTime"`
	EventTypeUpdatedAt time.Time `json:"event_type_updated_at" gorm:"column:event_type_updated_at;autoUpdateTime"`
}

func (EventTypeModel) TableName() string { return "event_types" }

func (m *EventTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventTypeID == uuid.Nil {
		m.EventTypeID = uuid.New()
	}
	return nil
}

func (m *EventTypeModel) RecordID() uuid.UUID   { return m.EventTypeID }
func (m *EventTypeModel) RecordName() string    { return m.EventTypeName }
func (m *EventTypeModel) RecordIsDeleted() bool { return m.EventTypeIsDeleted }

var Table = refModel.Table{
	Name:          "event_types",
	IDColumn:      "event_type_id",
	NameColumn:    "event_type_name",
	DeletedColumn: "event_type_is_deleted",
	ForeignKey:    refModel.EventTypeForeignKey,
}
