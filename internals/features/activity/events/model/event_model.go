package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	eventTypeModel "kntista_backend/internals/features/activity/event_types/model"
	locationModel "kntista_backend/internals/features/activity/locations/model"
	moduleModel "kntista_backend/internals/features/activity/modules/model"
	personModel "kntista_backend/internals/features/activity/responsible_persons/model"
)

// EventModel is never soft-deleted.
//
// EventStartDates is kept sorted ascending, so EventStartsOn (its first element)
// is the earliest start date and can be filtered on in SQL.
type EventModel struct {
	EventID                  uuid.UUID                      `json:"event_id" gorm:"type:uuid;primaryKey;column:event_id"`
	EventName                string                         `json:"event_name" gorm:"type:text;not null;column:event_name"`
	EventStartDates          datatypes.JSONSlice[time.Time] `json:"event_start_dates" gorm:"not null;column:event_start_dates"`
	EventStartsOn            time.Time                      `json:"event_starts_on" gorm:"not null;index;column:event_starts_on"`
	EventEndDate             *time.Time                     `json:"event_end_date" gorm:"index;column:event_end_date"`
	EventParticipantsCount   int                            `json:"event_participants_count" gorm:"not null;default:0;column:event_participants_count"`
	EventLinks               datatypes.JSONSlice[string]    `json:"event_links" gorm:"not null;column:event_links"`
	EventModuleID            uuid.UUID                      `json:"event_module_id" gorm:"type:uuid;not null;index;column:event_module_id"`
	EventLocationID          uuid.UUID                      `json:"event_location_id" gorm:"type:uuid;not null;index;column:event_location_id"`
	EventEventTypeID         uuid.UUID                      `json:"event_event_type_id" gorm:"type:uuid;not null;index;column:event_event_type_id"`
	EventResponsiblePersonID uuid.UUID                      `json:"event_responsible_person_id" gorm:"type:uuid;not null;index;column:event_responsible_person_id"`

	EventCreatedAt time.Time `json:"event_created_at" gorm:"column:event_created_at;autoCreateTime"`
	EventUpdatedAt time.Time `json:"event_updated_at" gorm:"column:event_updated_at;autoUpdateTime"`

	Module            *moduleModel.ModuleModel            `json:"module,omitempty" gorm:"foreignKey:EventModuleID;references:ModuleID"`
	Location          *locationModel.LocationModel        `json:"location,omitempty" gorm:"foreignKey:EventLocationID;references:LocationID"`
	EventType         *eventTypeModel.EventTypeModel      `json:"event_type,omitempty" gorm:"foreignKey:EventEventTypeID;references:EventTypeID"`
	ResponsiblePerson *personModel.ResponsiblePersonModel `json:"responsible_person,omitempty" gorm:"foreignKey:EventResponsiblePersonID;references:ResponsiblePersonID"`
}

func (EventModel) TableName() string { return "events" }

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	if m.EventLinks == nil {
		m.EventLinks = datatypes.JSONSlice[string]{}
	}
	return nil
}
