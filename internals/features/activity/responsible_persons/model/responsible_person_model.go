package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	refModel "kntista_backend/internals/features/activity/references/model"
)

type ResponsiblePersonModel struct {
	ResponsiblePersonID        uuid.UUID `json:"responsible_person_id" gorm:"type:uuid;primaryKey;column:responsible_person_id"`
	ResponsiblePersonName      string    `json:"responsible_person_name" gorm:"type:text;not null;uniqueIndex:uq_responsible_persons_name;column:responsible_person_name"`
	ResponsiblePersonIsDeleted bool      `json:"responsible_person_is_deleted" gorm:"not null;default:false;index;column:responsible_person_is_deleted"`

	ResponsiblePersonCreatedAt time.Time `json:"responsible_person_created_at" gorm:"column:responsible_person_created_at;autoCreateTime"`
	ResponsiblePersonUpdatedAt time.Time `json:"responsible_person_updated_at" gorm:"column:responsible_person_updated_at;autoUpdateTime"`
}

func (ResponsiblePersonModel) TableName() string { return "responsible_persons" }

func (m *ResponsiblePersonModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResponsiblePersonID == uuid.Nil {
		m.ResponsiblePersonID = uuid.New()
	}
	return nil
}

func (m *ResponsiblePersonModel) RecordID() uuid.UUID   { return m.ResponsiblePersonID }
func (m *ResponsiblePersonModel) RecordName() string    { return m.ResponsiblePersonName }
func (m *ResponsiblePersonModel) RecordIsDeleted() bool { return m.ResponsiblePersonIsDeleted }

var Table = refModel.Table{
	Name:          "responsible_persons",
	IDColumn:      "responsible_person_id",
	NameColumn:    "responsible_person_name",
	DeletedColumn: "responsible_person_is_deleted",
	ForeignKey:    refModel.ResponsiblePersonForeignKey,
}
