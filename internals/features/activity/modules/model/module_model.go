package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	refModel "kntista_backend/internals/features/activity/references/model"
)

type ModuleModel struct {
	ModuleID        uuid.UUID `json:"module_id" gorm:"type:uuid;primaryKey;column:module_id"`
	ModuleName      string    `json:"module_name" gorm:"type:text;not null;uniqueIndex:uq_modules_name;column:module_name"`
	ModuleNumber    int       `json:"module_number" gorm:"not null;default:0;column:module_number"`
	ModuleIsDeleted bool      `json:"module_is_deleted" gorm:"not null;default:false;index;column:module_is_deleted"`

	ModuleCreatedAt time.Time `json:"module_created_at" gorm:"column:module_created_at;autoCreateTime"`
	ModuleUpdatedAt time.Time `json:"module_updated_at" gorm:"column:module_updated_at;autoUpdateTime"`
}

func (ModuleModel) TableName() string { return "modules" }

func (m *ModuleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModuleID == uuid.Nil {
		m.ModuleID = uuid.New()
	}
	return nil
}

func (m *ModuleModel) RecordID() uuid.UUID   { return m.ModuleID }
func (m *ModuleModel) RecordName() string    { return m.ModuleName }
func (m *ModuleModel) RecordIsDeleted() bool { return m.ModuleIsDeleted }

var Table = refModel.Table{
	Name:          "modules",
	IDColumn:      "module_id",
	NameColumn:    "module_name",
	DeletedColumn: "module_is_deleted",
	ForeignKey:    refModel.ModuleForeignKey,
}
