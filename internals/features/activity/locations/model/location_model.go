package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	refModel "kntista_backend/internals/features/activity/references/model"
)

// LocationModel is unique on (name, is_offline): "Room A" may exist once online and once offline.
type LocationModel struct {
	LocationID        uuid.UUID `json:"location_id" gorm:"type:uuid;primaryKey;column:location_id"`
	LocationName      string    `json:"location_name" gorm:"type:text;not null;uniqueIndex:uq_locations_name_offline,priority:1;column:location_name"`
	LocationIsOffline bool      `json:"location_is_offline" gorm:"not null;default:false;uniqueIndex:uq_locations_name_offline,priority:2;column:location_is_offline"`
	LocationAddress   *string   `json:"location_address" gorm:"type:text;column:location_address"`
	LocationIsDeleted bool      `json:"location_is_deleted" gorm:"not null;default:false;index;column:location_is_deleted"`

	LocationCreatedAt time.Time `json:"location_created_at" gorm:"column:location_created_at;autoCreateTime"`
	LocationUpdatedAt time.Time `json:"location_updated_at" gorm:"column:location_updated_at;autoUpdateTime"`
}

func (LocationModel) TableName() string { return "locations" }

func (m *LocationModel) BeforeCreate(tx *gorm.DB) error {
	if m.LocationID == uuid.Nil {
		m.LocationID = uuid.New()
	}
	return nil
}

func (m *LocationModel) RecordID() uuid.UUID   { return m.LocationID }
func (m *LocationModel) RecordName() string    { return m.LocationName }
func (m *LocationModel) RecordIsDeleted() bool { return m.LocationIsDeleted }

var Table = refModel.Table{
	Name:          "locations",
	IDColumn:      "location_id",
	NameColumn:    "location_name",
	DeletedColumn: "location_is_deleted",
	ForeignKey:    refModel.LocationForeignKey,
}
