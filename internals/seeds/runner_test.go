package seeds

import (
	"testing"
	"time"

	"github.com/google/uuid"

	eventModel "kntista_backend/internals/features/activity/events/model"
	moduleModel "kntista_backend/internals/features/activity/modules/model"
	"kntista_backend/internals/testdb"
)

func TestRunAllSeeds(t *testing.T) {
	db := testdb.Open(t)

	if err := RunAllSeeds(db, false); err != nil {
		t.Fatalf("seed empty db: %v", err)
	}
	var modules []moduleModel.ModuleModel
	db.Order("module_number ASC").Find(&modules)
	if len(modules) != 5 || modules[0].ModuleNumber != 1 || modules[4].ModuleNumber != 5 {
		t.Fatalf("unexpected seeded modules %+v", modules)
	}

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	ev := eventModel.EventModel{
		EventName:                "Kept unless forced",
		EventStartDates:          []time.Time{start},
		EventStartsOn:            start,
		EventModuleID:            modules[0].ModuleID,
		EventLocationID:          uuid.New(),
		EventEventTypeID:         uuid.New(),
		EventResponsiblePersonID: uuid.New(),
	}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("event: %v", err)
	}

	if err := RunAllSeeds(db, false); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var events int64
	db.Model(&eventModel.EventModel{}).Count(&events)
	if events != 1 {
		t.Fatalf("seeding a filled db without force must not touch it, events=%d", events)
	}

	if err := RunAllSeeds(db, true); err != nil {
		t.Fatalf("forced seed: %v", err)
	}
	db.Model(&eventModel.EventModel{}).Count(&events)
	var n int64
	db.Model(&moduleModel.ModuleModel{}).Count(&n)
	if events != 0 || n != 5 {
		t.Fatalf("forced seed should reset, events=%d modules=%d", events, n)
	}
}
