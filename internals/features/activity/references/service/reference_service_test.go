package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	eventTypeModel "kntista_backend/internals/features/activity/event_types/model"
	eventTypeService "kntista_backend/internals/features/activity/event_types/service"
	eventModel "kntista_backend/internals/features/activity/events/model"
	"kntista_backend/internals/helpers/errs"
	"kntista_backend/internals/testdb"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func addEvent(t *testing.T, db *gorm.DB, typeID uuid.UUID, starts []time.Time, end *time.Time) uuid.UUID {
	t.Helper()
	ev := eventModel.EventModel{
		EventName:                "event",
		EventStartDates:          starts,
		EventStartsOn:            starts[0],
		EventEndDate:             end,
		EventModuleID:            uuid.New(),
		EventLocationID:          uuid.New(),
		EventEventTypeID:         typeID,
		EventResponsiblePersonID: uuid.New(),
	}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return ev.EventID
}

func TestInsertCreatesRestoresAndSkips(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	ctx := context.Background()

	created, err := svc.Insert(ctx, "Lecture")
	if err != nil || created == nil {
		t.Fatalf("insert: %v %v", created, err)
	}

	again, err := svc.Insert(ctx, "Lecture")
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if again != nil {
		t.Fatalf("expected nil for an existing active name, got %+v", again)
	}

	addEvent(t, db, created.EventTypeID, []time.Time{day(2024, 5, 1)}, nil)
	res, err := svc.DeleteOne(ctx, created.EventTypeID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !res.IsMarkedAsDeleted || res.IsDeleted {
		t.Fatalf("referenced row should only be marked, got %+v", res)
	}

	restored, err := svc.Insert(ctx, "Lecture")
	if err != nil || restored == nil {
		t.Fatalf("restore: %v %v", restored, err)
	}
	if restored.EventTypeID != created.EventTypeID || restored.EventTypeIsDeleted {
		t.Fatalf("expected the same row restored, got %+v", restored)
	}
}

func TestEnsureReturnsExistingOrCreates(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	ctx := context.Background()

	first, err := svc.Ensure(ctx, "Workshop")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := svc.Ensure(ctx, "Workshop")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first != second {
		t.Fatalf("ensure should be idempotent: %s vs %s", first, second)
	}

	var n int64
	db.Model(&eventTypeModel.EventTypeModel{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected one row, got %d", n)
	}
}

func TestDeleteOneRemovesUnusedRow(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	ctx := context.Background()

	row, _ := svc.Insert(ctx, "Seminar")
	res, err := svc.DeleteOne(ctx, row.EventTypeID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !res.IsDeleted || res.IsMarkedAsDeleted {
		t.Fatalf("unused row should be removed, got %+v", res)
	}
	if _, err := svc.GetByID(ctx, row.EventTypeID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	res, err = svc.DeleteOne(ctx, uuid.New())
	if err != nil || res.IsDeleted || res.IsMarkedAsDeleted {
		t.Fatalf("deleting an unknown id should be a no-op, got %+v %v", res, err)
	}
}

func TestDeleteUnusedKeepsReferencedRows(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	ctx := context.Background()

	used, _ := svc.Insert(ctx, "Used")
	orphan, _ := svc.Insert(ctx, "Orphan")
	idle, _ := svc.Insert(ctx, "Idle")
	addEvent(t, db, used.EventTypeID, []time.Time{day(2024, 5, 1)}, nil)
	orphanEvent := addEvent(t, db, orphan.EventTypeID, []time.Time{day(2024, 5, 1)}, nil)

	for _, id := range []uuid.UUID{used.EventTypeID, orphan.EventTypeID} {
		if _, err := svc.DeleteOne(ctx, id); err != nil {
			t.Fatalf("mark: %v", err)
		}
	}
	if err := db.Delete(&eventModel.EventModel{}, "event_id = ?", orphanEvent).Error; err != nil {
		t.Fatalf("drop event: %v", err)
	}

	n, err := svc.DeleteUnused(ctx)
	if err != nil {
		t.Fatalf("delete unused: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row removed, got %d", n)
	}
	if _, err := svc.GetByID(ctx, used.EventTypeID); err != nil {
		t.Fatalf("referenced row must survive: %v", err)
	}
	if _, err := svc.GetByID(ctx, orphan.EventTypeID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("soft-deleted unreferenced row should be gone, got %v", err)
	}
	kept, err := svc.GetByID(ctx, idle.EventTypeID)
	if err != nil {
		t.Fatalf("active unreferenced row must survive: %v", err)
	}
	if kept.EventTypeIsDeleted {
		t.Fatalf("active row was flagged deleted")
	}
}

func TestRenameRejectsTakenName(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	ctx := context.Background()

	a, _ := svc.Insert(ctx, "Alpha")
	svc.Insert(ctx, "Beta")

	if _, err := svc.Rename(ctx, a.EventTypeID, "Beta"); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.Rename(ctx, uuid.New(), "Gamma"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	renamed, err := svc.Rename(ctx, a.EventTypeID, "Alpha 2")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.EventTypeName != "Alpha 2" {
		t.Fatalf("unexpected name %q", renamed.EventTypeName)
	}
}

func TestListAllOrdersByCurrentMonthUsage(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	svc.Now = func() time.Time { return day(2024, 5, 15) }
	ctx := context.Background()

	busy, _ := svc.Insert(ctx, "Zeta")
	quiet, _ := svc.Insert(ctx, "beta")
	svc.Insert(ctx, "Alpha")
	gone, _ := svc.Insert(ctx, "Gone")

	addEvent(t, db, busy.EventTypeID, []time.Time{day(2024, 5, 3)}, nil)
	addEvent(t, db, busy.EventTypeID, []time.Time{day(2024, 4, 3)}, nil)
	// ended last month: not counted
	addEvent(t, db, quiet.EventTypeID, []time.Time{day(2024, 3, 1)}, ptr(day(2024, 4, 30)))
	addEvent(t, db, gone.EventTypeID, []time.Time{day(2024, 5, 3)}, nil)
	if _, err := svc.DeleteOne(ctx, gone.EventTypeID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	items, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var names []string
	for _, it := range items {
		names = append(names, it.Item.EventTypeName)
	}
	want := []string{"Zeta", "Alpha", "beta"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
	if items[0].CurrentMonthEventCount != 2 || items[2].CurrentMonthEventCount != 0 {
		t.Fatalf("unexpected counts %+v", items)
	}
}

func TestSearchMatchesLiteralSubstring(t *testing.T) {
	db := testdb.Open(t)
	svc := eventTypeService.New(db)
	ctx := context.Background()

	svc.Insert(ctx, "Sale 50% off")
	svc.Insert(ctx, "Sale 500 off")
	svc.Insert(ctx, "Yoga")

	rows, err := svc.Search(ctx, "0%")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].EventTypeName != "Sale 50% off" {
		t.Fatalf("unexpected rows %+v", rows)
	}

	rows, _ = svc.Search(ctx, "SALE")
	if len(rows) != 2 {
		t.Fatalf("search should be case-insensitive, got %d rows", len(rows))
	}

	rows, _ = svc.Search(ctx, "")
	if len(rows) != 3 {
		t.Fatalf("empty needle should list all active rows, got %d", len(rows))
	}
}

func ptr(t time.Time) *time.Time { return &t }
