package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	eventModel "kntista_backend/internals/features/activity/events/model"
	"kntista_backend/internals/features/activity/modules/model"
	"kntista_backend/internals/helpers/errs"
	"kntista_backend/internals/testdb"
)

func insertModules(t *testing.T, s *ModuleService, names ...string) []model.ModuleModel {
	t.Helper()
	out := make([]model.ModuleModel, 0, len(names))
	for _, name := range names {
		m, err := s.Insert(context.Background(), name)
		if err != nil || m == nil {
			t.Fatalf("insert %q: %v %v", name, m, err)
		}
		out = append(out, *m)
	}
	return out
}

func numbers(t *testing.T, s *ModuleService) map[uuid.UUID]int {
	t.Helper()
	var rows []model.ModuleModel
	if err := s.DB.Find(&rows).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		out[r.ModuleID] = r.ModuleNumber
	}
	return out
}

func TestInsertAssignsNextNumber(t *testing.T) {
	s := New(testdb.Open(t))
	mods := insertModules(t, s, "Intro", "Basics", "Advanced")

	for i, m := range mods {
		if m.ModuleNumber != i+1 {
			t.Fatalf("module %q got number %d, want %d", m.ModuleName, m.ModuleNumber, i+1)
		}
	}
}

func TestReorderToMovesListedFirst(t *testing.T) {
	s := New(testdb.Open(t))
	mods := insertModules(t, s, "A", "B", "C")
	a, b, c := mods[0].ModuleID, mods[1].ModuleID, mods[2].ModuleID

	out, err := s.ReorderTo(context.Background(), []uuid.UUID{b, c})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if len(out) != 3 || out[0].ModuleID != b || out[2].ModuleID != a {
		t.Fatalf("unexpected order %+v", out)
	}

	got := numbers(t, s)
	if got[b] != 1 || got[c] != 2 || got[a] != 3 {
		t.Fatalf("unexpected numbers %v", got)
	}
}

func TestReorderToRejectsBadInput(t *testing.T) {
	s := New(testdb.Open(t))
	mods := insertModules(t, s, "A", "B")
	ctx := context.Background()

	if _, err := s.ReorderTo(ctx, []uuid.UUID{mods[0].ModuleID, mods[0].ModuleID}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicates, got %v", err)
	}
	if _, err := s.ReorderTo(ctx, []uuid.UUID{uuid.New()}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	many := make([]uuid.UUID, MaxReorderItems+1)
	for i := range many {
		many[i] = uuid.New()
	}
	if _, err := s.ReorderTo(ctx, many); !errors.Is(err, errs.ErrTooManyItems) {
		t.Fatalf("expected ErrTooManyItems, got %v", err)
	}

	// a failed reorder leaves numbers untouched
	got := numbers(t, s)
	if got[mods[0].ModuleID] != 1 || got[mods[1].ModuleID] != 2 {
		t.Fatalf("numbers changed after failed reorder: %v", got)
	}
}

func TestRestoredModuleGoesLast(t *testing.T) {
	db := testdb.Open(t)
	s := New(db)
	ctx := context.Background()
	mods := insertModules(t, s, "A", "B")

	ev := eventModel.EventModel{
		EventName:                "Kickoff",
		EventStartDates:          []time.Time{time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)},
		EventStartsOn:            time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
		EventModuleID:            mods[0].ModuleID,
		EventLocationID:          uuid.New(),
		EventEventTypeID:         uuid.New(),
		EventResponsiblePersonID: uuid.New(),
	}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("event: %v", err)
	}
	if res, err := s.DeleteOne(ctx, mods[0].ModuleID); err != nil || !res.IsMarkedAsDeleted {
		t.Fatalf("soft delete: %+v %v", res, err)
	}
	if _, err := s.ReorderTo(ctx, nil); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	restored, err := s.Insert(ctx, "A")
	if err != nil || restored == nil {
		t.Fatalf("restore: %v %v", restored, err)
	}
	if restored.ModuleID != mods[0].ModuleID || restored.ModuleNumber != 2 {
		t.Fatalf("expected module A restored as number 2, got %+v", restored)
	}
}

func TestListAllAndSearchFollowNumbers(t *testing.T) {
	s := New(testdb.Open(t))
	ctx := context.Background()
	mods := insertModules(t, s, "Zulu basics", "Alpha basics", "Other")

	if _, err := s.ReorderTo(ctx, []uuid.UUID{mods[2].ModuleID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Item.ModuleName != "Other" || all[1].Item.ModuleName != "Zulu basics" {
		t.Fatalf("unexpected list %+v", all)
	}

	found, err := s.Search(ctx, "BASICS")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 || found[0].ModuleName != "Zulu basics" {
		t.Fatalf("unexpected search result %+v", found)
	}
}
