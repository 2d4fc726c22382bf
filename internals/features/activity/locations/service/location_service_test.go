package service

import (
	"context"
	"errors"
	"testing"

	"kntista_backend/internals/helpers/errs"
	"kntista_backend/internals/testdb"
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestInsertIsKeyedOnNameAndOffline(t *testing.T) {
	s := New(testdb.Open(t))
	ctx := context.Background()

	offline, err := s.Insert(ctx, NewLocation{Name: "Room A", IsOffline: true})
	if err != nil || offline == nil {
		t.Fatalf("insert offline: %v %v", offline, err)
	}
	online, err := s.Insert(ctx, NewLocation{Name: "Room A", IsOffline: false})
	if err != nil || online == nil {
		t.Fatalf("same name online should be a new row: %v %v", online, err)
	}
	if online.LocationID == offline.LocationID {
		t.Fatalf("expected two distinct rows")
	}

	dup, err := s.Insert(ctx, NewLocation{Name: "Room A", IsOffline: true})
	if err != nil || dup != nil {
		t.Fatalf("existing active pair should be a no-op, got %v %v", dup, err)
	}
}

func TestSearchFiltersOfflineAndAddress(t *testing.T) {
	s := New(testdb.Open(t))
	ctx := context.Background()

	if _, err := s.Insert(ctx, NewLocation{Name: "Room A", IsOffline: true}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Insert(ctx, NewLocation{Name: "Hall", IsOffline: true, Address: strPtr("12 Main Street")}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Insert(ctx, NewLocation{Name: "Zoom", IsOffline: false}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := s.Search(ctx, SearchFilter{Name: "room a", IsOffline: boolPtr(false)})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no online Room A, got %+v", rows)
	}

	rows, _ = s.Search(ctx, SearchFilter{IsOffline: boolPtr(true), AddressIsNull: true})
	if len(rows) != 1 || rows[0].LocationName != "Room A" {
		t.Fatalf("expected Room A for null address, got %+v", rows)
	}

	rows, _ = s.Search(ctx, SearchFilter{Address: "main"})
	if len(rows) != 1 || rows[0].LocationName != "Hall" {
		t.Fatalf("expected Hall for address substring, got %+v", rows)
	}

	rows, _ = s.Search(ctx, SearchFilter{})
	if len(rows) != 3 {
		t.Fatalf("empty filter should list all, got %d", len(rows))
	}
}

func TestUpdateIsPartialAndDetectsConflicts(t *testing.T) {
	s := New(testdb.Open(t))
	ctx := context.Background()

	hall, _ := s.Insert(ctx, NewLocation{Name: "Hall", IsOffline: true, Address: strPtr("12 Main Street")})
	s.Insert(ctx, NewLocation{Name: "Lobby", IsOffline: true})

	same, err := s.Update(ctx, hall.LocationID, Patch{})
	if err != nil || same.LocationName != "Hall" {
		t.Fatalf("empty patch should return the row unchanged: %+v %v", same, err)
	}

	if _, err := s.Update(ctx, hall.LocationID, Patch{Name: strPtr("Lobby")}); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Lobby online does not collide with Lobby offline
	moved, err := s.Update(ctx, hall.LocationID, Patch{Name: strPtr("Lobby"), IsOffline: boolPtr(false), ClearAddress: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.LocationName != "Lobby" || moved.LocationIsOffline || moved.LocationAddress != nil {
		t.Fatalf("unexpected row %+v", moved)
	}
}

func TestUpdateToOnlineDropsAddress(t *testing.T) {
	s := New(testdb.Open(t))
	ctx := context.Background()

	hall, _ := s.Insert(ctx, NewLocation{Name: "Hall", IsOffline: true, Address: strPtr("12 Main Street")})

	online, err := s.Update(ctx, hall.LocationID, Patch{IsOffline: boolPtr(false)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if online.LocationIsOffline || online.LocationAddress != nil {
		t.Fatalf("online location kept its address: %+v", online)
	}

	back, err := s.Update(ctx, hall.LocationID, Patch{IsOffline: boolPtr(true), Address: strPtr("  7 Side Road ")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if back.LocationAddress == nil || *back.LocationAddress != "7 Side Road" {
		t.Fatalf("unexpected address %v", back.LocationAddress)
	}
}
