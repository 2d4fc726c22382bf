// Package service implements the lifecycle shared by every reference table:
// get-or-create-or-restore inserts, soft deletes for rows still used by events,
// hard deletes for unused rows, and usage-aware listing.
//
// A reference table is described by a refModel.Table (its columns plus the
// events foreign key pointing at it) and a Build hook producing the row to
// create for a new name.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	refModel "kntista_backend/internals/features/activity/references/model"
	"kntista_backend/internals/helpers/errs"
)

type Record[T any] interface {
	*T
	refModel.Record
}

// BuildFunc returns the row to insert for a brand-new name. It runs inside
// the insert transaction and must only use tx.
type BuildFunc[T any] func(ctx context.Context, tx *gorm.DB, name string) (*T, error)

// RestoreFunc returns extra columns to write when a soft-deleted row is
// restored. It runs inside the insert transaction, before the flag is cleared.
type RestoreFunc[T any] func(ctx context.Context, tx *gorm.DB, row *T) (map[string]any, error)

type Service[T any, P Record[T]] struct {
	DB      *gorm.DB
	Table   refModel.Table
	Build   BuildFunc[T]
	Restore RestoreFunc[T] // optional
	Now     func() time.Time
}

func New[T any, P Record[T]](db *gorm.DB, table refModel.Table, build BuildFunc[T]) *Service[T, P] {
	return &Service[T, P]{DB: db, Table: table, Build: build, Now: time.Now}
}

// DeleteResult reports what DeleteOne did. IsMarkedAsDeleted means the row
// is still referenced and was only flagged.
type DeleteResult struct {
	ID                uuid.UUID `json:"id"`
	IsDeleted         bool      `json:"is_deleted"`
	IsMarkedAsDeleted bool      `json:"is_marked_as_deleted"`
}

func (s *Service[T, P]) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service[T, P]) eq(column string) string {
	return column + " = ?"
}

/* =========================
   Lookups
   ========================= */

// GetByID returns the row in any deletion state.
func (s *Service[T, P]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	err := s.DB.WithContext(ctx).Where(s.eq(s.Table.IDColumn), id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %s", errs.ErrNotFound, s.Table.Name, id)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByName is an exact lookup in any deletion state; nil when absent.
func (s *Service[T, P]) FindByName(ctx context.Context, name string) (*T, error) {
	var row T
	err := s.DB.WithContext(ctx).Where(s.eq(s.Table.NameColumn), name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service[T, P]) FindIDByName(ctx context.Context, name string) (uuid.UUID, bool, error) {
	row, err := s.FindByName(ctx, name)
	if err != nil || row == nil {
		return uuid.Nil, false, err
	}
	return P(row).RecordID(), true, nil
}

// FindActiveIDByName ignores soft-deleted rows.
func (s *Service[T, P]) FindActiveIDByName(ctx context.Context, name string) (uuid.UUID, bool, error) {
	row, err := s.FindByName(ctx, name)
	if err != nil || row == nil || P(row).RecordIsDeleted() {
		return uuid.Nil, false, err
	}
	return P(row).RecordID(), true, nil
}

func (s *Service[T, P]) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(new(T)).
		Where(s.eq(s.Table.IDColumn), id).
		Where(s.eq(s.Table.DeletedColumn), false).
		Count(&n).Error
	return n > 0, err
}

// IsReferenced reports whether any event points at id.
func (s *Service[T, P]) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Table(refModel.EventsTable).
		Where(s.eq(string(s.Table.ForeignKey)), id).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

/* =========================
   Insert (get-or-create-or-restore)
   ========================= */

// Insert returns the created or restored row, or nil when an active row with
// that name already exists.
func (s *Service[T, P]) Insert(ctx context.Context, name string) (*T, error) {
	row, changed, err := s.InsertMatching(ctx, map[string]any{s.Table.NameColumn: name}, func(tx *gorm.DB) (*T, error) {
		return s.Build(ctx, tx, name)
	})
	if err != nil || !changed {
		return nil, err
	}
	return row, nil
}

// Ensure returns the id of the row named name, restoring or creating it as needed.
func (s *Service[T, P]) Ensure(ctx context.Context, name string) (uuid.UUID, error) {
	row, _, err := s.InsertMatching(ctx, map[string]any{s.Table.NameColumn: name}, func(tx *gorm.DB) (*T, error) {
		return s.Build(ctx, tx, name)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return P(row).RecordID(), nil
}

// InsertMatching looks up the row matching key in any deletion state. An
// active row is returned untouched (changed=false); a soft-deleted one is
// restored; otherwise build's row is created.
func (s *Service[T, P]) InsertMatching(ctx context.Context, key map[string]any, build func(tx *gorm.DB) (*T, error)) (*T, bool, error) {
	var (
		out     *T
		changed bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		err := tx.Where(key).Take(&existing).Error
		switch {
		case err == nil:
			out = &existing
			if !P(&existing).RecordIsDeleted() {
				return nil
			}
			id := P(&existing).RecordID()
			updates := map[string]any{}
			if s.Restore != nil {
				extra, err := s.Restore(ctx, tx, &existing)
				if err != nil {
					return err
				}
				for k, v := range extra {
					updates[k] = v
				}
			}
			updates[s.Table.DeletedColumn] = false
			if err := tx.Model(new(T)).Where(s.eq(s.Table.IDColumn), id).
				Updates(updates).Error; err != nil {
				return err
			}
			var restored T
			if err := tx.Where(s.eq(s.Table.IDColumn), id).Take(&restored).Error; err != nil {
				return err
			}
			out, changed = &restored, true
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			row, err := build(tx)
			if err != nil {
				return err
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			out, changed = row, true
			return nil

		default:
			return err
		}
	})
	if err != nil && errs.IsUniqueViolation(err) {
		// lost a race with a concurrent insert of the same key
		var existing T
		if lookupErr := s.DB.WithContext(ctx).Where(key).Take(&existing).Error; lookupErr == nil {
			return &existing, false, nil
		}
	}
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

/* =========================
   Listing
   ========================= */

// ListAll returns active rows with their current-month usage, busiest first.
func (s *Service[T, P]) ListAll(ctx context.Context) ([]Counted[T], error) {
	var rows []T
	if err := s.DB.WithContext(ctx).
		Where(s.eq(s.Table.DeletedColumn), false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out, err := s.WithCounts(ctx, rows)
	if err != nil {
		return nil, err
	}
	SortByUsage[T, P](out)
	return out, nil
}

// WithCounts annotates rows with their current-month event count, keeping order.
func (s *Service[T, P]) WithCounts(ctx context.Context, rows []T) ([]Counted[T], error) {
	counts, err := CurrentMonthCounts(ctx, s.DB, s.Table.ForeignKey, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]Counted[T], len(rows))
	for i := range rows {
		out[i] = Counted[T]{Item: rows[i], CurrentMonthEventCount: counts[P(&rows[i]).RecordID()]}
	}
	return out, nil
}

// Search returns active rows whose name contains name (case-insensitive), by name.
func (s *Service[T, P]) Search(ctx context.Context, name string) ([]T, error) {
	q := s.DB.WithContext(ctx).Where(s.eq(s.Table.DeletedColumn), false)
	q = WhereContains(q, s.Table.NameColumn, name)

	var rows []T
	if err := q.Order(s.Table.NameColumn + " ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// WhereContains adds a case-insensitive substring filter; empty needle is a no-op.
func WhereContains(q *gorm.DB, column, needle string) *gorm.DB {
	if needle == "" {
		return q
	}
	pattern := "%" + escapeLike(strings.ToLower(needle)) + "%"
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

/* =========================
   Mutations
   ========================= */

// Rename fails with ErrConflict when another row (active or soft-deleted)
// already carries newName; names are unique across the whole table.
func (s *Service[T, P]) Rename(ctx context.Context, id uuid.UUID, newName string) (*T, error) {
	var taken int64
	if err := s.DB.WithContext(ctx).Model(new(T)).
		Where(s.eq(s.Table.NameColumn), newName).
		Where(s.Table.IDColumn+" <> ?", id).
		Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("%w: %s %q already exists", errs.ErrConflict, s.Table.Name, newName)
	}

	res := s.DB.WithContext(ctx).Model(new(T)).
		Where(s.eq(s.Table.IDColumn), id).
		Update(s.Table.NameColumn, newName)
	if res.Error != nil {
		if errs.IsUniqueViolation(res.Error) {
			return nil, fmt.Errorf("%w: %s %q already exists", errs.ErrConflict, s.Table.Name, newName)
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s %s", errs.ErrNotFound, s.Table.Name, id)
	}
	return s.GetByID(ctx, id)
}

// DeleteOne soft-deletes a row that events still reference and hard-deletes
// it otherwise.
func (s *Service[T, P]) DeleteOne(ctx context.Context, id uuid.UUID) (DeleteResult, error) {
	used, err := s.IsReferenced(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	if used {
		if err := s.DB.WithContext(ctx).Model(new(T)).
			Where(s.eq(s.Table.IDColumn), id).
			Update(s.Table.DeletedColumn, true).Error; err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{ID: id, IsDeleted: false, IsMarkedAsDeleted: true}, nil
	}

	res := s.DB.WithContext(ctx).Where(s.eq(s.Table.IDColumn), id).Delete(new(T))
	if res.Error != nil {
		return DeleteResult{}, res.Error
	}
	return DeleteResult{ID: id, IsDeleted: res.RowsAffected > 0}, nil
}

// DeleteUnused removes rows that are soft-deleted and referenced by no event.
func (s *Service[T, P]) DeleteUnused(ctx context.Context) (int64, error) {
	notReferenced := fmt.Sprintf(
		"NOT EXISTS (SELECT 1 FROM %s e WHERE e.%s = %s)",
		refModel.EventsTable, s.Table.ForeignKey, s.Table.Col(s.Table.IDColumn),
	)
	res := s.DB.WithContext(ctx).
		Where(s.eq(s.Table.DeletedColumn), true).
		Where(notReferenced).
		Delete(new(T))
	return res.RowsAffected, res.Error
}

// Name is the table name, used in logs.
func (s *Service[T, P]) Name() string { return s.Table.Name }
