package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kntista_backend/internals/features/activity/locations/model"
	refService "kntista_backend/internals/features/activity/references/service"
	"kntista_backend/internals/helpers/errs"
)

// Locations are keyed by (name, is_offline) instead of name alone.
type LocationService struct {
	*refService.Service[model.LocationModel, *model.LocationModel]
}

type NewLocation struct {
	Name      string
	IsOffline bool
	Address   *string
}

// SearchFilter: zero value lists every active location. AddressIsNull wins
// over Address.
type SearchFilter struct {
	Name          string
	IsOffline     *bool
	Address       string
	AddressIsNull bool
}

// Patch is a partial update; nil fields are left as they are.
type Patch struct {
	Name         *string
	IsOffline    *bool
	Address      *string
	ClearAddress bool
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.IsOffline == nil && p.Address == nil && !p.ClearAddress
}

func New(db *gorm.DB) *LocationService {
	return &LocationService{
		Service: refService.New[model.LocationModel](db, model.Table,
			func(_ context.Context, _ *gorm.DB, name string) (*model.LocationModel, error) {
				return &model.LocationModel{LocationName: name}, nil
			}),
	}
}

func keyOf(name string, isOffline bool) map[string]any {
	return map[string]any{"location_name": name, "location_is_offline": isOffline}
}

func normalizeAddress(in NewLocation) *string {
	if in.Address == nil || !in.IsOffline {
		return nil
	}
	if a := strings.TrimSpace(*in.Address); a != "" {
		return &a
	}
	return nil
}

// Insert returns the created or restored location, nil if the pair is already active.
// Online locations never carry an address.
func (s *LocationService) Insert(ctx context.Context, in NewLocation) (*model.LocationModel, error) {
	row, changed, err := s.InsertMatching(ctx, keyOf(in.Name, in.IsOffline), func(*gorm.DB) (*model.LocationModel, error) {
		return &model.LocationModel{
			LocationName:      in.Name,
			LocationIsOffline: in.IsOffline,
			LocationAddress:   normalizeAddress(in),
		}, nil
	})
	if err != nil || !changed {
		return nil, err
	}
	return row, nil
}

// Ensure is get-or-create-or-restore on the (name, isOffline) pair.
func (s *LocationService) Ensure(ctx context.Context, in NewLocation) (uuid.UUID, error) {
	row, _, err := s.InsertMatching(ctx, keyOf(in.Name, in.IsOffline), func(*gorm.DB) (*model.LocationModel, error) {
		return &model.LocationModel{
			LocationName:      in.Name,
			LocationIsOffline: in.IsOffline,
			LocationAddress:   normalizeAddress(in),
		}, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return row.LocationID, nil
}

func (s *LocationService) Search(ctx context.Context, f SearchFilter) ([]model.LocationModel, error) {
	q := s.DB.WithContext(ctx).Where("location_is_deleted = ?", false)
	q = refService.WhereContains(q, "location_name", f.Name)
	if f.IsOffline != nil {
		q = q.Where("location_is_offline = ?", *f.IsOffline)
	}
	switch {
	case f.AddressIsNull:
		q = q.Where("location_address IS NULL")
	case f.Address != "":
		q = refService.WhereContains(q, "location_address", f.Address)
	}

	var rows []model.LocationModel
	if err := q.Order("location_name ASC, location_is_offline ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies p and returns the fresh row. An empty patch returns the
// current row unchanged.
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, p Patch) (*model.LocationModel, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return current, nil
	}

	name, offline := current.LocationName, current.LocationIsOffline
	updates := map[string]any{}
	if p.Name != nil {
		name = *p.Name
		updates["location_name"] = name
	}
	if p.IsOffline != nil {
		offline = *p.IsOffline
		updates["location_is_offline"] = offline
	}
	switch {
	case p.ClearAddress || !offline:
		if p.ClearAddress || current.LocationAddress != nil || p.Address != nil {
			updates["location_address"] = nil
		}
	case p.Address != nil:
		if a := normalizeAddress(NewLocation{IsOffline: true, Address: p.Address}); a != nil {
			updates["location_address"] = *a
		} else {
			updates["location_address"] = nil
		}
	}
	if len(updates) == 0 {
		return current, nil
	}

	if name != current.LocationName || offline != current.LocationIsOffline {
		var taken int64
		if err := s.DB.WithContext(ctx).Model(&model.LocationModel{}).
			Where(keyOf(name, offline)).
			Where("location_id <> ?", id).
			Count(&taken).Error; err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, fmt.Errorf("%w: location %q (offline=%t) already exists", errs.ErrConflict, name, offline)
		}
	}

	if err := s.DB.WithContext(ctx).Model(&model.LocationModel{}).
		Where("location_id = ?", id).
		Updates(updates).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: location %q already exists", errs.ErrConflict, name)
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}
