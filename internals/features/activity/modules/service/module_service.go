package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kntista_backend/internals/features/activity/modules/model"
	refService "kntista_backend/internals/features/activity/references/service"
	"kntista_backend/internals/helpers/errs"
)

// MaxReorderItems bounds the rows renumbered in one reorder transaction.
const MaxReorderItems = 100

// ModuleService keeps module numbers as a ranking over non-deleted modules.
type ModuleService struct {
	*refService.Service[model.ModuleModel, *model.ModuleModel]
}

func New(db *gorm.DB) *ModuleService {
	s := &ModuleService{}
	s.Service = refService.New[model.ModuleModel](db, model.Table, s.build)
	s.Service.Restore = s.restore
	return s
}

func (s *ModuleService) build(_ context.Context, tx *gorm.DB, name string) (*model.ModuleModel, error) {
	n, err := maxNumber(tx)
	if err != nil {
		return nil, err
	}
	return &model.ModuleModel{ModuleName: name, ModuleNumber: n + 1}, nil
}

// A restored module goes to the end of the ranking.
func (s *ModuleService) restore(_ context.Context, tx *gorm.DB, _ *model.ModuleModel) (map[string]any, error) {
	n, err := maxNumber(tx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"module_number": n + 1}, nil
}

func maxNumber(tx *gorm.DB) (int, error) {
	var n int
	err := tx.Model(&model.ModuleModel{}).
		Where("module_is_deleted = ?", false).
		Select("COALESCE(MAX(module_number), 0)").
		Scan(&n).Error
	return n, err
}

// ListAll returns active modules by number, each with its current-month usage.
func (s *ModuleService) ListAll(ctx context.Context) ([]refService.Counted[model.ModuleModel], error) {
	var rows []model.ModuleModel
	if err := s.DB.WithContext(ctx).
		Where("module_is_deleted = ?", false).
		Order("module_number ASC, module_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.WithCounts(ctx, rows)
}

// Search filters active modules by name substring, ordered by number.
func (s *ModuleService) Search(ctx context.Context, name string) ([]model.ModuleModel, error) {
	q := s.DB.WithContext(ctx).Where("module_is_deleted = ?", false)
	q = refService.WhereContains(q, "module_name", name)

	var rows []model.ModuleModel
	if err := q.Order("module_number ASC, module_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReorderTo numbers the listed modules 1..len(ids) in the given order and
// appends every other active module after them, keeping their relative order.
func (s *ModuleService) ReorderTo(ctx context.Context, ids []uuid.UUID) ([]model.ModuleModel, error) {
	if len(ids) > MaxReorderItems {
		return nil, fmt.Errorf("%w: at most %d modules can be reordered", errs.ErrTooManyItems, MaxReorderItems)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: module %s listed twice", errs.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	var out []model.ModuleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active []model.ModuleModel
		if err := tx.Where("module_is_deleted = ?", false).
			Order("module_number ASC, module_name ASC").
			Find(&active).Error; err != nil {
			return err
		}

		activeIDs := make(map[uuid.UUID]struct{}, len(active))
		for _, m := range active {
			activeIDs[m.ModuleID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := activeIDs[id]; !ok {
				return fmt.Errorf("%w: module %s", errs.ErrNotFound, id)
			}
		}

		order := append([]uuid.UUID(nil), ids...)
		for _, m := range active {
			if _, listed := seen[m.ModuleID]; !listed {
				order = append(order, m.ModuleID)
			}
		}
		if len(order) > MaxReorderItems {
			return fmt.Errorf("%w: %d modules exceed the limit of %d", errs.ErrTooManyItems, len(order), MaxReorderItems)
		}

		for i, id := range order {
			if err := tx.Model(&model.ModuleModel{}).
				Where("module_id = ?", id).
				Update("module_number", i+1).Error; err != nil {
				return err
			}
		}

		return tx.Where("module_is_deleted = ?", false).
			Order("module_number ASC").
			Find(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
