// Package service resolves human-supplied references into foreign keys and
// manages event rows. Events are never soft-deleted.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kntista_backend/internals/features/activity/events/model"
	locService "kntista_backend/internals/features/activity/locations/service"
	"kntista_backend/internals/helpers/dbtime"
	"kntista_backend/internals/helpers/errs"
	"kntista_backend/internals/helpers/feed"
)

const feedEntity = "event"

// Ref points at a reference row by id or by name; ID wins.
type Ref struct {
	ID   *uuid.UUID
	Name string
}

// LocationRef carries a full creation payload instead of a bare name.
type LocationRef struct {
	ID   *uuid.UUID
	Data *locService.NewLocation
}

type CreateInput struct {
	Name              string
	StartDates        []time.Time
	EndDate           *time.Time
	ParticipantsCount int
	Links             []string

	Module            Ref
	Location          LocationRef
	EventType         Ref
	ResponsiblePerson Ref
}

// OptionalTime distinguishes "leave unchanged" (Set=false) from
// "clear" (Set=true, Value=nil).
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UpdateInput: nil fields are left unchanged.
type UpdateInput struct {
	Name              *string
	StartDates        []time.Time
	EndDate           OptionalTime
	ParticipantsCount *int
	Links             *[]string

	Module            *Ref
	Location          *LocationRef
	EventType         *Ref
	ResponsiblePerson *Ref
}

type activeLookup interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
	FindActiveIDByName(ctx context.Context, name string) (uuid.UUID, bool, error)
}

type nameEnsurer interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Ensure(ctx context.Context, name string) (uuid.UUID, error)
}

type locationEnsurer interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Ensure(ctx context.Context, in locService.NewLocation) (uuid.UUID, error)
}

type EventService struct {
	DB                 *gorm.DB
	Modules            activeLookup
	ResponsiblePersons activeLookup
	EventTypes         nameEnsurer
	Locations          locationEnsurer
	Feed               feed.Publisher
	Now                func() time.Time
}

func New(db *gorm.DB, modules, persons activeLookup, eventTypes nameEnsurer, locations locationEnsurer, publisher feed.Publisher) *EventService {
	if publisher == nil {
		publisher = feed.Nop{}
	}
	return &EventService{
		DB:                 db,
		Modules:            modules,
		ResponsiblePersons: persons,
		EventTypes:         eventTypes,
		Locations:          locations,
		Feed:               publisher,
		Now:                time.Now,
	}
}

func (s *EventService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *EventService) withRefs(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Module").
		Preload("Location").
		Preload("EventType").
		Preload("ResponsiblePerson")
}

/* =========================
   Queries
   ========================= */

// ListAll returns events whose earliest start lies in [start, end] and whose
// end date, if any, is not after end. A missing bound defaults to the
// current month's first or last day. A reversed range matches nothing.
func (s *EventService) ListAll(ctx context.Context, start, end *time.Time) ([]model.EventModel, error) {
	monthStart, monthEnd := dbtime.CurrentMonthRange(s.now())
	rangeStart, rangeEnd := monthStart, monthEnd
	if start != nil {
		rangeStart = *start
	}
	if end != nil {
		rangeEnd = *end
	}
	if rangeStart.After(rangeEnd) {
		return []model.EventModel{}, nil
	}

	var rows []model.EventModel
	err := s.withRefs(ctx).
		Where("event_starts_on >= ? AND event_starts_on <= ?", rangeStart, rangeEnd).
		Where("event_end_date IS NULL OR event_end_date <= ?", rangeEnd).
		Order("event_starts_on ASC, event_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var row model.EventModel
	err := s.withRefs(ctx).Where("event_id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: event %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

/* =========================
   Reference resolution
   ========================= */

func missing(entity string) error {
	return fmt.Errorf("%w: %s", errs.ErrMissingReference, entity)
}

func resolveByID(ctx context.Context, entity string, id uuid.UUID, isActive func(context.Context, uuid.UUID) (bool, error)) (uuid.UUID, error) {
	ok, err := isActive(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, missing(entity)
	}
	return id, nil
}

// resolveExisting never creates rows.
func resolveExisting(ctx context.Context, entity string, ref Ref, lookup activeLookup) (uuid.UUID, error) {
	if ref.ID != nil {
		return resolveByID(ctx, entity, *ref.ID, lookup.IsActive)
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return uuid.Nil, missing(entity)
	}
	id, ok, err := lookup.FindActiveIDByName(ctx, name)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, missing(entity)
	}
	return id, nil
}

func (s *EventService) resolveEventType(ctx context.Context, ref Ref) (uuid.UUID, error) {
	if ref.ID != nil {
		return resolveByID(ctx, "event type", *ref.ID, s.EventTypes.IsActive)
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return uuid.Nil, missing("event type")
	}
	return s.EventTypes.Ensure(ctx, name)
}

func (s *EventService) resolveLocation(ctx context.Context, ref LocationRef) (uuid.UUID, error) {
	if ref.ID != nil {
		return resolveByID(ctx, "location", *ref.ID, s.Locations.IsActive)
	}
	if ref.Data == nil || strings.TrimSpace(ref.Data.Name) == "" {
		return uuid.Nil, missing("location")
	}
	data := *ref.Data
	data.Name = strings.TrimSpace(data.Name)
	return s.Locations.Ensure(ctx, data)
}

type resolved struct {
	module, person, location, eventType uuid.UUID
}

// resolve looks up the references that are never auto-created first, so a
// missing module or responsible person fails before any row is created.
func (s *EventService) resolve(ctx context.Context, module, person *Ref, location *LocationRef, eventType *Ref) (resolved, error) {
	var (
		out resolved
		err error
	)
	if module != nil {
		if out.module, err = resolveExisting(ctx, "module", *module, s.Modules); err != nil {
			return out, err
		}
	}
	if person != nil {
		if out.person, err = resolveExisting(ctx, "responsible person", *person, s.ResponsiblePersons); err != nil {
			return out, err
		}
	}
	if location != nil {
		if out.location, err = s.resolveLocation(ctx, *location); err != nil {
			return out, err
		}
	}
	if eventType != nil {
		if out.eventType, err = s.resolveEventType(ctx, *eventType); err != nil {
			return out, err
		}
	}
	return out, nil
}

func sortedDates(in []time.Time) []time.Time {
	out := append([]time.Time(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

/* =========================
   Mutations
   ========================= */

func (s *EventService) Create(ctx context.Context, in CreateInput) (*model.EventModel, error) {
	if len(in.StartDates) == 0 {
		return nil, fmt.Errorf("%w: at least one start date is required", errs.ErrInvalidInput)
	}
	if in.ParticipantsCount < 0 {
		return nil, fmt.Errorf("%w: participants count must not be negative", errs.ErrInvalidInput)
	}

	refs, err := s.resolve(ctx, &in.Module, &in.ResponsiblePerson, &in.Location, &in.EventType)
	if err != nil {
		return nil, err
	}

	starts := sortedDates(in.StartDates)
	links := in.Links
	if links == nil {
		links = []string{}
	}
	row := model.EventModel{
		EventName:                strings.TrimSpace(in.Name),
		EventStartDates:          starts,
		EventStartsOn:            starts[0],
		EventEndDate:             in.EndDate,
		EventParticipantsCount:   in.ParticipantsCount,
		EventLinks:               links,
		EventModuleID:            refs.module,
		EventLocationID:          refs.location,
		EventEventTypeID:         refs.eventType,
		EventResponsiblePersonID: refs.person,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	s.publish(ctx, feed.ActionCreated, row.EventID)
	return s.GetByID(ctx, row.EventID)
}

// Update writes only the supplied fields. An empty update returns the
// current row.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.EventModel, error) {
	var exists int64
	if err := s.DB.WithContext(ctx).Model(&model.EventModel{}).
		Where("event_id = ?", id).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: event %s", errs.ErrNotFound, id)
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["event_name"] = strings.TrimSpace(*in.Name)
	}
	if in.StartDates != nil {
		if len(in.StartDates) == 0 {
			return nil, fmt.Errorf("%w: at least one start date is required", errs.ErrInvalidInput)
		}
		starts := sortedDates(in.StartDates)
		updates["event_start_dates"] = datatypes.JSONSlice[time.Time](starts)
		updates["event_starts_on"] = starts[0]
	}
	if in.EndDate.Set {
		if in.EndDate.Value == nil {
			updates["event_end_date"] = nil
		} else {
			updates["event_end_date"] = *in.EndDate.Value
		}
	}
	if in.ParticipantsCount != nil {
		if *in.ParticipantsCount < 0 {
			return nil, fmt.Errorf("%w: participants count must not be negative", errs.ErrInvalidInput)
		}
		updates["event_participants_count"] = *in.ParticipantsCount
	}
	if in.Links != nil {
		updates["event_links"] = datatypes.JSONSlice[string](append([]string{}, (*in.Links)...))
	}

	refs, err := s.resolve(ctx, in.Module, in.ResponsiblePerson, in.Location, in.EventType)
	if err != nil {
		return nil, err
	}
	if in.Module != nil {
		updates["event_module_id"] = refs.module
	}
	if in.ResponsiblePerson != nil {
		updates["event_responsible_person_id"] = refs.person
	}
	if in.Location != nil {
		updates["event_location_id"] = refs.location
	}
	if in.EventType != nil {
		updates["event_event_type_id"] = refs.eventType
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	res := s.DB.WithContext(ctx).Model(&model.EventModel{}).
		Where("event_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: event %s", errs.ErrNotFound, id)
	}

	s.publish(ctx, feed.ActionUpdated, id)
	return s.GetByID(ctx, id)
}

// DeleteMany hard-deletes the events with the given ids and returns how many
// rows were removed. Unknown ids are ignored.
func (s *EventService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var (
		removed []uuid.UUID
		count   int64
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.EventModel{}).
			Where("event_id IN ?", ids).
			Pluck("event_id", &removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}
		res := tx.Where("event_id IN ?", removed).Delete(&model.EventModel{})
		count = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.publish(ctx, feed.ActionDeleted, removed...)
	}
	return count, nil
}

// publish is best effort: the database write already succeeded.
func (s *EventService) publish(ctx context.Context, action string, ids ...uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	change := feed.Change{Entity: feedEntity, Action: action, IDs: ids, OccurredAt: s.now()}
	if err := s.Feed.Publish(ctx, change); err != nil {
		log.Printf("[WARN] event feed %s %v: %v", action, ids, err)
	}
}
