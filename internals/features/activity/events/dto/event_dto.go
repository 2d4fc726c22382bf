package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kntista_backend/internals/features/activity/events/service"
	locService "kntista_backend/internals/features/activity/locations/service"
	"kntista_backend/internals/helpers/dbtime"
	"kntista_backend/internals/helpers/errs"
)

// ====================
// References
// ====================

// RefRequest: id wins over name.
type RefRequest struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name" validate:"omitempty,max=200"`
}

func (r RefRequest) toRef() service.Ref {
	return service.Ref{ID: r.ID, Name: strings.TrimSpace(r.Name)}
}

type LocationData struct {
	Name      string  `json:"name" validate:"required,max=200"`
	IsOffline bool    `json:"is_offline"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
}

type LocationRefRequest struct {
	ID   *uuid.UUID    `json:"id"`
	Data *LocationData `json:"data"`
}

func (r LocationRefRequest) toRef() service.LocationRef {
	ref := service.LocationRef{ID: r.ID}
	if r.Data != nil {
		ref.Data = &locService.NewLocation{
			Name:      strings.TrimSpace(r.Data.Name),
			IsOffline: r.Data.IsOffline,
			Address:   r.Data.Address,
		}
	}
	return ref
}

// ====================
// Create
// ====================

type CreateEventRequest struct {
	Name              string   `json:"name" validate:"required,max=300"`
	StartDates        []string `json:"start_dates" validate:"required,min=1,dive,required"`
	EndDate           *string  `json:"end_date"`
	ParticipantsCount int      `json:"participants_count" validate:"min=0"`
	Links             []string `json:"links" validate:"omitempty,dive,url"`

	Module            RefRequest         `json:"module"`
	Location          LocationRefRequest `json:"location"`
	EventType         RefRequest         `json:"event_type"`
	ResponsiblePerson RefRequest         `json:"responsible_person"`
}

func (r *CreateEventRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r CreateEventRequest) ToInput() (service.CreateInput, error) {
	starts, err := dbtime.ParseDates(r.StartDates)
	if err != nil {
		return service.CreateInput{}, err
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return service.CreateInput{}, err
	}
	return service.CreateInput{
		Name:              r.Name,
		StartDates:        starts,
		EndDate:           end,
		ParticipantsCount: r.ParticipantsCount,
		Links:             r.Links,
		Module:            r.Module.toRef(),
		Location:          r.Location.toRef(),
		EventType:         r.EventType.toRef(),
		ResponsiblePerson: r.ResponsiblePerson.toRef(),
	}, nil
}

// ====================
// Update
// ====================

// UpdateEventRequest: absent fields stay unchanged; list "end_date" in
// __clear to remove the end date.
type UpdateEventRequest struct {
	Name              *string   `json:"name" validate:"omitempty,min=1,max=300"`
	StartDates        []string  `json:"start_dates" validate:"omitempty,min=1,dive,required"`
	EndDate           *string   `json:"end_date"`
	ParticipantsCount *int      `json:"participants_count" validate:"omitempty,min=0"`
	Links             *[]string `json:"links" validate:"omitempty,dive,url"`

	Module            *RefRequest         `json:"module"`
	Location          *LocationRefRequest `json:"location"`
	EventType         *RefRequest         `json:"event_type"`
	ResponsiblePerson *RefRequest         `json:"responsible_person"`

	Clear []string `json:"__clear" validate:"omitempty,dive,oneof=end_date"`
}

func (r *UpdateEventRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r UpdateEventRequest) ToInput() (service.UpdateInput, error) {
	in := service.UpdateInput{
		Name:              r.Name,
		ParticipantsCount: r.ParticipantsCount,
		Links:             r.Links,
	}

	if r.StartDates != nil {
		starts, err := dbtime.ParseDates(r.StartDates)
		if err != nil {
			return in, err
		}
		in.StartDates = starts
	}

	clearEnd := false
	for _, f := range r.Clear {
		if f == "end_date" {
			clearEnd = true
		}
	}
	switch {
	case clearEnd && r.EndDate != nil:
		return in, fmt.Errorf("%w: end_date is both set and cleared", errs.ErrInvalidInput)
	case clearEnd:
		in.EndDate = service.OptionalTime{Set: true}
	case r.EndDate != nil:
		end, err := dbtime.ParseDate(*r.EndDate)
		if err != nil {
			return in, err
		}
		in.EndDate = service.OptionalTime{Set: true, Value: &end}
	}

	if r.Module != nil {
		ref := r.Module.toRef()
		in.Module = &ref
	}
	if r.Location != nil {
		ref := r.Location.toRef()
		in.Location = &ref
	}
	if r.EventType != nil {
		ref := r.EventType.toRef()
		in.EventType = &ref
	}
	if r.ResponsiblePerson != nil {
		ref := r.ResponsiblePerson.toRef()
		in.ResponsiblePerson = &ref
	}
	return in, nil
}

// ====================
// Delete
// ====================

type DeleteEventsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type DeleteEventsResponse struct {
	DeletedRowCount int64 `json:"deleted_row_count"`
}
