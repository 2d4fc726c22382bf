package dto

import (
	"strings"

	"kntista_backend/internals/features/activity/locations/service"
)

// ====================
// Request DTO
// ====================

type CreateLocationRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	IsOffline *bool   `json:"is_offline" validate:"required"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
}

func (r *CreateLocationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateLocationRequest) ToNewLocation() service.NewLocation {
	return service.NewLocation{
		Name:      r.Name,
		IsOffline: r.IsOffline != nil && *r.IsOffline,
		Address:   r.Address,
	}
}

// UpdateLocationRequest: absent fields stay unchanged; list "address" in
// __clear to set it to null.
type UpdateLocationRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=200"`
	IsOffline *bool    `json:"is_offline"`
	Address   *string  `json:"address" validate:"omitempty,max=500"`
	Clear     []string `json:"__clear" validate:"omitempty,dive,oneof=address"`
}

func (r *UpdateLocationRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

func (r UpdateLocationRequest) ToPatch() service.Patch {
	p := service.Patch{Name: r.Name, IsOffline: r.IsOffline, Address: r.Address}
	for _, f := range r.Clear {
		if f == "address" {
			p.ClearAddress = true
		}
	}
	return p
}
