package dto

import "strings"

// ====================
// Request DTO
// ====================

type NameRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (r *NameRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// ====================
// Response DTO
// ====================

// InsertResponse: InsertedOrRestored is nil when an active row with the same key already existed.
type InsertResponse[T any] struct {
	InsertedOrRestored *T `json:"inserted_or_restored"`
}

type DeletedCountResponse struct {
	DeletedRowCount int64 `json:"deleted_row_count"`
}
