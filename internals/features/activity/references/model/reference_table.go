// Package model describes reference tables (modules, locations, event types,
// responsible persons) to the generic reference service.
package model

import "github.com/google/uuid"

// EventsTable is the table every reference row is linked from.
const EventsTable = "events"

// ForeignKey is a column of the events table pointing at one reference table.
type ForeignKey string

const (
	ModuleForeignKey            ForeignKey = "event_module_id"
	LocationForeignKey          ForeignKey = "event_location_id"
	EventTypeForeignKey         ForeignKey = "event_event_type_id"
	ResponsiblePersonForeignKey ForeignKey = "event_responsible_person_id"
)

// Table names the columns the generic service reads and writes.
type Table struct {
	Name          string
	IDColumn      string
	NameColumn    string
	DeletedColumn string
	ForeignKey    ForeignKey
}

// Col qualifies a column with the table name.
func (t Table) Col(column string) string {
	return t.Name + "." + column
}

// Record is implemented by every reference model.
type Record interface {
	RecordID() uuid.UUID
	RecordName() string
	RecordIsDeleted() bool
}
