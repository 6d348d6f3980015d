package domain

import "time"

// Event is the base interface for audit events emitted by the record store.
// One event is published per successful create, update, or archive.
type Event interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// RecordCreatedEvent is emitted when a product record is created.
type RecordCreatedEvent struct {
	ProductNo     string
	Name          string
	StoreName     string
	PurchasePrice int64
	At            time.Time
}

func (e *RecordCreatedEvent) EventType() string     { return "record.created" }
func (e *RecordCreatedEvent) AggregateID() string   { return e.ProductNo }
func (e *RecordCreatedEvent) OccurredAt() time.Time { return e.At }

// RecordUpdatedEvent is emitted when a product record is patched.
type RecordUpdatedEvent struct {
	ProductNo string
	Fields    []string
	At        time.Time
}

func (e *RecordUpdatedEvent) EventType() string     { return "record.updated" }
func (e *RecordUpdatedEvent) AggregateID() string   { return e.ProductNo }
func (e *RecordUpdatedEvent) OccurredAt() time.Time { return e.At }

// RecordArchivedEvent is emitted when a product record is soft-deleted.
type RecordArchivedEvent struct {
	ProductNo string
	At        time.Time
}

func (e *RecordArchivedEvent) EventType() string     { return "record.archived" }
func (e *RecordArchivedEvent) AggregateID() string   { return e.ProductNo }
func (e *RecordArchivedEvent) OccurredAt() time.Time { return e.At }
