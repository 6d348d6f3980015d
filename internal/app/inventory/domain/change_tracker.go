package domain

import "sort"

// ChangeTracker records which fields of an aggregate a mutation touched.
// Interactors use it to decide whether a write is needed at all, and the
// update audit event reports the touched field names.
type ChangeTracker struct {
	dirty map[string]struct{}
}

// NewChangeTracker creates an empty ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]struct{})}
}

// MarkDirty records a modification of the named field.
func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirty[field] = struct{}{}
}

// Dirty reports whether the named field was modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.dirty[field]
	return ok
}

// HasChanges reports whether any field was modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// Fields returns the modified field names in a stable order.
func (ct *ChangeTracker) Fields() []string {
	fields := make([]string, 0, len(ct.dirty))
	for f := range ct.dirty {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Clear forgets all recorded modifications.
func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[string]struct{})
}
