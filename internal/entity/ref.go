package entity

import "github.com/google/uuid"

// Ref points at another record. It is either just the id or the id together
// with the loaded record, depending on what the repository query preloaded.
type Ref[T any] struct {
	ID     uuid.UUID
	record *T
}

// RefTo builds an unexpanded reference.
func RefTo[T any](id uuid.UUID) Ref[T] {
	return Ref[T]{ID: id}
}

// Expanded builds a reference carrying the loaded record. A nil record
// degrades to an unexpanded reference.
func Expanded[T any](id uuid.UUID, record *T) Ref[T] {
	return Ref[T]{ID: id, record: record}
}

// Get returns the loaded record, if any.
func (r Ref[T]) Get() (*T, bool) {
	return r.record, r.record != nil
}

// IsZero reports whether the reference points at nothing.
func (r Ref[T]) IsZero() bool {
	return r.ID == uuid.Nil
}

// OptionalRef converts a nullable foreign key into a reference.
func OptionalRef[T any](id *uuid.UUID, record *T) Ref[T] {
	if id == nil {
		return Ref[T]{}
	}
	return Expanded(*id, record)
}

// IDPtr returns the referenced id or nil for an empty reference.
func (r Ref[T]) IDPtr() *uuid.UUID {
	if r.IsZero() {
		return nil
	}
	id := r.ID
	return &id
}
