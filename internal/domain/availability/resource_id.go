package availability

import "github.com/google/uuid"

// ResourceID identifies a calendar-tracked resource. The zero value means "no
// resource" and is used for absent parent ids.
type ResourceID struct {
	id uuid.UUID
}

// NewResourceID generates a fresh resource identifier.
func NewResourceID() ResourceID {
	return ResourceID{id: uuid.New()}
}

// ResourceIDOf wraps an existing identifier.
func ResourceIDOf(id uuid.UUID) ResourceID {
	return ResourceID{id: id}
}

// NoResourceID is the absent-resource sentinel.
func NoResourceID() ResourceID {
	return ResourceID{}
}

// IsNone reports whether the id is the absent-resource sentinel.
func (r ResourceID) IsNone() bool {
	return r.id == uuid.Nil
}

// ID exposes the raw identifier.
func (r ResourceID) ID() uuid.UUID {
	return r.id
}

func (r ResourceID) String() string {
	return r.id.String()
}

// ResourceAvailabilityID identifies one (resource, segment) availability row.
type ResourceAvailabilityID struct {
	id uuid.UUID
}

// NewResourceAvailabilityID generates a fresh row identifier.
func NewResourceAvailabilityID() ResourceAvailabilityID {
	return ResourceAvailabilityID{id: uuid.New()}
}

// ResourceAvailabilityIDOf wraps an existing identifier.
func ResourceAvailabilityIDOf(id uuid.UUID) ResourceAvailabilityID {
	return ResourceAvailabilityID{id: id}
}

// ID exposes the raw identifier.
func (r ResourceAvailabilityID) ID() uuid.UUID {
	return r.id
}

func (r ResourceAvailabilityID) String() string {
	return r.id.String()
}
