package availability

import (
	"context"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// ResourceAvailabilityRepository persists availability records. Slots passed
// to the Load* methods must already be normalized to segment boundaries.
type ResourceAvailabilityRepository interface {
	// SaveNew inserts every record of the group, enforcing (resource, segment)
	// uniqueness. Returns a ConflictError when any segment already exists.
	SaveNew(ctx context.Context, grouped *ResourceGroupedAvailability) error

	// LoadByID loads a single record, failing with NotFoundError when absent.
	LoadByID(ctx context.Context, id ResourceAvailabilityID) (*ResourceAvailability, error)

	// LoadAllWithinSlot loads every record of the resource whose segment lies
	// within the normalized slot.
	LoadAllWithinSlot(ctx context.Context, resourceID ResourceID, within shared.TimeSlot) ([]*ResourceAvailability, error)

	// LoadAllByParentIDWithinSlot loads every record of the resources grouped
	// under the given parent.
	LoadAllByParentIDWithinSlot(ctx context.Context, parentID ResourceID, within shared.TimeSlot) ([]*ResourceAvailability, error)

	// SaveCheckingVersion persists mutated records with a compare-and-swap on
	// the version column. Returns false, without error, when another writer won
	// the race on any record of the group.
	SaveCheckingVersion(ctx context.Context, grouped *ResourceGroupedAvailability) (bool, error)

	// LoadAvailabilitiesOfRandomResourceWithin picks, uniformly at random, one
	// of the candidate resources that has records within the slot and loads its
	// grouped availability. An empty group is returned when no candidate has any.
	LoadAvailabilitiesOfRandomResourceWithin(ctx context.Context, resourceIDs []ResourceID, within shared.TimeSlot) (*ResourceGroupedAvailability, error)
}

// AvailabilityReadModel is the read-only calendar projection used by matching
// and risk checks, never by writers.
type AvailabilityReadModel interface {
	Load(ctx context.Context, resourceID ResourceID, within shared.TimeSlot) (Calendar, error)
	LoadAll(ctx context.Context, resourceIDs []ResourceID, within shared.TimeSlot) (Calendars, error)
}
