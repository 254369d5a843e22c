package availability

import (
	"time"

	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// ResourceTakenOverEventName identifies ResourceTakenOver for handler registration.
const ResourceTakenOverEventName = "ResourceTakenOver"

// ResourceTakenOver is published when a resource's calendar segments are
// forcibly disabled while other owners were holding them.
type ResourceTakenOver struct {
	EventID        uuid.UUID
	ResourceID     ResourceID
	PreviousOwners []Owner
	Slot           shared.TimeSlot
	occurredAt     time.Time
}

// NewResourceTakenOver creates the event with a fresh event id.
func NewResourceTakenOver(resourceID ResourceID, previousOwners []Owner, slot shared.TimeSlot, occurredAt time.Time) ResourceTakenOver {
	return ResourceTakenOver{
		EventID:        uuid.New(),
		ResourceID:     resourceID,
		PreviousOwners: previousOwners,
		Slot:           slot,
		occurredAt:     occurredAt,
	}
}

// EventName identifies the event type.
func (e ResourceTakenOver) EventName() string { return ResourceTakenOverEventName }

// OccurredAt is when the take-over was persisted.
func (e ResourceTakenOver) OccurredAt() time.Time { return e.occurredAt }
