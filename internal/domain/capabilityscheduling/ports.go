package capabilityscheduling

import (
	"context"
	"time"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// AllocatableCapabilityRepository persists capability declarations and answers
// the structured searches the finder and scheduler need.
type AllocatableCapabilityRepository interface {
	SaveAll(ctx context.Context, capabilities []*AllocatableCapability) error

	// FindByID tolerates absence and returns nil when unknown.
	FindByID(ctx context.Context, id AllocatableCapabilityID) (*AllocatableCapability, error)

	FindAllByID(ctx context.Context, ids []AllocatableCapabilityID) ([]*AllocatableCapability, error)

	// FindByCapabilityWithin returns declarations offering the named capability
	// whose window covers [from, to].
	FindByCapabilityWithin(ctx context.Context, name, capabilityType string, from, to time.Time) ([]*AllocatableCapability, error)

	// FindByResourceIDAndCapabilityAndTimeSlot returns the declaration of the
	// resource for exactly the given window, or nil.
	FindByResourceIDAndCapabilityAndTimeSlot(ctx context.Context, resourceID AllocatableResourceID, name, capabilityType string, slot shared.TimeSlot) (*AllocatableCapability, error)

	// FindByResourceIDAndTimeSlot returns every declaration of the resource for
	// exactly the given window.
	FindByResourceIDAndTimeSlot(ctx context.Context, resourceID AllocatableResourceID, slot shared.TimeSlot) ([]*AllocatableCapability, error)

	ExistsByID(ctx context.Context, id AllocatableCapabilityID) (bool, error)
}
