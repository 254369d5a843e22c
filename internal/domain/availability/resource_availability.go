package availability

import (
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// ResourceAvailability is the atomic unit of the availability engine: one
// ownership record per (resource, segment). All mutations go through Block,
// Release, Disable and Enable; the version is bumped by the repository on
// every successful save.
type ResourceAvailability struct {
	id               ResourceAvailabilityID
	resourceID       ResourceID
	resourceParentID ResourceID
	segment          shared.TimeSlot
	blockade         Blockade
	version          int
}

// NewResourceAvailability creates an unowned, enabled availability record.
func NewResourceAvailability(id ResourceAvailabilityID, resourceID ResourceID, segment shared.TimeSlot) *ResourceAvailability {
	return NewResourceAvailabilityWithParent(id, resourceID, NoResourceID(), segment)
}

// NewResourceAvailabilityWithParent creates an unowned record for a resource
// belonging to a hierarchical group.
func NewResourceAvailabilityWithParent(id ResourceAvailabilityID, resourceID, parentID ResourceID, segment shared.TimeSlot) *ResourceAvailability {
	return &ResourceAvailability{
		id:               id,
		resourceID:       resourceID,
		resourceParentID: parentID,
		segment:          segment,
		blockade:         NoBlockade(),
	}
}

// RestoreResourceAvailability rehydrates a record from persisted state.
func RestoreResourceAvailability(id ResourceAvailabilityID, resourceID, parentID ResourceID, segment shared.TimeSlot, blockade Blockade, version int) *ResourceAvailability {
	return &ResourceAvailability{
		id:               id,
		resourceID:       resourceID,
		resourceParentID: parentID,
		segment:          segment,
		blockade:         blockade,
		version:          version,
	}
}

// Block marks the segment as owned by requester. Succeeds only when the
// segment is unowned or already held by the same requester, and not disabled.
func (r *ResourceAvailability) Block(requester Owner) bool {
	if !r.isAvailableFor(requester) {
		return false
	}
	r.blockade = BlockadeOwnedBy(requester)
	return true
}

// Release frees the segment. Succeeds only under the same conditions as Block,
// so a non-owner can never release someone else's blockade and a disabled
// segment stays untouched.
func (r *ResourceAvailability) Release(requester Owner) bool {
	if !r.isAvailableFor(requester) {
		return false
	}
	r.blockade = NoBlockade()
	return true
}

// Disable forcibly marks the segment disabled regardless of the current owner.
func (r *ResourceAvailability) Disable(requester Owner) bool {
	r.blockade = BlockadeDisabledBy(requester)
	return true
}

// Enable lifts a disablement. Only the disabling owner may do so.
func (r *ResourceAvailability) Enable(requester Owner) bool {
	if !r.blockade.CanBeTakenBy(requester) {
		return false
	}
	r.blockade = NoBlockade()
	return true
}

func (r *ResourceAvailability) isAvailableFor(requester Owner) bool {
	return r.blockade.CanBeTakenBy(requester) && !r.IsDisabled()
}

// BlockedBy returns the current owner, or the none sentinel.
func (r *ResourceAvailability) BlockedBy() Owner {
	return r.blockade.TakenBy
}

// IsDisabled reports whether the segment is disabled.
func (r *ResourceAvailability) IsDisabled() bool {
	return r.blockade.Disabled
}

// IsDisabledBy reports whether the segment was disabled by the given owner.
func (r *ResourceAvailability) IsDisabledBy(owner Owner) bool {
	return r.blockade.IsDisabledBy(owner)
}

// ID returns the row identifier.
func (r *ResourceAvailability) ID() ResourceAvailabilityID {
	return r.id
}

// ResourceID returns the resource the record belongs to.
func (r *ResourceAvailability) ResourceID() ResourceID {
	return r.resourceID
}

// ResourceParentID returns the parent resource id, or the none sentinel.
func (r *ResourceAvailability) ResourceParentID() ResourceID {
	return r.resourceParentID
}

// Segment returns the fixed-size time segment this record covers.
func (r *ResourceAvailability) Segment() shared.TimeSlot {
	return r.segment
}

// Blockade returns the current ownership state.
func (r *ResourceAvailability) Blockade() Blockade {
	return r.blockade
}

// Version returns the optimistic-concurrency version loaded from storage.
func (r *ResourceAvailability) Version() int {
	return r.version
}
