package availability

import (
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability/segment"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// ResourceGroupedAvailability aggregates every availability record of one
// resource within a queried slot. Group operations are all-or-nothing: a
// single refusing segment fails the whole group and the partially mutated
// aggregate is discarded by the caller.
type ResourceGroupedAvailability struct {
	availabilities []*ResourceAvailability
}

// NewResourceGroupedAvailability wraps records loaded from storage.
func NewResourceGroupedAvailability(availabilities []*ResourceAvailability) *ResourceGroupedAvailability {
	return &ResourceGroupedAvailability{availabilities: availabilities}
}

// GroupedAvailabilityOf creates fresh unowned records, one per segment of the
// normalized slot.
func GroupedAvailabilityOf(resourceID ResourceID, within shared.TimeSlot) *ResourceGroupedAvailability {
	return GroupedAvailabilityWithParentOf(resourceID, NoResourceID(), within)
}

// GroupedAvailabilityWithParentOf creates fresh unowned records for a resource
// belonging to a hierarchical group.
func GroupedAvailabilityWithParentOf(resourceID, parentID ResourceID, within shared.TimeSlot) *ResourceGroupedAvailability {
	segments := segment.Split(within, segment.DefaultSegment())
	availabilities := make([]*ResourceAvailability, 0, len(segments))
	for _, seg := range segments {
		availabilities = append(availabilities,
			NewResourceAvailabilityWithParent(NewResourceAvailabilityID(), resourceID, parentID, seg))
	}
	return &ResourceGroupedAvailability{availabilities: availabilities}
}

// Block takes every segment for requester, or none.
func (g *ResourceGroupedAvailability) Block(requester Owner) bool {
	for _, availability := range g.availabilities {
		if !availability.Block(requester) {
			return false
		}
	}
	return true
}

// Release frees every segment held by requester, or none.
func (g *ResourceGroupedAvailability) Release(requester Owner) bool {
	for _, availability := range g.availabilities {
		if !availability.Release(requester) {
			return false
		}
	}
	return true
}

// Disable forcibly disables every segment.
func (g *ResourceGroupedAvailability) Disable(requester Owner) bool {
	for _, availability := range g.availabilities {
		if !availability.Disable(requester) {
			return false
		}
	}
	return true
}

// Owners returns the distinct owners currently holding any segment of the
// group, including the none sentinel for free segments.
func (g *ResourceGroupedAvailability) Owners() []Owner {
	seen := make(map[Owner]struct{})
	owners := make([]Owner, 0, len(g.availabilities))
	for _, availability := range g.availabilities {
		owner := availability.BlockedBy()
		if _, ok := seen[owner]; ok {
			continue
		}
		seen[owner] = struct{}{}
		owners = append(owners, owner)
	}
	return owners
}

// ResourceID returns the id shared by all records, or the none sentinel for an
// empty group.
func (g *ResourceGroupedAvailability) ResourceID() ResourceID {
	if len(g.availabilities) == 0 {
		return NoResourceID()
	}
	return g.availabilities[0].ResourceID()
}

// Availabilities exposes the underlying records.
func (g *ResourceGroupedAvailability) Availabilities() []*ResourceAvailability {
	return g.availabilities
}

// HasNoSlots reports whether nothing was scheduled for the queried window.
func (g *ResourceGroupedAvailability) HasNoSlots() bool {
	return len(g.availabilities) == 0
}

// BlockedEntirelyBy reports whether every segment is held by owner.
func (g *ResourceGroupedAvailability) BlockedEntirelyBy(owner Owner) bool {
	for _, availability := range g.availabilities {
		if availability.BlockedBy() != owner {
			return false
		}
	}
	return true
}

// IsDisabledEntirelyBy reports whether every segment was disabled by owner.
func (g *ResourceGroupedAvailability) IsDisabledEntirelyBy(owner Owner) bool {
	for _, availability := range g.availabilities {
		if !availability.IsDisabledBy(owner) {
			return false
		}
	}
	return true
}
