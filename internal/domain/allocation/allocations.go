package allocation

import (
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// AllocatedCapability records that a concrete capability instance serves the
// project during a time slot.
type AllocatedCapability struct {
	AllocatedCapabilityID capabilityscheduling.AllocatableCapabilityID   `json:"allocatedCapabilityId"`
	Capability            capabilityscheduling.CapabilitySelector        `json:"capability"`
	TimeSlot              shared.TimeSlot                                `json:"timeSlot"`
}

func (a AllocatedCapability) equals(other AllocatedCapability) bool {
	return a.AllocatedCapabilityID == other.AllocatedCapabilityID && a.TimeSlot.Equals(other.TimeSlot)
}

// Allocations is the set of capabilities currently allocated to a project.
// Add and Remove are idempotent: they return the receiver unchanged when the
// target state already holds.
type Allocations struct {
	All []AllocatedCapability `json:"all"`
}

// NoAllocations is the empty set.
func NoAllocations() Allocations {
	return Allocations{All: []AllocatedCapability{}}
}

// AllocationsOf collects the given allocations.
func AllocationsOf(allocated ...AllocatedCapability) Allocations {
	return Allocations{All: allocated}
}

// Add returns the allocations extended by one capability, or the receiver
// unchanged when an equal allocation is already present.
func (a Allocations) Add(newOne AllocatedCapability) Allocations {
	for _, existing := range a.All {
		if existing.equals(newOne) {
			return a
		}
	}
	all := make([]AllocatedCapability, 0, len(a.All)+1)
	all = append(all, a.All...)
	all = append(all, newOne)
	return Allocations{All: all}
}

// Remove withdraws the capability from the given slot. Releasing a part of an
// allocated slot keeps the leftovers allocated. Returns the receiver unchanged
// when the capability is not allocated.
func (a Allocations) Remove(toRemove capabilityscheduling.AllocatableCapabilityID, slot shared.TimeSlot) Allocations {
	allocated := a.Find(toRemove)
	if allocated == nil {
		return a
	}
	return a.removeFromSlot(*allocated, slot)
}

func (a Allocations) removeFromSlot(allocated AllocatedCapability, slot shared.TimeSlot) Allocations {
	all := make([]AllocatedCapability, 0, len(a.All)+1)
	for _, existing := range a.All {
		if !existing.equals(allocated) {
			all = append(all, existing)
		}
	}
	for _, leftover := range allocated.TimeSlot.LeftoverAfterRemovingCommonWith(slot) {
		if leftover.Within(allocated.TimeSlot) {
			all = append(all, AllocatedCapability{
				AllocatedCapabilityID: allocated.AllocatedCapabilityID,
				Capability:            allocated.Capability,
				TimeSlot:              leftover,
			})
		}
	}
	return Allocations{All: all}
}

// Find returns the allocation of the given capability, or nil.
func (a Allocations) Find(id capabilityscheduling.AllocatableCapabilityID) *AllocatedCapability {
	for i := range a.All {
		if a.All[i].AllocatedCapabilityID == id {
			return &a.All[i]
		}
	}
	return nil
}

// Equals compares allocation sets element-wise.
func (a Allocations) Equals(other Allocations) bool {
	if len(a.All) != len(other.All) {
		return false
	}
	for _, allocated := range a.All {
		found := false
		for _, candidate := range other.All {
			if allocated.equals(candidate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
