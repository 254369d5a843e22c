package allocation

import (
	"time"

	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// ProjectAllocationsID identifies a project's allocation aggregate.
type ProjectAllocationsID struct {
	id uuid.UUID
}

// NewProjectAllocationsID generates a fresh project identifier.
func NewProjectAllocationsID() ProjectAllocationsID {
	return ProjectAllocationsID{id: uuid.New()}
}

// ProjectAllocationsIDOf wraps an existing identifier.
func ProjectAllocationsIDOf(id uuid.UUID) ProjectAllocationsID {
	return ProjectAllocationsID{id: id}
}

// ID exposes the raw identifier.
func (p ProjectAllocationsID) ID() uuid.UUID { return p.id }

func (p ProjectAllocationsID) String() string { return p.id.String() }

// ProjectAllocations is the per-project allocation state machine: demands,
// allocated capabilities and the project time slot. Allocate and Release are
// idempotent no-ops when the target state already holds.
type ProjectAllocations struct {
	projectID   ProjectAllocationsID
	allocations Allocations
	demands     Demands
	timeSlot    shared.TimeSlot
}

// NewProjectAllocations creates the aggregate with initial state.
func NewProjectAllocations(projectID ProjectAllocationsID, allocations Allocations, demands Demands, timeSlot shared.TimeSlot) *ProjectAllocations {
	return &ProjectAllocations{
		projectID:   projectID,
		allocations: allocations,
		demands:     demands,
		timeSlot:    timeSlot,
	}
}

// EmptyProjectAllocations creates the aggregate with no demands, allocations
// or time slot.
func EmptyProjectAllocations(projectID ProjectAllocationsID) *ProjectAllocations {
	return NewProjectAllocations(projectID, NoAllocations(), NoDemands(), shared.EmptyTimeSlot())
}

// Allocate records that the capability serves the project during the requested
// slot. Returns nil when nothing changed: the allocation already exists or the
// requested slot falls outside the project's time slot.
func (p *ProjectAllocations) Allocate(allocatedCapabilityID capabilityscheduling.AllocatableCapabilityID, capability capabilityscheduling.CapabilitySelector, requestedSlot shared.TimeSlot, when time.Time) *CapabilitiesAllocated {
	allocated := AllocatedCapability{
		AllocatedCapabilityID: allocatedCapabilityID,
		Capability:            capability,
		TimeSlot:              requestedSlot,
	}
	newAllocations := p.allocations.Add(allocated)
	if newAllocations.Equals(p.allocations) || !p.withinProjectTimeSlot(requestedSlot) {
		return nil
	}
	p.allocations = newAllocations
	event := NewCapabilitiesAllocated(allocatedCapabilityID, p.projectID, p.MissingDemands(), when)
	return &event
}

// Release withdraws the capability from the given slot. Returns nil when
// nothing was released.
func (p *ProjectAllocations) Release(allocatedCapabilityID capabilityscheduling.AllocatableCapabilityID, slot shared.TimeSlot, when time.Time) *CapabilityReleased {
	newAllocations := p.allocations.Remove(allocatedCapabilityID, slot)
	if newAllocations.Equals(p.allocations) {
		return nil
	}
	p.allocations = newAllocations
	event := NewCapabilityReleased(p.projectID, p.MissingDemands(), when)
	return &event
}

// DefineSlot sets the project's time window.
func (p *ProjectAllocations) DefineSlot(timeSlot shared.TimeSlot, when time.Time) ProjectAllocationScheduled {
	p.timeSlot = timeSlot
	return NewProjectAllocationScheduled(p.projectID, timeSlot, when)
}

// AddDemands extends the project's demands.
func (p *ProjectAllocations) AddDemands(newDemands Demands, when time.Time) ProjectAllocationsDemandsScheduled {
	p.demands = p.demands.WithNew(newDemands)
	return NewProjectAllocationsDemandsScheduled(p.projectID, p.MissingDemands(), when)
}

// MissingDemands returns the demands not yet satisfied by current allocations.
func (p *ProjectAllocations) MissingDemands() Demands {
	return p.demands.MissingDemands(p.allocations)
}

// HasTimeSlot reports whether the project's window was defined.
func (p *ProjectAllocations) HasTimeSlot() bool {
	return !p.timeSlot.IsEmpty()
}

func (p *ProjectAllocations) withinProjectTimeSlot(requestedSlot shared.TimeSlot) bool {
	if !p.HasTimeSlot() {
		return true
	}
	return requestedSlot.Within(p.timeSlot)
}

// ProjectID returns the aggregate identifier.
func (p *ProjectAllocations) ProjectID() ProjectAllocationsID { return p.projectID }

// Allocations returns the current allocation set.
func (p *ProjectAllocations) Allocations() Allocations { return p.allocations }

// Demands returns all scheduled demands.
func (p *ProjectAllocations) Demands() Demands { return p.demands }

// TimeSlot returns the project window, possibly empty.
func (p *ProjectAllocations) TimeSlot() shared.TimeSlot { return p.timeSlot }
