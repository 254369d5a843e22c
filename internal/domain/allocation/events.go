package allocation

import (
	"time"

	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// Event names for handler registration.
const (
	ProjectAllocationScheduledEventName         = "ProjectAllocationScheduled"
	CapabilitiesAllocatedEventName              = "CapabilitiesAllocated"
	CapabilityReleasedEventName                 = "CapabilityReleased"
	ProjectAllocationsDemandsScheduledEventName = "ProjectAllocationsDemandsScheduled"
	NotSatisfiedDemandsEventName                = "NotSatisfiedDemands"
)

// ProjectAllocationScheduled is published when a project's allocation window
// is created or redefined. It seeds the risk saga.
type ProjectAllocationScheduled struct {
	EventID    uuid.UUID
	ProjectID  ProjectAllocationsID
	FromTo     shared.TimeSlot
	occurredAt time.Time
}

func NewProjectAllocationScheduled(projectID ProjectAllocationsID, fromTo shared.TimeSlot, occurredAt time.Time) ProjectAllocationScheduled {
	return ProjectAllocationScheduled{EventID: uuid.New(), ProjectID: projectID, FromTo: fromTo, occurredAt: occurredAt}
}

func (e ProjectAllocationScheduled) EventName() string    { return ProjectAllocationScheduledEventName }
func (e ProjectAllocationScheduled) OccurredAt() time.Time { return e.occurredAt }

// CapabilitiesAllocated is published when a capability was allocated to a project.
type CapabilitiesAllocated struct {
	EventID               uuid.UUID
	AllocatedCapabilityID capabilityscheduling.AllocatableCapabilityID
	ProjectID             ProjectAllocationsID
	MissingDemands        Demands
	occurredAt            time.Time
}

func NewCapabilitiesAllocated(allocatedCapabilityID capabilityscheduling.AllocatableCapabilityID, projectID ProjectAllocationsID, missingDemands Demands, occurredAt time.Time) CapabilitiesAllocated {
	return CapabilitiesAllocated{
		EventID:               uuid.New(),
		AllocatedCapabilityID: allocatedCapabilityID,
		ProjectID:             projectID,
		MissingDemands:        missingDemands,
		occurredAt:            occurredAt,
	}
}

func (e CapabilitiesAllocated) EventName() string     { return CapabilitiesAllocatedEventName }
func (e CapabilitiesAllocated) OccurredAt() time.Time { return e.occurredAt }

// CapabilityReleased is published when a capability was withdrawn from a project.
type CapabilityReleased struct {
	EventID        uuid.UUID
	ProjectID      ProjectAllocationsID
	MissingDemands Demands
	occurredAt     time.Time
}

func NewCapabilityReleased(projectID ProjectAllocationsID, missingDemands Demands, occurredAt time.Time) CapabilityReleased {
	return CapabilityReleased{EventID: uuid.New(), ProjectID: projectID, MissingDemands: missingDemands, occurredAt: occurredAt}
}

func (e CapabilityReleased) EventName() string     { return CapabilityReleasedEventName }
func (e CapabilityReleased) OccurredAt() time.Time { return e.occurredAt }

// ProjectAllocationsDemandsScheduled is published when a project's demands change.
type ProjectAllocationsDemandsScheduled struct {
	EventID        uuid.UUID
	ProjectID      ProjectAllocationsID
	MissingDemands Demands
	occurredAt     time.Time
}

func NewProjectAllocationsDemandsScheduled(projectID ProjectAllocationsID, missingDemands Demands, occurredAt time.Time) ProjectAllocationsDemandsScheduled {
	return ProjectAllocationsDemandsScheduled{EventID: uuid.New(), ProjectID: projectID, MissingDemands: missingDemands, occurredAt: occurredAt}
}

func (e ProjectAllocationsDemandsScheduled) EventName() string {
	return ProjectAllocationsDemandsScheduledEventName
}
func (e ProjectAllocationsDemandsScheduled) OccurredAt() time.Time { return e.occurredAt }

// NotSatisfiedDemands is the periodic, system-wide snapshot of missing demands
// per project.
type NotSatisfiedDemands struct {
	EventID        uuid.UUID
	MissingDemands map[ProjectAllocationsID]Demands
	occurredAt     time.Time
}

func NewNotSatisfiedDemands(missingDemands map[ProjectAllocationsID]Demands, occurredAt time.Time) NotSatisfiedDemands {
	return NotSatisfiedDemands{EventID: uuid.New(), MissingDemands: missingDemands, occurredAt: occurredAt}
}

func (e NotSatisfiedDemands) EventName() string     { return NotSatisfiedDemandsEventName }
func (e NotSatisfiedDemands) OccurredAt() time.Time { return e.occurredAt }
