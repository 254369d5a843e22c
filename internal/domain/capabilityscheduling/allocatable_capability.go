package capabilityscheduling

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// AllocatableResourceID identifies a schedulable resource (employee, device).
type AllocatableResourceID struct {
	id uuid.UUID
}

// NewAllocatableResourceID generates a fresh resource identifier.
func NewAllocatableResourceID() AllocatableResourceID {
	return AllocatableResourceID{id: uuid.New()}
}

// AllocatableResourceIDOf wraps an existing identifier.
func AllocatableResourceIDOf(id uuid.UUID) AllocatableResourceID {
	return AllocatableResourceID{id: id}
}

// ID exposes the raw identifier.
func (r AllocatableResourceID) ID() uuid.UUID { return r.id }

func (r AllocatableResourceID) String() string { return r.id.String() }

// AllocatableCapabilityID identifies one scheduled capability declaration.
type AllocatableCapabilityID struct {
	id uuid.UUID
}

// NewAllocatableCapabilityID generates a fresh identifier.
func NewAllocatableCapabilityID() AllocatableCapabilityID {
	return AllocatableCapabilityID{id: uuid.New()}
}

// AllocatableCapabilityIDOf wraps an existing identifier.
func AllocatableCapabilityIDOf(id uuid.UUID) AllocatableCapabilityID {
	return AllocatableCapabilityID{id: id}
}

// ID exposes the raw identifier.
func (c AllocatableCapabilityID) ID() uuid.UUID { return c.id }

func (c AllocatableCapabilityID) String() string { return c.id.String() }

// MarshalJSON encodes the id as a plain uuid string.
func (c AllocatableCapabilityID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.id.String())
}

// UnmarshalJSON decodes the id from a plain uuid string.
func (c *AllocatableCapabilityID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return err
	}
	c.id = parsed
	return nil
}

// ToAvailabilityResourceID maps the capability onto the calendar resource that
// tracks its availability. Each scheduled capability has its own calendar.
func (c AllocatableCapabilityID) ToAvailabilityResourceID() availability.ResourceID {
	return availability.ResourceIDOf(c.id)
}

// AllocatableCapability declares that a resource offers a selector-described
// set of capabilities during a time window. A resource may hold several
// overlapping declarations.
type AllocatableCapability struct {
	id           AllocatableCapabilityID
	resourceID   AllocatableResourceID
	capabilities CapabilitySelector
	timeSlot     shared.TimeSlot
}

// NewAllocatableCapability creates a declaration with a fresh id.
func NewAllocatableCapability(resourceID AllocatableResourceID, capabilities CapabilitySelector, timeSlot shared.TimeSlot) *AllocatableCapability {
	return RestoreAllocatableCapability(NewAllocatableCapabilityID(), resourceID, capabilities, timeSlot)
}

// RestoreAllocatableCapability rehydrates a declaration from persisted state.
func RestoreAllocatableCapability(id AllocatableCapabilityID, resourceID AllocatableResourceID, capabilities CapabilitySelector, timeSlot shared.TimeSlot) *AllocatableCapability {
	return &AllocatableCapability{
		id:           id,
		resourceID:   resourceID,
		capabilities: capabilities,
		timeSlot:     timeSlot,
	}
}

// CanPerform reports whether the declaration satisfies the demanded capabilities.
func (a *AllocatableCapability) CanPerform(capabilities ...shared.Capability) bool {
	return a.capabilities.CanPerform(capabilities...)
}

// ID returns the declaration identifier.
func (a *AllocatableCapability) ID() AllocatableCapabilityID { return a.id }

// ResourceID returns the declaring resource.
func (a *AllocatableCapability) ResourceID() AllocatableResourceID { return a.resourceID }

// Capabilities returns the selector.
func (a *AllocatableCapability) Capabilities() CapabilitySelector { return a.capabilities }

// TimeSlot returns the declared window.
func (a *AllocatableCapability) TimeSlot() shared.TimeSlot { return a.timeSlot }

// AllocatableCapabilitySummary is the read-side projection of a declaration.
type AllocatableCapabilitySummary struct {
	ID           AllocatableCapabilityID
	ResourceID   AllocatableResourceID
	Capabilities CapabilitySelector
	TimeSlot     shared.TimeSlot
}

// AllocatableCapabilitiesSummary is an ordered collection of summaries.
type AllocatableCapabilitiesSummary struct {
	All []AllocatableCapabilitySummary
}
