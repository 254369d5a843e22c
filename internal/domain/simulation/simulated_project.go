// Package simulation builds transient what-if scenarios over project demands
// and resource capabilities and evaluates them with the optimization engine.
package simulation

import (
	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/optimization"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// ProjectID identifies a simulated project.
type ProjectID struct {
	id uuid.UUID
}

// NewProjectID generates a fresh identifier.
func NewProjectID() ProjectID {
	return ProjectID{id: uuid.New()}
}

// ProjectIDOf wraps an existing identifier, e.g. a project allocations id.
func ProjectIDOf(id uuid.UUID) ProjectID {
	return ProjectID{id: id}
}

func (p ProjectID) String() string { return p.id.String() }

// Demand is one capability requirement of a simulated project.
type Demand struct {
	Capability shared.Capability
	Slot       shared.TimeSlot
}

// IsSatisfiedBy implements optimization.WeightDimension: the demand consumes
// one capacity unit offering the capability over the demanded slot.
func (d Demand) IsSatisfiedBy(capacity optimization.CapacityDimension) bool {
	available, ok := capacity.(AvailableResourceCapability)
	if !ok {
		return false
	}
	return available.Performs(d.Capability) && d.Slot.Within(available.TimeSlot)
}

// Demands is the requirement vector of a simulated project.
type Demands struct {
	All []Demand
}

// DemandsOf collects the given demands.
func DemandsOf(demands ...Demand) Demands {
	return Demands{All: demands}
}

// SimulatedProject is a candidate allocation with an earnings value and the
// demands still missing.
type SimulatedProject struct {
	ProjectID      ProjectID
	Earnings       float64
	MissingDemands Demands
}

// CalculateValue returns the project's value for optimization.
func (p SimulatedProject) CalculateValue() float64 {
	return p.Earnings
}

// AvailableResourceCapability is one concrete resource instance offering a
// capability set during a window; it acts as a capacity dimension.
type AvailableResourceCapability struct {
	ResourceID         uuid.UUID
	CapabilitySelector capabilityscheduling.CapabilitySelector
	TimeSlot           shared.TimeSlot
}

// NewAvailableResourceCapability declares a single-capability resource.
func NewAvailableResourceCapability(resourceID uuid.UUID, capability shared.Capability, slot shared.TimeSlot) AvailableResourceCapability {
	return AvailableResourceCapability{
		ResourceID:         resourceID,
		CapabilitySelector: capabilityscheduling.CanJustPerform(capability),
		TimeSlot:           slot,
	}
}

// Performs reports whether the resource offers the capability.
func (a AvailableResourceCapability) Performs(capability shared.Capability) bool {
	return a.CapabilitySelector.CanPerform(capability)
}

// SimulatedCapabilities is the pool of capacity available to a simulation.
type SimulatedCapabilities struct {
	Capabilities []AvailableResourceCapability
}

// NoCapabilities is the empty pool.
func NoCapabilities() SimulatedCapabilities {
	return SimulatedCapabilities{}
}

// Add returns the pool extended by further capabilities.
func (c SimulatedCapabilities) Add(capabilities ...AvailableResourceCapability) SimulatedCapabilities {
	combined := make([]AvailableResourceCapability, 0, len(c.Capabilities)+len(capabilities))
	combined = append(combined, c.Capabilities...)
	combined = append(combined, capabilities...)
	return SimulatedCapabilities{Capabilities: combined}
}

// AdditionalPricedCapability is a hypothetical capability with its acquisition
// cost, evaluated by profit simulations.
type AdditionalPricedCapability struct {
	Value                       float64
	AvailableResourceCapability AvailableResourceCapability
}
