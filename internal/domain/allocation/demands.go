package allocation

import (
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// Demand is a project's need for one capability during a time slot.
type Demand struct {
	Capability shared.Capability `json:"capability"`
	Slot       shared.TimeSlot   `json:"slot"`
}

// NewDemand pairs a capability with the slot it is needed for.
func NewDemand(capability shared.Capability, slot shared.TimeSlot) Demand {
	return Demand{Capability: capability, Slot: slot}
}

// Demands is an ordered collection of demands.
type Demands struct {
	All []Demand `json:"all"`
}

// NoDemands is the empty collection.
func NoDemands() Demands {
	return Demands{All: []Demand{}}
}

// DemandsOf collects the given demands.
func DemandsOf(demands ...Demand) Demands {
	return Demands{All: demands}
}

// WithNew appends further demands, returning a new collection.
func (d Demands) WithNew(newDemands Demands) Demands {
	all := make([]Demand, 0, len(d.All)+len(newDemands.All))
	all = append(all, d.All...)
	all = append(all, newDemands.All...)
	return Demands{All: all}
}

// IsEmpty reports whether there is nothing demanded.
func (d Demands) IsEmpty() bool {
	return len(d.All) == 0
}

// MissingDemands returns the demands not yet satisfied by the allocations: a
// demand is satisfied when some allocated capability can perform it and the
// demanded slot lies within the allocated one.
func (d Demands) MissingDemands(allocations Allocations) Demands {
	missing := make([]Demand, 0, len(d.All))
	for _, demand := range d.All {
		if !satisfiedBy(demand, allocations) {
			missing = append(missing, demand)
		}
	}
	return Demands{All: missing}
}

func satisfiedBy(demand Demand, allocations Allocations) bool {
	for _, allocated := range allocations.All {
		if allocated.Capability.CanPerform(demand.Capability) && demand.Slot.Within(allocated.TimeSlot) {
			return true
		}
	}
	return false
}
