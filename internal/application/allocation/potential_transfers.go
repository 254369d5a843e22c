package allocation

import (
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/simulation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// PotentialTransfers is a transient what-if view over every project's
// allocations and earnings. Transfer rewrites the view in memory only; nothing
// here touches persisted state.
type PotentialTransfers struct {
	Summary  domain.ProjectsAllocationsSummary
	Earnings map[domain.ProjectAllocationsID]cashflow.Earnings
}

// NewPotentialTransfers pairs the allocation snapshot with per-project earnings.
func NewPotentialTransfers(summary domain.ProjectsAllocationsSummary, earnings map[domain.ProjectAllocationsID]cashflow.Earnings) PotentialTransfers {
	return PotentialTransfers{Summary: summary, Earnings: earnings}
}

// Transfer moves the allocated capability to projectTo for the slot. When no
// project currently holds the capability the view is returned unchanged.
func (t PotentialTransfers) Transfer(projectTo domain.ProjectAllocationsID, capabilityToMove domain.AllocatedCapability, forSlot shared.TimeSlot) PotentialTransfers {
	projectFrom, found := t.findProjectHolding(capabilityToMove.AllocatedCapabilityID)
	if !found || projectFrom == projectTo {
		return t
	}

	allocations := make(map[domain.ProjectAllocationsID]domain.Allocations, len(t.Summary.ProjectAllocations))
	for id, a := range t.Summary.ProjectAllocations {
		allocations[id] = a
	}
	allocations[projectFrom] = allocations[projectFrom].Remove(capabilityToMove.AllocatedCapabilityID, forSlot)
	allocations[projectTo] = allocations[projectTo].Add(domain.AllocatedCapability{
		AllocatedCapabilityID: capabilityToMove.AllocatedCapabilityID,
		Capability:            capabilityToMove.Capability,
		TimeSlot:              forSlot,
	})

	return PotentialTransfers{
		Summary: domain.ProjectsAllocationsSummary{
			TimeSlots:          t.Summary.TimeSlots,
			ProjectAllocations: allocations,
			Demands:            t.Summary.Demands,
		},
		Earnings: t.Earnings,
	}
}

// ToSimulatedProjects converts the view into simulation inputs: one candidate
// project per snapshot entry, valued at its earnings, demanding what its
// current allocations leave unsatisfied.
func (t PotentialTransfers) ToSimulatedProjects() []simulation.SimulatedProject {
	projects := make([]simulation.SimulatedProject, 0, len(t.Summary.ProjectAllocations))
	for projectID, allocations := range t.Summary.ProjectAllocations {
		missing := t.Summary.Demands[projectID].MissingDemands(allocations)
		projects = append(projects, simulation.SimulatedProject{
			ProjectID:      simulation.ProjectIDOf(projectID.ID()),
			Earnings:       t.Earnings[projectID].ToFloat(),
			MissingDemands: toSimulationDemands(missing),
		})
	}
	return projects
}

func (t PotentialTransfers) findProjectHolding(capabilityID capabilityscheduling.AllocatableCapabilityID) (domain.ProjectAllocationsID, bool) {
	for projectID, allocations := range t.Summary.ProjectAllocations {
		if allocations.Find(capabilityID) != nil {
			return projectID, true
		}
	}
	return domain.ProjectAllocationsID{}, false
}

func toSimulationDemands(demands domain.Demands) simulation.Demands {
	all := make([]simulation.Demand, 0, len(demands.All))
	for _, demand := range demands.All {
		all = append(all, simulation.Demand{Capability: demand.Capability, Slot: demand.Slot})
	}
	return simulation.Demands{All: all}
}
