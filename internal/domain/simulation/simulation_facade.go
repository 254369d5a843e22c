package simulation

import (
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/optimization"
)

// SimulationFacade converts domain objects to optimization items and capacity
// and runs what-if evaluations.
type SimulationFacade struct {
	optimizationFacade *optimization.OptimizationFacade
}

// NewSimulationFacade creates the facade over the given solver.
func NewSimulationFacade(optimizationFacade *optimization.OptimizationFacade) *SimulationFacade {
	return &SimulationFacade{optimizationFacade: optimizationFacade}
}

// WhatIsTheOptimalSetup selects the most profitable subset of candidate
// projects given the available capabilities.
func (f *SimulationFacade) WhatIsTheOptimalSetup(projectsSimulations []SimulatedProject, totalCapability SimulatedCapabilities) optimization.Result {
	return f.optimizationFacade.Calculate(toItems(projectsSimulations), toCapacity(totalCapability))
}

// ProfitAfterBuyingNewCapability returns the marginal profit of acquiring the
// priced capability: optimal profit with it, minus its cost, minus optimal
// profit without it.
func (f *SimulationFacade) ProfitAfterBuyingNewCapability(projectsSimulations []SimulatedProject, capabilitiesWithoutNewOne SimulatedCapabilities, newPricedCapability AdditionalPricedCapability) float64 {
	capabilitiesWithNewResource := capabilitiesWithoutNewOne.Add(newPricedCapability.AvailableResourceCapability)
	resultWithout := f.optimizationFacade.Calculate(toItems(projectsSimulations), toCapacity(capabilitiesWithoutNewOne))
	resultWith := f.optimizationFacade.Calculate(toItems(projectsSimulations), toCapacity(capabilitiesWithNewResource))
	return resultWith.Profit - newPricedCapability.Value - resultWithout.Profit
}

func toCapacity(simulatedCapabilities SimulatedCapabilities) optimization.TotalCapacity {
	capacities := make([]optimization.CapacityDimension, 0, len(simulatedCapabilities.Capabilities))
	for _, capability := range simulatedCapabilities.Capabilities {
		capacities = append(capacities, capability)
	}
	return optimization.NewTotalCapacity(capacities...)
}

func toItems(projectsSimulations []SimulatedProject) []optimization.Item {
	items := make([]optimization.Item, 0, len(projectsSimulations))
	for _, project := range projectsSimulations {
		items = append(items, toItem(project))
	}
	return items
}

func toItem(project SimulatedProject) optimization.Item {
	weights := make([]optimization.WeightDimension, 0, len(project.MissingDemands.All))
	for _, demand := range project.MissingDemands.All {
		weights = append(weights, demand)
	}
	return optimization.Item{
		Name:        project.ProjectID.String(),
		Value:       project.CalculateValue(),
		TotalWeight: optimization.NewTotalWeight(weights...),
	}
}
