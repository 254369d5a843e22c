package simulation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/optimization"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/simulation"
)

var january = shared.CreateMonthlyTimeSlotAtUTC(2026, time.January)

func facade() *simulation.SimulationFacade {
	return simulation.NewSimulationFacade(optimization.NewOptimizationFacade())
}

func javaProject(earnings float64) simulation.SimulatedProject {
	return simulation.SimulatedProject{
		ProjectID: simulation.NewProjectID(),
		Earnings:  earnings,
		MissingDemands: simulation.DemandsOf(
			simulation.Demand{Capability: shared.Skill("JAVA"), Slot: january},
		),
	}
}

func javaDeveloper() simulation.AvailableResourceCapability {
	return simulation.NewAvailableResourceCapability(uuid.New(), shared.Skill("JAVA"), january)
}

func TestWhatIsTheOptimalSetup_PicksMostProfitableProjects(t *testing.T) {
	lowValue := javaProject(9)
	highValue := javaProject(99)
	capabilities := simulation.NoCapabilities().Add(javaDeveloper())

	result := facade().WhatIsTheOptimalSetup([]simulation.SimulatedProject{lowValue, highValue}, capabilities)

	assert.Equal(t, 99.0, result.Profit)
	require.Len(t, result.ChosenItems, 1)
	assert.Equal(t, highValue.ProjectID.String(), result.ChosenItems[0].Name)
}

func TestWhatIsTheOptimalSetup_DemandOutsideWindowNotSatisfied(t *testing.T) {
	february := shared.CreateMonthlyTimeSlotAtUTC(2026, time.February)
	project := simulation.SimulatedProject{
		ProjectID: simulation.NewProjectID(),
		Earnings:  50,
		MissingDemands: simulation.DemandsOf(
			simulation.Demand{Capability: shared.Skill("JAVA"), Slot: february},
		),
	}
	capabilities := simulation.NoCapabilities().Add(javaDeveloper())

	result := facade().WhatIsTheOptimalSetup([]simulation.SimulatedProject{project}, capabilities)

	assert.Empty(t, result.ChosenItems)
}

func TestWhatIsTheOptimalSetup_ResourceServesOnlyOneProject(t *testing.T) {
	first := javaProject(50)
	second := javaProject(40)
	capabilities := simulation.NoCapabilities().Add(javaDeveloper())

	result := facade().WhatIsTheOptimalSetup([]simulation.SimulatedProject{first, second}, capabilities)

	assert.Equal(t, 50.0, result.Profit)
	assert.Len(t, result.ChosenItems, 1)
}

func TestProfitAfterBuyingNewCapability_Positive(t *testing.T) {
	// Without the new developer nothing can be staffed; buying for 30
	// unlocks a 99 project.
	project := javaProject(99)

	profit := facade().ProfitAfterBuyingNewCapability(
		[]simulation.SimulatedProject{project},
		simulation.NoCapabilities(),
		simulation.AdditionalPricedCapability{Value: 30, AvailableResourceCapability: javaDeveloper()},
	)

	assert.Equal(t, 69.0, profit)
}

func TestProfitAfterBuyingNewCapability_NegativeWhenNothingUnlocked(t *testing.T) {
	rustProject := simulation.SimulatedProject{
		ProjectID: simulation.NewProjectID(),
		Earnings:  99,
		MissingDemands: simulation.DemandsOf(
			simulation.Demand{Capability: shared.Skill("RUST"), Slot: january},
		),
	}

	profit := facade().ProfitAfterBuyingNewCapability(
		[]simulation.SimulatedProject{rustProject},
		simulation.NoCapabilities(),
		simulation.AdditionalPricedCapability{Value: 30, AvailableResourceCapability: javaDeveloper()},
	)

	assert.Equal(t, -30.0, profit)
}
