package allocation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

var january = shared.CreateMonthlyTimeSlotAtUTC(2026, time.January)

func javaSelector() capabilityscheduling.CapabilitySelector {
	return capabilityscheduling.CanJustPerform(shared.Skill("JAVA"))
}

func TestAllocate_RecordsCapabilityAndReportsMissingDemands(t *testing.T) {
	project := allocation.NewProjectAllocations(
		allocation.NewProjectAllocationsID(),
		allocation.NoAllocations(),
		allocation.DemandsOf(allocation.NewDemand(shared.Skill("JAVA"), january)),
		january,
	)
	capabilityID := capabilityscheduling.NewAllocatableCapabilityID()

	event := project.Allocate(capabilityID, javaSelector(), january, time.Now())

	require.NotNil(t, event)
	assert.True(t, project.MissingDemands().IsEmpty())
	assert.Len(t, project.Allocations().All, 1)
}

func TestAllocate_IsIdempotent(t *testing.T) {
	project := allocation.EmptyProjectAllocations(allocation.NewProjectAllocationsID())
	capabilityID := capabilityscheduling.NewAllocatableCapabilityID()

	first := project.Allocate(capabilityID, javaSelector(), january, time.Now())
	second := project.Allocate(capabilityID, javaSelector(), january, time.Now())

	require.NotNil(t, first)
	assert.Nil(t, second)
	assert.Len(t, project.Allocations().All, 1)
}

func TestAllocate_RefusesSlotOutsideProjectWindow(t *testing.T) {
	project := allocation.NewProjectAllocations(
		allocation.NewProjectAllocationsID(),
		allocation.NoAllocations(),
		allocation.NoDemands(),
		january,
	)
	february := shared.CreateMonthlyTimeSlotAtUTC(2026, time.February)

	event := project.Allocate(capabilityscheduling.NewAllocatableCapabilityID(), javaSelector(), february, time.Now())

	assert.Nil(t, event)
	assert.Empty(t, project.Allocations().All)
}

func TestRelease_WholeSlot(t *testing.T) {
	project := allocation.EmptyProjectAllocations(allocation.NewProjectAllocationsID())
	capabilityID := capabilityscheduling.NewAllocatableCapabilityID()
	require.NotNil(t, project.Allocate(capabilityID, javaSelector(), january, time.Now()))

	event := project.Release(capabilityID, january, time.Now())

	require.NotNil(t, event)
	assert.Empty(t, project.Allocations().All)
}

func TestRelease_PartOfSlotKeepsLeftovers(t *testing.T) {
	project := allocation.EmptyProjectAllocations(allocation.NewProjectAllocationsID())
	capabilityID := capabilityscheduling.NewAllocatableCapabilityID()
	whole := shared.MustNewTimeSlot(
		time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 16, 0, 0, 0, time.UTC),
	)
	middle := shared.MustNewTimeSlot(
		time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NotNil(t, project.Allocate(capabilityID, javaSelector(), whole, time.Now()))

	event := project.Release(capabilityID, middle, time.Now())

	require.NotNil(t, event)
	require.Len(t, project.Allocations().All, 2)
}

func TestRelease_NotAllocatedCapabilityIsNoop(t *testing.T) {
	project := allocation.EmptyProjectAllocations(allocation.NewProjectAllocationsID())

	event := project.Release(capabilityscheduling.NewAllocatableCapabilityID(), january, time.Now())

	assert.Nil(t, event)
}

func TestMissingDemands_SatisfiedByCoveringAllocation(t *testing.T) {
	demandedWeek := shared.MustNewTimeSlot(
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	)
	demands := allocation.DemandsOf(allocation.NewDemand(shared.Skill("JAVA"), demandedWeek))
	project := allocation.NewProjectAllocations(allocation.NewProjectAllocationsID(), allocation.NoAllocations(), demands, january)

	require.NotNil(t, project.Allocate(capabilityscheduling.NewAllocatableCapabilityID(), javaSelector(), january, time.Now()))

	assert.True(t, project.MissingDemands().IsEmpty())
}

func TestMissingDemands_NotSatisfiedByWrongCapability(t *testing.T) {
	demands := allocation.DemandsOf(allocation.NewDemand(shared.Skill("RUST"), january))
	project := allocation.NewProjectAllocations(allocation.NewProjectAllocationsID(), allocation.NoAllocations(), demands, january)

	require.NotNil(t, project.Allocate(capabilityscheduling.NewAllocatableCapabilityID(), javaSelector(), january, time.Now()))

	assert.Len(t, project.MissingDemands().All, 1)
}

func TestAddDemands_ExtendsExistingOnes(t *testing.T) {
	project := allocation.EmptyProjectAllocations(allocation.NewProjectAllocationsID())

	project.AddDemands(allocation.DemandsOf(allocation.NewDemand(shared.Skill("JAVA"), january)), time.Now())
	event := project.AddDemands(allocation.DemandsOf(allocation.NewDemand(shared.Skill("RUST"), january)), time.Now())

	assert.Len(t, project.Demands().All, 2)
	assert.Len(t, event.MissingDemands.All, 2)
}

func TestDefineSlot_SetsWindowAndReturnsScheduledEvent(t *testing.T) {
	project := allocation.EmptyProjectAllocations(allocation.NewProjectAllocationsID())
	require.False(t, project.HasTimeSlot())

	event := project.DefineSlot(january, time.Now())

	assert.True(t, project.HasTimeSlot())
	assert.True(t, event.FromTo.Equals(january))
}
