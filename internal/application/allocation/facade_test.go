package allocation_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/persistence"
	allocationapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/allocation"
	availabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/availability"
	capabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/events"
	"github.com/grzesiek-galezowski/smartschedule-go/test/helpers"
)

type allocationFixture struct {
	facade       *allocationapp.AllocationFacade
	scheduler    *capabilityapp.CapabilityScheduler
	availability *availabilityapp.AvailabilityFacade
	publisher    *events.InProcessPublisher
}

func newAllocationFixture(t *testing.T) allocationFixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	uow := database.NewUnitOfWork(db)
	publisher := events.NewInProcessPublisher(zerolog.Nop())
	clock := shared.NewRealClock()
	availabilityFacade := availabilityapp.NewAvailabilityFacade(
		persistence.NewGormResourceAvailabilityRepository(db, rand.New(rand.NewSource(1))),
		persistence.NewGormAvailabilityReadModel(db),
		publisher,
		uow,
		clock,
		zerolog.Nop(),
	)
	capabilityRepo := persistence.NewGormAllocatableCapabilityRepository(db)
	finder := capabilityapp.NewCapabilityFinder(capabilityRepo, availabilityFacade)
	return allocationFixture{
		facade: allocationapp.NewAllocationFacade(
			persistence.NewGormProjectAllocationsRepository(db),
			capabilityRepo,
			finder,
			availabilityFacade,
			publisher,
			uow,
			clock,
			zerolog.Nop(),
		),
		scheduler:    capabilityapp.NewCapabilityScheduler(capabilityRepo, availabilityFacade, uow, zerolog.Nop()),
		availability: availabilityFacade,
		publisher:    publisher,
	}
}

func (f allocationFixture) scheduleCapability(t *testing.T, capability shared.Capability, slot shared.TimeSlot) capabilityscheduling.AllocatableCapabilityID {
	t.Helper()
	ids, err := f.scheduler.ScheduleResourceCapabilitiesForPeriod(context.Background(),
		capabilityscheduling.NewAllocatableResourceID(),
		[]capabilityscheduling.CapabilitySelector{capabilityscheduling.CanJustPerform(capability)},
		slot)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	return ids[0]
}

func TestAllocationFacade_AllocateToProject(t *testing.T) {
	// Arrange
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	capabilityID := fixture.scheduleCapability(t, shared.Skill("JAVA"), oneDay)
	projectID, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)

	// Act
	allocatedID, err := fixture.facade.AllocateToProject(ctx, projectID, capabilityID, oneDay)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, allocatedID)
	summary, err := fixture.facade.FindProjectsAllocationsByID(ctx, []allocation.ProjectAllocationsID{projectID})
	require.NoError(t, err)
	require.Len(t, summary.ProjectAllocations[projectID].All, 1)
	assert.Equal(t, capabilityID, summary.ProjectAllocations[projectID].All[0].AllocatedCapabilityID)
}

func TestAllocationFacade_AllocationBlocksTheCalendar(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	capabilityID := fixture.scheduleCapability(t, shared.Skill("JAVA"), oneDay)
	projectID, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)

	allocatedID, err := fixture.facade.AllocateToProject(ctx, projectID, capabilityID, oneDay)
	require.NoError(t, err)
	require.NotNil(t, allocatedID)

	calendar, err := fixture.availability.LoadCalendar(ctx, capabilityID.ToAvailabilityResourceID(), oneDay)
	require.NoError(t, err)
	assert.Empty(t, calendar.AvailableSlots())
	assert.Len(t, calendar.TakenBy(availability.OwnerOf(projectID.ID())), 1)
}

func TestAllocationFacade_SecondProjectCannotAllocateTakenCapability(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	capabilityID := fixture.scheduleCapability(t, shared.Skill("JAVA"), oneDay)
	first, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)
	second, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)
	allocatedID, err := fixture.facade.AllocateToProject(ctx, first, capabilityID, oneDay)
	require.NoError(t, err)
	require.NotNil(t, allocatedID)

	allocatedID, err = fixture.facade.AllocateToProject(ctx, second, capabilityID, oneDay)

	require.NoError(t, err)
	assert.Nil(t, allocatedID)
}

func TestAllocationFacade_AllocateUnknownCapabilityReturnsNil(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	projectID, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)

	allocatedID, err := fixture.facade.AllocateToProject(ctx, projectID,
		capabilityscheduling.NewAllocatableCapabilityID(), oneDay)

	require.NoError(t, err)
	assert.Nil(t, allocatedID)
}

func TestAllocationFacade_ReleaseFreesCapabilityForOthers(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	capabilityID := fixture.scheduleCapability(t, shared.Skill("JAVA"), oneDay)
	first, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)
	second, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)
	allocatedID, err := fixture.facade.AllocateToProject(ctx, first, capabilityID, oneDay)
	require.NoError(t, err)
	require.NotNil(t, allocatedID)

	released, err := fixture.facade.ReleaseFromProject(ctx, first, capabilityID, oneDay)
	require.NoError(t, err)
	require.True(t, released)

	allocatedID, err = fixture.facade.AllocateToProject(ctx, second, capabilityID, oneDay)
	require.NoError(t, err)
	assert.NotNil(t, allocatedID)
}

func TestAllocationFacade_AllocateCapabilityToProjectForPeriod(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	javaSkill := shared.Skill("JAVA")
	fixture.scheduleCapability(t, javaSkill, oneDay)
	projectID, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)

	allocated, err := fixture.facade.AllocateCapabilityToProjectForPeriod(ctx, projectID, javaSkill, oneDay)

	require.NoError(t, err)
	assert.True(t, allocated)

	// The only declaration is taken now, so a second project finds nothing.
	other, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)
	allocated, err = fixture.facade.AllocateCapabilityToProjectForPeriod(ctx, other, javaSkill, oneDay)
	require.NoError(t, err)
	assert.False(t, allocated)
}

func TestAllocationFacade_ScheduleProjectAllocationDemandsPublishesEvent(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	oneDay := shared.CreateDailyTimeSlotAtUTC(2026, time.February, 2)
	projectID, err := fixture.facade.CreateAllocation(ctx, oneDay, allocation.NoDemands())
	require.NoError(t, err)

	var published []allocation.ProjectAllocationsDemandsScheduled
	events.SubscribeTyped(fixture.publisher, allocation.ProjectAllocationsDemandsScheduledEventName,
		func(ctx context.Context, event allocation.ProjectAllocationsDemandsScheduled) error {
			published = append(published, event)
			return nil
		})

	demands := allocation.DemandsOf(allocation.NewDemand(shared.Skill("JAVA"), oneDay))
	require.NoError(t, fixture.facade.ScheduleProjectAllocationDemands(ctx, projectID, demands))

	require.Len(t, published, 1)
	assert.Equal(t, projectID, published[0].ProjectID)
	summary, err := fixture.facade.FindAllProjectsAllocations(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Demands[projectID].All, 1)
}

func TestAllocationFacade_EditProjectDates(t *testing.T) {
	fixture := newAllocationFixture(t)
	ctx := context.Background()
	february := shared.CreateMonthlyTimeSlotAtUTC(2026, time.February)
	march := shared.CreateMonthlyTimeSlotAtUTC(2026, time.March)
	projectID, err := fixture.facade.CreateAllocation(ctx, february, allocation.NoDemands())
	require.NoError(t, err)

	require.NoError(t, fixture.facade.EditProjectDates(ctx, projectID, march))

	summary, err := fixture.facade.FindAllProjectsAllocations(ctx)
	require.NoError(t, err)
	slot := summary.TimeSlots[projectID]
	assert.True(t, slot.From.Equal(march.From))
	assert.True(t, slot.To.Equal(march.To))
}
