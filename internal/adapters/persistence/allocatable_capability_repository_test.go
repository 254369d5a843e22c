package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/persistence"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/test/helpers"
)

func TestAllocatableCapabilityRepository_SaveAllAndFindByID(t *testing.T) {
	// Arrange
	repo := persistence.NewGormAllocatableCapabilityRepository(helpers.NewTestDB(t))
	june := shared.CreateMonthlyTimeSlotAtUTC(2026, time.June)
	declaration := capabilityscheduling.NewAllocatableCapability(
		capabilityscheduling.NewAllocatableResourceID(),
		capabilityscheduling.CanPerformAllAtTheTime(shared.Skill("JAVA"), shared.Skill("KOTLIN")),
		june,
	)

	// Act
	err := repo.SaveAll(context.Background(), []*capabilityscheduling.AllocatableCapability{declaration})

	// Assert
	require.NoError(t, err)
	loaded, err := repo.FindByID(context.Background(), declaration.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, declaration.ID(), loaded.ID())
	assert.Equal(t, declaration.ResourceID(), loaded.ResourceID())
	assert.True(t, loaded.TimeSlot().Equals(june))
	assert.True(t, loaded.CanPerform(shared.Skill("JAVA"), shared.Skill("KOTLIN")))
}

func TestAllocatableCapabilityRepository_FindByIDUnknownReturnsNil(t *testing.T) {
	repo := persistence.NewGormAllocatableCapabilityRepository(helpers.NewTestDB(t))

	loaded, err := repo.FindByID(context.Background(), capabilityscheduling.NewAllocatableCapabilityID())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestAllocatableCapabilityRepository_FindByCapabilityWithin(t *testing.T) {
	repo := persistence.NewGormAllocatableCapabilityRepository(helpers.NewTestDB(t))
	june := shared.CreateMonthlyTimeSlotAtUTC(2026, time.June)
	java := capabilityscheduling.NewAllocatableCapability(
		capabilityscheduling.NewAllocatableResourceID(),
		capabilityscheduling.CanJustPerform(shared.Skill("JAVA")),
		june,
	)
	python := capabilityscheduling.NewAllocatableCapability(
		capabilityscheduling.NewAllocatableResourceID(),
		capabilityscheduling.CanJustPerform(shared.Skill("PYTHON")),
		june,
	)
	require.NoError(t, repo.SaveAll(context.Background(),
		[]*capabilityscheduling.AllocatableCapability{java, python}))

	found, err := repo.FindByCapabilityWithin(context.Background(), "JAVA", "SKILL", june.From, june.To)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, java.ID(), found[0].ID())
}

func TestAllocatableCapabilityRepository_FindByCapabilityWithinRequiresCoveringWindow(t *testing.T) {
	repo := persistence.NewGormAllocatableCapabilityRepository(helpers.NewTestDB(t))
	firstWeek := shared.MustNewTimeSlot(
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC))
	june := shared.CreateMonthlyTimeSlotAtUTC(2026, time.June)
	declaration := capabilityscheduling.NewAllocatableCapability(
		capabilityscheduling.NewAllocatableResourceID(),
		capabilityscheduling.CanJustPerform(shared.Skill("JAVA")),
		firstWeek,
	)
	require.NoError(t, repo.SaveAll(context.Background(),
		[]*capabilityscheduling.AllocatableCapability{declaration}))

	found, err := repo.FindByCapabilityWithin(context.Background(), "JAVA", "SKILL", june.From, june.To)

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestAllocatableCapabilityRepository_FindByResourceIDAndCapabilityAndTimeSlot(t *testing.T) {
	repo := persistence.NewGormAllocatableCapabilityRepository(helpers.NewTestDB(t))
	june := shared.CreateMonthlyTimeSlotAtUTC(2026, time.June)
	resourceID := capabilityscheduling.NewAllocatableResourceID()
	declaration := capabilityscheduling.NewAllocatableCapability(
		resourceID,
		capabilityscheduling.CanJustPerform(shared.Skill("JAVA")),
		june,
	)
	require.NoError(t, repo.SaveAll(context.Background(),
		[]*capabilityscheduling.AllocatableCapability{declaration}))

	found, err := repo.FindByResourceIDAndCapabilityAndTimeSlot(context.Background(), resourceID, "JAVA", "SKILL", june)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, declaration.ID(), found.ID())

	missing, err := repo.FindByResourceIDAndCapabilityAndTimeSlot(context.Background(), resourceID, "RUST", "SKILL", june)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAllocatableCapabilityRepository_ExistsByID(t *testing.T) {
	repo := persistence.NewGormAllocatableCapabilityRepository(helpers.NewTestDB(t))
	june := shared.CreateMonthlyTimeSlotAtUTC(2026, time.June)
	declaration := capabilityscheduling.NewAllocatableCapability(
		capabilityscheduling.NewAllocatableResourceID(),
		capabilityscheduling.CanJustPerform(shared.Skill("JAVA")),
		june,
	)
	require.NoError(t, repo.SaveAll(context.Background(),
		[]*capabilityscheduling.AllocatableCapability{declaration}))

	exists, err := repo.ExistsByID(context.Background(), declaration.ID())
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(context.Background(), capabilityscheduling.NewAllocatableCapabilityID())
	require.NoError(t, err)
	assert.False(t, exists)
}
