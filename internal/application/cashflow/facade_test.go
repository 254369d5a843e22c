package cashflow_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/persistence"
	cashflowapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/events"
	"github.com/grzesiek-galezowski/smartschedule-go/test/helpers"
)

func newCashFlowFacade(t *testing.T) (*cashflowapp.CashFlowFacade, *events.InProcessPublisher) {
	t.Helper()
	db := helpers.NewTestDB(t)
	publisher := events.NewInProcessPublisher(zerolog.Nop())
	facade := cashflowapp.NewCashFlowFacade(
		persistence.NewGormCashflowRepository(db),
		publisher,
		database.NewUnitOfWork(db),
		shared.NewRealClock(),
		zerolog.Nop(),
	)
	return facade, publisher
}

func TestCashFlowFacade_AddIncomeAndCostPublishesEarnings(t *testing.T) {
	// Arrange
	facade, publisher := newCashFlowFacade(t)
	projectID := allocation.NewProjectAllocationsID()
	var published []cashflow.EarningsRecalculated
	events.SubscribeTyped(publisher, cashflow.EarningsRecalculatedEventName,
		func(ctx context.Context, event cashflow.EarningsRecalculated) error {
			published = append(published, event)
			return nil
		})

	// Act
	err := facade.AddIncomeAndCost(context.Background(), projectID,
		cashflow.Income(100), cashflow.Cost(50))

	// Assert
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, projectID, published[0].ProjectID)
	assert.Equal(t, cashflow.Earnings(50), published[0].Earnings)
	earnings, err := facade.Find(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, cashflow.Earnings(50), earnings)
}

func TestCashFlowFacade_SecondRecordingOverwrites(t *testing.T) {
	facade, _ := newCashFlowFacade(t)
	projectID := allocation.NewProjectAllocationsID()
	require.NoError(t, facade.AddIncomeAndCost(context.Background(), projectID,
		cashflow.Income(100), cashflow.Cost(50)))

	require.NoError(t, facade.AddIncomeAndCost(context.Background(), projectID,
		cashflow.Income(3000), cashflow.Cost(1000)))

	earnings, err := facade.Find(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, cashflow.Earnings(2000), earnings)
}

func TestCashFlowFacade_FindWithoutRecordFails(t *testing.T) {
	facade, _ := newCashFlowFacade(t)

	_, err := facade.Find(context.Background(), allocation.NewProjectAllocationsID())

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestCashFlowFacade_FindAllEarnings(t *testing.T) {
	facade, _ := newCashFlowFacade(t)
	first := allocation.NewProjectAllocationsID()
	second := allocation.NewProjectAllocationsID()
	require.NoError(t, facade.AddIncomeAndCost(context.Background(), first,
		cashflow.Income(100), cashflow.Cost(50)))
	require.NoError(t, facade.AddIncomeAndCost(context.Background(), second,
		cashflow.Income(10), cashflow.Cost(0)))

	earnings, err := facade.FindAllEarnings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[allocation.ProjectAllocationsID]cashflow.Earnings{
		first:  50,
		second: 10,
	}, earnings)
}
