package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/persistence"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
	"github.com/grzesiek-galezowski/smartschedule-go/test/helpers"
)

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := helpers.NewTestDB(t)
	uow := database.NewUnitOfWork(db)
	repo := persistence.NewGormCashflowRepository(db)
	projectID := allocation.NewProjectAllocationsID()

	err := uow.InTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.Add(ctx, cashflow.NewCashflow(projectID)); err != nil {
			return err
		}
		return errors.New("abort")
	})

	require.Error(t, err)
	record, err := repo.FindByID(context.Background(), projectID)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	db := helpers.NewTestDB(t)
	uow := database.NewUnitOfWork(db)
	repo := persistence.NewGormCashflowRepository(db)
	projectID := allocation.NewProjectAllocationsID()

	err := uow.InTransaction(context.Background(), func(ctx context.Context) error {
		return repo.Add(ctx, cashflow.NewCashflow(projectID))
	})

	require.NoError(t, err)
	record, err := repo.FindByID(context.Background(), projectID)
	require.NoError(t, err)
	assert.NotNil(t, record)
}

func TestUnitOfWork_NestedInvocationJoinsAmbientTransaction(t *testing.T) {
	db := helpers.NewTestDB(t)
	uow := database.NewUnitOfWork(db)
	repo := persistence.NewGormCashflowRepository(db)
	projectID := allocation.NewProjectAllocationsID()

	err := uow.InTransaction(context.Background(), func(outer context.Context) error {
		if err := repo.Add(outer, cashflow.NewCashflow(projectID)); err != nil {
			return err
		}
		// The nested call must see the uncommitted insert.
		return uow.InTransaction(outer, func(inner context.Context) error {
			record, err := repo.FindByID(inner, projectID)
			if err != nil {
				return err
			}
			if record == nil {
				return errors.New("insert not visible inside nested transaction")
			}
			return errors.New("abort everything")
		})
	})

	require.Error(t, err)
	record, err := repo.FindByID(context.Background(), projectID)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestDB_PrefersAmbientTransaction(t *testing.T) {
	db := helpers.NewTestDB(t)
	tx := db.Begin()
	t.Cleanup(func() { tx.Rollback() })
	ctx := database.ContextWithTx(context.Background(), tx)

	assert.Same(t, tx, database.DB(ctx, db))
	assert.Nil(t, database.TxFromContext(context.Background()))

	// Without an ambient transaction the fallback handle is used.
	plain := database.DB(context.Background(), db)
	require.NotNil(t, plain)
}
