package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/risk"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// GormPeriodicCheckSagaRepository implements PeriodicCheckSagaRepository using
// GORM. Updates carry a compare-and-swap on the version column; a lost race
// surfaces as an error because saga handlers run one event at a time.
type GormPeriodicCheckSagaRepository struct {
	db *gorm.DB
}

// NewGormPeriodicCheckSagaRepository creates a new GORM saga repository
func NewGormPeriodicCheckSagaRepository(db *gorm.DB) *GormPeriodicCheckSagaRepository {
	return &GormPeriodicCheckSagaRepository{db: db}
}

var _ risk.PeriodicCheckSagaRepository = (*GormPeriodicCheckSagaRepository)(nil)

// Add inserts a new saga
func (r *GormPeriodicCheckSagaRepository) Add(ctx context.Context, saga *risk.PeriodicCheckSaga) error {
	model, err := r.entityToModel(saga)
	if err != nil {
		return err
	}
	result := database.DB(ctx, r.db).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to add saga: %w", result.Error)
	}
	return nil
}

// Update persists the mutated saga, bumping its version
func (r *GormPeriodicCheckSagaRepository) Update(ctx context.Context, saga *risk.PeriodicCheckSaga) error {
	model, err := r.entityToModel(saga)
	if err != nil {
		return err
	}
	result := database.DB(ctx, r.db).Model(&PeriodicCheckSagaModel{}).
		Where("id = ? AND version = ?", model.ID, saga.Version()).
		Updates(map[string]interface{}{
			"missing_demands": model.MissingDemands,
			"earnings":        model.Earnings,
			"deadline_date":   model.DeadlineDate,
			"state":           model.State,
			"version":         saga.Version() + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update saga: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("concurrent modification of saga %s", model.ID)
	}
	return nil
}

// FindByProjectID retrieves the project's saga, returning nil when unknown
func (r *GormPeriodicCheckSagaRepository) FindByProjectID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*risk.PeriodicCheckSaga, error) {
	var model PeriodicCheckSagaModel
	result := database.DB(ctx, r.db).
		Where("project_allocations_id = ?", projectID.String()).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find saga: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindByProjectIDIn retrieves the sagas that exist among the given projects
func (r *GormPeriodicCheckSagaRepository) FindByProjectIDIn(ctx context.Context, projectIDs []allocation.ProjectAllocationsID) ([]*risk.PeriodicCheckSaga, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		ids = append(ids, projectID.String())
	}

	var models []PeriodicCheckSagaModel
	result := database.DB(ctx, r.db).Where("project_allocations_id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find sagas: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByProjectIDOrCreate seeds a saga when none exists yet
func (r *GormPeriodicCheckSagaRepository) FindByProjectIDOrCreate(ctx context.Context, projectID allocation.ProjectAllocationsID) (*risk.PeriodicCheckSaga, error) {
	saga, err := r.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if saga != nil {
		return saga, nil
	}
	saga = risk.NewPeriodicCheckSaga(projectID)
	if err := r.Add(ctx, saga); err != nil {
		return nil, err
	}
	return saga, nil
}

// FindByProjectIDInOrElseCreate seeds sagas for every project missing one
func (r *GormPeriodicCheckSagaRepository) FindByProjectIDInOrElseCreate(ctx context.Context, projectIDs []allocation.ProjectAllocationsID) ([]*risk.PeriodicCheckSaga, error) {
	existing, err := r.FindByProjectIDIn(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	known := make(map[allocation.ProjectAllocationsID]struct{}, len(existing))
	for _, saga := range existing {
		known[saga.ProjectID()] = struct{}{}
	}

	sagas := existing
	for _, projectID := range projectIDs {
		if _, ok := known[projectID]; ok {
			continue
		}
		saga := risk.NewPeriodicCheckSaga(projectID)
		if err := r.Add(ctx, saga); err != nil {
			return nil, err
		}
		sagas = append(sagas, saga)
	}
	return sagas, nil
}

// FindAll retrieves every saga
func (r *GormPeriodicCheckSagaRepository) FindAll(ctx context.Context) ([]*risk.PeriodicCheckSaga, error) {
	var models []PeriodicCheckSagaModel
	result := database.DB(ctx, r.db).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find sagas: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

func (r *GormPeriodicCheckSagaRepository) entityToModel(saga *risk.PeriodicCheckSaga) (PeriodicCheckSagaModel, error) {
	demandsJSON, err := json.Marshal(saga.MissingDemands())
	if err != nil {
		return PeriodicCheckSagaModel{}, fmt.Errorf("failed to marshal missing demands: %w", err)
	}

	model := PeriodicCheckSagaModel{
		ID:             saga.ID().String(),
		ProjectID:      saga.ProjectID().String(),
		MissingDemands: string(demandsJSON),
		DeadlineDate:   saga.Deadline(),
		State:          saga.State().String(),
		Version:        int64(saga.Version()),
	}
	if earnings := saga.Earnings(); earnings != nil {
		raw := int64(*earnings)
		model.Earnings = &raw
	}
	return model, nil
}

func (r *GormPeriodicCheckSagaRepository) modelToEntity(model *PeriodicCheckSagaModel) (*risk.PeriodicCheckSaga, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt saga id %q: %w", model.ID, err)
	}
	projectID, err := uuid.Parse(model.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("corrupt project id %q: %w", model.ProjectID, err)
	}

	var missingDemands allocation.Demands
	if err := json.Unmarshal([]byte(model.MissingDemands), &missingDemands); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing demands: %w", err)
	}

	var earnings *cashflow.Earnings
	if model.Earnings != nil {
		value := cashflow.Earnings(*model.Earnings)
		earnings = &value
	}

	state, err := parseSagaState(model.State)
	if err != nil {
		return nil, fmt.Errorf("saga %s: %w", model.ID, err)
	}

	return risk.RestorePeriodicCheckSaga(
		id,
		allocation.ProjectAllocationsIDOf(projectID),
		missingDemands,
		earnings,
		model.DeadlineDate,
		state,
		int(model.Version),
	), nil
}

func (r *GormPeriodicCheckSagaRepository) modelsToEntities(models []PeriodicCheckSagaModel) ([]*risk.PeriodicCheckSaga, error) {
	sagas := make([]*risk.PeriodicCheckSaga, 0, len(models))
	for i := range models {
		saga, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		sagas = append(sagas, saga)
	}
	return sagas, nil
}

func parseSagaState(raw string) (risk.State, error) {
	switch raw {
	case risk.AwaitingFirstEarnings.String():
		return risk.AwaitingFirstEarnings, nil
	case risk.Tracking.String():
		return risk.Tracking, nil
	case risk.Resolved.String():
		return risk.Resolved, nil
	}
	return risk.AwaitingFirstEarnings, fmt.Errorf("unknown saga state %q", raw)
}
