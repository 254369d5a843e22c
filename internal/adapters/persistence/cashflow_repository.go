package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// GormCashflowRepository implements CashflowRepository using GORM
type GormCashflowRepository struct {
	db *gorm.DB
}

// NewGormCashflowRepository creates a new GORM cashflow repository
func NewGormCashflowRepository(db *gorm.DB) *GormCashflowRepository {
	return &GormCashflowRepository{db: db}
}

var _ cashflow.CashflowRepository = (*GormCashflowRepository)(nil)

// Add inserts a new cashflow record
func (r *GormCashflowRepository) Add(ctx context.Context, record *cashflow.Cashflow) error {
	model := r.entityToModel(record)
	result := database.DB(ctx, r.db).Create(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError(fmt.Sprintf(
				"cashflow already exists for project %s", record.ProjectID()))
		}
		return fmt.Errorf("failed to add cashflow: %w", result.Error)
	}
	return nil
}

// Update persists the mutated record
func (r *GormCashflowRepository) Update(ctx context.Context, record *cashflow.Cashflow) error {
	model := r.entityToModel(record)
	result := database.DB(ctx, r.db).Save(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to update cashflow: %w", result.Error)
	}
	return nil
}

// FindByID retrieves the record, returning nil when unknown
func (r *GormCashflowRepository) FindByID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*cashflow.Cashflow, error) {
	var model CashflowModel
	result := database.DB(ctx, r.db).
		Where("project_allocations_id = ?", projectID.String()).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cashflow: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// GetByID retrieves the record, failing with NotFoundError when unknown
func (r *GormCashflowRepository) GetByID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*cashflow.Cashflow, error) {
	record, err := r.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewNotFoundError("cashflow", projectID.String())
	}
	return record, nil
}

// FindAll retrieves every cashflow record
func (r *GormCashflowRepository) FindAll(ctx context.Context) ([]*cashflow.Cashflow, error) {
	var models []CashflowModel
	result := database.DB(ctx, r.db).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find cashflows: %w", result.Error)
	}

	records := make([]*cashflow.Cashflow, 0, len(models))
	for i := range models {
		record, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *GormCashflowRepository) entityToModel(record *cashflow.Cashflow) CashflowModel {
	return CashflowModel{
		ProjectAllocationsID: record.ProjectID().String(),
		Income:               int64(record.Income()),
		Cost:                 int64(record.Cost()),
	}
}

func (r *GormCashflowRepository) modelToEntity(model *CashflowModel) (*cashflow.Cashflow, error) {
	projectID, err := uuid.Parse(model.ProjectAllocationsID)
	if err != nil {
		return nil, fmt.Errorf("corrupt project id %q: %w", model.ProjectAllocationsID, err)
	}
	return cashflow.RestoreCashflow(
		allocation.ProjectAllocationsIDOf(projectID),
		cashflow.Income(model.Income),
		cashflow.Cost(model.Cost),
	), nil
}
