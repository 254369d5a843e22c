package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// GormProjectAllocationsRepository implements ProjectAllocationsRepository
// using GORM. Allocations and demands are stored as JSON text.
type GormProjectAllocationsRepository struct {
	db *gorm.DB
}

// NewGormProjectAllocationsRepository creates a new GORM project allocations repository
func NewGormProjectAllocationsRepository(db *gorm.DB) *GormProjectAllocationsRepository {
	return &GormProjectAllocationsRepository{db: db}
}

var _ allocation.ProjectAllocationsRepository = (*GormProjectAllocationsRepository)(nil)

// Add inserts a new aggregate
func (r *GormProjectAllocationsRepository) Add(ctx context.Context, project *allocation.ProjectAllocations) error {
	model, err := r.entityToModel(project)
	if err != nil {
		return err
	}
	result := database.DB(ctx, r.db).Create(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError(fmt.Sprintf(
				"project allocations already exist: %s", project.ProjectID()))
		}
		return fmt.Errorf("failed to add project allocations: %w", result.Error)
	}
	return nil
}

// Update persists the mutated aggregate
func (r *GormProjectAllocationsRepository) Update(ctx context.Context, project *allocation.ProjectAllocations) error {
	model, err := r.entityToModel(project)
	if err != nil {
		return err
	}
	result := database.DB(ctx, r.db).Save(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to update project allocations: %w", result.Error)
	}
	return nil
}

// FindByID retrieves the aggregate, returning nil when unknown
func (r *GormProjectAllocationsRepository) FindByID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*allocation.ProjectAllocations, error) {
	var model ProjectAllocationsModel
	result := database.DB(ctx, r.db).
		Where("project_allocations_id = ?", projectID.String()).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project allocations: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// GetByID retrieves the aggregate, failing with NotFoundError when unknown
func (r *GormProjectAllocationsRepository) GetByID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*allocation.ProjectAllocations, error) {
	project, err := r.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, shared.NewNotFoundError("project allocations", projectID.String())
	}
	return project, nil
}

// FindAllByID retrieves the aggregates that exist among the given ids
func (r *GormProjectAllocationsRepository) FindAllByID(ctx context.Context, projectIDs []allocation.ProjectAllocationsID) ([]*allocation.ProjectAllocations, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		ids = append(ids, projectID.String())
	}

	var models []ProjectAllocationsModel
	result := database.DB(ctx, r.db).Where("project_allocations_id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find project allocations: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindAll retrieves every aggregate
func (r *GormProjectAllocationsRepository) FindAll(ctx context.Context) ([]*allocation.ProjectAllocations, error) {
	var models []ProjectAllocationsModel
	result := database.DB(ctx, r.db).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find project allocations: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindAllContainingDate retrieves projects whose window contains the instant
func (r *GormProjectAllocationsRepository) FindAllContainingDate(ctx context.Context, when time.Time) ([]*allocation.ProjectAllocations, error) {
	var models []ProjectAllocationsModel
	result := database.DB(ctx, r.db).
		Where("from_date IS NOT NULL AND from_date <= ? AND to_date > ?", when, when).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find project allocations by date: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

func (r *GormProjectAllocationsRepository) entityToModel(project *allocation.ProjectAllocations) (ProjectAllocationsModel, error) {
	allocationsJSON, err := json.Marshal(project.Allocations())
	if err != nil {
		return ProjectAllocationsModel{}, fmt.Errorf("failed to marshal allocations: %w", err)
	}
	demandsJSON, err := json.Marshal(project.Demands())
	if err != nil {
		return ProjectAllocationsModel{}, fmt.Errorf("failed to marshal demands: %w", err)
	}

	model := ProjectAllocationsModel{
		ProjectAllocationsID: project.ProjectID().String(),
		Allocations:          string(allocationsJSON),
		Demands:              string(demandsJSON),
	}
	if project.HasTimeSlot() {
		slot := project.TimeSlot()
		model.FromDate = &slot.From
		model.ToDate = &slot.To
	}
	return model, nil
}

func (r *GormProjectAllocationsRepository) modelToEntity(model *ProjectAllocationsModel) (*allocation.ProjectAllocations, error) {
	projectID, err := uuid.Parse(model.ProjectAllocationsID)
	if err != nil {
		return nil, fmt.Errorf("corrupt project id %q: %w", model.ProjectAllocationsID, err)
	}

	var allocations allocation.Allocations
	if err := json.Unmarshal([]byte(model.Allocations), &allocations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal allocations: %w", err)
	}
	var demands allocation.Demands
	if err := json.Unmarshal([]byte(model.Demands), &demands); err != nil {
		return nil, fmt.Errorf("failed to unmarshal demands: %w", err)
	}

	timeSlot := shared.EmptyTimeSlot()
	if model.FromDate != nil && model.ToDate != nil {
		timeSlot, err = shared.NewTimeSlot(*model.FromDate, *model.ToDate)
		if err != nil {
			return nil, fmt.Errorf("corrupt time slot for project %s: %w", model.ProjectAllocationsID, err)
		}
	}

	return allocation.NewProjectAllocations(
		allocation.ProjectAllocationsIDOf(projectID),
		allocations,
		demands,
		timeSlot,
	), nil
}

func (r *GormProjectAllocationsRepository) modelsToEntities(models []ProjectAllocationsModel) ([]*allocation.ProjectAllocations, error) {
	projects := make([]*allocation.ProjectAllocations, 0, len(models))
	for i := range models {
		project, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}
