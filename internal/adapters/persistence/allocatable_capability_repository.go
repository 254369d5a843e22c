package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// GormAllocatableCapabilityRepository implements AllocatableCapabilityRepository
// using GORM. Selectors are stored as JSON text; capability matching happens
// in memory after the time-range query so the same SQL works on both drivers.
type GormAllocatableCapabilityRepository struct {
	db *gorm.DB
}

// NewGormAllocatableCapabilityRepository creates a new GORM capability repository
func NewGormAllocatableCapabilityRepository(db *gorm.DB) *GormAllocatableCapabilityRepository {
	return &GormAllocatableCapabilityRepository{db: db}
}

var _ capabilityscheduling.AllocatableCapabilityRepository = (*GormAllocatableCapabilityRepository)(nil)

// SaveAll persists every declaration in one batch
func (r *GormAllocatableCapabilityRepository) SaveAll(ctx context.Context, capabilities []*capabilityscheduling.AllocatableCapability) error {
	if len(capabilities) == 0 {
		return nil
	}

	models := make([]AllocatableCapabilityModel, 0, len(capabilities))
	for _, capability := range capabilities {
		model, err := r.entityToModel(capability)
		if err != nil {
			return err
		}
		models = append(models, model)
	}

	result := database.DB(ctx, r.db).Create(&models)
	if result.Error != nil {
		return fmt.Errorf("failed to save allocatable capabilities: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a declaration, returning nil when unknown
func (r *GormAllocatableCapabilityRepository) FindByID(ctx context.Context, id capabilityscheduling.AllocatableCapabilityID) (*capabilityscheduling.AllocatableCapability, error) {
	var model AllocatableCapabilityModel
	result := database.DB(ctx, r.db).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find allocatable capability: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindAllByID retrieves the declarations that exist among the given ids
func (r *GormAllocatableCapabilityRepository) FindAllByID(ctx context.Context, ids []capabilityscheduling.AllocatableCapabilityID) ([]*capabilityscheduling.AllocatableCapability, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rawIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id.String())
	}

	var models []AllocatableCapabilityModel
	result := database.DB(ctx, r.db).Where("id IN ?", rawIDs).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find allocatable capabilities: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByCapabilityWithin returns declarations offering the capability whose
// window covers [from, to]
func (r *GormAllocatableCapabilityRepository) FindByCapabilityWithin(ctx context.Context, name, capabilityType string, from, to time.Time) ([]*capabilityscheduling.AllocatableCapability, error) {
	var models []AllocatableCapabilityModel
	result := database.DB(ctx, r.db).
		Where("from_date <= ? AND to_date >= ?", from, to).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find capabilities within period: %w", result.Error)
	}

	wanted := shared.Capability{Name: name, Type: capabilityType}
	matching := make([]*capabilityscheduling.AllocatableCapability, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		if entity.CanPerform(wanted) {
			matching = append(matching, entity)
		}
	}
	return matching, nil
}

// FindByResourceIDAndCapabilityAndTimeSlot returns the resource's declaration
// for exactly the given window offering the capability, or nil
func (r *GormAllocatableCapabilityRepository) FindByResourceIDAndCapabilityAndTimeSlot(ctx context.Context, resourceID capabilityscheduling.AllocatableResourceID, name, capabilityType string, slot shared.TimeSlot) (*capabilityscheduling.AllocatableCapability, error) {
	declarations, err := r.FindByResourceIDAndTimeSlot(ctx, resourceID, slot)
	if err != nil {
		return nil, err
	}
	wanted := shared.Capability{Name: name, Type: capabilityType}
	for _, declaration := range declarations {
		if declaration.CanPerform(wanted) {
			return declaration, nil
		}
	}
	return nil, nil
}

// FindByResourceIDAndTimeSlot returns every declaration of the resource for
// exactly the given window
func (r *GormAllocatableCapabilityRepository) FindByResourceIDAndTimeSlot(ctx context.Context, resourceID capabilityscheduling.AllocatableResourceID, slot shared.TimeSlot) ([]*capabilityscheduling.AllocatableCapability, error) {
	var models []AllocatableCapabilityModel
	result := database.DB(ctx, r.db).
		Where("resource_id = ? AND from_date = ? AND to_date = ?",
			resourceID.String(), slot.From, slot.To).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find capabilities of resource: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// ExistsByID reports whether the declaration exists
func (r *GormAllocatableCapabilityRepository) ExistsByID(ctx context.Context, id capabilityscheduling.AllocatableCapabilityID) (bool, error) {
	var count int64
	result := database.DB(ctx, r.db).
		Model(&AllocatableCapabilityModel{}).
		Where("id = ?", id.String()).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check allocatable capability: %w", result.Error)
	}
	return count > 0, nil
}

func (r *GormAllocatableCapabilityRepository) entityToModel(capability *capabilityscheduling.AllocatableCapability) (AllocatableCapabilityModel, error) {
	selectorJSON, err := json.Marshal(capability.Capabilities())
	if err != nil {
		return AllocatableCapabilityModel{}, fmt.Errorf("failed to marshal capability selector: %w", err)
	}
	return AllocatableCapabilityModel{
		ID:                   capability.ID().String(),
		ResourceID:           capability.ResourceID().String(),
		PossibleCapabilities: string(selectorJSON),
		FromDate:             capability.TimeSlot().From,
		ToDate:               capability.TimeSlot().To,
	}, nil
}

func (r *GormAllocatableCapabilityRepository) modelToEntity(model *AllocatableCapabilityModel) (*capabilityscheduling.AllocatableCapability, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt capability id %q: %w", model.ID, err)
	}
	resourceID, err := uuid.Parse(model.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("corrupt resource id %q: %w", model.ResourceID, err)
	}

	var selector capabilityscheduling.CapabilitySelector
	if err := json.Unmarshal([]byte(model.PossibleCapabilities), &selector); err != nil {
		return nil, fmt.Errorf("failed to unmarshal capability selector: %w", err)
	}

	slot, err := shared.NewTimeSlot(model.FromDate, model.ToDate)
	if err != nil {
		return nil, fmt.Errorf("corrupt time slot for capability %s: %w", model.ID, err)
	}

	return capabilityscheduling.RestoreAllocatableCapability(
		capabilityscheduling.AllocatableCapabilityIDOf(id),
		capabilityscheduling.AllocatableResourceIDOf(resourceID),
		selector,
		slot,
	), nil
}

func (r *GormAllocatableCapabilityRepository) modelsToEntities(models []AllocatableCapabilityModel) ([]*capabilityscheduling.AllocatableCapability, error) {
	entities := make([]*capabilityscheduling.AllocatableCapability, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
