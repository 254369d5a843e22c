package persistence

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// GormResourceAvailabilityRepository implements ResourceAvailabilityRepository
// using GORM. Writes are guarded two ways: an insert-time unique index on
// (resource_id, from_date) and a compare-and-swap on the version column for
// updates.
type GormResourceAvailabilityRepository struct {
	db *gorm.DB

	mu   sync.Mutex
	rand *rand.Rand
}

// NewGormResourceAvailabilityRepository creates a new GORM availability repository
func NewGormResourceAvailabilityRepository(db *gorm.DB, rnd *rand.Rand) *GormResourceAvailabilityRepository {
	return &GormResourceAvailabilityRepository{db: db, rand: rnd}
}

var _ availability.ResourceAvailabilityRepository = (*GormResourceAvailabilityRepository)(nil)

// SaveNew inserts every record of the group in one batch
func (r *GormResourceAvailabilityRepository) SaveNew(ctx context.Context, grouped *availability.ResourceGroupedAvailability) error {
	records := grouped.Availabilities()
	if len(records) == 0 {
		return nil
	}

	models := make([]ResourceAvailabilityModel, 0, len(records))
	for _, record := range records {
		models = append(models, r.entityToModel(record))
	}

	result := database.DB(ctx, r.db).Create(&models)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError(fmt.Sprintf(
				"availability slots already exist for resource %s", grouped.ResourceID()))
		}
		return fmt.Errorf("failed to save availability slots: %w", result.Error)
	}
	return nil
}

// LoadByID retrieves a single availability record by its row id
func (r *GormResourceAvailabilityRepository) LoadByID(ctx context.Context, id availability.ResourceAvailabilityID) (*availability.ResourceAvailability, error) {
	var model ResourceAvailabilityModel
	result := database.DB(ctx, r.db).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("availability", id.String())
		}
		return nil, fmt.Errorf("failed to load availability: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// LoadAllWithinSlot retrieves every record of the resource inside the slot
func (r *GormResourceAvailabilityRepository) LoadAllWithinSlot(ctx context.Context, resourceID availability.ResourceID, within shared.TimeSlot) ([]*availability.ResourceAvailability, error) {
	var models []ResourceAvailabilityModel
	result := database.DB(ctx, r.db).
		Where("resource_id = ? AND from_date >= ? AND to_date <= ?",
			resourceID.String(), within.From, within.To).
		Order("from_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load availabilities: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// LoadAllByParentIDWithinSlot retrieves every record grouped under the parent
func (r *GormResourceAvailabilityRepository) LoadAllByParentIDWithinSlot(ctx context.Context, parentID availability.ResourceID, within shared.TimeSlot) ([]*availability.ResourceAvailability, error) {
	var models []ResourceAvailabilityModel
	result := database.DB(ctx, r.db).
		Where("resource_parent_id = ? AND from_date >= ? AND to_date <= ?",
			parentID.String(), within.From, within.To).
		Order("resource_id ASC, from_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load availabilities by parent: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// SaveCheckingVersion updates each record only when its stored version still
// matches the one it was loaded with. Any lost race makes the whole group
// report false; the caller's transaction rolls the rest back.
func (r *GormResourceAvailabilityRepository) SaveCheckingVersion(ctx context.Context, grouped *availability.ResourceGroupedAvailability) (bool, error) {
	db := database.DB(ctx, r.db)
	for _, record := range grouped.Availabilities() {
		model := r.entityToModel(record)
		result := db.Model(&ResourceAvailabilityModel{}).
			Where("id = ? AND version = ?", model.ID, record.Version()).
			Updates(map[string]interface{}{
				"taken_by": model.TakenBy,
				"disabled": model.Disabled,
				"version":  record.Version() + 1,
			})
		if result.Error != nil {
			return false, fmt.Errorf("failed to save availability %s: %w", model.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			return false, nil
		}
	}
	return true, nil
}

// LoadAvailabilitiesOfRandomResourceWithin loads the grouped availability of
// one candidate resource, chosen uniformly among those with records in the slot
func (r *GormResourceAvailabilityRepository) LoadAvailabilitiesOfRandomResourceWithin(ctx context.Context, resourceIDs []availability.ResourceID, within shared.TimeSlot) (*availability.ResourceGroupedAvailability, error) {
	if len(resourceIDs) == 0 {
		return availability.NewResourceGroupedAvailability(nil), nil
	}

	ids := make([]string, 0, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		ids = append(ids, resourceID.String())
	}

	var candidates []string
	result := database.DB(ctx, r.db).
		Model(&ResourceAvailabilityModel{}).
		Distinct("resource_id").
		Where("resource_id IN ? AND from_date >= ? AND to_date <= ?", ids, within.From, within.To).
		Pluck("resource_id", &candidates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find candidate resources: %w", result.Error)
	}
	if len(candidates) == 0 {
		return availability.NewResourceGroupedAvailability(nil), nil
	}

	chosen := candidates[r.intn(len(candidates))]
	chosenID, err := uuid.Parse(chosen)
	if err != nil {
		return nil, fmt.Errorf("corrupt resource id %q: %w", chosen, err)
	}

	records, err := r.LoadAllWithinSlot(ctx, availability.ResourceIDOf(chosenID), within)
	if err != nil {
		return nil, err
	}
	return availability.NewResourceGroupedAvailability(records), nil
}

func (r *GormResourceAvailabilityRepository) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

func (r *GormResourceAvailabilityRepository) entityToModel(record *availability.ResourceAvailability) ResourceAvailabilityModel {
	model := ResourceAvailabilityModel{
		ID:         record.ID().String(),
		ResourceID: record.ResourceID().String(),
		FromDate:   record.Segment().From,
		ToDate:     record.Segment().To,
		Disabled:   record.IsDisabled(),
		Version:    int64(record.Version()),
	}
	if !record.ResourceParentID().IsNone() {
		parent := record.ResourceParentID().String()
		model.ResourceParentID = &parent
	}
	if !record.BlockedBy().IsNone() {
		owner := record.BlockedBy().String()
		model.TakenBy = &owner
	}
	return model
}

func (r *GormResourceAvailabilityRepository) modelToEntity(model *ResourceAvailabilityModel) (*availability.ResourceAvailability, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt availability id %q: %w", model.ID, err)
	}
	resourceID, err := uuid.Parse(model.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("corrupt resource id %q: %w", model.ResourceID, err)
	}

	parentID := availability.NoResourceID()
	if model.ResourceParentID != nil {
		parsed, err := uuid.Parse(*model.ResourceParentID)
		if err != nil {
			return nil, fmt.Errorf("corrupt parent id %q: %w", *model.ResourceParentID, err)
		}
		parentID = availability.ResourceIDOf(parsed)
	}

	blockade := availability.NoBlockade()
	if model.TakenBy != nil {
		owner, err := uuid.Parse(*model.TakenBy)
		if err != nil {
			return nil, fmt.Errorf("corrupt owner id %q: %w", *model.TakenBy, err)
		}
		if model.Disabled {
			blockade = availability.BlockadeDisabledBy(availability.OwnerOf(owner))
		} else {
			blockade = availability.BlockadeOwnedBy(availability.OwnerOf(owner))
		}
	}

	segment, err := shared.NewTimeSlot(model.FromDate, model.ToDate)
	if err != nil {
		return nil, fmt.Errorf("corrupt segment for availability %s: %w", model.ID, err)
	}

	return availability.RestoreResourceAvailability(
		availability.ResourceAvailabilityIDOf(id),
		availability.ResourceIDOf(resourceID),
		parentID,
		segment,
		blockade,
		int(model.Version),
	), nil
}

func (r *GormResourceAvailabilityRepository) modelsToEntities(models []ResourceAvailabilityModel) ([]*availability.ResourceAvailability, error) {
	records := make([]*availability.ResourceAvailability, 0, len(models))
	for i := range models {
		record, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
