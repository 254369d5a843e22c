package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// GormAvailabilityReadModel projects availability rows into per-owner
// calendars. Disabled segments belong to the disabling owner and never show up
// as free time.
type GormAvailabilityReadModel struct {
	db *gorm.DB
}

// NewGormAvailabilityReadModel creates a new availability calendar projection
func NewGormAvailabilityReadModel(db *gorm.DB) *GormAvailabilityReadModel {
	return &GormAvailabilityReadModel{db: db}
}

var _ availability.AvailabilityReadModel = (*GormAvailabilityReadModel)(nil)

// Load builds the calendar of a single resource within the slot
func (r *GormAvailabilityReadModel) Load(ctx context.Context, resourceID availability.ResourceID, within shared.TimeSlot) (availability.Calendar, error) {
	calendars, err := r.LoadAll(ctx, []availability.ResourceID{resourceID}, within)
	if err != nil {
		return availability.Calendar{}, err
	}
	return calendars.Get(resourceID), nil
}

// LoadAll builds calendars for every requested resource within the slot
func (r *GormAvailabilityReadModel) LoadAll(ctx context.Context, resourceIDs []availability.ResourceID, within shared.TimeSlot) (availability.Calendars, error) {
	ids := make([]string, 0, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		ids = append(ids, resourceID.String())
	}

	var models []ResourceAvailabilityModel
	result := database.DB(ctx, r.db).
		Where("resource_id IN ? AND from_date >= ? AND to_date <= ?", ids, within.From, within.To).
		Order("resource_id ASC, from_date ASC").
		Find(&models)
	if result.Error != nil {
		return availability.Calendars{}, fmt.Errorf("failed to load calendars: %w", result.Error)
	}

	entries := make(map[availability.ResourceID]map[availability.Owner][]shared.TimeSlot)
	for i := range models {
		model := &models[i]
		resourceUUID, err := uuid.Parse(model.ResourceID)
		if err != nil {
			return availability.Calendars{}, fmt.Errorf("corrupt resource id %q: %w", model.ResourceID, err)
		}
		resourceID := availability.ResourceIDOf(resourceUUID)

		owner := availability.NoOwner()
		if model.TakenBy != nil {
			ownerUUID, err := uuid.Parse(*model.TakenBy)
			if err != nil {
				return availability.Calendars{}, fmt.Errorf("corrupt owner id %q: %w", *model.TakenBy, err)
			}
			owner = availability.OwnerOf(ownerUUID)
		}

		segment, err := shared.NewTimeSlot(model.FromDate, model.ToDate)
		if err != nil {
			return availability.Calendars{}, fmt.Errorf("corrupt segment for availability %s: %w", model.ID, err)
		}

		if entries[resourceID] == nil {
			entries[resourceID] = make(map[availability.Owner][]shared.TimeSlot)
		}
		entries[resourceID][owner] = append(entries[resourceID][owner], segment)
	}

	byResource := make(map[availability.ResourceID]availability.Calendar, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		calendar := availability.EmptyCalendar(resourceID)
		for owner, slots := range entries[resourceID] {
			calendar.Entries[owner] = availability.StitchSlots(slots)
		}
		byResource[resourceID] = calendar
	}
	return availability.Calendars{CalendarsByResource: byResource}, nil
}
