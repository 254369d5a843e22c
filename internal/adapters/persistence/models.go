package persistence

import (
	"time"

	"gorm.io/gorm"
)

// AutoMigrate applies the schema for every model this package persists.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ResourceAvailabilityModel{},
		&AllocatableCapabilityModel{},
		&ProjectAllocationsModel{},
		&CashflowModel{},
		&PeriodicCheckSagaModel{},
	)
}

// ResourceAvailabilityModel represents the availabilities table.
// One row per 15-minute segment of a resource. The (resource_id, from_date)
// pair is unique so creating slots twice for the same period fails fast.
type ResourceAvailabilityModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	ResourceID       string     `gorm:"column:resource_id;not null;uniqueIndex:idx_resource_segment"`
	ResourceParentID *string    `gorm:"column:resource_parent_id;index"`
	FromDate         time.Time  `gorm:"column:from_date;not null;uniqueIndex:idx_resource_segment"`
	ToDate           time.Time  `gorm:"column:to_date;not null"`
	TakenBy          *string    `gorm:"column:taken_by"`
	Disabled         bool       `gorm:"column:disabled;not null;default:false"`
	Version          int64      `gorm:"column:version;not null;default:0"`
}

func (ResourceAvailabilityModel) TableName() string {
	return "availabilities"
}

// AllocatableCapabilityModel represents the allocatable_capabilities table
type AllocatableCapabilityModel struct {
	ID                   string    `gorm:"column:id;primaryKey"`
	ResourceID           string    `gorm:"column:resource_id;not null;index"`
	PossibleCapabilities string    `gorm:"column:possible_capabilities;type:text;not null"` // CapabilitySelector JSON as text
	FromDate             time.Time `gorm:"column:from_date;not null;index"`
	ToDate               time.Time `gorm:"column:to_date;not null;index"`
}

func (AllocatableCapabilityModel) TableName() string {
	return "allocatable_capabilities"
}

// ProjectAllocationsModel represents the project_allocations table
type ProjectAllocationsModel struct {
	ProjectAllocationsID string     `gorm:"column:project_allocations_id;primaryKey"`
	Allocations          string     `gorm:"column:allocations;type:text;not null"` // JSON as text
	Demands              string     `gorm:"column:demands;type:text;not null"`     // JSON as text
	FromDate             *time.Time `gorm:"column:from_date"`
	ToDate               *time.Time `gorm:"column:to_date"`
}

func (ProjectAllocationsModel) TableName() string {
	return "project_allocations"
}

// CashflowModel represents the cashflows table
type CashflowModel struct {
	ProjectAllocationsID string `gorm:"column:project_allocations_id;primaryKey"`
	Income               int64  `gorm:"column:income;not null"`
	Cost                 int64  `gorm:"column:cost;not null"`
}

func (CashflowModel) TableName() string {
	return "cashflows"
}

// PeriodicCheckSagaModel represents the project_risk_sagas table
type PeriodicCheckSagaModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	ProjectID      string     `gorm:"column:project_allocations_id;unique;not null"`
	MissingDemands string     `gorm:"column:missing_demands;type:text;not null"` // JSON as text
	Earnings       *int64     `gorm:"column:earnings"`
	DeadlineDate   *time.Time `gorm:"column:deadline_date"`
	State          string     `gorm:"column:state;not null"`
	Version        int64      `gorm:"column:version;not null;default:0"`
}

func (PeriodicCheckSagaModel) TableName() string {
	return "project_risk_sagas"
}
