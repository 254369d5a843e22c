package risk

import (
	"context"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
)

// PeriodicCheckSagaRepository persists saga state per project.
type PeriodicCheckSagaRepository interface {
	Add(ctx context.Context, saga *PeriodicCheckSaga) error
	Update(ctx context.Context, saga *PeriodicCheckSaga) error

	// FindByProjectID tolerates absence and returns nil when unknown.
	FindByProjectID(ctx context.Context, projectID allocation.ProjectAllocationsID) (*PeriodicCheckSaga, error)

	FindByProjectIDIn(ctx context.Context, projectIDs []allocation.ProjectAllocationsID) ([]*PeriodicCheckSaga, error)

	// FindByProjectIDOrCreate seeds a saga when none exists yet.
	FindByProjectIDOrCreate(ctx context.Context, projectID allocation.ProjectAllocationsID) (*PeriodicCheckSaga, error)

	// FindByProjectIDInOrElseCreate seeds sagas for every project missing one.
	FindByProjectIDInOrElseCreate(ctx context.Context, projectIDs []allocation.ProjectAllocationsID) ([]*PeriodicCheckSaga, error)

	FindAll(ctx context.Context) ([]*PeriodicCheckSaga, error)
}

// AvailableReplacement pairs a missing demand with the capabilities that could
// cover it.
type AvailableReplacement struct {
	Demand       allocation.Demand
	Replacements capabilityscheduling.AllocatableCapabilitiesSummary
}

// PushNotification is the external sink for risk-mitigation notifications.
// Calls are fire-and-forget; the core consumes no return value.
type PushNotification interface {
	NotifyDemandsSatisfied(projectID allocation.ProjectAllocationsID)
	NotifyAboutAvailability(projectID allocation.ProjectAllocationsID, available []AvailableReplacement)
	NotifyProfitableRelocationFound(projectID allocation.ProjectAllocationsID, capabilityID capabilityscheduling.AllocatableCapabilityID)
	NotifyAboutPossibleRisk(projectID allocation.ProjectAllocationsID)
	NotifyAboutCriticalResourceNotAvailable(projectID allocation.ProjectAllocationsID, criticalResourceID capabilityscheduling.AllocatableCapabilityID)
	NotifyAboutResourcesNotAvailable(projectID allocation.ProjectAllocationsID, notAvailable allocation.Demands)
}
