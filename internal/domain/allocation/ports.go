package allocation

import (
	"context"
	"time"
)

// ProjectAllocationsRepository persists the per-project allocation aggregates.
type ProjectAllocationsRepository interface {
	Add(ctx context.Context, project *ProjectAllocations) error
	Update(ctx context.Context, project *ProjectAllocations) error

	// FindByID tolerates absence and returns nil when unknown.
	FindByID(ctx context.Context, projectID ProjectAllocationsID) (*ProjectAllocations, error)

	// GetByID requires existence and fails with NotFoundError when unknown.
	GetByID(ctx context.Context, projectID ProjectAllocationsID) (*ProjectAllocations, error)

	FindAllByID(ctx context.Context, projectIDs []ProjectAllocationsID) ([]*ProjectAllocations, error)
	FindAll(ctx context.Context) ([]*ProjectAllocations, error)

	// FindAllContainingDate returns projects whose time slot contains the instant.
	FindAllContainingDate(ctx context.Context, when time.Time) ([]*ProjectAllocations, error)
}

// ProjectsAllocationsSummary is a snapshot of all projects' allocation state,
// used by the simulation of potential transfers.
type ProjectsAllocationsSummary struct {
	TimeSlots          map[ProjectAllocationsID]SummaryTimeSlot
	ProjectAllocations map[ProjectAllocationsID]Allocations
	Demands            map[ProjectAllocationsID]Demands
}

// SummaryTimeSlot mirrors the aggregate's window in the snapshot.
type SummaryTimeSlot struct {
	From time.Time
	To   time.Time
}

// SummaryOf snapshots the given aggregates.
func SummaryOf(projects []*ProjectAllocations) ProjectsAllocationsSummary {
	summary := ProjectsAllocationsSummary{
		TimeSlots:          make(map[ProjectAllocationsID]SummaryTimeSlot, len(projects)),
		ProjectAllocations: make(map[ProjectAllocationsID]Allocations, len(projects)),
		Demands:            make(map[ProjectAllocationsID]Demands, len(projects)),
	}
	for _, project := range projects {
		id := project.ProjectID()
		slot := project.TimeSlot()
		summary.TimeSlots[id] = SummaryTimeSlot{From: slot.From, To: slot.To}
		summary.ProjectAllocations[id] = project.Allocations()
		summary.Demands[id] = project.Demands()
	}
	return summary
}
