// Package allocation exposes the project-allocation use cases: creating
// projects, allocating and releasing capabilities, and simulating potential
// transfers.
package allocation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	availabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/availability"
	capabilityapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/capabilityscheduling"
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	availabilitydomain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// AllocationFacade coordinates project allocations. Allocating couples the
// availability block and the aggregate mutation in one transaction so a
// refused block leaves no trace.
type AllocationFacade struct {
	repository   domain.ProjectAllocationsRepository
	capabilities capabilityscheduling.AllocatableCapabilityRepository
	finder       *capabilityapp.CapabilityFinder
	availability *availabilityapp.AvailabilityFacade
	publisher    shared.EventsPublisher
	uow          shared.UnitOfWork
	clock        shared.Clock
	log          zerolog.Logger
}

// NewAllocationFacade creates the facade over its collaborators.
func NewAllocationFacade(
	repository domain.ProjectAllocationsRepository,
	capabilities capabilityscheduling.AllocatableCapabilityRepository,
	finder *capabilityapp.CapabilityFinder,
	availability *availabilityapp.AvailabilityFacade,
	publisher shared.EventsPublisher,
	uow shared.UnitOfWork,
	clock shared.Clock,
	log zerolog.Logger,
) *AllocationFacade {
	return &AllocationFacade{
		repository:   repository,
		capabilities: capabilities,
		finder:       finder,
		availability: availability,
		publisher:    publisher,
		uow:          uow,
		clock:        clock,
		log:          log,
	}
}

// CreateAllocation creates a project's allocation aggregate with its window
// and initial demands, announcing the schedule to interested parties.
func (f *AllocationFacade) CreateAllocation(ctx context.Context, fromTo shared.TimeSlot, scheduledDemands domain.Demands) (domain.ProjectAllocationsID, error) {
	projectID := domain.NewProjectAllocationsID()
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		project := domain.NewProjectAllocations(projectID, domain.NoAllocations(), scheduledDemands, fromTo)
		if err := f.repository.Add(ctx, project); err != nil {
			return err
		}
		event := domain.NewProjectAllocationScheduled(projectID, fromTo, f.clock.Now())
		return f.publisher.Publish(ctx, event)
	})
	if err != nil {
		return domain.ProjectAllocationsID{}, err
	}
	f.log.Info().Str("project", projectID.String()).Msg("project allocations created")
	return projectID, nil
}

// AllocateToProject allocates the capability to the project for the slot.
// Returns nil without error when the capability is unknown, its calendar
// refuses the block, or the aggregate rejects the allocation.
func (f *AllocationFacade) AllocateToProject(ctx context.Context, projectID domain.ProjectAllocationsID, allocatableCapabilityID capabilityscheduling.AllocatableCapabilityID, timeSlot shared.TimeSlot) (*uuid.UUID, error) {
	var allocatedEventID *uuid.UUID
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		summary, err := f.finder.FindOneByID(ctx, allocatableCapabilityID)
		if err != nil || summary == nil {
			return err
		}

		blocked, err := f.availability.Block(ctx,
			allocatableCapabilityID.ToAvailabilityResourceID(), timeSlot, toOwner(projectID))
		if err != nil || !blocked {
			return err
		}

		event, err := f.allocate(ctx, projectID, allocatableCapabilityID, summary.Capabilities, timeSlot)
		if err != nil {
			return err
		}
		if event != nil {
			allocatedEventID = &event.AllocatedCapabilityID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allocatedEventID, nil
}

func (f *AllocationFacade) allocate(ctx context.Context, projectID domain.ProjectAllocationsID, allocatableCapabilityID capabilityscheduling.AllocatableCapabilityID, capability capabilityscheduling.CapabilitySelector, timeSlot shared.TimeSlot) (*allocatedResult, error) {
	project, err := f.repository.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		project = domain.EmptyProjectAllocations(projectID)
		if err := f.repository.Add(ctx, project); err != nil {
			return nil, err
		}
	}

	event := project.Allocate(allocatableCapabilityID, capability, timeSlot, f.clock.Now())
	if event == nil {
		return nil, nil
	}
	if err := f.repository.Update(ctx, project); err != nil {
		return nil, err
	}
	if err := f.publisher.Publish(ctx, *event); err != nil {
		return nil, err
	}
	return &allocatedResult{AllocatedCapabilityID: event.AllocatedCapabilityID.ID()}, nil
}

type allocatedResult struct {
	AllocatedCapabilityID uuid.UUID
}

// ReleaseFromProject withdraws the capability from the project for the slot.
// The availability release is best effort: the slot may have been disabled or
// taken over in the meantime, which must not block the bookkeeping.
func (f *AllocationFacade) ReleaseFromProject(ctx context.Context, projectID domain.ProjectAllocationsID, allocatableCapabilityID capabilityscheduling.AllocatableCapabilityID, timeSlot shared.TimeSlot) (bool, error) {
	released := false
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		if _, err := f.availability.Release(ctx,
			allocatableCapabilityID.ToAvailabilityResourceID(), timeSlot, toOwner(projectID)); err != nil {
			return err
		}

		project, err := f.repository.FindByID(ctx, projectID)
		if err != nil || project == nil {
			return err
		}
		event := project.Release(allocatableCapabilityID, timeSlot, f.clock.Now())
		if event == nil {
			return nil
		}
		if err := f.repository.Update(ctx, project); err != nil {
			return err
		}
		if err := f.publisher.Publish(ctx, *event); err != nil {
			return err
		}
		released = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return released, nil
}

// AllocateCapabilityToProjectForPeriod allocates any one resource offering the
// capability during the slot, chosen at random among the free ones. Returns
// false when no candidate could be blocked.
func (f *AllocationFacade) AllocateCapabilityToProjectForPeriod(ctx context.Context, projectID domain.ProjectAllocationsID, capability shared.Capability, timeSlot shared.TimeSlot) (bool, error) {
	allocated := false
	err := f.uow.InTransaction(ctx, func(ctx context.Context) error {
		proposed, err := f.capabilities.FindByCapabilityWithin(ctx, capability.Name, capability.Type, timeSlot.From, timeSlot.To)
		if err != nil || len(proposed) == 0 {
			return err
		}

		resourceIDs := make([]availabilitydomain.ResourceID, 0, len(proposed))
		byResource := make(map[availabilitydomain.ResourceID]*capabilityscheduling.AllocatableCapability, len(proposed))
		for _, declaration := range proposed {
			resourceID := declaration.ID().ToAvailabilityResourceID()
			resourceIDs = append(resourceIDs, resourceID)
			byResource[resourceID] = declaration
		}

		chosen, err := f.availability.BlockRandomAvailable(ctx, resourceIDs, timeSlot, toOwner(projectID))
		if err != nil || chosen.IsNone() {
			return err
		}

		declaration := byResource[chosen]
		event, err := f.allocate(ctx, projectID, declaration.ID(), declaration.Capabilities(), timeSlot)
		if err != nil {
			return err
		}
		allocated = event != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return allocated, nil
}

// EditProjectDates redefines the project's window.
func (f *AllocationFacade) EditProjectDates(ctx context.Context, projectID domain.ProjectAllocationsID, fromTo shared.TimeSlot) error {
	return f.uow.InTransaction(ctx, func(ctx context.Context) error {
		project, err := f.repository.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		event := project.DefineSlot(fromTo, f.clock.Now())
		if err := f.repository.Update(ctx, project); err != nil {
			return err
		}
		return f.publisher.Publish(ctx, event)
	})
}

// ScheduleProjectAllocationDemands extends the project's demands, creating the
// aggregate when it does not exist yet.
func (f *AllocationFacade) ScheduleProjectAllocationDemands(ctx context.Context, projectID domain.ProjectAllocationsID, demands domain.Demands) error {
	return f.uow.InTransaction(ctx, func(ctx context.Context) error {
		project, err := f.repository.FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		created := project == nil
		if created {
			project = domain.EmptyProjectAllocations(projectID)
		}

		event := project.AddDemands(demands, f.clock.Now())
		if created {
			err = f.repository.Add(ctx, project)
		} else {
			err = f.repository.Update(ctx, project)
		}
		if err != nil {
			return err
		}
		return f.publisher.Publish(ctx, event)
	})
}

// FindAllProjectsAllocations snapshots every project's allocation state.
func (f *AllocationFacade) FindAllProjectsAllocations(ctx context.Context) (domain.ProjectsAllocationsSummary, error) {
	projects, err := f.repository.FindAll(ctx)
	if err != nil {
		return domain.ProjectsAllocationsSummary{}, err
	}
	return domain.SummaryOf(projects), nil
}

// FindProjectsAllocationsByID snapshots the given projects' allocation state.
func (f *AllocationFacade) FindProjectsAllocationsByID(ctx context.Context, projectIDs []domain.ProjectAllocationsID) (domain.ProjectsAllocationsSummary, error) {
	projects, err := f.repository.FindAllByID(ctx, projectIDs)
	if err != nil {
		return domain.ProjectsAllocationsSummary{}, err
	}
	return domain.SummaryOf(projects), nil
}

func toOwner(projectID domain.ProjectAllocationsID) availabilitydomain.Owner {
	return availabilitydomain.OwnerOf(projectID.ID())
}
