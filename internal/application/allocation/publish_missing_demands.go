package allocation

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// PublishMissingDemandsService is the periodic job that snapshots the missing
// demands of every currently running project and publishes them as one
// NotSatisfiedDemands event for the risk saga.
type PublishMissingDemandsService struct {
	repository domain.ProjectAllocationsRepository
	publisher  shared.EventsPublisher
	clock      shared.Clock
	log        zerolog.Logger
}

// NewPublishMissingDemandsService creates the service over its collaborators.
func NewPublishMissingDemandsService(
	repository domain.ProjectAllocationsRepository,
	publisher shared.EventsPublisher,
	clock shared.Clock,
	log zerolog.Logger,
) *PublishMissingDemandsService {
	return &PublishMissingDemandsService{
		repository: repository,
		publisher:  publisher,
		clock:      clock,
		log:        log,
	}
}

// Publish snapshots and announces missing demands of projects whose window
// contains the current instant. Projects with everything satisfied are
// included with empty demands so their sagas can resolve.
func (s *PublishMissingDemandsService) Publish(ctx context.Context) error {
	when := s.clock.Now()
	projects, err := s.repository.FindAllContainingDate(ctx, when)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return nil
	}

	missingDemands := make(map[domain.ProjectAllocationsID]domain.Demands, len(projects))
	for _, project := range projects {
		missingDemands[project.ProjectID()] = project.MissingDemands()
	}

	s.log.Debug().Int("projects", len(missingDemands)).Msg("publishing missing demands snapshot")
	event := domain.NewNotSatisfiedDemands(missingDemands, when)
	return s.publisher.Publish(ctx, event)
}
