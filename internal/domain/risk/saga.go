// Package risk implements the periodic-check saga: a long-lived state machine
// per project that reacts to allocation, earnings and availability events and
// decides which risk-mitigation step to take.
package risk

import (
	"time"

	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/cashflow"
)

// Step is the action the dispatcher performs after a saga transition.
type Step int

const (
	DoNothing Step = iota
	FindAvailable
	NotifyAboutDemandsSatisfied
	NotifyAboutPossibleRisk
	SuggestReplacement
)

func (s Step) String() string {
	switch s {
	case DoNothing:
		return "DO_NOTHING"
	case FindAvailable:
		return "FIND_AVAILABLE"
	case NotifyAboutDemandsSatisfied:
		return "NOTIFY_ABOUT_DEMANDS_SATISFIED"
	case NotifyAboutPossibleRisk:
		return "NOTIFY_ABOUT_POSSIBLE_RISK"
	case SuggestReplacement:
		return "SUGGEST_REPLACEMENT"
	}
	return "UNKNOWN"
}

// State is the saga's lifecycle phase.
type State int

const (
	// AwaitingFirstEarnings means no earnings were recorded yet, so profit
	// driven steps cannot be decided.
	AwaitingFirstEarnings State = iota
	// Tracking means the saga has both earnings and missing-demands info.
	Tracking
	// Resolved means every demand of the project is currently satisfied.
	Resolved
)

func (s State) String() string {
	switch s {
	case AwaitingFirstEarnings:
		return "AWAITING_FIRST_EARNINGS"
	case Tracking:
		return "TRACKING"
	case Resolved:
		return "RESOLVED"
	}
	return "UNKNOWN"
}

// RiskThresholdValue is the earnings above which losing a resource justifies
// simulating a replacement instead of merely notifying.
const RiskThresholdValue cashflow.Earnings = 1000

// Deadline windows steering the weekly check.
const (
	UpcomingDeadlineAvailabilitySearch    = 30 * 24 * time.Hour
	UpcomingDeadlineReplacementSuggestion = 15 * 24 * time.Hour
)

// PeriodicCheckSaga accumulates a project's risk-relevant facts. State is
// mutated inside the dispatcher's transaction; the returned Step is performed
// after commit.
type PeriodicCheckSaga struct {
	id             uuid.UUID
	projectID      allocation.ProjectAllocationsID
	missingDemands allocation.Demands
	earnings       *cashflow.Earnings
	deadline       *time.Time
	state          State
	version        int
}

// NewPeriodicCheckSaga seeds a saga for the project.
func NewPeriodicCheckSaga(projectID allocation.ProjectAllocationsID) *PeriodicCheckSaga {
	return &PeriodicCheckSaga{
		id:             uuid.New(),
		projectID:      projectID,
		missingDemands: allocation.NoDemands(),
		state:          AwaitingFirstEarnings,
	}
}

// NewPeriodicCheckSagaWithEarnings seeds a saga from an earnings event that
// arrived before the project was scheduled.
func NewPeriodicCheckSagaWithEarnings(projectID allocation.ProjectAllocationsID, earnings cashflow.Earnings) *PeriodicCheckSaga {
	saga := NewPeriodicCheckSaga(projectID)
	saga.earnings = &earnings
	saga.state = Tracking
	return saga
}

// RestorePeriodicCheckSaga rehydrates a saga from persisted state.
func RestorePeriodicCheckSaga(id uuid.UUID, projectID allocation.ProjectAllocationsID, missingDemands allocation.Demands, earnings *cashflow.Earnings, deadline *time.Time, state State, version int) *PeriodicCheckSaga {
	return &PeriodicCheckSaga{
		id:             id,
		projectID:      projectID,
		missingDemands: missingDemands,
		earnings:       earnings,
		deadline:       deadline,
		state:          state,
		version:        version,
	}
}

// HandleProjectScheduled records the project deadline. Establishes existence
// only.
func (s *PeriodicCheckSaga) HandleProjectScheduled(event allocation.ProjectAllocationScheduled) Step {
	deadline := event.FromTo.To
	s.deadline = &deadline
	return DoNothing
}

// HandleMissingDemands updates the per-project missing demands. Satisfied
// demands resolve the saga; still-missing ones trigger a replacement search.
func (s *PeriodicCheckSaga) HandleMissingDemands(missingDemands allocation.Demands) Step {
	s.missingDemands = missingDemands
	if missingDemands.IsEmpty() {
		s.state = Resolved
		return NotifyAboutDemandsSatisfied
	}
	if s.earnings != nil {
		s.state = Tracking
	}
	return FindAvailable
}

// HandleEarningsRecalculated stores the latest earnings.
func (s *PeriodicCheckSaga) HandleEarningsRecalculated(earnings cashflow.Earnings) Step {
	s.earnings = &earnings
	if s.state == AwaitingFirstEarnings {
		s.state = Tracking
	}
	return DoNothing
}

// HandleResourceTakenOver reacts to losing a blocked resource: for valuable
// projects a relocation is simulated, otherwise the project is warned.
func (s *PeriodicCheckSaga) HandleResourceTakenOver() Step {
	if s.state == Resolved {
		return DoNothing
	}
	if s.earnings != nil && s.earnings.GreaterThan(RiskThresholdValue) {
		return SuggestReplacement
	}
	return NotifyAboutPossibleRisk
}

// HandleWeeklyCheck re-evaluates the missing demands against the time left to
// the project deadline.
func (s *PeriodicCheckSaga) HandleWeeklyCheck(when time.Time) Step {
	if s.deadline == nil || when.After(*s.deadline) {
		return DoNothing
	}
	if s.missingDemands.IsEmpty() {
		return DoNothing
	}
	toDeadline := s.deadline.Sub(when)
	if toDeadline > UpcomingDeadlineAvailabilitySearch {
		return DoNothing
	}
	if toDeadline > UpcomingDeadlineReplacementSuggestion {
		return FindAvailable
	}
	if s.earnings != nil && s.earnings.GreaterThan(RiskThresholdValue) {
		return SuggestReplacement
	}
	return FindAvailable
}

// ID returns the saga identifier.
func (s *PeriodicCheckSaga) ID() uuid.UUID { return s.id }

// ProjectID returns the tracked project.
func (s *PeriodicCheckSaga) ProjectID() allocation.ProjectAllocationsID { return s.projectID }

// MissingDemands returns the last known missing demands.
func (s *PeriodicCheckSaga) MissingDemands() allocation.Demands { return s.missingDemands }

// Earnings returns the last known earnings, or nil.
func (s *PeriodicCheckSaga) Earnings() *cashflow.Earnings { return s.earnings }

// Deadline returns the project deadline, or nil.
func (s *PeriodicCheckSaga) Deadline() *time.Time { return s.deadline }

// State returns the lifecycle phase.
func (s *PeriodicCheckSaga) State() State { return s.state }

// Version returns the optimistic-concurrency version loaded from storage.
func (s *PeriodicCheckSaga) Version() int { return s.version }
