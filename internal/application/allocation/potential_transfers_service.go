package allocation

import (
	"context"

	cashflowapp "github.com/grzesiek-galezowski/smartschedule-go/internal/application/cashflow"
	domain "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/simulation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// PotentialTransfersService evaluates whether moving an allocated capability
// between projects would pay off, using the optimization engine on a what-if
// snapshot of all projects.
type PotentialTransfersService struct {
	simulation *simulation.SimulationFacade
	cashflow   *cashflowapp.CashFlowFacade
	repository domain.ProjectAllocationsRepository
}

// NewPotentialTransfersService creates the service over its collaborators.
func NewPotentialTransfersService(simulationFacade *simulation.SimulationFacade, cashflowFacade *cashflowapp.CashFlowFacade, repository domain.ProjectAllocationsRepository) *PotentialTransfersService {
	return &PotentialTransfersService{
		simulation: simulationFacade,
		cashflow:   cashflowFacade,
		repository: repository,
	}
}

// ProfitAfterMovingCapabilities returns the system-wide profit delta of moving
// the capability to the project for the slot. Positive means the move pays.
func (s *PotentialTransfersService) ProfitAfterMovingCapabilities(ctx context.Context, projectTo domain.ProjectAllocationsID, capabilityToMove capabilityscheduling.AllocatableCapabilitySummary, forSlot shared.TimeSlot) (float64, error) {
	projects, err := s.repository.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	earnings, err := s.cashflow.FindAllEarnings(ctx)
	if err != nil {
		return 0, err
	}
	transfers := NewPotentialTransfers(domain.SummaryOf(projects), earnings)
	return s.CheckPotentialTransfer(transfers, projectTo, capabilityToMove, forSlot), nil
}

// CheckPotentialTransfer compares the optimal setup before and after the move.
func (s *PotentialTransfersService) CheckPotentialTransfer(transfers PotentialTransfers, projectTo domain.ProjectAllocationsID, capabilityToMove capabilityscheduling.AllocatableCapabilitySummary, forSlot shared.TimeSlot) float64 {
	resultBefore := s.simulation.WhatIsTheOptimalSetup(transfers.ToSimulatedProjects(), simulation.NoCapabilities())
	moved := transfers.Transfer(projectTo, domain.AllocatedCapability{
		AllocatedCapabilityID: capabilityToMove.ID,
		Capability:            capabilityToMove.Capabilities,
		TimeSlot:              capabilityToMove.TimeSlot,
	}, forSlot)
	resultAfter := s.simulation.WhatIsTheOptimalSetup(moved.ToSimulatedProjects(), simulation.NoCapabilities())
	return resultAfter.Profit - resultBefore.Profit
}
