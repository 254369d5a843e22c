// Package notifications contains the outbound notification adapters.
package notifications

import (
	"github.com/rs/zerolog"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/capabilityscheduling"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/risk"
)

// LogPushNotification writes risk notifications to the structured log. It
// stands in for a real push channel until one is integrated.
type LogPushNotification struct {
	log zerolog.Logger
}

// NewLogPushNotification creates the logging notification sink.
func NewLogPushNotification(log zerolog.Logger) *LogPushNotification {
	return &LogPushNotification{log: log}
}

var _ risk.PushNotification = (*LogPushNotification)(nil)

func (n *LogPushNotification) NotifyDemandsSatisfied(projectID allocation.ProjectAllocationsID) {
	n.log.Info().Str("project", projectID.String()).Msg("all project demands satisfied")
}

func (n *LogPushNotification) NotifyAboutAvailability(projectID allocation.ProjectAllocationsID, available []risk.AvailableReplacement) {
	n.log.Info().
		Str("project", projectID.String()).
		Int("replacements", len(available)).
		Msg("replacement capabilities available")
}

func (n *LogPushNotification) NotifyProfitableRelocationFound(projectID allocation.ProjectAllocationsID, capabilityID capabilityscheduling.AllocatableCapabilityID) {
	n.log.Info().
		Str("project", projectID.String()).
		Str("capability", capabilityID.String()).
		Msg("profitable relocation found")
}

func (n *LogPushNotification) NotifyAboutPossibleRisk(projectID allocation.ProjectAllocationsID) {
	n.log.Warn().Str("project", projectID.String()).Msg("project at risk of missing demands")
}

func (n *LogPushNotification) NotifyAboutCriticalResourceNotAvailable(projectID allocation.ProjectAllocationsID, criticalResourceID capabilityscheduling.AllocatableCapabilityID) {
	n.log.Warn().
		Str("project", projectID.String()).
		Str("resource", criticalResourceID.String()).
		Msg("critical resource not available")
}

func (n *LogPushNotification) NotifyAboutResourcesNotAvailable(projectID allocation.ProjectAllocationsID, notAvailable allocation.Demands) {
	n.log.Warn().
		Str("project", projectID.String()).
		Int("demands", len(notAvailable.All)).
		Msg("demanded resources not available")
}
