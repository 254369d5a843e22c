package cashflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/allocation"
)

// EarningsRecalculatedEventName identifies EarningsRecalculated for handler registration.
const EarningsRecalculatedEventName = "EarningsRecalculated"

// EarningsRecalculated is published whenever a project's income or cost changes.
type EarningsRecalculated struct {
	EventID    uuid.UUID
	ProjectID  allocation.ProjectAllocationsID
	Earnings   Earnings
	occurredAt time.Time
}

func NewEarningsRecalculated(projectID allocation.ProjectAllocationsID, earnings Earnings, occurredAt time.Time) EarningsRecalculated {
	return EarningsRecalculated{EventID: uuid.New(), ProjectID: projectID, Earnings: earnings, occurredAt: occurredAt}
}

func (e EarningsRecalculated) EventName() string     { return EarningsRecalculatedEventName }
func (e EarningsRecalculated) OccurredAt() time.Time { return e.occurredAt }
