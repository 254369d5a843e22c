package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

func TestNewTimeSlot_RejectsInvertedBounds(t *testing.T) {
	from := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := shared.NewTimeSlot(from, from.Add(-time.Hour))

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestNewTimeSlot_RejectsZeroLength(t *testing.T) {
	from := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := shared.NewTimeSlot(from, from)

	require.Error(t, err)
}

func TestTimeSlot_OverlapsWith(t *testing.T) {
	slot := shared.CreateDailyTimeSlotAtUTC(2026, time.January, 10)

	tests := []struct {
		name     string
		other    shared.TimeSlot
		overlaps bool
	}{
		{"same slot", slot, true},
		{"contained", shared.MustNewTimeSlot(slot.From.Add(2*time.Hour), slot.From.Add(4*time.Hour)), true},
		{"partial", shared.MustNewTimeSlot(slot.From.Add(-2*time.Hour), slot.From.Add(2*time.Hour)), true},
		{"adjacent before", shared.MustNewTimeSlot(slot.From.Add(-2*time.Hour), slot.From), true},
		{"disjoint after", shared.CreateDailyTimeSlotAtUTC(2026, time.January, 12), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, slot.OverlapsWith(tt.other))
		})
	}
}

func TestTimeSlot_Within(t *testing.T) {
	month := shared.CreateMonthlyTimeSlotAtUTC(2026, time.January)
	day := shared.CreateDailyTimeSlotAtUTC(2026, time.January, 10)

	assert.True(t, day.Within(month))
	assert.False(t, month.Within(day))
	assert.True(t, month.Within(month))
}

func TestTimeSlot_CommonPartWith(t *testing.T) {
	from := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	first := shared.MustNewTimeSlot(from, from.Add(4*time.Hour))
	second := shared.MustNewTimeSlot(from.Add(2*time.Hour), from.Add(6*time.Hour))

	common := first.CommonPartWith(second)

	assert.True(t, common.Equals(shared.MustNewTimeSlot(from.Add(2*time.Hour), from.Add(4*time.Hour))))
}

func TestTimeSlot_CommonPartWith_Disjoint(t *testing.T) {
	first := shared.CreateDailyTimeSlotAtUTC(2026, time.March, 1)
	second := shared.CreateDailyTimeSlotAtUTC(2026, time.March, 10)

	assert.True(t, first.CommonPartWith(second).IsEmpty())
}

func TestTimeSlot_LeftoverAfterRemovingCommon(t *testing.T) {
	from := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	whole := shared.MustNewTimeSlot(from, from.Add(8*time.Hour))
	middle := shared.MustNewTimeSlot(from.Add(2*time.Hour), from.Add(4*time.Hour))

	leftovers := whole.LeftoverAfterRemovingCommonWith(middle)

	require.Len(t, leftovers, 2)
	assert.True(t, leftovers[0].Equals(shared.MustNewTimeSlot(from, from.Add(2*time.Hour))))
	assert.True(t, leftovers[1].Equals(shared.MustNewTimeSlot(from.Add(4*time.Hour), from.Add(8*time.Hour))))
}

func TestTimeSlot_LeftoverAfterRemovingCommon_SameSlot(t *testing.T) {
	slot := shared.CreateDailyTimeSlotAtUTC(2026, time.March, 1)

	assert.Empty(t, slot.LeftoverAfterRemovingCommonWith(slot))
}

func TestTimeSlot_Stretch(t *testing.T) {
	from := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slot := shared.MustNewTimeSlot(from, from.Add(time.Hour))

	stretched := slot.Stretch(30 * time.Minute)

	assert.True(t, stretched.Equals(shared.MustNewTimeSlot(from.Add(-30*time.Minute), from.Add(90*time.Minute))))
}
