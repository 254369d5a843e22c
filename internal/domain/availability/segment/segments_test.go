package segment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/availability/segment"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

func TestNewSegmentInMinutes_Validation(t *testing.T) {
	_, err := segment.NewSegmentInMinutes(0)
	assert.Error(t, err)

	_, err = segment.NewSegmentInMinutes(-15)
	assert.Error(t, err)

	_, err = segment.NewSegmentInMinutes(20)
	assert.Error(t, err)

	seg, err := segment.NewSegmentInMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, seg.Duration())
}

func TestNormalizeToSegmentBoundaries_ExpandsToCoveringGrid(t *testing.T) {
	from := time.Date(2026, 1, 10, 9, 7, 0, 0, time.UTC)
	to := time.Date(2026, 1, 10, 9, 53, 0, 0, time.UTC)

	normalized := segment.NormalizeToSegmentBoundaries(shared.MustNewTimeSlot(from, to), segment.DefaultSegment())

	assert.Equal(t, time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), normalized.From)
	assert.Equal(t, time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC), normalized.To)
}

func TestNormalizeToSegmentBoundaries_IsIdempotent(t *testing.T) {
	from := time.Date(2026, 1, 10, 9, 1, 0, 0, time.UTC)
	to := time.Date(2026, 1, 10, 9, 59, 0, 0, time.UTC)

	once := segment.NormalizeToSegmentBoundaries(shared.MustNewTimeSlot(from, to), segment.DefaultSegment())
	twice := segment.NormalizeToSegmentBoundaries(once, segment.DefaultSegment())

	assert.True(t, once.Equals(twice))
}

func TestNormalizeToSegmentBoundaries_AlignedSlotUnchanged(t *testing.T) {
	from := time.Date(2026, 1, 10, 9, 15, 0, 0, time.UTC)
	to := time.Date(2026, 1, 10, 9, 45, 0, 0, time.UTC)
	slot := shared.MustNewTimeSlot(from, to)

	normalized := segment.NormalizeToSegmentBoundaries(slot, segment.DefaultSegment())

	assert.True(t, slot.Equals(normalized))
}

func TestSplit_ShortSlotYieldsOneSegment(t *testing.T) {
	from := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	slot := shared.MustNewTimeSlot(from, from.Add(5*time.Minute))

	segments := segment.Split(slot, segment.DefaultSegment())

	require.Len(t, segments, 1)
	assert.Equal(t, from, segments[0].From)
	assert.Equal(t, from.Add(15*time.Minute), segments[0].To)
}

func TestSplit_DecomposesIntoContiguousSegments(t *testing.T) {
	from := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	slot := shared.MustNewTimeSlot(from, from.Add(time.Hour))

	segments := segment.Split(slot, segment.DefaultSegment())

	require.Len(t, segments, 4)
	for i, seg := range segments {
		assert.Equal(t, from.Add(time.Duration(i)*15*time.Minute), seg.From)
		assert.Equal(t, from.Add(time.Duration(i+1)*15*time.Minute), seg.To)
	}
}

func TestSplit_SameWindowAlwaysYieldsIdenticalKeys(t *testing.T) {
	// Two independently issued requests for the same window must decompose
	// into identical segments for row-level matching to work.
	from := time.Date(2026, 1, 10, 9, 3, 0, 0, time.UTC)
	to := time.Date(2026, 1, 10, 10, 42, 0, 0, time.UTC)

	first := segment.Split(shared.MustNewTimeSlot(from, to), segment.DefaultSegment())
	second := segment.Split(shared.MustNewTimeSlot(from, to), segment.DefaultSegment())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equals(second[i]))
	}
}
