// Package segment normalizes arbitrary time slots onto a fixed segment grid.
//
// Segments are anchored to the UTC epoch so that independently issued requests
// referencing the same window always decompose into identical segment keys.
// That exact-key property is what makes optimistic row matching and grouped
// blocking correct.
package segment

import (
	"time"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// DefaultSegmentDurationInMinutes is the system-wide availability granularity.
const DefaultSegmentDurationInMinutes = 15

// SegmentInMinutes is a fixed segment length.
type SegmentInMinutes struct {
	value time.Duration
}

// NewSegmentInMinutes validates that minutes is a positive multiple of the
// default segment duration.
func NewSegmentInMinutes(minutes int) (SegmentInMinutes, error) {
	if minutes <= 0 {
		return SegmentInMinutes{}, shared.NewValidationError("segment", "segment duration must be positive")
	}
	if minutes%DefaultSegmentDurationInMinutes != 0 {
		return SegmentInMinutes{}, shared.NewValidationError("segment", "segment duration must be a multiple of the default segment")
	}
	return SegmentInMinutes{value: time.Duration(minutes) * time.Minute}, nil
}

// DefaultSegment returns the system-wide segment length.
func DefaultSegment() SegmentInMinutes {
	return SegmentInMinutes{value: DefaultSegmentDurationInMinutes * time.Minute}
}

// Duration returns the segment length as a time.Duration.
func (s SegmentInMinutes) Duration() time.Duration {
	return s.value
}

// NormalizeToSegmentBoundaries returns the smallest slot aligned to the
// segment grid that fully covers the given slot.
func NormalizeToSegmentBoundaries(slot shared.TimeSlot, duration SegmentInMinutes) shared.TimeSlot {
	from := normalizeStart(slot.From, duration)
	to := normalizeEnd(slot.To, duration)
	if !from.Before(to) {
		to = from.Add(duration.Duration())
	}
	return shared.TimeSlot{From: from, To: to}
}

// Split decomposes a slot into the contiguous fixed-length segments covering
// it. The slot is normalized first, so a slot shorter than one segment yields
// exactly one segment.
func Split(slot shared.TimeSlot, duration SegmentInMinutes) []shared.TimeSlot {
	normalized := NormalizeToSegmentBoundaries(slot, duration)
	segments := make([]shared.TimeSlot, 0, normalized.Duration()/duration.Duration())
	for from := normalized.From; from.Before(normalized.To); from = from.Add(duration.Duration()) {
		segments = append(segments, shared.TimeSlot{From: from, To: from.Add(duration.Duration())})
	}
	return segments
}

func normalizeStart(instant time.Time, duration SegmentInMinutes) time.Time {
	return instant.Truncate(duration.Duration())
}

func normalizeEnd(instant time.Time, duration SegmentInMinutes) time.Time {
	truncated := instant.Truncate(duration.Duration())
	if truncated.Equal(instant) {
		return truncated
	}
	return truncated.Add(duration.Duration())
}
