package shared

import (
	"fmt"
	"time"
)

// TimeSlot is a half-open time interval [From, To).
type TimeSlot struct {
	From time.Time
	To   time.Time
}

// NewTimeSlot creates a TimeSlot, validating that from precedes to.
func NewTimeSlot(from, to time.Time) (TimeSlot, error) {
	if !from.Before(to) {
		return TimeSlot{}, NewValidationError("timeSlot", fmt.Sprintf("from %s must be before to %s", from, to))
	}
	return TimeSlot{From: from.UTC(), To: to.UTC()}, nil
}

// MustNewTimeSlot is NewTimeSlot for callers with statically valid bounds (mostly tests and fixtures).
func MustNewTimeSlot(from, to time.Time) TimeSlot {
	slot, err := NewTimeSlot(from, to)
	if err != nil {
		panic(err)
	}
	return slot
}

// EmptyTimeSlot returns the zero-length slot.
func EmptyTimeSlot() TimeSlot {
	return TimeSlot{}
}

// CreateDailyTimeSlotAtUTC covers one whole calendar day in UTC.
func CreateDailyTimeSlotAtUTC(year int, month time.Month, day int) TimeSlot {
	from := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return TimeSlot{From: from, To: from.AddDate(0, 0, 1)}
}

// CreateMonthlyTimeSlotAtUTC covers one whole calendar month in UTC.
func CreateMonthlyTimeSlotAtUTC(year int, month time.Month) TimeSlot {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return TimeSlot{From: from, To: from.AddDate(0, 1, 0)}
}

// IsEmpty reports whether the slot covers no time at all.
func (s TimeSlot) IsEmpty() bool {
	return s.From.Equal(s.To)
}

// Duration returns the length of the slot.
func (s TimeSlot) Duration() time.Duration {
	return s.To.Sub(s.From)
}

// OverlapsWith reports whether the two slots share any period of time.
func (s TimeSlot) OverlapsWith(other TimeSlot) bool {
	return !s.From.After(other.To) && !s.To.Before(other.From)
}

// Within reports whether the slot is fully contained in other.
func (s TimeSlot) Within(other TimeSlot) bool {
	return !s.From.Before(other.From) && !s.To.After(other.To)
}

// CommonPartWith returns the intersection of the two slots, or an empty slot
// when they do not overlap.
func (s TimeSlot) CommonPartWith(other TimeSlot) TimeSlot {
	if !s.OverlapsWith(other) {
		return EmptyTimeSlot()
	}
	from := s.From
	if other.From.After(from) {
		from = other.From
	}
	to := s.To
	if other.To.Before(to) {
		to = other.To
	}
	return TimeSlot{From: from, To: to}
}

// LeftoverAfterRemovingCommonWith returns the parts of the two slots that do
// not belong to their intersection, ordered by start time.
func (s TimeSlot) LeftoverAfterRemovingCommonWith(other TimeSlot) []TimeSlot {
	var result []TimeSlot
	if s.Equals(other) {
		return result
	}
	if !s.OverlapsWith(other) {
		return []TimeSlot{s, other}
	}
	if s.From.Before(other.From) {
		result = append(result, TimeSlot{From: s.From, To: other.From})
	}
	if other.From.Before(s.From) {
		result = append(result, TimeSlot{From: other.From, To: s.From})
	}
	if s.To.After(other.To) {
		result = append(result, TimeSlot{From: other.To, To: s.To})
	}
	if other.To.After(s.To) {
		result = append(result, TimeSlot{From: s.To, To: other.To})
	}
	return result
}

// Stretch grows the slot by the given duration on both ends.
func (s TimeSlot) Stretch(d time.Duration) TimeSlot {
	return TimeSlot{From: s.From.Add(-d), To: s.To.Add(d)}
}

// Equals compares slots by instant, ignoring time.Time internals such as the
// monotonic clock reading.
func (s TimeSlot) Equals(other TimeSlot) bool {
	return s.From.Equal(other.From) && s.To.Equal(other.To)
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("[%s, %s)", s.From.Format(time.RFC3339), s.To.Format(time.RFC3339))
}
