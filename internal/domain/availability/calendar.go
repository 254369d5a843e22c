package availability

import (
	"sort"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"
)

// Calendar is a read-only projection of one resource's calendar: per owner,
// the stitched time slots they hold. Free time is recorded under the none
// owner.
type Calendar struct {
	ResourceID ResourceID
	Entries    map[Owner][]shared.TimeSlot
}

// EmptyCalendar is the projection of a resource with no scheduled slots.
func EmptyCalendar(resourceID ResourceID) Calendar {
	return Calendar{ResourceID: resourceID, Entries: map[Owner][]shared.TimeSlot{}}
}

// CalendarWithAvailableSlots builds a calendar whose given slots are all free.
func CalendarWithAvailableSlots(resourceID ResourceID, slots ...shared.TimeSlot) Calendar {
	return Calendar{ResourceID: resourceID, Entries: map[Owner][]shared.TimeSlot{NoOwner(): slots}}
}

// AvailableSlots returns the currently free (unowned, enabled) slots.
func (c Calendar) AvailableSlots() []shared.TimeSlot {
	return c.Entries[NoOwner()]
}

// TakenBy returns the slots currently held by the given owner.
func (c Calendar) TakenBy(owner Owner) []shared.TimeSlot {
	return c.Entries[owner]
}

// IsAvailableFor reports whether the whole slot is covered by free time.
func (c Calendar) IsAvailableFor(slot shared.TimeSlot) bool {
	for _, available := range c.AvailableSlots() {
		if slot.Within(available) {
			return true
		}
	}
	return false
}

// Calendars groups calendar projections of several resources.
type Calendars struct {
	CalendarsByResource map[ResourceID]Calendar
}

// CalendarsOf wraps readily built calendars.
func CalendarsOf(calendars ...Calendar) Calendars {
	byResource := make(map[ResourceID]Calendar, len(calendars))
	for _, calendar := range calendars {
		byResource[calendar.ResourceID] = calendar
	}
	return Calendars{CalendarsByResource: byResource}
}

// Get returns the calendar of the given resource, or an empty one.
func (c Calendars) Get(resourceID ResourceID) Calendar {
	if calendar, ok := c.CalendarsByResource[resourceID]; ok {
		return calendar
	}
	return EmptyCalendar(resourceID)
}

// StitchSlots merges overlapping and adjacent slots into maximal contiguous
// ones, ordered by start time.
func StitchSlots(slots []shared.TimeSlot) []shared.TimeSlot {
	if len(slots) == 0 {
		return nil
	}
	sorted := make([]shared.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From.Before(sorted[j].From) })

	stitched := []shared.TimeSlot{sorted[0]}
	for _, slot := range sorted[1:] {
		last := &stitched[len(stitched)-1]
		if !slot.From.After(last.To) {
			if slot.To.After(last.To) {
				last.To = slot.To
			}
			continue
		}
		stitched = append(stitched, slot)
	}
	return stitched
}
