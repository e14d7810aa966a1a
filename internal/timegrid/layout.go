// Package timegrid converts a day's timetable entries into a rendering plan
// for a fixed set of hourly slots. The plan is purely derived data: it is
// recomputed on every render and never persisted.
package timegrid

import (
	"github.com/tahasaad555/pfe2-sub001/internal/timefmt"
)

// Slot is one hourly band of the grid, bounded by whole hours.
type Slot struct {
	StartHour int
	EndHour   int
}

// Entry is the minimal view of a timetable entry the layout needs. Times are
// canonical HH:MM strings.
type Entry struct {
	ID        string
	StartTime string
	EndTime   string
}

// Placement positions one entry inside the grid. OffsetFraction is the
// vertical offset within the slot (startMinute/60) and HeightFraction the
// entry's duration as a multiple of one slot's height. An entry spanning
// several hours still belongs to a single slot; its height extends past the
// slot boundary as a render-time overlay rather than a multi-cell allocation.
type Placement struct {
	EntryID        string
	SlotIndex      int
	OffsetFraction float64
	HeightFraction float64
}

// HourlySlots builds consecutive one-hour slots covering [startHour, endHour).
func HourlySlots(startHour, endHour int) []Slot {
	if endHour <= startHour {
		return nil
	}
	slots := make([]Slot, 0, endHour-startHour)
	for hour := startHour; hour < endHour; hour++ {
		slots = append(slots, Slot{StartHour: hour, EndHour: hour + 1})
	}
	return slots
}

// DayPlan places each entry into the slot matching its start hour. Entries
// whose start hour falls outside the configured slots are omitted from the
// plan, not errored.
func DayPlan(entries []Entry, slots []Slot) []Placement {
	plan := make([]Placement, 0, len(entries))
	for _, entry := range entries {
		placement, ok := place(entry, slots)
		if !ok {
			continue
		}
		plan = append(plan, placement)
	}
	return plan
}

// Occupies reports whether the entry overlaps the slot: it either starts
// during that hour or started earlier and ends after it.
func Occupies(entry Entry, slot Slot) bool {
	startHour, _ := timefmt.SplitHourMinute(entry.StartTime)
	endHour, _ := timefmt.SplitHourMinute(entry.EndTime)
	return startHour == slot.StartHour || (startHour < slot.StartHour && endHour > slot.StartHour)
}

func place(entry Entry, slots []Slot) (Placement, bool) {
	startHour, startMinute := timefmt.SplitHourMinute(entry.StartTime)
	endHour, endMinute := timefmt.SplitHourMinute(entry.EndTime)

	for index, slot := range slots {
		if slot.StartHour != startHour {
			continue
		}
		start := float64(startHour) + float64(startMinute)/60
		end := float64(endHour) + float64(endMinute)/60
		return Placement{
			EntryID:        entry.ID,
			SlotIndex:      index,
			OffsetFraction: float64(startMinute) / 60,
			HeightFraction: end - start,
		}, true
	}
	return Placement{}, false
}
