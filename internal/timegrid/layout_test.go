package timegrid

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDayPlanMidSlotStartAndSpanningHeight(t *testing.T) {
	slots := HourlySlots(9, 11) // 09:00-10:00, 10:00-11:00

	plan := DayPlan([]Entry{{ID: "C1", StartTime: "09:30", EndTime: "11:00"}}, slots)

	if len(plan) != 1 {
		t.Fatalf("len(plan) = %d, want 1", len(plan))
	}
	got := plan[0]
	if got.SlotIndex != 0 {
		t.Errorf("SlotIndex = %d, want 0", got.SlotIndex)
	}
	if !almostEqual(got.OffsetFraction, 0.5) {
		t.Errorf("OffsetFraction = %v, want 0.5", got.OffsetFraction)
	}
	if !almostEqual(got.HeightFraction, 1.5) {
		t.Errorf("HeightFraction = %v, want 1.5", got.HeightFraction)
	}
}

func TestDayPlanAssignsExactlyOneSlot(t *testing.T) {
	slots := HourlySlots(8, 18)

	plan := DayPlan([]Entry{{ID: "C1", StartTime: "13:00", EndTime: "16:00"}}, slots)

	if len(plan) != 1 {
		t.Fatalf("len(plan) = %d, want 1 even for a multi-hour entry", len(plan))
	}
	if plan[0].SlotIndex != 5 {
		t.Errorf("SlotIndex = %d, want 5", plan[0].SlotIndex)
	}
	if !almostEqual(plan[0].HeightFraction, 3) {
		t.Errorf("HeightFraction = %v, want 3", plan[0].HeightFraction)
	}
}

func TestDayPlanOmitsEntriesOutsideRange(t *testing.T) {
	slots := HourlySlots(8, 18)

	plan := DayPlan([]Entry{
		{ID: "early", StartTime: "06:00", EndTime: "07:00"},
		{ID: "late", StartTime: "19:00", EndTime: "20:00"},
		{ID: "in-range", StartTime: "08:00", EndTime: "09:00"},
	}, slots)

	if len(plan) != 1 {
		t.Fatalf("len(plan) = %d, want 1", len(plan))
	}
	if plan[0].EntryID != "in-range" {
		t.Errorf("EntryID = %q, want %q", plan[0].EntryID, "in-range")
	}
	if !almostEqual(plan[0].OffsetFraction, 0) || !almostEqual(plan[0].HeightFraction, 1) {
		t.Errorf("placement = %+v", plan[0])
	}
}

func TestOccupies(t *testing.T) {
	entry := Entry{ID: "C1", StartTime: "09:30", EndTime: "11:30"}

	tests := []struct {
		slot Slot
		want bool
	}{
		{Slot{9, 10}, true},   // starts during this hour
		{Slot{10, 11}, true},  // spans this hour
		{Slot{11, 12}, false}, // hour-granular: trailing 30 minutes not counted
		{Slot{12, 13}, false}, // finished
		{Slot{8, 9}, false},   // not yet started
	}
	for _, tt := range tests {
		if got := Occupies(entry, tt.slot); got != tt.want {
			t.Errorf("Occupies(%v) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestHourlySlotsDegenerateRange(t *testing.T) {
	if slots := HourlySlots(10, 10); slots != nil {
		t.Errorf("HourlySlots(10, 10) = %v, want nil", slots)
	}
}
