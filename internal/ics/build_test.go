package ics

import (
	"strings"
	"testing"
	"time"
)

func TestBuildEmptyEnvelope(t *testing.T) {
	doc := string(Build(nil, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), "campusroom.edu"))

	if !strings.Contains(doc, "BEGIN:VCALENDAR") {
		t.Error("missing BEGIN:VCALENDAR")
	}
	if !strings.Contains(doc, "END:VCALENDAR") {
		t.Error("missing END:VCALENDAR")
	}
	if !strings.Contains(doc, "VERSION:2.0") {
		t.Error("missing VERSION:2.0")
	}
	if !strings.Contains(doc, "PRODID:-//CampusRoom//Timetable//EN") {
		t.Error("missing product identifier")
	}
	if strings.Contains(doc, "BEGIN:VEVENT") {
		t.Error("empty input produced a VEVENT block")
	}
}

func TestBuildEventBlock(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{
			ID:          "C1",
			Summary:     "CS 101: Intro to Programming",
			Location:    "Room 101",
			Description: "Lecture with Professor Johnson",
			Start:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			End:         time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
		},
	}

	doc := string(Build(events, now, "campusroom.edu"))

	checks := []string{
		"BEGIN:VEVENT",
		"END:VEVENT",
		"UID:C1@campusroom.edu",
		"DTSTAMP:20250310T120000",
		"DTSTART:20250310T090000",
		"DTEND:20250310T103000",
		"SUMMARY:CS 101: Intro to Programming",
		"LOCATION:Room 101",
		"DESCRIPTION:Lecture with Professor Johnson",
	}
	for _, want := range checks {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n%s", want, doc)
		}
	}

	if begins := strings.Count(doc, "BEGIN:VEVENT"); begins != 1 {
		t.Errorf("BEGIN:VEVENT count = %d, want 1", begins)
	}
	if strings.Count(doc, "BEGIN:VCALENDAR") != strings.Count(doc, "END:VCALENDAR") {
		t.Error("unbalanced calendar markers")
	}
}
