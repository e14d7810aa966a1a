// Package ics generates iCalendar documents from timetable data. It is the
// client-side fallback used when the backend's export endpoint is
// unavailable.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"
)

// productID identifies this generator in the calendar envelope.
const productID = "-//CampusRoom//Timetable//EN"

// stampLayout is the floating local date-time form calendar consumers expect
// for DTSTART/DTEND (no zone designator).
const stampLayout = "20060102T150405"

// Event is one calendar event to serialize. Start and End carry both the
// session's clock time and the concrete calendar date of the displayed week.
type Event struct {
	ID          string
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// Build serializes the events into an iCalendar document. The envelope is
// valid even for an empty event list. Each event's UID is qualified with the
// supplied domain and stamped with the generation time.
func Build(events []Event, now time.Time, domain string) []byte {
	cal := ical.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(productID)

	for _, event := range events {
		ve := cal.AddEvent(event.ID + "@" + domain)
		ve.SetProperty(ical.ComponentPropertyDtstamp, now.Format(stampLayout))
		ve.SetProperty(ical.ComponentPropertyDtStart, event.Start.Format(stampLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, event.End.Format(stampLayout))
		ve.SetSummary(event.Summary)
		ve.SetLocation(event.Location)
		ve.SetDescription(event.Description)
	}

	return []byte(cal.Serialize())
}
