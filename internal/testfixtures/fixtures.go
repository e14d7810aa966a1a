package testfixtures

import (
	"fmt"
	"sync/atomic"

	"github.com/tahasaad555/pfe2-sub001/internal/application"
)

var (
	reservationCounter uint64
	entryCounter       uint64
)

// ReservationOption configures a generated reservation fixture.
type ReservationOption func(*application.Reservation)

// NewReservation returns a deterministic reservation with optional
// overrides. Generated reservations land on the reference week and are
// Pending by default.
func NewReservation(opts ...ReservationOption) application.Reservation {
	idx := atomic.AddUint64(&reservationCounter, 1)
	r := application.Reservation{
		ID:          fmt.Sprintf("res-%03d", idx),
		Room:        fmt.Sprintf("Room %03d", idx),
		ClassroomID: fmt.Sprintf("room-%03d", idx),
		Date:        referenceTime.AddDate(0, 0, int(idx%5)).Format("2006-01-02"),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Time:        "10:00 - 12:00",
		Purpose:     fmt.Sprintf("Lecture %03d", idx),
		Status:      application.StatusPending,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithReservationID overrides the generated reservation ID.
func WithReservationID(id string) ReservationOption {
	return func(r *application.Reservation) {
		r.ID = id
	}
}

// WithReservationStatus overrides the reservation status.
func WithReservationStatus(status application.Status) ReservationOption {
	return func(r *application.Reservation) {
		r.Status = status
	}
}

// WithReservationDate sets the reservation date (YYYY-MM-DD).
func WithReservationDate(date string) ReservationOption {
	return func(r *application.Reservation) {
		r.Date = date
	}
}

// WithReservationRoom sets the display room name.
func WithReservationRoom(room string) ReservationOption {
	return func(r *application.Reservation) {
		r.Room = room
	}
}

// WithReservationTimes sets the start and end times and re-derives the
// combined display range.
func WithReservationTimes(start, end string) ReservationOption {
	return func(r *application.Reservation) {
		r.StartTime = start
		r.EndTime = end
		r.Time = start + " - " + end
	}
}

// WithReservationPurpose sets the purpose text.
func WithReservationPurpose(purpose string) ReservationOption {
	return func(r *application.Reservation) {
		r.Purpose = purpose
	}
}

// EntryOption configures a generated timetable entry fixture.
type EntryOption func(*application.TimetableEntry)

// NewTimetableEntry returns a deterministic weekday entry with optional
// overrides.
func NewTimetableEntry(opts ...EntryOption) application.TimetableEntry {
	idx := atomic.AddUint64(&entryCounter, 1)
	e := application.TimetableEntry{
		ID:           fmt.Sprintf("entry-%03d", idx),
		Name:         fmt.Sprintf("Course %03d", idx),
		Instructor:   fmt.Sprintf("Prof. %03d", idx),
		Location:     fmt.Sprintf("Hall %03d", idx),
		Day:          application.Weekdays[int(idx)%len(application.Weekdays)],
		StartTime:    "09:00",
		EndTime:      "10:00",
		Color:        "#6366f1",
		Type:         "Lecture",
		Participants: 30,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithEntryID overrides the generated entry ID.
func WithEntryID(id string) EntryOption {
	return func(e *application.TimetableEntry) {
		e.ID = id
	}
}

// WithEntryName sets the course name.
func WithEntryName(name string) EntryOption {
	return func(e *application.TimetableEntry) {
		e.Name = name
	}
}

// WithEntryInstructor sets the instructor name.
func WithEntryInstructor(instructor string) EntryOption {
	return func(e *application.TimetableEntry) {
		e.Instructor = instructor
	}
}

// WithEntryDay sets the weekday.
func WithEntryDay(day string) EntryOption {
	return func(e *application.TimetableEntry) {
		e.Day = day
	}
}

// WithEntryTimes sets the start and end times.
func WithEntryTimes(start, end string) EntryOption {
	return func(e *application.TimetableEntry) {
		e.StartTime = start
		e.EndTime = end
	}
}

// SampleTimetable returns a small fixed week of entries spanning three
// weekdays, suitable for grouping and layout tests.
func SampleTimetable() []application.TimetableEntry {
	return []application.TimetableEntry{
		{ID: "tt-1", Name: "Algorithms", Instructor: "Dr. Chen", Location: "Hall A", Day: "Monday", StartTime: "09:00", EndTime: "11:00", Color: "#6366f1", Type: "Lecture", Participants: 45},
		{ID: "tt-2", Name: "Databases", Instructor: "Dr. Mansour", Location: "Lab 2", Day: "Monday", StartTime: "14:00", EndTime: "16:00", Color: "#10b981", Type: "Lab", Participants: 20},
		{ID: "tt-3", Name: "Networks", Instructor: "Dr. Haddad", Location: "Hall B", Day: "Wednesday", StartTime: "10:30", EndTime: "12:00", Color: "#f59e0b", Type: "Lecture", Participants: 38},
		{ID: "tt-4", Name: "Compilers", Instructor: "Dr. Chen", Location: "Hall A", Day: "Friday", StartTime: "08:00", EndTime: "10:00", Color: "#6366f1", Type: "Seminar", Participants: 15},
	}
}
