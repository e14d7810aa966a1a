package application

import "strings"

// Status labels the lifecycle state of a reservation. Backend spellings vary
// in case, so comparisons go through Is rather than plain equality.
type Status string

const (
	// StatusPending marks a reservation awaiting administrative review.
	StatusPending Status = "Pending"
	// StatusApproved marks a reservation confirmed by the administration.
	StatusApproved Status = "Approved"
	// StatusRejected marks a reservation declined by the administration.
	StatusRejected Status = "Rejected"
	// StatusCanceled marks a reservation withdrawn by its owner.
	StatusCanceled Status = "Canceled"
)

// Is reports whether two status values match, ignoring case.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// Reservation represents a request to occupy a room for an interval. The ID
// is assigned by the backend and immutable; the Time field is always derived
// from StartTime and EndTime once the record has been normalized.
type Reservation struct {
	ID          string `json:"id"`
	Room        string `json:"room"`
	ClassroomID string `json:"classroomId,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Time        string `json:"time"`
	Purpose     string `json:"purpose"`
	Notes       string `json:"notes,omitempty"`
	Status      Status `json:"status"`
}

// CanCancel reports whether the reservation is in a state the owner may
// withdraw from.
func (r Reservation) CanCancel() bool {
	return r.Status.Is(StatusPending) || r.Status.Is(StatusApproved)
}

// CanEdit reports whether the reservation may still be modified.
func (r Reservation) CanEdit() bool {
	return r.Status.Is(StatusPending)
}

// TimetableEntry represents one scheduled session within a week.
type TimetableEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Instructor   string `json:"instructor,omitempty"`
	Location     string `json:"location"`
	Day          string `json:"day"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Color        string `json:"color"`
	Type         string `json:"type"`
	Participants int    `json:"participants,omitempty"`
}

// Weekdays is the recognized weekday set for timetable entries, in display
// order. Entries naming any other day are dropped during normalization.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// IsWeekday reports whether day belongs to the recognized weekday set.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
