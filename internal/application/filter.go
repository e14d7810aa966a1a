package application

import (
	"sort"
	"strings"
	"time"
)

// Date filter presets accepted by ReservationQuery.Date.
const (
	// DateFilterAll passes every record through.
	DateFilterAll = "all"
	// DateFilterUpcoming keeps records dated today or later.
	DateFilterUpcoming = "upcoming"
	// DateFilterPast keeps records dated strictly before today.
	DateFilterPast = "past"
)

// Sort keys accepted by ReservationQuery.SortKey.
const (
	SortByDate   = "date"
	SortByRoom   = "room"
	SortByStatus = "status"
)

// ReservationQuery carries the filter, search and ordering parameters applied
// to a reservation listing. Zero values mean "all", no search term, and
// ascending date order.
type ReservationQuery struct {
	Status   string
	Date     string
	Search   string
	SortKey  string
	SortDesc bool
}

// dateLayouts are tried in order when interpreting a reservation date string.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006/01/02", "01/02/2006"}

// FilterReservations derives the displayed subset of a reservation
// collection. It applies, in fixed order: status filter, date filter, search,
// then sort. The function is pure; it never mutates its input and holds no
// state between calls. Ties sort stably, preserving original relative order.
func FilterReservations(reservations []Reservation, query ReservationQuery, now time.Time) []Reservation {
	result := make([]Reservation, 0, len(reservations))

	// Date-only comparison: both sides collapse to UTC midnight.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, r := range reservations {
		if !matchesStatus(r, query.Status) {
			continue
		}
		if !matchesDate(r, query.Date, today) {
			continue
		}
		if !matchesSearch(r, query.Search) {
			continue
		}
		result = append(result, r)
	}

	sortReservations(result, query)
	return result
}

func matchesStatus(r Reservation, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return r.Status.Is(Status(filter))
}

func matchesDate(r Reservation, filter string, today time.Time) bool {
	switch filter {
	case DateFilterUpcoming:
		date, ok := parseDate(r.Date)
		return ok && !date.Before(today)
	case DateFilterPast:
		date, ok := parseDate(r.Date)
		return ok && date.Before(today)
	default:
		return true
	}
}

func matchesSearch(r Reservation, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{r.Room, r.Purpose, r.Date, r.Time} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortReservations(reservations []Reservation, query ReservationQuery) {
	key := query.SortKey
	if key == "" {
		key = SortByDate
	}

	compare := func(a, b Reservation) int {
		switch key {
		case SortByRoom:
			return strings.Compare(a.Room, b.Room)
		case SortByStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		default:
			aDate, _ := parseDate(a.Date)
			bDate, _ := parseDate(b.Date)
			return aDate.Compare(bDate)
		}
	}

	sort.SliceStable(reservations, func(i, j int) bool {
		c := compare(reservations[i], reservations[j])
		if query.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
