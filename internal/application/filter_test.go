package application

import (
	"testing"
	"time"
)

var filterNow = time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

func TestFilterReservationsStatusThenDate(t *testing.T) {
	reservations := []Reservation{
		{ID: "keep", Status: StatusPending, Date: "2099-01-15", Room: "A"},
		{ID: "wrong-status", Status: StatusApproved, Date: "2000-03-01", Room: "B"},
		{ID: "past", Status: StatusPending, Date: "2000-03-01", Room: "C"},
	}

	got := FilterReservations(reservations, ReservationQuery{Status: "pending", Date: DateFilterUpcoming}, filterNow)
	if len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("expected only the upcoming pending record, got %+v", got)
	}
}

func TestFilterReservationsDatePresets(t *testing.T) {
	reservations := []Reservation{
		{ID: "today", Status: StatusPending, Date: "2025-09-10"},
		{ID: "future", Status: StatusPending, Date: "2025-09-20"},
		{ID: "past", Status: StatusPending, Date: "2025-09-01"},
		{ID: "undated", Status: StatusPending, Date: "not a date"},
	}

	upcoming := FilterReservations(reservations, ReservationQuery{Date: DateFilterUpcoming}, filterNow)
	if len(upcoming) != 2 {
		t.Fatalf("today counts as upcoming, got %+v", upcoming)
	}
	past := FilterReservations(reservations, ReservationQuery{Date: DateFilterPast}, filterNow)
	if len(past) != 1 || past[0].ID != "past" {
		t.Fatalf("unexpected past subset: %+v", past)
	}
	all := FilterReservations(reservations, ReservationQuery{Date: DateFilterAll}, filterNow)
	if len(all) != 4 {
		t.Fatalf("all preset must pass everything, got %d", len(all))
	}
}

func TestFilterReservationsSearch(t *testing.T) {
	reservations := []Reservation{
		{ID: "r-1", Status: StatusPending, Room: "Amphi B", Purpose: "Final exam", Date: "2025-09-11", Time: "10:00 - 12:00"},
		{ID: "r-2", Status: StatusPending, Room: "Lab 3", Purpose: "Workshop", Date: "2025-09-12", Time: "14:00 - 16:00"},
	}

	if got := FilterReservations(reservations, ReservationQuery{Search: "EXAM"}, filterNow); len(got) != 1 || got[0].ID != "r-1" {
		t.Fatalf("search must be case-insensitive over purpose: %+v", got)
	}
	if got := FilterReservations(reservations, ReservationQuery{Search: "lab"}, filterNow); len(got) != 1 || got[0].ID != "r-2" {
		t.Fatalf("search must cover room: %+v", got)
	}
	if got := FilterReservations(reservations, ReservationQuery{Search: "14:00"}, filterNow); len(got) != 1 || got[0].ID != "r-2" {
		t.Fatalf("search must cover the time range: %+v", got)
	}
}

func TestFilterReservationsSort(t *testing.T) {
	reservations := []Reservation{
		{ID: "b", Status: StatusApproved, Date: "2025-09-12", Room: "B"},
		{ID: "a", Status: StatusPending, Date: "2025-09-10", Room: "A"},
		{ID: "c", Status: StatusCanceled, Date: "2025-09-11", Room: "C"},
	}

	byDate := FilterReservations(reservations, ReservationQuery{}, filterNow)
	if byDate[0].ID != "a" || byDate[2].ID != "b" {
		t.Fatalf("default sort must be ascending date: %+v", byDate)
	}
	desc := FilterReservations(reservations, ReservationQuery{SortDesc: true}, filterNow)
	if desc[0].ID != "b" {
		t.Fatalf("descending sort failed: %+v", desc)
	}
	byRoom := FilterReservations(reservations, ReservationQuery{SortKey: SortByRoom}, filterNow)
	if byRoom[0].Room != "A" || byRoom[2].Room != "C" {
		t.Fatalf("room sort failed: %+v", byRoom)
	}
}

func TestFilterReservationsStableAndPure(t *testing.T) {
	reservations := []Reservation{
		{ID: "first", Status: StatusPending, Date: "2025-09-10"},
		{ID: "second", Status: StatusPending, Date: "2025-09-10"},
	}

	got := FilterReservations(reservations, ReservationQuery{}, filterNow)
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Fatalf("equal keys must keep input order: %+v", got)
	}

	got[0].ID = "mutated"
	if reservations[0].ID != "first" {
		t.Fatal("filtering must not alias the input slice")
	}
}
