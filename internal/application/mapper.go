package application

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tahasaad555/pfe2-sub001/internal/timefmt"
)

// collectionKeys are the object keys probed, top-down, when a backend
// response is not a bare array. First matching shape wins.
var collectionKeys = []string{"timetableEntries", "entries", "data"}

// decodeCollection extracts the list of raw records from a backend response
// body. The backend is not consistent about its envelope: some routes return
// a bare array, others wrap it under one of several keys.
func decodeCollection(body []byte) ([]json.RawMessage, error) {
	var direct []json.RawMessage
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("application: response is neither array nor object: %w", err)
	}

	for _, key := range collectionKeys {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		var nested []json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			return nested, nil
		}
	}

	return nil, fmt.Errorf("application: no recognized collection shape in response")
}

// mapReservation produces a canonical Reservation from one raw record. The
// boolean is false when the record cannot be decoded; a dropped record never
// fails the batch.
func mapReservation(raw json.RawMessage) (Reservation, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Reservation{}, false
	}

	start := timefmt.Normalize(stringField(fields, "startTime"))
	end := timefmt.Normalize(stringField(fields, "endTime"))

	status := stringField(fields, "status")
	if status == "" {
		status = string(StatusPending)
	}

	res := Reservation{
		ID:          stringField(fields, "id"),
		Room:        stringField(fields, "classroom", "roomNumber", "room"),
		ClassroomID: stringField(fields, "classroomId"),
		Date:        stringField(fields, "date"),
		StartTime:   start,
		EndTime:     end,
		Time:        start + " - " + end,
		Purpose:     stringField(fields, "purpose"),
		Notes:       stringField(fields, "notes"),
		Status:      Status(status),
	}
	return res, true
}

// mapTimetableEntry produces a canonical TimetableEntry from one raw record.
// Entries whose day is outside the recognized weekday set are dropped.
func mapTimetableEntry(raw json.RawMessage) (TimetableEntry, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return TimetableEntry{}, false
	}

	day := stringField(fields, "day")
	if !IsWeekday(day) {
		return TimetableEntry{}, false
	}

	entry := TimetableEntry{
		ID:           stringField(fields, "id"),
		Name:         stringField(fields, "name"),
		Instructor:   stringField(fields, "instructor"),
		Location:     stringField(fields, "location"),
		Day:          day,
		StartTime:    timefmt.Normalize(stringField(fields, "startTime")),
		EndTime:      timefmt.Normalize(stringField(fields, "endTime")),
		Color:        stringField(fields, "color"),
		Type:         stringField(fields, "type"),
		Participants: intField(fields, "participants"),
	}

	if entry.Name == "" {
		entry.Name = "Unnamed Course"
	}
	if entry.Location == "" {
		entry.Location = "TBD"
	}
	if entry.Color == "" {
		entry.Color = "#6366f1"
	}
	if entry.Type == "" {
		entry.Type = "Lecture"
	}
	return entry, true
}

// stringField returns the first present, non-empty candidate field coerced to
// a string. Numeric identifiers are rendered without a decimal point.
func stringField(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

func intField(fields map[string]any, key string) int {
	value, ok := fields[key]
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}
