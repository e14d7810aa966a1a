package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tahasaad555/pfe2-sub001/internal/cache"
	"github.com/tahasaad555/pfe2-sub001/internal/ics"
	"github.com/tahasaad555/pfe2-sub001/internal/remote"
	"github.com/tahasaad555/pfe2-sub001/internal/timefmt"
)

// TimetableStrategies groups the endpoint strategy lists used by the
// timetable operations.
type TimetableStrategies struct {
	Fetch  []remote.Strategy
	Export []remote.Strategy
}

// TimetableService loads the weekly timetable, serves derived views of it,
// and exports it as an iCalendar document with a server-authoritative path
// and a client-side generation fallback.
type TimetableService struct {
	gateway    Gateway
	store      cache.Store
	strategies TimetableStrategies
	fallback   []TimetableEntry
	domain     string
	now        func() time.Time
	logger     *slog.Logger

	mu   sync.Mutex
	week map[string][]TimetableEntry
}

// TimetableConfig bundles construction parameters for NewTimetableService.
type TimetableConfig struct {
	Strategies TimetableStrategies
	// Fallback is the caller-supplied dataset used when both the network
	// and the cache come up empty.
	Fallback []TimetableEntry
	// Domain qualifies generated calendar UIDs ({entryId}@{domain}).
	Domain string
}

// NewTimetableService wires dependencies for timetable operations.
func NewTimetableService(gateway Gateway, store cache.Store, cfg TimetableConfig, now func() time.Time, logger *slog.Logger) *TimetableService {
	if now == nil {
		now = time.Now
	}
	if cfg.Domain == "" {
		cfg.Domain = "campusroom.edu"
	}
	return &TimetableService{
		gateway:    gateway,
		store:      store,
		strategies: cfg.Strategies,
		fallback:   cfg.Fallback,
		domain:     cfg.Domain,
		now:        now,
		logger:     defaultLogger(logger),
	}
}

// LoadWeek retrieves the timetable through the fallback chain, canonicalizes
// it, and groups it by weekday. On exhaustion it degrades to the cache
// mirror, and past that to the caller-supplied fallback dataset.
func (s *TimetableService) LoadWeek(ctx context.Context) (map[string][]TimetableEntry, bool, error) {
	if s == nil || s.gateway == nil {
		return nil, false, fmt.Errorf("TimetableService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "timetable", "load")

	result, err := s.gateway.Execute(ctx, s.strategies.Fetch, nil, nil)
	if err != nil {
		logger.Warn("fetch exhausted all strategies, degrading to local data", "error", err)
		entries, fromCache := s.localEntries(ctx)
		if !fromCache {
			logger.Info("no cached timetable, using fallback dataset", "count", len(entries))
		}
		week := groupByDay(entries)
		s.setWeek(week)
		return week, true, err
	}

	records, err := decodeCollection(result.Body)
	if err != nil {
		logger.Warn("fetch succeeded but response shape unrecognized, degrading to local data", "strategy", result.Strategy, "error", err)
		entries, _ := s.localEntries(ctx)
		week := groupByDay(entries)
		s.setWeek(week)
		return week, true, err
	}

	entries := make([]TimetableEntry, 0, len(records))
	for _, raw := range records {
		entry, ok := mapTimetableEntry(raw)
		if !ok {
			logger.Debug("dropping timetable record with unrecognized shape or day")
			continue
		}
		entries = append(entries, entry)
	}

	week := groupByDay(entries)
	s.setWeek(week)
	if s.store != nil {
		s.store.Write(ctx, cache.KeyTimetable, entries)
	}
	logger.Info("timetable loaded", "strategy", result.Strategy, "entries", len(entries))
	return week, false, nil
}

// Week returns the currently held weekly grouping.
func (s *TimetableService) Week() map[string][]TimetableEntry {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneWeek(s.week)
}

// WeekDates returns the calendar dates (Monday through Friday) of the week
// offset weeks away from the current one.
func (s *TimetableService) WeekDates(offset int) []time.Time {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Monday-start week. In Go, Monday == 1 and Sunday == 0.
	shift := (int(start.Weekday()) + 6) % 7
	start = start.AddDate(0, 0, -shift+offset*7)

	dates := make([]time.Time, len(Weekdays))
	for i := range Weekdays {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// Export produces an iCalendar document for the displayed week. The primary
// path asks the backend to generate it; any transport or server failure falls
// back to client-side generation from the held entries, which always yields a
// syntactically valid document.
func (s *TimetableService) Export(ctx context.Context, userID, format string, weekOffset int) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("TimetableService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "timetable", "export", "user", userID)

	if s.gateway != nil && len(s.strategies.Export) > 0 {
		vars := map[string]string{"userId": userID, "format": format}
		result, err := s.gateway.Execute(ctx, s.strategies.Export, vars, nil)
		if err == nil {
			logger.Info("export generated by server", "strategy", result.Strategy)
			return result.Body, nil
		}
		logger.Warn("server export failed, generating locally", "error", err)
	}

	dates := s.WeekDates(weekOffset)
	events := make([]ics.Event, 0)
	week := s.Week()
	for i, day := range Weekdays {
		for _, entry := range week[day] {
			events = append(events, s.entryEvent(entry, dates[i]))
		}
	}

	return ics.Build(events, s.now(), s.domain), nil
}

// UpcomingEntries lists today's sessions that have not started yet, topped up
// with tomorrow's sessions, capped at limit.
func (s *TimetableService) UpcomingEntries(limit int) []TimetableEntry {
	if s == nil {
		return nil
	}
	if limit <= 0 {
		limit = 3
	}

	now := s.now()
	today := currentWeekday(now)
	week := s.Week()

	upcoming := make([]TimetableEntry, 0, limit)
	for _, entry := range week[today] {
		startHour, _ := timefmt.SplitHourMinute(entry.StartTime)
		if startHour > now.Hour() {
			upcoming = append(upcoming, entry)
		}
	}

	if len(upcoming) < limit {
		next := nextWeekday(today)
		upcoming = append(upcoming, week[next]...)
	}

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// SearchEntries returns every entry whose name or instructor contains the
// term, case-insensitively, across all days.
func (s *TimetableService) SearchEntries(term string) []TimetableEntry {
	if s == nil || strings.TrimSpace(term) == "" {
		return nil
	}
	term = strings.ToLower(term)

	week := s.Week()
	matches := make([]TimetableEntry, 0)
	for _, day := range Weekdays {
		for _, entry := range week[day] {
			if strings.Contains(strings.ToLower(entry.Name), term) ||
				strings.Contains(strings.ToLower(entry.Instructor), term) {
				matches = append(matches, entry)
			}
		}
	}
	return matches
}

func (s *TimetableService) entryEvent(entry TimetableEntry, date time.Time) ics.Event {
	startHour, startMinute := timefmt.SplitHourMinute(entry.StartTime)
	endHour, endMinute := timefmt.SplitHourMinute(entry.EndTime)

	instructor := entry.Instructor
	if instructor == "" {
		instructor = "n/a"
	}

	return ics.Event{
		ID:          entry.ID,
		Summary:     entry.Name,
		Location:    entry.Location,
		Description: fmt.Sprintf("%s with %s", entry.Type, instructor),
		Start:       time.Date(date.Year(), date.Month(), date.Day(), startHour, startMinute, 0, 0, date.Location()),
		End:         time.Date(date.Year(), date.Month(), date.Day(), endHour, endMinute, 0, 0, date.Location()),
	}
}

// localEntries reads the cached timetable, falling back to the configured
// dataset. The boolean reports whether the cache supplied the data.
func (s *TimetableService) localEntries(ctx context.Context) ([]TimetableEntry, bool) {
	if s.store != nil {
		var cached []TimetableEntry
		if s.store.Read(ctx, cache.KeyTimetable, &cached) && len(cached) > 0 {
			return cached, true
		}
	}
	out := make([]TimetableEntry, len(s.fallback))
	copy(out, s.fallback)
	return out, false
}

func (s *TimetableService) setWeek(week map[string][]TimetableEntry) {
	s.mu.Lock()
	s.week = cloneWeek(week)
	s.mu.Unlock()
}

func groupByDay(entries []TimetableEntry) map[string][]TimetableEntry {
	week := make(map[string][]TimetableEntry, len(Weekdays))
	for _, day := range Weekdays {
		week[day] = []TimetableEntry{}
	}
	for _, entry := range entries {
		if !IsWeekday(entry.Day) {
			continue
		}
		week[entry.Day] = append(week[entry.Day], entry)
	}
	return week
}

func cloneWeek(week map[string][]TimetableEntry) map[string][]TimetableEntry {
	out := make(map[string][]TimetableEntry, len(week))
	for day, entries := range week {
		copied := make([]TimetableEntry, len(entries))
		copy(copied, entries)
		out[day] = copied
	}
	return out
}

// currentWeekday maps the wall clock to the recognized weekday set, snapping
// weekends to Monday.
func currentWeekday(now time.Time) string {
	day := now.Weekday().String()
	if !IsWeekday(day) {
		return Weekdays[0]
	}
	return day
}

func nextWeekday(day string) string {
	for i, d := range Weekdays {
		if d == day {
			return Weekdays[(i+1)%len(Weekdays)]
		}
	}
	return Weekdays[0]
}
