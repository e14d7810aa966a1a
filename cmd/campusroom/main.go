// Command campusroom synchronizes a local reservation and timetable mirror
// with the campus backend. One invocation loads both collections through the
// fallback chains, prints the filtered reservation list and the weekly grid,
// and optionally writes an iCalendar export. With -watch it stays up and
// re-synchronizes on a cron schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/tahasaad555/pfe2-sub001/internal/application"
	"github.com/tahasaad555/pfe2-sub001/internal/cache"
	"github.com/tahasaad555/pfe2-sub001/internal/config"
	"github.com/tahasaad555/pfe2-sub001/internal/logging"
	"github.com/tahasaad555/pfe2-sub001/internal/remote"
	"github.com/tahasaad555/pfe2-sub001/internal/timegrid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "campusroom:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "campusroom.yaml", "path to the YAML configuration file")
		exportPath = flag.String("export", "", "write the weekly timetable as iCalendar to this path")
		exportUser = flag.String("user", "me", "user identifier passed to the server export endpoint")
		weekOffset = flag.Int("week", 0, "week offset relative to the current one")
		status     = flag.String("status", "all", "reservation status filter")
		date       = flag.String("date", "all", "reservation date filter: all, upcoming or past")
		search     = flag.String("search", "", "reservation search term")
		sortKey    = flag.String("sort", "date", "reservation sort key: date, room or status")
		sortDesc   = flag.Bool("desc", false, "sort descending")
		watch      = flag.Bool("watch", false, "keep running and re-synchronize on the configured cron schedule")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// One session identifier per invocation ties all log lines together.
	logger := logging.Setup(cfg.LogLevel).With("session", uuid.NewString())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	store, err := cache.OpenSQLite(cfg.SQLiteDSN, logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close cache", "error", cerr)
		}
	}()

	executor := remote.NewExecutor(remote.ExecutorConfig{
		BaseURL:        cfg.BaseURL,
		AttemptTimeout: cfg.AttemptTimeout.Std(),
		Token:          func() string { return cfg.Token },
	}, logger)

	reservations := application.NewReservationService(executor, store, application.ReservationStrategies{
		Fetch:  cfg.Strategies.ReservationsFetch,
		Cancel: cfg.Strategies.ReservationCancel,
		Edit:   cfg.Strategies.ReservationEdit,
	}, nil, logger)
	defer reservations.Flush()

	timetable := application.NewTimetableService(executor, store, application.TimetableConfig{
		Strategies: application.TimetableStrategies{
			Fetch:  cfg.Strategies.TimetableFetch,
			Export: cfg.Strategies.TimetableExport,
		},
		Domain: cfg.Domain,
	}, nil, logger)

	query := application.ReservationQuery{
		Status:   *status,
		Date:     *date,
		Search:   *search,
		SortKey:  *sortKey,
		SortDesc: *sortDesc,
	}

	sync := func() {
		printReservations(ctx, reservations, query, logger)
		printWeek(ctx, timetable, cfg, *weekOffset, logger)
	}
	sync()

	if *exportPath != "" {
		doc, err := timetable.Export(ctx, *exportUser, "ical", *weekOffset)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := os.WriteFile(*exportPath, doc, 0o644); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logger.Info("timetable exported", "path", *exportPath)
	}

	if *watch && cfg.RefreshCron != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.RefreshCron, sync); err != nil {
			return fmt.Errorf("refresh schedule %q: %w", cfg.RefreshCron, err)
		}
		scheduler.Start()
		logger.Info("periodic refresh enabled", "schedule", cfg.RefreshCron)
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}

	return nil
}

func printReservations(ctx context.Context, service *application.ReservationService, query application.ReservationQuery, logger *slog.Logger) {
	all, degraded, err := service.Load(ctx)
	if err != nil {
		logger.Warn("reservations served from local data", "kind", application.ErrorKind(err), "error", err)
	}
	visible := application.FilterReservations(all, query, time.Now())

	header := fmt.Sprintf("Reservations (%d of %d)", len(visible), len(all))
	if degraded {
		header += " [offline copy]"
	}
	fmt.Println(header)
	for _, r := range visible {
		fmt.Printf("  %-12s %-10s %-13s %-10s %s\n", r.ID, r.Date, r.Time, r.Status, r.Room)
	}
}

func printWeek(ctx context.Context, service *application.TimetableService, cfg config.Config, offset int, logger *slog.Logger) {
	week, degraded, err := service.LoadWeek(ctx)
	if err != nil {
		logger.Warn("timetable served from local data", "kind", application.ErrorKind(err), "error", err)
	}

	dates := service.WeekDates(offset)
	slots := timegrid.HourlySlots(cfg.GridStartHour, cfg.GridEndHour)

	header := "Timetable"
	if degraded {
		header += " [offline copy]"
	}
	fmt.Println(header)
	for i, day := range application.Weekdays {
		entries := week[day]
		fmt.Printf("  %s %s\n", day, dates[i].Format("2006-01-02"))
		placements := timegrid.DayPlan(gridEntries(entries), slots)
		for _, p := range placements {
			entry := entryByID(entries, p.EntryID)
			fmt.Printf("    %02d:00 slot  %-24s %s-%s  %s\n",
				slots[p.SlotIndex].StartHour, entry.Name, entry.StartTime, entry.EndTime, entry.Location)
		}
	}

	if upcoming := service.UpcomingEntries(3); len(upcoming) > 0 {
		names := make([]string, 0, len(upcoming))
		for _, entry := range upcoming {
			names = append(names, fmt.Sprintf("%s %s", entry.StartTime, entry.Name))
		}
		fmt.Println("Upcoming:", strings.Join(names, ", "))
	}
}

func gridEntries(entries []application.TimetableEntry) []timegrid.Entry {
	out := make([]timegrid.Entry, len(entries))
	for i, entry := range entries {
		out[i] = timegrid.Entry{ID: entry.ID, StartTime: entry.StartTime, EndTime: entry.EndTime}
	}
	return out
}

func entryByID(entries []application.TimetableEntry, id string) application.TimetableEntry {
	for _, entry := range entries {
		if entry.ID == id {
			return entry
		}
	}
	return application.TimetableEntry{}
}
