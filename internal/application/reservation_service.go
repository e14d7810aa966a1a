package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tahasaad555/pfe2-sub001/internal/cache"
	"github.com/tahasaad555/pfe2-sub001/internal/remote"
	"github.com/tahasaad555/pfe2-sub001/internal/timefmt"
)

// Gateway abstracts the ordered-fallback executor so services can be tested
// against scripted outcomes.
type Gateway interface {
	Execute(ctx context.Context, strategies []remote.Strategy, vars map[string]string, body any) (remote.Result, error)
}

// ReservationStrategies groups the endpoint strategy lists used by the
// reservation operations. Each list is tried strictly in order.
type ReservationStrategies struct {
	Fetch  []remote.Strategy
	Cancel []remote.Strategy
	Edit   []remote.Strategy
}

// ReservationService keeps the canonical reservation collection in sync with
// the backend. Reads go through the ordered fallback chain and degrade to the
// cache mirror; mutations commit locally first and replicate to the backend
// on a best-effort basis, never rolling the local state back.
type ReservationService struct {
	gateway    Gateway
	store      cache.Store
	strategies ReservationStrategies
	now        func() time.Time
	logger     *slog.Logger

	mu           sync.Mutex
	reservations []Reservation

	replication sync.WaitGroup
}

// NewReservationService wires dependencies for reservation operations.
func NewReservationService(gateway Gateway, store cache.Store, strategies ReservationStrategies, now func() time.Time, logger *slog.Logger) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		gateway:    gateway,
		store:      store,
		strategies: strategies,
		now:        now,
		logger:     defaultLogger(logger),
	}
}

// Load retrieves the reservation collection through the fallback chain. Every
// successful fetch passes through the canonicalizing mapper and overwrites the
// cache mirror. When all strategies fail, the last cached snapshot (or an
// empty collection) is returned together with the exhaustion error so the
// caller can flag that local data is in use; duplicate in-flight loads race
// with last-write-wins semantics.
func (s *ReservationService) Load(ctx context.Context) ([]Reservation, bool, error) {
	if s == nil || s.gateway == nil {
		return nil, false, fmt.Errorf("ReservationService is not configured")
	}
	logger := serviceLogger(ctx, s.logger, "reservations", "load")

	result, err := s.gateway.Execute(ctx, s.strategies.Fetch, nil, nil)
	if err != nil {
		logger.Warn("fetch exhausted all strategies, degrading to cache", "error", err)
		cached := s.readCache(ctx)
		s.setCollection(cached)
		return cached, true, err
	}

	records, err := decodeCollection(result.Body)
	if err != nil {
		logger.Warn("fetch succeeded but response shape unrecognized, degrading to cache", "strategy", result.Strategy, "error", err)
		cached := s.readCache(ctx)
		s.setCollection(cached)
		return cached, true, err
	}

	reservations := make([]Reservation, 0, len(records))
	for _, raw := range records {
		res, ok := mapReservation(raw)
		if !ok {
			logger.Debug("dropping unparseable reservation record")
			continue
		}
		reservations = append(reservations, res)
	}

	s.setCollection(reservations)
	s.writeCache(ctx, reservations)
	logger.Info("reservations loaded", "strategy", result.Strategy, "count", len(reservations))
	return cloneReservations(reservations), false, nil
}

// Cancel withdraws a reservation. The local transition to Canceled, including
// the cache overwrite, completes before this method returns; the backend sync
// happens afterwards on a background goroutine, trying each cancel strategy
// in order and discarding the outcome. The local record stays Canceled even
// if every remote attempt fails.
func (s *ReservationService) Cancel(ctx context.Context, id string) (Reservation, error) {
	if s == nil {
		return Reservation{}, fmt.Errorf("ReservationService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "reservations", "cancel", "id", id)

	s.mu.Lock()
	index := s.indexLocked(id)
	if index < 0 {
		s.mu.Unlock()
		return Reservation{}, ErrNotFound
	}
	s.reservations[index].Status = StatusCanceled
	updated := s.reservations[index]
	snapshot := cloneReservations(s.reservations)
	s.mu.Unlock()

	s.writeCache(ctx, snapshot)
	logger.Info("reservation canceled locally")

	s.replicate(ctx, s.strategies.Cancel, map[string]string{"id": id}, nil, "cancel")
	return updated, nil
}

// Edit applies changes to a pending reservation. Editing any non-pending
// record is rejected synchronously with a field error and no network call.
// The accepted change commits locally, overwrites the cache, and then
// replicates to the backend best-effort.
func (s *ReservationService) Edit(ctx context.Context, input Reservation) (Reservation, error) {
	if s == nil {
		return Reservation{}, fmt.Errorf("ReservationService is nil")
	}
	logger := serviceLogger(ctx, s.logger, "reservations", "edit", "id", input.ID)

	s.mu.Lock()
	index := s.indexLocked(input.ID)
	if index < 0 {
		s.mu.Unlock()
		return Reservation{}, ErrNotFound
	}
	existing := s.reservations[index]
	if !existing.CanEdit() {
		s.mu.Unlock()
		vErr := &ValidationError{}
		vErr.add("status", fmt.Sprintf("cannot edit a reservation whose status is %s", existing.Status))
		return Reservation{}, vErr
	}

	updated := normalizeEdit(existing, input)
	s.reservations[index] = updated
	snapshot := cloneReservations(s.reservations)
	s.mu.Unlock()

	s.writeCache(ctx, snapshot)
	if s.store != nil {
		s.store.Write(ctx, cache.KeyEditing, nil)
	}
	logger.Info("reservation edited locally")

	s.replicate(ctx, s.strategies.Edit, map[string]string{"id": updated.ID}, editPayload(updated), "edit")
	return updated, nil
}

// StageEdit records the reservation the user is about to edit under the
// editing snapshot key, so a reservation form can recover it in a later
// session. Only pending reservations may be staged.
func (s *ReservationService) StageEdit(ctx context.Context, id string) (Reservation, error) {
	if s == nil {
		return Reservation{}, fmt.Errorf("ReservationService is nil")
	}

	s.mu.Lock()
	index := s.indexLocked(id)
	if index < 0 {
		s.mu.Unlock()
		return Reservation{}, ErrNotFound
	}
	res := s.reservations[index]
	s.mu.Unlock()

	if !res.CanEdit() {
		vErr := &ValidationError{}
		vErr.add("status", fmt.Sprintf("cannot edit a reservation whose status is %s", res.Status))
		return Reservation{}, vErr
	}

	if s.store != nil {
		s.store.Write(ctx, cache.KeyEditing, res)
	}
	return res, nil
}

// StagedEdit recovers a previously staged reservation, if any.
func (s *ReservationService) StagedEdit(ctx context.Context) (Reservation, bool) {
	if s == nil || s.store == nil {
		return Reservation{}, false
	}
	var res Reservation
	if !s.store.Read(ctx, cache.KeyEditing, &res) || res.ID == "" {
		return Reservation{}, false
	}
	return res, true
}

// Snapshot returns a copy of the current in-memory collection.
func (s *ReservationService) Snapshot() []Reservation {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneReservations(s.reservations)
}

// Flush blocks until all in-flight background replication has finished. Used
// on shutdown and by tests; callers never need it for correctness of the
// local state.
func (s *ReservationService) Flush() {
	if s == nil {
		return
	}
	s.replication.Wait()
}

// replicate pushes a mutation to the backend on a background goroutine. The
// outcome is deliberately discarded: replication failures are logged for
// diagnostics and never surface to the user or roll back local state.
func (s *ReservationService) replicate(ctx context.Context, strategies []remote.Strategy, vars map[string]string, body any, operation string) {
	if s.gateway == nil || len(strategies) == 0 {
		return
	}

	logger := serviceLogger(ctx, s.logger, "reservations", operation)
	background := context.WithoutCancel(ctx)

	s.replication.Add(1)
	go func() {
		defer s.replication.Done()
		result, err := s.gateway.Execute(background, strategies, vars, body)
		if err != nil {
			logger.Warn("replication failed on every endpoint, local state retained", "error", err)
			return
		}
		logger.Info("replication synced", "strategy", result.Strategy, "status", result.Status)
	}()
}

func (s *ReservationService) indexLocked(id string) int {
	for i, r := range s.reservations {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *ReservationService) setCollection(reservations []Reservation) {
	s.mu.Lock()
	s.reservations = cloneReservations(reservations)
	s.mu.Unlock()
}

func (s *ReservationService) readCache(ctx context.Context) []Reservation {
	if s.store == nil {
		return []Reservation{}
	}
	var cached []Reservation
	if !s.store.Read(ctx, cache.KeyReservations, &cached) {
		return []Reservation{}
	}
	return cached
}

func (s *ReservationService) writeCache(ctx context.Context, reservations []Reservation) {
	if s.store == nil {
		return
	}
	s.store.Write(ctx, cache.KeyReservations, reservations)
}

// normalizeEdit merges caller-provided fields into the existing record,
// keeping the identifier and status immutable and re-deriving the display
// time from the normalized bounds.
func normalizeEdit(existing, input Reservation) Reservation {
	updated := existing
	if input.Room != "" {
		updated.Room = input.Room
	}
	if input.ClassroomID != "" {
		updated.ClassroomID = input.ClassroomID
	}
	if input.Date != "" {
		updated.Date = input.Date
	}
	if input.StartTime != "" {
		updated.StartTime = timefmt.Normalize(input.StartTime)
	}
	if input.EndTime != "" {
		updated.EndTime = timefmt.Normalize(input.EndTime)
	}
	if input.Purpose != "" {
		updated.Purpose = input.Purpose
	}
	updated.Notes = input.Notes
	updated.Time = updated.StartTime + " - " + updated.EndTime
	return updated
}

func editPayload(r Reservation) map[string]any {
	return map[string]any{
		"classroomId": r.ClassroomID,
		"classroom":   r.Room,
		"date":        r.Date,
		"startTime":   r.StartTime,
		"endTime":     r.EndTime,
		"purpose":     r.Purpose,
		"notes":       r.Notes,
	}
}

func cloneReservations(reservations []Reservation) []Reservation {
	out := make([]Reservation, len(reservations))
	copy(out, reservations)
	return out
}
