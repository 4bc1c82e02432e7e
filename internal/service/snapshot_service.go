package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fieldsales-backend/internal/domain"
	"fieldsales-backend/internal/repository"
)

// VisitStore is the slice of the visit repository the snapshot service
// needs.
type VisitStore interface {
	ListAll(ctx context.Context, limit int) ([]domain.Visit, error)
	Create(ctx context.Context, in repository.CreateVisitInput) (*domain.Visit, error)
	Update(ctx context.Context, id int64, in repository.CreateVisitInput) (*domain.Visit, error)
	Delete(ctx context.Context, id int64) error
}

// ActivityRecorder records reconciliation events.
type ActivityRecorder interface {
	Create(ctx context.Context, in repository.CreateActivityLogInput) (int64, error)
}

// SnapshotService owns the only mutable state around the aggregation
// engine: the last successfully fetched visit collection. A failed
// refresh leaves the previous snapshot in place (stale but available).
//
// Writes are optimistic: a new visit lands in the snapshot immediately
// and persistence runs on a background worker; when persistence fails
// the visit is rolled back out and the reconciliation is logged.
type SnapshotService struct {
	Store        VisitStore
	Activity     ActivityRecorder
	Logger       *slog.Logger
	MaxRows      int
	FetchTimeout time.Duration

	mu        sync.RWMutex
	visits    []domain.Visit
	fetchedAt time.Time
	tempID    int64

	queue chan persistTask
}

type persistTask struct {
	tempID int64
	input  repository.CreateVisitInput
}

func NewSnapshotService(store VisitStore, activity ActivityRecorder, logger *slog.Logger, maxRows int, fetchTimeout time.Duration) *SnapshotService {
	return &SnapshotService{
		Store:        store,
		Activity:     activity,
		Logger:       logger,
		MaxRows:      maxRows,
		FetchTimeout: fetchTimeout,
		queue:        make(chan persistTask, 64),
	}
}

// Run drains the persistence queue until ctx is done. Call it once, from
// its own goroutine.
func (s *SnapshotService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-s.queue:
			s.persist(ctx, task)
		}
	}
}

// Refresh replaces the snapshot with a fresh fetch. On failure the old
// snapshot survives and the error is returned to the caller.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
	defer cancel()

	visits, err := s.Store.ListAll(fetchCtx, s.MaxRows)
	if err != nil {
		s.Logger.Warn("snapshot refresh failed, keeping previous snapshot", "err", err)
		return fmt.Errorf("refresh visit snapshot: %w", err)
	}

	s.mu.Lock()
	s.visits = visits
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Visits returns a copy of the current snapshot; callers treat it as an
// immutable value.
func (s *SnapshotService) Visits() []domain.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Visit, len(s.visits))
	copy(out, s.visits)
	return out
}

// FetchedAt reports when the snapshot was last successfully refreshed;
// zero when no fetch ever succeeded.
func (s *SnapshotService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// AddVisit applies the visit to the snapshot immediately and enqueues the
// database insert. The returned visit carries a provisional negative ID
// until the background write assigns the real one.
func (s *SnapshotService) AddVisit(ctx context.Context, in repository.CreateVisitInput) domain.Visit {
	now := time.Now()
	s.mu.Lock()
	s.tempID--
	v := domain.Visit{
		ID:               s.tempID,
		CustomerID:       in.CustomerID,
		CustomerName:     in.CustomerName,
		City:             in.City,
		Gamme:            in.Gamme,
		SalespersonEmail: in.SalespersonEmail,
		Action:           in.Action,
		AppointmentDates: in.AppointmentDates,
		Note:             in.Note,
		ContactChannel:   in.ContactChannel,
		ContactSummary:   in.ContactSummary,
		Price:            in.Price,
		Quantity:         in.Quantity,
		PhotoRef:         in.PhotoRef,
		DisplayDate:      in.DisplayDate,
		CreatedAt:        &now,
	}
	s.visits = append([]domain.Visit{v}, s.visits...)
	s.mu.Unlock()

	task := persistTask{tempID: v.ID, input: in}
	select {
	case s.queue <- task:
	default:
		// Queue saturated: persist inline rather than dropping the write.
		s.persist(ctx, task)
	}
	return v
}

// UpdateVisit writes through synchronously and patches the snapshot.
func (s *SnapshotService) UpdateVisit(ctx context.Context, id int64, in repository.CreateVisitInput) (*domain.Visit, error) {
	saved, err := s.Store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.visits {
		if s.visits[i].ID == id {
			s.visits[i] = *saved
			break
		}
	}
	s.mu.Unlock()
	return saved, nil
}

// DeleteVisit writes through synchronously and drops the row from the
// snapshot.
func (s *SnapshotService) DeleteVisit(ctx context.Context, id int64) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.removeByID(id)
	return nil
}

func (s *SnapshotService) persist(ctx context.Context, task persistTask) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.FetchTimeout)
	defer cancel()

	saved, err := s.Store.Create(writeCtx, task.input)
	if err != nil {
		s.removeByID(task.tempID)
		s.Logger.Error("visit persistence failed, rolled back from snapshot",
			"customer", task.input.CustomerName, "err", err)
		if s.Activity != nil {
			_, logErr := s.Activity.Create(writeCtx, repository.CreateActivityLogInput{
				Title:   "Visite non enregistrée",
				Message: fmt.Sprintf("échec d'enregistrement de la visite pour %q: %v", task.input.CustomerName, err),
				Actor:   task.input.SalespersonEmail,
				Type:    domain.LogError,
			})
			if logErr != nil {
				s.Logger.Error("failed to record reconciliation", "err", logErr)
			}
		}
		return
	}

	s.mu.Lock()
	for i := range s.visits {
		if s.visits[i].ID == task.tempID {
			s.visits[i] = *saved
			break
		}
	}
	s.mu.Unlock()
}

func (s *SnapshotService) removeByID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.visits {
		if s.visits[i].ID == id {
			s.visits = append(s.visits[:i], s.visits[i+1:]...)
			return
		}
	}
}

// ErrSnapshotEmpty signals that no fetch has ever succeeded.
var ErrSnapshotEmpty = errors.New("visit snapshot not loaded")

// Ensure reports ErrSnapshotEmpty when the service has never managed to
// load data, so handlers can distinguish "no visits" from "no store".
func (s *SnapshotService) Ensure(ctx context.Context) error {
	if !s.FetchedAt().IsZero() {
		return nil
	}
	if err := s.Refresh(ctx); err != nil {
		return errors.Join(ErrSnapshotEmpty, err)
	}
	return nil
}
