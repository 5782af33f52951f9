package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Abddev09/usat-library/internal/carousel"
	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/notify"
)

// ShowcaseService rotates the new-arrivals carousel server-side and
// broadcasts every slide change, so all connected clients see the same
// showcase state. All engine access is serialized here; the engine itself
// is a plain state machine.
type ShowcaseService struct {
	catalog *CatalogService
	emitter Emitter
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	engine  *carousel.Engine
	books   []*domain.Book
	version string

	autoplay *carousel.Autoplay
}

// NewShowcaseService creates a showcase service. viewportWidth classifies
// the server-driven rendition; interval of zero uses the default autoplay
// cadence.
func NewShowcaseService(catalog *CatalogService, emitter Emitter, m *metrics.Metrics, logger *slog.Logger, viewportWidth int, interval time.Duration) *ShowcaseService {
	s := &ShowcaseService{
		catalog: catalog,
		emitter: emitter,
		metrics: m,
		logger:  logger,
		engine:  carousel.New(0, carousel.ItemsPerSlide(viewportWidth)),
	}
	s.autoplay = carousel.NewAutoplay(interval, s.tick, s.broadcast, logger)
	return s
}

// Start syncs the showcase with the catalog and runs the autoplay loop
// until ctx is cancelled. Call once in a goroutine.
func (s *ShowcaseService) Start(ctx context.Context) {
	if err := s.Sync(ctx); err != nil {
		s.logger.Warn("initial showcase sync failed",
			slog.String("error", err.Error()))
	}
	s.autoplay.Start(ctx)
}

// Sync reloads the new-arrivals list from the current catalog snapshot.
// No-op when the snapshot version is unchanged.
func (s *ShowcaseService) Sync(ctx context.Context) error {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Version == s.version {
		return nil
	}
	s.books = snap.NewBooks(time.Now())
	s.version = snap.Version
	s.engine.SetItems(len(s.books))

	s.logger.Info("showcase synced",
		slog.String("version", snap.Version),
		slog.Int("new_books", len(s.books)))
	return nil
}

// tick re-syncs against the current catalog snapshot, then applies one
// autoplay advance under the service lock. Re-syncing here is what keeps the
// rotation tracking TTL refreshes; a failed sync keeps rotating the last
// known list and retries next tick.
func (s *ShowcaseService) tick(ctx context.Context) (carousel.State, bool) {
	if err := s.Sync(ctx); err != nil {
		s.logger.Warn("showcase sync failed",
			slog.String("error", err.Error()))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	moved := s.engine.TimerTick()
	return s.engine.State(), moved
}

// broadcast publishes a slide change to connected clients.
func (s *ShowcaseService) broadcast(state carousel.State) {
	s.metrics.IncShowcaseAdvance()
	s.emitter.Emit(notify.NewShowcaseSlideEvent(state))
}

// State returns the current showcase state and the books of the current
// slide.
func (s *ShowcaseService) State() (carousel.State, []*domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	return state, s.slideBooksLocked(state)
}

func (s *ShowcaseService) slideBooksLocked(state carousel.State) []*domain.Book {
	if state.SlideCount == 0 {
		return nil
	}
	start := state.Index * state.ItemsPerSlide
	end := start + state.ItemsPerSlide
	if end > len(s.books) {
		end = len(s.books)
	}
	if start >= end {
		return nil
	}
	return s.books[start:end]
}

// Next advances one slide and broadcasts the change.
func (s *ShowcaseService) Next() carousel.State {
	return s.apply(func(e *carousel.Engine) bool { return e.Next() })
}

// Prev steps back one slide and broadcasts the change.
func (s *ShowcaseService) Prev() carousel.State {
	return s.apply(func(e *carousel.Engine) bool { return e.Prev() })
}

// GoTo jumps to a slide and broadcasts the change. Out-of-range indices
// leave the state untouched.
func (s *ShowcaseService) GoTo(index int) carousel.State {
	return s.apply(func(e *carousel.Engine) bool { return e.GoTo(index) })
}

// Gesture applies a completed drag gesture: the pointer went down at
// startX and was released at endX.
func (s *ShowcaseService) Gesture(startX, endX int) carousel.State {
	return s.apply(func(e *carousel.Engine) bool {
		e.DragStart(startX)
		e.DragMove(endX)
		return e.DragEnd()
	})
}

// SetViewport reclassifies the rendition width and broadcasts when the
// geometry changed the current slide.
func (s *ShowcaseService) SetViewport(width int) carousel.State {
	return s.apply(func(e *carousel.Engine) bool {
		before := e.State()
		e.SetViewport(width)
		after := e.State()
		return before != after
	})
}

func (s *ShowcaseService) apply(op func(*carousel.Engine) bool) carousel.State {
	s.mu.Lock()
	changed := op(s.engine)
	state := s.engine.State()
	s.mu.Unlock()

	if changed {
		s.broadcast(state)
	}
	return state
}
