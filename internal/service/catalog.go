// Package service orchestrates catalog, cart, showcase, and profile
// operations on top of the upstream client and the local store.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Abddev09/usat-library/internal/catalog"
	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/errors"
	"github.com/Abddev09/usat-library/internal/filter"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/notify"
	"github.com/Abddev09/usat-library/internal/related"
)

// DefaultSnapshotTTL is how long a fetched catalog snapshot is served
// before the upstream is asked again.
const DefaultSnapshotTTL = 5 * time.Minute

// relatedMemoSize bounds the per-snapshot related-list cache.
const relatedMemoSize = 512

// Upstream is the slice of the catalog client the service needs.
type Upstream interface {
	BookItems(ctx context.Context) ([]*domain.Book, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Departments(ctx context.Context) ([]domain.Department, error)
	Orders(ctx context.Context, userID string) ([]*domain.Order, error)
}

// Emitter broadcasts events to connected clients.
type Emitter interface {
	Emit(event any)
}

// CatalogService serves catalog snapshots and the derivations computed from
// them: related lists, filtered pages, new arrivals.
type CatalogService struct {
	upstream Upstream
	emitter  Emitter
	metrics  *metrics.Metrics
	logger   *slog.Logger
	ttl      time.Duration

	mu          sync.Mutex
	snap        *catalog.Snapshot
	relatedMemo *lru.Cache[string, []*domain.Book]
	filterMemo  *filter.Memo
}

// NewCatalogService creates a catalog service. A ttl of zero uses the
// default.
func NewCatalogService(upstream Upstream, emitter Emitter, m *metrics.Metrics, logger *slog.Logger, ttl time.Duration) (*CatalogService, error) {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	relatedMemo, err := lru.New[string, []*domain.Book](relatedMemoSize)
	if err != nil {
		return nil, err
	}
	filterMemo, err := filter.NewMemo()
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		upstream:    upstream,
		emitter:     emitter,
		metrics:     m,
		logger:      logger,
		ttl:         ttl,
		relatedMemo: relatedMemo,
		filterMemo:  filterMemo,
	}, nil
}

// Snapshot returns the current catalog snapshot, fetching from the upstream
// when the cached one is missing or expired. Concurrent callers share one
// fetch; a caller holding a reference to an older snapshot keeps a
// consistent view until it asks again.
func (s *CatalogService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && s.snap.Age() < s.ttl {
		s.metrics.IncSnapshotLoad("cache")
		return s.snap, nil
	}
	return s.refreshLocked(ctx)
}

// Refresh discards the cached snapshot and fetches a fresh one.
func (s *CatalogService) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *CatalogService) refreshLocked(ctx context.Context) (*catalog.Snapshot, error) {
	started := time.Now()

	books, err := s.upstream.BookItems(ctx)
	if err != nil {
		return s.upstreamFailed("bookItems", err)
	}
	categories, err := s.upstream.Categories(ctx)
	if err != nil {
		return s.upstreamFailed("categories", err)
	}
	departments, err := s.upstream.Departments(ctx)
	if err != nil {
		return s.upstreamFailed("departments", err)
	}

	snap := catalog.NewSnapshot(books, categories, departments)
	s.snap = snap

	s.metrics.IncSnapshotLoad("upstream")
	s.metrics.ObserveUpstream(time.Since(started))
	s.emitter.Emit(notify.NewCatalogRefreshedEvent(snap.Version, len(snap.Books)))

	s.logger.Info("catalog snapshot refreshed",
		slog.String("version", snap.Version),
		slog.Int("books", len(snap.Books)),
		slog.Duration("took", time.Since(started)))

	return snap, nil
}

// upstreamFailed records the failure and maps it to a domain error. A stale
// snapshot, when present, is deliberately not served: the caller surfaces
// the failure and the next request retries.
func (s *CatalogService) upstreamFailed(op string, err error) (*catalog.Snapshot, error) {
	s.metrics.IncUpstream(op, "error")
	s.logger.Error("upstream fetch failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return nil, errors.Wrap(err, errors.CodeUpstream, "library service is unavailable")
}

// GetBook returns one book by ID.
func (s *CatalogService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	book, ok := snap.Book(id)
	if !ok {
		return nil, errors.NotFoundf("book %s not found", id)
	}
	return book, nil
}

// Related returns the ranked related list for a book. Results are memoized
// per snapshot version.
func (s *CatalogService) Related(ctx context.Context, id string) ([]*domain.Book, error) {
	_, ranked, err := s.BookWithRelated(ctx, id)
	return ranked, err
}

// BookWithRelated returns a book together with its ranked related list,
// both resolved from one snapshot read so the pair can never straddle a
// TTL refresh.
func (s *CatalogService) BookWithRelated(ctx context.Context, id string) (*domain.Book, []*domain.Book, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	focal, ok := snap.Book(id)
	if !ok {
		return nil, nil, errors.NotFoundf("book %s not found", id)
	}

	key := snap.Version + "#" + id
	if cached, ok := s.relatedMemo.Get(key); ok {
		return focal, cached, nil
	}

	ranked := related.Rank(snap.Books, focal)
	s.relatedMemo.Add(key, ranked)
	s.metrics.IncRanking()
	return focal, ranked, nil
}

// Filter returns one page of the catalog under a classification selection.
func (s *CatalogService) Filter(ctx context.Context, sel filter.Selection, page int) (filter.Page, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return filter.Page{}, err
	}

	matched := s.filterMemo.Apply(snap.Version, snap.Books, sel)
	result := filter.Paginate(matched, page)

	if result.TotalItems == 0 {
		s.metrics.IncFilter("empty")
	} else {
		s.metrics.IncFilter("ok")
	}
	return result, nil
}

// NewBooks returns the books added within the new-arrival window.
func (s *CatalogService) NewBooks(ctx context.Context) ([]*domain.Book, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.NewBooks(time.Now()), nil
}

// Categories returns the category list of the current snapshot.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

// Departments returns the department list of the current snapshot.
func (s *CatalogService) Departments(ctx context.Context) ([]domain.Department, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Departments, nil
}
