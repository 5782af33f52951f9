package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/notify"
)

func setupShowcase(t *testing.T, bookCount, viewportWidth int) (*ShowcaseService, *captureEmitter) {
	t.Helper()

	books := make([]*domain.Book, bookCount)
	for i := range books {
		books[i] = &domain.Book{ID: string(rune('a' + i)), CreatedAt: time.Now()}
	}
	upstream := &fakeUpstream{books: books}
	logger := slog.New(slog.DiscardHandler)
	m := metrics.New()

	catalog, err := NewCatalogService(upstream, &captureEmitter{}, m, logger, time.Minute)
	require.NoError(t, err)

	emitter := &captureEmitter{}
	svc := NewShowcaseService(catalog, emitter, m, logger, 1024, time.Hour)
	if viewportWidth != 1024 {
		svc.SetViewport(viewportWidth)
	}
	require.NoError(t, svc.Sync(context.Background()))
	return svc, emitter
}

func TestShowcaseService_SyncDerivesSlides(t *testing.T) {
	svc, _ := setupShowcase(t, 10, 1024)

	state, books := svc.State()

	// 10 new books at 4 per slide.
	assert.Equal(t, 3, state.SlideCount)
	assert.Equal(t, 0, state.Index)
	assert.Len(t, books, 4)
}

func TestShowcaseService_NextBroadcastsSlideChange(t *testing.T) {
	svc, emitter := setupShowcase(t, 10, 1024)

	state := svc.Next()

	assert.Equal(t, 1, state.Index)
	events := emitter.Events()
	require.Len(t, events, 1)
	event, ok := events[0].(notify.Event)
	require.True(t, ok)
	assert.Equal(t, notify.EventShowcaseSlide, event.Type)
}

func TestShowcaseService_WraparoundThroughNavigation(t *testing.T) {
	svc, _ := setupShowcase(t, 10, 1024)

	svc.Next()
	svc.Next()
	state := svc.Next()

	assert.Equal(t, 0, state.Index)

	state = svc.Prev()
	assert.Equal(t, 2, state.Index)
}

func TestShowcaseService_GestureMovesExactlyOneSlide(t *testing.T) {
	svc, emitter := setupShowcase(t, 10, 1024)

	// Short travel snaps back.
	state := svc.Gesture(200, 170)
	assert.Equal(t, 0, state.Index)
	assert.Empty(t, emitter.Events())

	// A long left drag advances once.
	state = svc.Gesture(200, 100)
	assert.Equal(t, 1, state.Index)
	assert.Len(t, emitter.Events(), 1)
}

func TestShowcaseService_ViewportChangeRecomputesGeometry(t *testing.T) {
	svc, _ := setupShowcase(t, 10, 1024)

	state := svc.SetViewport(500)

	assert.Equal(t, 1, state.ItemsPerSlide)
	assert.Equal(t, 10, state.SlideCount)

	_, books := svc.State()
	assert.Len(t, books, 1)
}

func TestShowcaseService_EmptyShowcaseNeverAdvances(t *testing.T) {
	svc, emitter := setupShowcase(t, 0, 1024)

	state := svc.Next()

	assert.Equal(t, 0, state.Index)
	assert.Equal(t, 0, state.SlideCount)
	assert.Empty(t, emitter.Events())
}

func TestShowcaseService_SyncNoopOnSameVersion(t *testing.T) {
	svc, _ := setupShowcase(t, 10, 1024)
	svc.Next()

	// Same snapshot version: slide position survives.
	require.NoError(t, svc.Sync(context.Background()))

	state, _ := svc.State()
	assert.Equal(t, 1, state.Index)
}

func TestShowcaseService_AutoplayTracksCatalogRefresh(t *testing.T) {
	upstream := &fakeUpstream{books: []*domain.Book{
		{ID: "old-1", CreatedAt: time.Now()},
	}}
	logger := slog.New(slog.DiscardHandler)
	m := metrics.New()

	catalog, err := NewCatalogService(upstream, &captureEmitter{}, m, logger, time.Hour)
	require.NoError(t, err)

	svc := NewShowcaseService(catalog, &captureEmitter{}, m, logger, 1024, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx)

	require.Eventually(t, func() bool {
		state, _ := svc.State()
		return state.ItemCount == 1
	}, time.Second, 5*time.Millisecond)

	upstream.setBooks([]*domain.Book{
		{ID: "new-1", CreatedAt: time.Now()},
		{ID: "new-2", CreatedAt: time.Now()},
		{ID: "new-3", CreatedAt: time.Now()},
	})
	_, err = catalog.Refresh(context.Background())
	require.NoError(t, err)

	// A later tick must re-derive the book list from the replaced snapshot.
	require.Eventually(t, func() bool {
		state, _ := svc.State()
		return state.ItemCount == 3
	}, time.Second, 5*time.Millisecond)

	_, books := svc.State()
	require.NotEmpty(t, books)
	assert.Equal(t, "new-1", books[0].ID)
}
