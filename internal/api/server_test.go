package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abddev09/usat-library/internal/domain"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/notify"
	"github.com/Abddev09/usat-library/internal/service"
	"github.com/Abddev09/usat-library/internal/store"
	"github.com/Abddev09/usat-library/internal/validation"
)

// stubUpstream serves a fixed catalog without network access.
type stubUpstream struct {
	books  []*domain.Book
	orders []*domain.Order
}

func (u *stubUpstream) BookItems(_ context.Context) ([]*domain.Book, error) {
	return u.books, nil
}

func (u *stubUpstream) Categories(_ context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "cat-1", Name: "Darsliklar"}}, nil
}

func (u *stubUpstream) Departments(_ context.Context) ([]domain.Department, error) {
	return []domain.Department{{ID: "dep-1", Name: "Informatika"}}, nil
}

func (u *stubUpstream) Orders(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range u.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// testEnvelope mirrors the wire envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

type testServer struct {
	*Server
	api humatest.TestAPI
}

func catalogBook(id, title, categoryID, departmentID string, createdAt time.Time) *domain.Book {
	b := &domain.Book{ID: id, Title: title, AvailableCount: 3, CreatedAt: createdAt}
	if categoryID != "" || departmentID != "" {
		b.Classifications = []domain.Classification{{
			CategoryID:   categoryID,
			DepartmentID: departmentID,
		}}
	}
	return b
}

func setupTestServer(t *testing.T, upstream *stubUpstream) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "api-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil, store.NewNoopEmitter())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	})

	logger := slog.New(slog.DiscardHandler)
	m := metrics.New()
	manager := notify.NewManager(logger)

	catalogService, err := service.NewCatalogService(upstream, manager, m, logger, time.Minute)
	require.NoError(t, err)

	services := &Services{
		Catalog:  catalogService,
		Cart:     service.NewCartService(st, catalogService, manager, m, logger),
		Profile:  service.NewProfileService(st, upstream, catalogService, logger),
		Session:  service.NewSessionService(st, validation.New(), logger),
		Showcase: service.NewShowcaseService(catalogService, manager, m, logger, 1280, time.Hour),
	}
	require.NoError(t, services.Showcase.Sync(context.Background()))

	s := NewServer(st, services, notify.NewHandler(manager, logger), m, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

func defaultUpstream() *stubUpstream {
	now := time.Now()
	return &stubUpstream{
		books: []*domain.Book{
			catalogBook("book-1", "Algoritmlar", "cat-1", "dep-1", now),
			catalogBook("book-2", "Fizika", "cat-1", "dep-2", now.Add(-time.Hour)),
			catalogBook("book-3", "Tarix", "cat-2", "dep-1", now.AddDate(-1, 0, 0)),
		},
	}
}

func (ts *testServer) register(t *testing.T, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/session", map[string]any{
		"user_id":      userID,
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Register failed: %s", resp.Body.String())
}

func TestServer_ListBooks(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, 1, envelope.V)
	assert.Len(t, envelope.Data.Books, 3)
	assert.Equal(t, 3, envelope.Data.TotalItems)
}

func TestServer_ListBooks_Filtered(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/books?categories=cat-1&departments=dep-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	// Only book-1 carries the cat-1/dep-1 pair.
	require.Len(t, envelope.Data.Books, 1)
	assert.Equal(t, "book-1", envelope.Data.Books[0].ID)
}

func TestServer_GetBook_WithRelated(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/books/book-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[BookDetailResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "book-1", envelope.Data.Book.ID)
	require.Len(t, envelope.Data.Related, 2)
	// book-2 shares a category, book-3 only a department.
	assert.Equal(t, "book-2", envelope.Data.Related[0].ID)
	assert.Equal(t, "book-3", envelope.Data.Related[1].ID)
}

func TestServer_GetBook_NotFound(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/books/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestServer_NewBooks(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/books/new")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[struct {
		Books []*domain.Book `json:"books"`
	}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	// book-3 is a year old and falls outside the window.
	assert.Len(t, envelope.Data.Books, 2)
}

func TestServer_Taxonomies(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/departments")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestServer_CartFlow(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())
	ts.register(t, "user-1")

	// Add a book.
	resp := ts.api.Post("/api/v1/cart/items",
		"X-User-ID: user-1",
		map[string]any{"book_id": "book-1"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var addEnvelope testEnvelope[AddToCartResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &addEnvelope))
	assert.False(t, addEnvelope.Data.Duplicate)
	assert.Equal(t, "Algoritmlar", addEnvelope.Data.Entry.Title)

	// Adding the same book again reports a duplicate.
	resp = ts.api.Post("/api/v1/cart/items",
		"X-User-ID: user-1",
		map[string]any{"book_id": "book-1"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &addEnvelope))
	assert.True(t, addEnvelope.Data.Duplicate)

	// The cart holds one entry.
	resp = ts.api.Get("/api/v1/cart", "X-User-ID: user-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var cartEnvelope testEnvelope[CartResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cartEnvelope))
	require.Len(t, cartEnvelope.Data.Entries, 1)

	// Remove it.
	resp = ts.api.Delete("/api/v1/cart/items/book-1", "X-User-ID: user-1")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/cart", "X-User-ID: user-1")
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cartEnvelope))
	assert.Empty(t, cartEnvelope.Data.Entries)
}

func TestServer_Cart_RequiresIdentity(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Post("/api/v1/cart/items",
		"X-User-ID: nobody",
		map[string]any{"book_id": "book-1"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "MISSING_IDENTITY", envelope.Code)
}

func TestServer_SessionLifecycle(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())
	ts.register(t, "user-1")

	resp := ts.api.Get("/api/v1/session", "X-User-ID: user-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[IdentityResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "user-1", envelope.Data.UserID)
	assert.Equal(t, "Test User", envelope.Data.DisplayName)

	resp = ts.api.Delete("/api/v1/session", "X-User-ID: user-1")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/session", "X-User-ID: user-1")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestServer_Register_Validation(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Post("/api/v1/session", map[string]any{
		"user_id":      "user-1",
		"display_name": "",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestServer_Profile(t *testing.T) {
	upstream := defaultUpstream()
	upstream.orders = []*domain.Order{
		{ID: "o-1", UserID: "user-1", BookID: "book-1", Status: domain.StatusPending},
		{ID: "o-2", UserID: "user-1", BookID: "book-2", Status: domain.StatusReturned},
	}
	ts := setupTestServer(t, upstream)
	ts.register(t, "user-1")

	resp := ts.api.Get("/api/v1/profile", "X-User-ID: user-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ProfileResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "user-1", envelope.Data.Identity.UserID)
	require.Len(t, envelope.Data.ActiveOrders, 1)
	require.Len(t, envelope.Data.ArchivedOrders, 1)
}

func TestServer_Showcase(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/api/v1/showcase")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ShowcaseResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Data.State.Index)
	assert.NotEmpty(t, envelope.Data.Books)

	// Gestures below the drag threshold snap back.
	resp = ts.api.Post("/api/v1/showcase/gesture",
		map[string]any{"start_x": 200, "end_x": 160})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Data.State.Index)
}

func TestServer_Health(t *testing.T) {
	ts := setupTestServer(t, defaultUpstream())

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Contains(t, envelope.Data.Components, "database")
	assert.Contains(t, envelope.Data.Components, "catalog")
}
