package notify

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abddev09/usat-library/internal/domain"
)

func startManager(t *testing.T) *Manager {
	t.Helper()

	m := NewManager(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	t.Cleanup(cancel)
	return m
}

func waitForEvent(t *testing.T, client *Client) Event {
	t.Helper()

	select {
	case event := <-client.EventChan:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_BroadcastReachesAllClients(t *testing.T) {
	m := startManager(t)

	a, err := m.Connect("")
	require.NoError(t, err)
	b, err := m.Connect("")
	require.NoError(t, err)

	m.Emit(NewCatalogRefreshedEvent("v1", 42))

	assert.Equal(t, EventCatalogRefreshed, waitForEvent(t, a).Type)
	assert.Equal(t, EventCatalogRefreshed, waitForEvent(t, b).Type)
}

func TestManager_UserEventsFilteredByUser(t *testing.T) {
	m := startManager(t)

	target, err := m.Connect("user-1")
	require.NoError(t, err)
	other, err := m.Connect("user-2")
	require.NoError(t, err)

	entries := []*domain.CartEntry{{ID: "e1", UserID: "user-1", BookID: "book-1"}}
	m.Emit(NewCartChangedEvent("user-1", "added", "book-1", entries))

	event := waitForEvent(t, target)
	assert.Equal(t, EventCartChanged, event.Type)

	select {
	case got := <-other.EventChan:
		t.Fatalf("unexpected event for other user: %v", got.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestManager_DisconnectRemovesClient(t *testing.T) {
	m := startManager(t)

	client, err := m.Connect("")
	require.NoError(t, err)
	require.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)

	assert.Equal(t, 0, m.ClientCount())
	// Disconnecting twice is safe.
	m.Disconnect(client.ID)
}

func TestManager_ShutdownDropsLateEvents(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))

	// Emitting after shutdown must not panic.
	m.Emit(NewCatalogRefreshedEvent("v1", 1))
}
