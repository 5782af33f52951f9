// Package store persists cart reservations and registered identities in an
// embedded Badger database.
package store

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/dgraph-io/badger/v4"

	"github.com/Abddev09/usat-library/internal/domain"
)

// EventEmitter is the interface for emitting change events.
// Store uses this to broadcast changes without depending on the notify
// implementation.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Event emitter for broadcasting changes.
	eventEmitter EventEmitter

	// Generic entities
	CartEntries *Entity[domain.CartEntry]
	Identities  *Entity[domain.Identity]
}

// New creates a new Store instance with the given database path and event
// emitter. The emitter is required and used to broadcast store changes.
func New(path string, logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:           db,
		logger:       logger,
		eventEmitter: emitter,
	}

	store.initCartEntries()
	store.initIdentities()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initCartEntries initializes the CartEntries entity on the store.
// Entries are keyed by (userID, bookID) so the primary key doubles as the
// idempotence guard for repeated adds.
func (s *Store) initCartEntries() {
	s.CartEntries = NewEntity[domain.CartEntry](s, "cart:")
}

// initIdentities initializes the Identities entity on the store.
// Indexes by normalized phone so lookups ignore formatting.
func (s *Store) initIdentities() {
	s.Identities = NewEntity[domain.Identity](s, "identity:").
		WithIndexTransform("phone",
			func(i *domain.Identity) []string {
				if i.Phone == "" {
					return nil
				}
				return []string{normalizePhone(i.Phone)}
			},
			normalizePhone,
		)
}

// normalizePhone strips everything but digits from a phone number.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
