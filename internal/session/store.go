package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/google/uuid"
)

const (
	keyPrefix = "session:"
	// DefaultTTL is how long an untouched session lives.
	DefaultTTL = 30 * time.Minute
)

// Store keeps session states in an in-memory BadgerDB. Entries expire after
// the TTL; nothing is written to disk.
type Store struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens an in-memory store. A non-positive ttl selects DefaultTTL.
func OpenStore(ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db, ttl: ttl, logger: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the session with id, or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (State, error) {
	var st State
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &st)
		})
	})
	return st, err
}

// Put stores st under st.ID and restarts its TTL.
func (s *Store) Put(st State) error {
	value, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.SetEntry(badger.NewEntry(key(st.ID), value).WithTTL(s.ttl))
	})
}

// Delete removes the session with id. Missing ids are not an error.
func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(key(id))
	})
}

func key(id uuid.UUID) []byte {
	return []byte(keyPrefix + id.String())
}
