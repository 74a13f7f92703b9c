package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// RemoteStore is the shared durable source of truth for order history.
type RemoteStore interface {
	List(ctx context.Context) ([]models.Order, error)
	Insert(ctx context.Context, order models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// Cache is the register-local persistence slot. It survives restarts and is
// the only source consulted when the remote store is unreachable.
type Cache interface {
	ReadHistory(ctx context.Context) ([]models.Order, error)
	WriteHistory(ctx context.Context, orders []models.Order) error
	ClearHistory(ctx context.Context) error
	ReadBackup(ctx context.Context) (*BackupSnapshot, error)
	WriteBackup(ctx context.Context, snapshot BackupSnapshot) error
}

// Publisher broadcasts changes written by this register so other registers
// can merge them. Implementations must not be relied on for durability.
type Publisher interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
}

// Store holds the in-memory order history for one register and keeps the
// remote store and the local cache in step with it. The remote store is
// attempted on every mutating call; the local cache is written
// unconditionally, so a register that loses connectivity mid-shift keeps a
// complete record of its own sales.
type Store struct {
	mu          sync.RWMutex
	orders      []models.Order
	mode        enums.StoreMode
	loading     bool
	remote      RemoteStore
	cache       Cache
	publisher   Publisher
	registerID  string
	logg        *logger.Logger
	subscribers map[int]chan struct{}
	nextSub     int
}

// NewStore builds a Store. remote and publisher may be nil when the register
// runs standalone; cache and logg are required.
func NewStore(remote RemoteStore, cache Cache, publisher Publisher, registerID string, logg *logger.Logger) (*Store, error) {
	if cache == nil {
		return nil, errors.New(errors.CodeInternal, "history: cache is required")
	}
	if registerID == "" {
		return nil, errors.New(errors.CodeInternal, "history: register id is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "history: logger is required")
	}
	return &Store{
		mode:        enums.StoreModeInitializing,
		loading:     true,
		remote:      remote,
		cache:       cache,
		publisher:   publisher,
		registerID:  registerID,
		logg:        logg,
		subscribers: make(map[int]chan struct{}),
	}, nil
}

// Load hydrates the store. The remote store wins when reachable; otherwise
// the local cache is used and the store enters offline mode. A corrupt cache
// is treated as an empty history rather than a fatal condition; the
// register has to be able to open for business.
func (s *Store) Load(ctx context.Context) error {
	if s.remote != nil {
		orders, err := s.remote.List(ctx)
		if err == nil {
			s.mu.Lock()
			s.orders = orders
			s.mode = enums.StoreModeOnline
			s.loading = false
			s.mu.Unlock()
			if cacheErr := s.cache.WriteHistory(ctx, orders); cacheErr != nil {
				s.logg.Error(ctx, "history: failed to seed local cache", cacheErr)
			}
			s.notify()
			return nil
		}
		s.logg.Error(ctx, "history: remote store unreachable, falling back to local cache", err)
	}

	orders, err := s.cache.ReadHistory(ctx)
	if err != nil {
		s.logg.Error(ctx, "history: local cache unreadable, starting with empty history", err)
		orders = nil
	}

	s.mu.Lock()
	s.orders = orders
	s.mode = enums.StoreModeOffline
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddOrder records a completed order. The remote write is attempted first;
// its failure flips the store offline but never blocks the local write. The
// change is broadcast only when the remote write succeeded, since other
// registers hydrate from the remote store and must not learn of orders it
// never received.
func (s *Store) AddOrder(ctx context.Context, order models.Order) error {
	remoteOK := s.attemptRemote(ctx, "insert", func() error {
		return s.remote.Insert(ctx, order)
	})

	s.mu.Lock()
	s.orders, _ = applyChange(s.orders, ChangeEvent{Type: enums.ChangeEventInsert, Order: &order})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.cache.WriteHistory(ctx, snapshot); err != nil {
		s.logg.Error(ctx, "history: failed to persist order locally", err)
	}
	s.notify()

	if remoteOK {
		s.broadcast(ChangeEvent{Type: enums.ChangeEventInsert, Order: &order})
	}
	return nil
}

// DeleteOrder removes an order by id. Absent ids are a no-op locally, but
// the remote delete is still attempted in case another register holds it.
func (s *Store) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	remoteOK := s.attemptRemote(ctx, "delete", func() error {
		return s.remote.Delete(ctx, id)
	})

	s.mu.Lock()
	var changed bool
	s.orders, changed = applyChange(s.orders, ChangeEvent{Type: enums.ChangeEventDelete, OrderID: id})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		if err := s.cache.WriteHistory(ctx, snapshot); err != nil {
			s.logg.Error(ctx, "history: failed to persist deletion locally", err)
		}
		s.notify()
	}

	if remoteOK {
		s.broadcast(ChangeEvent{Type: enums.ChangeEventDelete, OrderID: id})
	}
	return nil
}

// ClearHistory wipes the full history, remote and local.
func (s *Store) ClearHistory(ctx context.Context) error {
	remoteOK := s.attemptRemote(ctx, "clear", func() error {
		return s.remote.DeleteAll(ctx)
	})

	s.mu.Lock()
	s.orders = nil
	s.mu.Unlock()

	if err := s.cache.ClearHistory(ctx); err != nil {
		s.logg.Error(ctx, "history: failed to clear local cache", err)
	}
	s.notify()

	if remoteOK {
		s.broadcast(ChangeEvent{Type: enums.ChangeEventClear})
	}
	return nil
}

// ApplyExternalChange merges a change that originated on another register.
// The caller is expected to have filtered out this register's own events.
func (s *Store) ApplyExternalChange(ctx context.Context, event ChangeEvent) {
	s.mu.Lock()
	var changed bool
	s.orders, changed = applyChange(s.orders, event)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !changed {
		return
	}
	if err := s.cache.WriteHistory(ctx, snapshot); err != nil {
		s.logg.Error(ctx, "history: failed to persist merged change locally", err)
	}
	s.notify()
}

// Orders returns the history, newest first.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Mode reports the current connectivity mode.
func (s *Store) Mode() enums.StoreMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Loading reports whether the initial hydration has completed.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// RegisterID identifies this register in broadcast change events.
func (s *Store) RegisterID() string {
	return s.registerID
}

// Subscribe returns a channel that receives a signal after every visible
// history change, plus a cancel function. The channel is buffered with a
// single slot; consumers that fall behind coalesce notifications instead of
// blocking writers.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// attemptRemote runs one remote operation. Every mutating call re-attempts
// the remote store independently; a failure flips the store offline for
// status purposes, but a success never flips it back. Only a restart with a
// reachable remote returns the register to online mode.
func (s *Store) attemptRemote(ctx context.Context, op string, fn func() error) bool {
	if s.remote == nil {
		return false
	}
	if err := fn(); err != nil {
		s.logg.Error(ctx, "history: remote "+op+" failed, continuing locally", err)
		s.mu.Lock()
		s.mode = enums.StoreModeOffline
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *Store) broadcast(event ChangeEvent) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.publisher.PublishChange(ctx, event); err != nil {
			s.logg.Error(ctx, "history: failed to broadcast change", err)
		}
	}()
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) snapshotLocked() []models.Order {
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}
