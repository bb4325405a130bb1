package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/shopnex/internal/catalog"
	"github.com/angelmondragon/shopnex/pkg/enums"
	"github.com/angelmondragon/shopnex/pkg/logger"
	"github.com/angelmondragon/shopnex/pkg/metrics"
	"github.com/angelmondragon/shopnex/pkg/storage"
	"github.com/shopspring/decimal"
)

const persistTimeout = 5 * time.Second

// Listener receives the cart state after each committed mutation.
type Listener func(Snapshot)

// StoreParams wires a Store. A nil Storage means no durable storage is
// available: the cart works in memory and every write counts as a failure.
type StoreParams struct {
	Storage  storage.Storage
	SlotName string
	Logger   *logger.Logger
	Metrics  *metrics.CartMetrics
}

// Store owns one client's cart. Mutations are applied, persisted and
// broadcast under a single writer lock, so every call observes all earlier
// calls and listeners see mutations in invocation order. Listeners run on the
// mutating goroutine and must not call mutating methods.
type Store struct {
	writeMu sync.Mutex

	mu    sync.RWMutex
	lines []Line

	storage storage.Storage
	slot    string
	logg    *logger.Logger
	metrics *metrics.CartMetrics

	listenersMu sync.Mutex
	listeners   []subscription
	nextID      uint64
}

type subscription struct {
	id uint64
	fn Listener
}

// NewStore builds a Store and rehydrates it from the storage slot. Missing,
// unreadable or malformed state yields an empty cart.
func NewStore(ctx context.Context, params StoreParams) *Store {
	s := &Store{
		lines:   []Line{},
		storage: params.Storage,
		slot:    params.SlotName,
		logg:    params.Logger,
		metrics: params.Metrics,
	}
	if s.slot == "" {
		s.slot = DefaultSlot
	}
	if s.logg == nil {
		s.logg = logger.Nop()
	}
	s.rehydrate(s.logg.WithSlot(ctx, s.slot))
	s.metrics.SetSize(len(s.lines), countOf(s.lines))
	return s
}

// AddToCart increments the line for product.ID, or appends a new line with
// quantity 1 holding a snapshot of product. It returns the committed cart.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product) Snapshot {
	return s.mutate(ctx, enums.CartOperationAdd, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == product.ID {
				lines[i].Quantity++
				return lines
			}
		}
		return append(lines, Line{Product: product, Quantity: 1})
	})
}

// RemoveFromCart drops the line for productID. Unknown ids are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) Snapshot {
	return s.mutate(ctx, enums.CartOperationRemove, func(lines []Line) []Line {
		out := make([]Line, 0, len(lines))
		for _, l := range lines {
			if l.ID != productID {
				out = append(out, l)
			}
		}
		return out
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, quantity int) Snapshot {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	return s.mutate(ctx, enums.CartOperationUpdateQuantity, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == productID {
				lines[i].Quantity = quantity
				break
			}
		}
		return lines
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) Snapshot {
	return s.mutate(ctx, enums.CartOperationClear, func([]Line) []Line {
		return []Line{}
	})
}

// CartTotal is Σ(price × quantity) over the line snapshots.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalOf(s.lines)
}

// CartCount is the total number of units, not distinct lines.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countOf(s.lines)
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLines(s.lines)
}

// Line returns the line for productID, if present.
func (s *Store) Line(productID int) (Line, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lines {
		if l.ID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// Snapshot returns the lines and aggregates from one consistent read.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newSnapshot(cloneLines(s.lines))
}

// Subscribe registers fn to run after every mutation. The returned func
// unregisters it and may be called more than once.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.listenersMu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) mutate(ctx context.Context, op enums.CartOperation, apply func([]Line) []Line) Snapshot {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.lines = apply(s.lines)
	committed := cloneLines(s.lines)
	s.mu.Unlock()

	s.metrics.IncMutation(op)
	s.metrics.SetSize(len(committed), countOf(committed))

	ctx = s.logg.WithFields(ctx, map[string]any{"slot": s.slot, "op": op.String()})
	s.persist(ctx, committed)

	snapshot := newSnapshot(committed)
	s.notify(snapshot)
	return Snapshot{Lines: cloneLines(snapshot.Lines), Total: snapshot.Total, Count: snapshot.Count}
}

// persist writes the whole cart to the slot. Failures are logged and counted;
// the in-memory cart is already committed and stays authoritative. The write
// outlives the caller's cancellation so a committed mutation is never lost
// to a disconnect or shutdown, bounded by persistTimeout instead.
func (s *Store) persist(ctx context.Context, lines []Line) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			s.metrics.IncPersistFailure(enums.PersistFailurePanic)
			s.logg.WarnErr(ctx, "cart.persist_failed", fmt.Errorf("storage panic: %v", rec))
		}
	}()

	if s.storage == nil {
		s.metrics.IncPersistFailure(enums.PersistFailureNoStorage)
		s.logg.Debug(ctx, "cart.persist_skipped")
		return
	}

	payload, err := EncodeState(lines)
	if err != nil {
		s.metrics.IncPersistFailure(enums.PersistFailureEncode)
		s.logg.WarnErr(ctx, "cart.persist_failed", err)
		return
	}

	start := time.Now()
	err = s.storage.SetItem(ctx, s.slot, string(payload))
	s.metrics.ObservePersist(time.Since(start))
	if err != nil {
		s.metrics.IncPersistFailure(failureReason(err))
		s.logg.WarnErr(ctx, "cart.persist_failed", err)
	}
}

func (s *Store) rehydrate(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			s.lines = []Line{}
			s.metrics.IncRehydration(enums.RehydrationPanic)
			s.logg.WarnErr(ctx, "cart.rehydrate_failed", fmt.Errorf("storage panic: %v", rec))
		}
	}()

	if s.storage == nil {
		s.metrics.IncRehydration(enums.RehydrationNoStorage)
		return
	}

	raw, err := s.storage.GetItem(ctx, s.slot)
	if errors.Is(err, storage.ErrNotFound) {
		s.metrics.IncRehydration(enums.RehydrationEmpty)
		return
	}
	if err != nil {
		s.metrics.IncRehydration(enums.RehydrationUnavailable)
		s.logg.WarnErr(ctx, "cart.rehydrate_failed", err)
		return
	}

	lines, dropped, err := DecodeState([]byte(raw))
	if err != nil {
		s.metrics.IncRehydration(enums.RehydrationMalformed)
		s.logg.WarnErr(ctx, "cart.rehydrate_malformed", err)
		return
	}
	if dropped > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped_lines", dropped), "cart.rehydrate_dropped_lines")
	}

	s.lines = lines
	s.metrics.IncRehydration(enums.RehydrationRestored)
	s.logg.Info(s.logg.WithField(ctx, "lines", len(lines)), "cart.rehydrated")
}

func (s *Store) notify(snapshot Snapshot) {
	s.listenersMu.Lock()
	subs := make([]subscription, len(s.listeners))
	copy(subs, s.listeners)
	s.listenersMu.Unlock()

	for _, sub := range subs {
		sub.fn(Snapshot{
			Lines: cloneLines(snapshot.Lines),
			Total: snapshot.Total,
			Count: snapshot.Count,
		})
	}
}

// failureReason checks cancellation first: backends wrap every cause in
// ErrUnavailable.
func failureReason(err error) enums.PersistFailure {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return enums.PersistFailureCanceled
	case errors.Is(err, storage.ErrQuotaExceeded):
		return enums.PersistFailureQuotaExceeded
	case errors.Is(err, storage.ErrUnavailable):
		return enums.PersistFailureUnavailable
	default:
		return enums.PersistFailureUnknown
	}
}
