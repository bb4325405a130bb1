package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/shopnex/pkg/enums"
	"github.com/angelmondragon/shopnex/pkg/storage"
)

// contextAwareStorage fails like the sql and redis backends do when the
// context is already done.
type contextAwareStorage struct {
	*storage.Memory
}

func (c contextAwareStorage) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("set %q: %w: %w", key, storage.ErrUnavailable, err)
	}
	return c.Memory.SetItem(ctx, key, value)
}

func TestCanceledCallerStillPersists(t *testing.T) {
	mem := storage.NewMemory(0)
	st := contextAwareStorage{Memory: mem}
	s := newTestStore(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.AddToCart(ctx, product(1, "10"))
	s.AddToCart(ctx, product(1, "10"))
	s.AddToCart(ctx, product(2, "5"))

	restored := newTestStore(t, st)
	if restored.CartCount() != 3 {
		t.Fatalf("expected committed mutations to survive a restart, got count %d", restored.CartCount())
	}
	assertLines(t, restored.Lines(), [2]int{1, 2}, [2]int{2, 1})
}

func TestMutationsReturnCommittedSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemory(0))

	snap := s.AddToCart(ctx, product(1, "2.50"))
	snap = s.AddToCart(ctx, product(1, "2.50"))
	if snap.Count != 2 || !snap.Total.Equal(s.CartTotal()) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	snap.Lines[0].Quantity = 99
	if line, _ := s.Line(1); line.Quantity != 2 {
		t.Fatalf("returned snapshot must be a copy, store has %d", line.Quantity)
	}

	if snap = s.UpdateQuantity(ctx, 1, 0); len(snap.Lines) != 0 {
		t.Fatalf("expected empty cart after zero update, got %+v", snap.Lines)
	}
	s.AddToCart(ctx, product(3, "1"))
	if snap = s.ClearCart(ctx); snap.Count != 0 || len(snap.Lines) != 0 {
		t.Fatalf("expected empty snapshot after clear, got %+v", snap)
	}
}

func TestFailureReasonPrefersCancellation(t *testing.T) {
	cases := []struct {
		err  error
		want enums.PersistFailure
	}{
		{fmt.Errorf("sqlslot set: %w: %w", storage.ErrUnavailable, context.Canceled), enums.PersistFailureCanceled},
		{fmt.Errorf("redis set: %w: %w", storage.ErrUnavailable, context.DeadlineExceeded), enums.PersistFailureCanceled},
		{fmt.Errorf("redis set: %w", storage.ErrQuotaExceeded), enums.PersistFailureQuotaExceeded},
		{storage.ErrUnavailable, enums.PersistFailureUnavailable},
		{fmt.Errorf("mystery"), enums.PersistFailureUnknown},
	}
	for _, c := range cases {
		if got := failureReason(c.err); got != c.want {
			t.Fatalf("failureReason(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
