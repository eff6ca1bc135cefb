// Package store holds the authoritative local snapshot of each remote
// collection. There is exactly one writer per entity kind (the store
// itself); every reader gets a copy of the latest snapshot, and stats are
// folded over that snapshot on demand so they can never drift from it.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"voucherdesk/internal/core"
	"voucherdesk/internal/notify"
	"voucherdesk/internal/remote"
)

// VoucherStore owns the local voucher snapshot.
type VoucherStore struct {
	remote   remote.VoucherLister
	notifier notify.Notifier
	now      func() time.Time

	mu       sync.Mutex
	loading  bool
	snapshot []core.Voucher
}

func NewVoucherStore(lister remote.VoucherLister, notifier notify.Notifier) *VoucherStore {
	return &VoucherStore{
		remote:   lister,
		notifier: notifier,
		now:      time.Now,
	}
}

// Load fetches the full collection and replaces the snapshot wholesale.
// On failure the snapshot is cleared rather than left stale: an empty
// list with zero stats is preferable to data the service did not confirm.
// The loading flag does not serialize callers; the UI boundary does that.
func (s *VoucherStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	vouchers, err := s.remote.ListVouchers(ctx)
	if err != nil {
		s.mu.Lock()
		s.snapshot = nil
		s.mu.Unlock()
		slog.ErrorContext(ctx, "Voucher load failed", "error", err)
		s.notifier.Notify("Failed to load vouchers: "+err.Error(), notify.SeverityError)
		return fmt.Errorf("load vouchers: %w", err)
	}

	s.mu.Lock()
	s.snapshot = append([]core.Voucher(nil), vouchers...)
	s.mu.Unlock()
	slog.DebugContext(ctx, "Voucher snapshot replaced", "count", len(vouchers))
	return nil
}

// Snapshot returns a copy of the current snapshot.
func (s *VoucherStore) Snapshot() []core.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Voucher(nil), s.snapshot...)
}

// Stats folds the aggregator over the current snapshot at call time.
func (s *VoucherStore) Stats() core.VoucherStats {
	return core.AggregateVoucherStats(s.Snapshot(), s.now())
}

// Filter returns the matching subsequence of the current snapshot.
func (s *VoucherStore) Filter(search, facet string) []core.Voucher {
	return core.FilterVouchers(s.Snapshot(), search, facet, s.now())
}

// Loading reports whether a load is in flight.
func (s *VoucherStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Prepend inserts a provisional record at the head of the snapshot. It is
// used only for the optimistic insert after a successful create and is
// superseded wholesale by the next successful Load.
func (s *VoucherStore) Prepend(v core.Voucher) {
	v.Provisional = true
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = append([]core.Voucher{v}, s.snapshot...)
}
