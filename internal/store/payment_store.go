package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"voucherdesk/internal/core"
	"voucherdesk/internal/notify"
	"voucherdesk/internal/remote"
)

// PaymentStore owns the local payment snapshot. Payments are only ever
// mutated remotely; the store reconciles by reloading.
type PaymentStore struct {
	remote   remote.PaymentLister
	notifier notify.Notifier

	mu       sync.Mutex
	loading  bool
	snapshot []core.Payment
}

func NewPaymentStore(lister remote.PaymentLister, notifier notify.Notifier) *PaymentStore {
	return &PaymentStore{
		remote:   lister,
		notifier: notifier,
	}
}

// Load fetches the full collection and replaces the snapshot wholesale,
// clearing it on failure (fail closed, same as the voucher store).
func (s *PaymentStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	payments, err := s.remote.ListPayments(ctx)
	if err != nil {
		s.mu.Lock()
		s.snapshot = nil
		s.mu.Unlock()
		slog.ErrorContext(ctx, "Payment load failed", "error", err)
		s.notifier.Notify("Failed to load payments: "+err.Error(), notify.SeverityError)
		return fmt.Errorf("load payments: %w", err)
	}

	s.mu.Lock()
	s.snapshot = append([]core.Payment(nil), payments...)
	s.mu.Unlock()
	slog.DebugContext(ctx, "Payment snapshot replaced", "count", len(payments))
	return nil
}

// Snapshot returns a copy of the current snapshot.
func (s *PaymentStore) Snapshot() []core.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Payment(nil), s.snapshot...)
}

// Stats folds the aggregator over the current snapshot.
func (s *PaymentStore) Stats() core.PaymentStats {
	return core.AggregatePaymentStats(s.Snapshot())
}

// Filter returns the matching subsequence of the current snapshot.
func (s *PaymentStore) Filter(search, facet string) []core.Payment {
	return core.FilterPayments(s.Snapshot(), search, facet)
}

// Loading reports whether a load is in flight.
func (s *PaymentStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
