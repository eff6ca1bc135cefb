package store

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RefreshAll loads both collections concurrently. The kinds are
// independent, so a failure on one side does not cancel the other; the
// first error (if any) is returned after both loads resolve.
func RefreshAll(ctx context.Context, vouchers *VoucherStore, payments *PaymentStore) error {
	var g errgroup.Group
	g.Go(func() error { return vouchers.Load(ctx) })
	g.Go(func() error { return payments.Load(ctx) })
	return g.Wait()
}
