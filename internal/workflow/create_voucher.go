package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"voucherdesk/internal/core"
	"voucherdesk/internal/notify"
	"voucherdesk/internal/remote"
	"voucherdesk/internal/store"
)

// CreateVoucherInput is the user's request to issue a new voucher.
// A zero ExpirationDate means "now plus ExpiresDays days".
type CreateVoucherInput struct {
	AmountMB       int
	ExpiresDays    int
	Phone          string
	PackageType    core.PackageType
	ExpirationDate time.Time
}

// CreateVoucher submits voucher creation requests. On success the echoed
// (or fabricated) record is shown provisionally and a full reload fetches
// authoritative state; on failure local state is untouched.
type CreateVoucher struct {
	remote   remote.VoucherGenerator
	vouchers *store.VoucherStore
	notifier notify.Notifier
	now      func() time.Time
	newID    func() string

	mu    sync.Mutex
	state State
}

func NewCreateVoucher(generator remote.VoucherGenerator, vouchers *store.VoucherStore, notifier notify.Notifier) *CreateVoucher {
	return &CreateVoucher{
		remote:   generator,
		vouchers: vouchers,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
		state:    StateIdle,
	}
}

// State reports the current workflow state.
func (w *CreateVoucher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit runs one create attempt. A second Submit while one is in flight
// returns ErrSubmitInProgress without issuing a request.
func (w *CreateVoucher) Submit(ctx context.Context, in CreateVoucherInput) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	if in.ExpirationDate.IsZero() {
		in.ExpirationDate = w.now().Add(time.Duration(in.ExpiresDays) * 24 * time.Hour)
	}

	created, err := w.remote.GenerateVoucher(ctx, remote.GenerateVoucherRequest{
		AmountMB:       in.AmountMB,
		ExpiresDays:    in.ExpiresDays,
		Phone:          in.Phone,
		PackageType:    in.PackageType,
		ExpirationDate: in.ExpirationDate,
	})
	if err != nil {
		w.notifier.Notify("Failed to create voucher: "+err.Error(), notify.SeverityError)
		return fmt.Errorf("generate voucher: %w", err)
	}

	placeholder := w.placeholder(created, in)
	w.vouchers.Prepend(placeholder)
	w.notifier.Notify("Voucher generated successfully!", notify.SeveritySuccess)

	// Reconcile with authoritative state. The store surfaces its own
	// failure; the create itself already succeeded.
	if err := w.vouchers.Load(ctx); err != nil {
		slog.WarnContext(ctx, "Post-create reload failed", "error", err)
	}
	return nil
}

// placeholder picks the provisional record to show until the reload
// lands: the echoed voucher when the response carried one, otherwise a
// fabricated one with a client-generated code.
func (w *CreateVoucher) placeholder(created *core.Voucher, in CreateVoucherInput) core.Voucher {
	if created != nil {
		return *created
	}
	return core.Voucher{
		ID:             w.newID(),
		Code:           core.NewVoucherCode(),
		PackageType:    in.PackageType,
		CreatedAt:      w.now(),
		ExpirationDate: in.ExpirationDate,
		Used:           false,
	}
}

func (w *CreateVoucher) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	w.state = StateSubmitting
	return nil
}

func (w *CreateVoucher) end() {
	w.mu.Lock()
	w.state = StateIdle
	w.mu.Unlock()
}
