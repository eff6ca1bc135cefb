package workflow

import (
	"context"
	"fmt"
	"sync"

	"voucherdesk/internal/core"
	"voucherdesk/internal/notify"
	"voucherdesk/internal/remote"
	"voucherdesk/internal/store"
)

// InitiatePaymentInput is the user's request to charge a mobile-money
// number for a voucher. PhoneNumber may arrive in any of the accepted
// local formats; Submit normalizes it.
type InitiatePaymentInput struct {
	Gateway     core.Gateway
	Amount      core.Money
	PhoneNumber string
	VoucherCode string
}

// InitiatePayment submits payment initiations. Payment state never
// mutates the voucher snapshot directly; the flows reconcile by reload.
type InitiatePayment struct {
	remote   remote.PaymentInitiator
	vouchers *store.VoucherStore
	notifier notify.Notifier

	// onClose is invoked after a successful submission to dismiss the
	// payment modal context. Optional.
	onClose func()

	mu    sync.Mutex
	state State
}

func NewInitiatePayment(initiator remote.PaymentInitiator, vouchers *store.VoucherStore, notifier notify.Notifier, onClose func()) *InitiatePayment {
	return &InitiatePayment{
		remote:   initiator,
		vouchers: vouchers,
		notifier: notifier,
		onClose:  onClose,
		state:    StateIdle,
	}
}

// State reports the current workflow state.
func (w *InitiatePayment) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Submit validates the input and runs one payment initiation. Validation
// failures are rejected before any request is issued.
func (w *InitiatePayment) Submit(ctx context.Context, in InitiatePaymentInput) error {
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	phone := core.NormalizePhone(in.PhoneNumber)
	if err := core.ValidatePhone(phone); err != nil {
		return err
	}
	if in.VoucherCode == "" {
		return core.ErrEmptyCode
	}

	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	err := w.remote.InitPayment(ctx, remote.InitPaymentRequest{
		Gateway:     in.Gateway,
		Amount:      in.Amount,
		PhoneNumber: phone,
		VoucherCode: in.VoucherCode,
	})
	if err != nil {
		w.notifier.Notify("Failed to initiate payment: "+err.Error(), notify.SeverityError)
		return fmt.Errorf("init payment: %w", err)
	}

	w.notifier.Notify("Payment initiated successfully!", notify.SeveritySuccess)
	if w.onClose != nil {
		w.onClose()
	}
	// Voucher state may have changed server-side; reconcile by reload.
	// The store reports its own failure.
	_ = w.vouchers.Load(ctx)
	return nil
}

func (w *InitiatePayment) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	w.state = StateSubmitting
	return nil
}

func (w *InitiatePayment) end() {
	w.mu.Lock()
	w.state = StateIdle
	w.mu.Unlock()
}
