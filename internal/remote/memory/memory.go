// Package memory is an in-memory implementation of the remote ports.
// It backs tests and the offline demo mode of the CLI.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"voucherdesk/internal/core"
	"voucherdesk/internal/remote"
)

type Store struct {
	mu       sync.Mutex
	vouchers []core.Voucher
	payments []core.Payment
	fail     error
	nextID   int
}

// Ensure interface conformance
var (
	_ remote.VoucherLister    = (*Store)(nil)
	_ remote.VoucherGenerator = (*Store)(nil)
	_ remote.PaymentInitiator = (*Store)(nil)
	_ remote.PaymentLister    = (*Store)(nil)
	_ remote.Authenticator    = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// Seed replaces the stored collections.
func (s *Store) Seed(vouchers []core.Voucher, payments []core.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vouchers = append([]core.Voucher(nil), vouchers...)
	s.payments = append([]core.Payment(nil), payments...)
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *Store) ListVouchers(_ context.Context) ([]core.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	return append([]core.Voucher(nil), s.vouchers...), nil
}

// GenerateVoucher creates and stores a voucher, echoing the record back
// the way the real service does.
func (s *Store) GenerateVoucher(_ context.Context, req remote.GenerateVoucherRequest) (*core.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	s.nextID++
	v := core.Voucher{
		ID:             fmt.Sprintf("mem-v%d", s.nextID),
		Code:           core.NewVoucherCode(),
		PackageType:    req.PackageType,
		CreatedAt:      time.Now().UTC(),
		ExpirationDate: req.ExpirationDate,
	}
	s.vouchers = append([]core.Voucher{v}, s.vouchers...)
	return &v, nil
}

func (s *Store) InitPayment(_ context.Context, req remote.InitPaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.nextID++
	s.payments = append([]core.Payment{{
		ID:          fmt.Sprintf("mem-p%d", s.nextID),
		VoucherCode: req.VoucherCode,
		Gateway:     req.Gateway,
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		Status:      core.PaymentPending,
		CreatedAt:   time.Now().UTC(),
	}}, s.payments...)
	return nil
}

func (s *Store) ListPayments(_ context.Context) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	return append([]core.Payment(nil), s.payments...), nil
}

// Login accepts any non-empty credentials.
func (s *Store) Login(_ context.Context, email, password string) (remote.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return remote.Session{}, s.fail
	}
	if email == "" || password == "" {
		return remote.Session{}, fmt.Errorf("missing credentials")
	}
	return remote.Session{Token: "mem-token", UserID: "mem-user", Email: email}, nil
}
