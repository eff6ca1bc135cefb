package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"voucherdesk/internal/core"
	"voucherdesk/internal/remote"
)

func TestSeedAndList(t *testing.T) {
	s := New()
	s.Seed([]core.Voucher{{ID: "v1", Code: "ABCD1234"}}, []core.Payment{{ID: "p1"}})

	vouchers, err := s.ListVouchers(context.Background())
	if err != nil || len(vouchers) != 1 {
		t.Fatalf("list vouchers: %v (%d)", err, len(vouchers))
	}
	// returned slice is a copy
	vouchers[0].Code = "MUTATED"
	again, _ := s.ListVouchers(context.Background())
	if again[0].Code != "ABCD1234" {
		t.Fatalf("internal state mutated: %q", again[0].Code)
	}

	payments, err := s.ListPayments(context.Background())
	if err != nil || len(payments) != 1 {
		t.Fatalf("list payments: %v (%d)", err, len(payments))
	}
}

func TestGenerateVoucherPrepends(t *testing.T) {
	s := New()
	s.Seed([]core.Voucher{{ID: "v1", Code: "OLD00001"}}, nil)

	v, err := s.GenerateVoucher(context.Background(), remote.GenerateVoucherRequest{
		PackageType:    core.PackagePremium,
		ExpirationDate: time.Now().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if v == nil || v.Code == "" || v.PackageType != core.PackagePremium {
		t.Fatalf("unexpected voucher: %+v", v)
	}

	vouchers, _ := s.ListVouchers(context.Background())
	if len(vouchers) != 2 || vouchers[0].ID != v.ID {
		t.Fatalf("expected new voucher first, got %+v", vouchers)
	}
}

func TestInitPaymentRecordsPending(t *testing.T) {
	s := New()
	err := s.InitPayment(context.Background(), remote.InitPaymentRequest{
		Gateway:     core.GatewayMTN,
		Amount:      core.Money{Cents: 10050},
		PhoneNumber: "+256770000000",
		VoucherCode: "ABCD1234",
	})
	if err != nil {
		t.Fatalf("init payment: %v", err)
	}
	payments, _ := s.ListPayments(context.Background())
	if len(payments) != 1 || payments[0].Status != core.PaymentPending {
		t.Fatalf("unexpected payments: %+v", payments)
	}
}

func TestFailWith(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	s.FailWith(boom)
	if _, err := s.ListVouchers(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	s.FailWith(nil)
	if _, err := s.ListVouchers(context.Background()); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
}
