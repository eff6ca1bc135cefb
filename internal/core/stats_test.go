package core

import (
	"testing"
	"time"
)

func TestAggregateVoucherStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshot := []Voucher{
		{Code: "AAAA0001", PackageType: PackageStandard, ExpirationDate: now.Add(time.Hour)},
		{Code: "AAAA0002", PackageType: PackagePremium, ExpirationDate: now.Add(-time.Hour)},
		{Code: "AAAA0003", PackageType: PackageBasic, ExpirationDate: now.Add(time.Hour), Used: true},
		{Code: "AAAA0004", PackageType: PackageStandard, ExpirationDate: now.Add(time.Hour)},
	}

	s := AggregateVoucherStats(snapshot, now)
	if s.Total != len(snapshot) {
		t.Fatalf("total expected %d, got %d", len(snapshot), s.Total)
	}
	if s.Active+s.Used+s.Expired != s.Total {
		t.Fatalf("status counts %d+%d+%d do not sum to total %d", s.Active, s.Used, s.Expired, s.Total)
	}
	if s.Active != 2 || s.Used != 1 || s.Expired != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	// 1000 + 2000 + 500 + 1000, over all vouchers regardless of status
	if want := int64(4500_00); s.Revenue.Cents != want {
		t.Fatalf("revenue expected %d, got %d", want, s.Revenue.Cents)
	}
}

func TestAggregateVoucherStatsRevenueFallback(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshot := []Voucher{
		{PackageType: PackageStandard, ExpirationDate: now.Add(time.Hour)},
		{PackageType: PackagePremium, ExpirationDate: now.Add(time.Hour)},
		{PackageType: PackageType("unknown"), ExpirationDate: now.Add(time.Hour)},
	}
	s := AggregateVoucherStats(snapshot, now)
	// 1000 + 2000 + 1000 (unknown priced as standard)
	if want := int64(4000_00); s.Revenue.Cents != want {
		t.Fatalf("revenue expected %d, got %d", want, s.Revenue.Cents)
	}
}

func TestAggregateVoucherStatsEmpty(t *testing.T) {
	s := AggregateVoucherStats(nil, time.Now())
	if s != (VoucherStats{}) {
		t.Fatalf("expected zero stats, got %+v", s)
	}
}

func TestAggregatePaymentStats(t *testing.T) {
	snapshot := []Payment{
		{Status: PaymentPaid, Amount: Money{Cents: 10050}},
		{Status: PaymentPending, Amount: Money{Cents: 99999}},
		{Status: PaymentPaid, Amount: Money{Cents: 5000}},
		{Status: PaymentFailed, Amount: Money{Cents: 77777}},
	}
	s := AggregatePaymentStats(snapshot)
	if s.Total != 4 || s.Paid != 2 || s.Pending != 1 || s.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	// only PAID amounts contribute
	if want := int64(15050); s.TotalAmount.Cents != want {
		t.Fatalf("total amount expected %d, got %d", want, s.TotalAmount.Cents)
	}
}
