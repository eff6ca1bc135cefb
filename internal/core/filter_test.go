package core

import (
	"testing"
	"time"
)

func TestFilterVouchers(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	active := now.Add(time.Hour)
	snapshot := []Voucher{
		{Code: "ABCD1234", PackageType: PackageStandard, ExpirationDate: active},
		{Code: "EFGH5678", PackageType: PackagePremium, ExpirationDate: now.Add(-time.Hour)},
		{Code: "IJKL9012", PackageType: PackageBasic, ExpirationDate: active, Used: true, UsedBy: "alice@example.com"},
	}

	t.Run("empty search matches all", func(t *testing.T) {
		got := FilterVouchers(snapshot, "", StatusAll, now)
		if len(got) != 3 {
			t.Fatalf("expected 3, got %d", len(got))
		}
	})

	t.Run("search by code is case-insensitive", func(t *testing.T) {
		got := FilterVouchers(snapshot, "abcd", StatusAll, now)
		if len(got) != 1 || got[0].Code != "ABCD1234" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("search by package type", func(t *testing.T) {
		got := FilterVouchers(snapshot, "premium", StatusAll, now)
		if len(got) != 1 || got[0].Code != "EFGH5678" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("search by used_by", func(t *testing.T) {
		got := FilterVouchers(snapshot, "ALICE", StatusAll, now)
		if len(got) != 1 || got[0].Code != "IJKL9012" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("status facet", func(t *testing.T) {
		got := FilterVouchers(snapshot, "", string(VoucherExpired), now)
		if len(got) != 1 || got[0].Code != "EFGH5678" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("order is preserved", func(t *testing.T) {
		got := FilterVouchers(snapshot, "", StatusAll, now)
		for i, v := range got {
			if v.Code != snapshot[i].Code {
				t.Fatalf("order changed at %d: %s", i, v.Code)
			}
		}
	})
}

func TestFilterPayments(t *testing.T) {
	snapshot := []Payment{
		{VoucherCode: "ABCD1234", Gateway: GatewayMTN, PhoneNumber: "+256770000001", Status: PaymentPaid},
		{VoucherCode: "EFGH5678", Gateway: GatewayAirtel, PhoneNumber: "+256770000002", Status: PaymentPending, GatewayReferenceID: "REF-99"},
	}

	t.Run("search by gateway", func(t *testing.T) {
		got := FilterPayments(snapshot, "mtn", StatusAll)
		if len(got) != 1 || got[0].VoucherCode != "ABCD1234" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("search by phone substring", func(t *testing.T) {
		got := FilterPayments(snapshot, "0000002", StatusAll)
		if len(got) != 1 || got[0].VoucherCode != "EFGH5678" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("search by gateway reference", func(t *testing.T) {
		got := FilterPayments(snapshot, "ref-99", StatusAll)
		if len(got) != 1 || got[0].VoucherCode != "EFGH5678" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("status facet", func(t *testing.T) {
		got := FilterPayments(snapshot, "", string(PaymentPaid))
		if len(got) != 1 || got[0].VoucherCode != "ABCD1234" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		got := FilterPayments(snapshot, "zzz", StatusAll)
		if len(got) != 0 {
			t.Fatalf("expected none, got %+v", got)
		}
	})
}
