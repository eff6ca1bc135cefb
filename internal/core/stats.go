package core

import "time"

type (
	// VoucherStats is a pure fold over a voucher snapshot. Revenue sums
	// the package price table over ALL vouchers regardless of status: it
	// approximates gross issuance value, not realized revenue.
	VoucherStats struct {
		Total   int
		Active  int
		Used    int
		Expired int
		Revenue Money
	}

	// PaymentStats is a pure fold over a payment snapshot. TotalAmount
	// sums only payments with status PAID.
	PaymentStats struct {
		Total       int
		Paid        int
		Pending     int
		Failed      int
		TotalAmount Money
	}
)

// AggregateVoucherStats recomputes voucher stats from the snapshot at the
// given time. Counters are never maintained independently of a snapshot,
// so the result cannot drift from what a view of the same snapshot shows.
func AggregateVoucherStats(snapshot []Voucher, now time.Time) VoucherStats {
	var s VoucherStats
	s.Total = len(snapshot)
	for _, v := range snapshot {
		switch v.Status(now) {
		case VoucherActive:
			s.Active++
		case VoucherUsed:
			s.Used++
		case VoucherExpired:
			s.Expired++
		}
		s.Revenue = s.Revenue.Add(v.PackageType.Price())
	}
	return s
}

// AggregatePaymentStats recomputes payment stats from the snapshot.
func AggregatePaymentStats(snapshot []Payment) PaymentStats {
	var s PaymentStats
	s.Total = len(snapshot)
	for _, p := range snapshot {
		switch p.Status {
		case PaymentPaid:
			s.Paid++
			s.TotalAmount = s.TotalAmount.Add(p.Amount)
		case PaymentPending:
			s.Pending++
		case PaymentFailed:
			s.Failed++
		}
	}
	return s
}
