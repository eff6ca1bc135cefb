package core

import (
	"strings"
	"time"
)

// FilterVouchers returns the stable subsequence of the snapshot matching
// the search text and status facet. A voucher matches the search if the
// case-insensitive substring test succeeds against its code, package type,
// or used-by field. The facet StatusAll matches everything; any other
// value is compared against the status derived at the given time.
func FilterVouchers(snapshot []Voucher, search, facet string, now time.Time) []Voucher {
	needle := strings.ToLower(search)
	out := make([]Voucher, 0, len(snapshot))
	for _, v := range snapshot {
		if !voucherMatches(v, needle) {
			continue
		}
		if facet != StatusAll && string(v.Status(now)) != facet {
			continue
		}
		out = append(out, v)
	}
	return out
}

func voucherMatches(v Voucher, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Code), needle) ||
		strings.Contains(strings.ToLower(string(v.PackageType)), needle) ||
		(v.UsedBy != "" && strings.Contains(strings.ToLower(v.UsedBy), needle))
}

// FilterPayments is the payment counterpart of FilterVouchers. The search
// is case-insensitive over voucher code, gateway, and gateway reference,
// and a raw substring test over the phone number (digits are not folded).
// Payments carry their status, so no derivation time is needed.
func FilterPayments(snapshot []Payment, search, facet string) []Payment {
	needle := strings.ToLower(search)
	out := make([]Payment, 0, len(snapshot))
	for _, p := range snapshot {
		if !paymentMatches(p, search, needle) {
			continue
		}
		if facet != StatusAll && string(p.Status) != facet {
			continue
		}
		out = append(out, p)
	}
	return out
}

func paymentMatches(p Payment, search, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.VoucherCode), needle) ||
		strings.Contains(strings.ToLower(string(p.Gateway)), needle) ||
		strings.Contains(p.PhoneNumber, search) ||
		(p.GatewayReferenceID != "" && strings.Contains(strings.ToLower(p.GatewayReferenceID), needle))
}
