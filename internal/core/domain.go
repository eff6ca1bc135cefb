package core

import (
	"errors"
	"math/rand/v2"
	"time"
)

const (
	PackageBasic    PackageType = "basic"
	PackageStandard PackageType = "standard"
	PackagePremium  PackageType = "premium"
)

const (
	VoucherActive  VoucherStatus = "active"
	VoucherUsed    VoucherStatus = "used"
	VoucherExpired VoucherStatus = "expired"
)

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

const (
	GatewayMTN    Gateway = "MTN"
	GatewayAirtel Gateway = "AIRTEL"
)

// StatusAll is the facet value that matches every status when filtering.
const StatusAll = "all"

type (
	PackageType   string
	VoucherStatus string
	PaymentStatus string
	Gateway       string

	// Voucher is a prepaid access voucher as confirmed by the remote
	// service. Status is never stored on it; derive it with Status or
	// DeriveVoucherStatus so it cannot go stale across an expiry boundary.
	Voucher struct {
		ID             string
		Code           string
		PackageType    PackageType
		CreatedAt      time.Time
		ExpirationDate time.Time
		Used           bool
		UsedBy         string // empty when never redeemed

		// Provisional marks a locally fabricated record shown before the
		// next authoritative reload. Remote records never carry it.
		Provisional bool
	}

	// Payment is a mobile-money payment record. Unlike vouchers, payments
	// carry their status authoritatively from the remote service.
	Payment struct {
		ID                 string
		VoucherCode        string
		Gateway            Gateway
		Amount             Money
		PhoneNumber        string
		Status             PaymentStatus
		GatewayReferenceID string // empty until the gateway acknowledges
		ErrorMessage       string // set only for failed payments
		CreatedAt          time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrEmptyCode     = errors.New("empty voucher code")
)

// packagePrices is the fixed issuance price table in UGX cents.
// Unknown package types fall back to the standard price.
var packagePrices = map[PackageType]Money{
	PackageBasic:    {Cents: 500_00},
	PackageStandard: {Cents: 1000_00},
	PackagePremium:  {Cents: 2000_00},
}

// Price returns the issuance price for the package type, falling back to
// the standard price for unknown values.
func (p PackageType) Price() Money {
	if price, ok := packagePrices[p]; ok {
		return price
	}
	return packagePrices[PackageStandard]
}

// DeriveVoucherStatus maps raw voucher fields and a point in time to a
// status. It is pure and total: a used voucher is "used" regardless of its
// expiration date, everything else is "expired" past the expiration date
// and "active" before it.
func DeriveVoucherStatus(used bool, expiration time.Time, now time.Time) VoucherStatus {
	switch {
	case used:
		return VoucherUsed
	case expiration.Before(now):
		return VoucherExpired
	default:
		return VoucherActive
	}
}

// Status derives the voucher status at the given time.
func (v Voucher) Status(now time.Time) VoucherStatus {
	return DeriveVoucherStatus(v.Used, v.ExpirationDate, now)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewVoucherCode generates an 8-character code for provisional records.
// Codes on persisted vouchers are always remote-generated; this one only
// fills the gap until the next reload replaces the placeholder.
func NewVoucherCode() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
