// Package remote defines the ports to the voucher service. Adapters live
// in the httpapi (real service) and memory (fake) subpackages.
package remote

import (
	"context"
	"errors"
	"time"

	"voucherdesk/internal/core"
)

// ErrNoCredential is returned before any request is attempted when no
// bearer credential is available. Callers must not retry; the user has to
// log in first.
var ErrNoCredential = errors.New("no credential available")

type (
	// GenerateVoucherRequest is the payload for voucher creation. The
	// remote service owns the resulting record; ExpirationDate is already
	// resolved by the caller.
	GenerateVoucherRequest struct {
		AmountMB       int
		ExpiresDays    int
		Phone          string
		PackageType    core.PackageType
		ExpirationDate time.Time
	}

	// InitPaymentRequest is the payload for initiating a mobile-money
	// payment against a voucher.
	InitPaymentRequest struct {
		Gateway     core.Gateway
		Amount      core.Money
		PhoneNumber string
		VoucherCode string
	}

	// Session is an authenticated identity as returned by the service.
	Session struct {
		Token  string
		UserID string
		Email  string
	}
)

// Ports for the remote voucher service.
type (
	VoucherLister interface {
		ListVouchers(ctx context.Context) ([]core.Voucher, error)
	}

	// VoucherGenerator asks the service to create a voucher. A nil
	// voucher with a nil error means the service accepted the request
	// without echoing the record back.
	VoucherGenerator interface {
		GenerateVoucher(ctx context.Context, req GenerateVoucherRequest) (*core.Voucher, error)
	}

	PaymentInitiator interface {
		InitPayment(ctx context.Context, req InitPaymentRequest) error
	}

	PaymentLister interface {
		ListPayments(ctx context.Context) ([]core.Payment, error)
	}

	Authenticator interface {
		Login(ctx context.Context, email, password string) (Session, error)
	}

	// Service combines every port a full backend implements.
	Service interface {
		VoucherLister
		VoucherGenerator
		PaymentInitiator
		PaymentLister
		Authenticator
	}
)
