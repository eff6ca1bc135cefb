package httpapi

import (
	"encoding/json"
	"time"

	"voucherdesk/internal/core"
)

// Wire records for the service's JSON payloads. The domain types stay
// free of serialization concerns; in particular Provisional is a local
// tag and never crosses the wire.

type voucherRecord struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	PackageType    string    `json:"package_type"`
	CreatedAt      time.Time `json:"created_at"`
	ExpirationDate time.Time `json:"expiration_date"`
	Used           bool      `json:"used"`
	UsedBy         string    `json:"used_by"`
}

func (r voucherRecord) toDomain() core.Voucher {
	return core.Voucher{
		ID:             r.ID,
		Code:           r.Code,
		PackageType:    core.PackageType(r.PackageType),
		CreatedAt:      r.CreatedAt,
		ExpirationDate: r.ExpirationDate,
		Used:           r.Used,
		UsedBy:         r.UsedBy,
	}
}

type paymentRecord struct {
	ID                 string      `json:"id"`
	VoucherCode        string      `json:"voucher_code"`
	Gateway            string      `json:"gateway"`
	Amount             json.Number `json:"amount"`
	PhoneNumber        string      `json:"phone_number"`
	Status             string      `json:"status"`
	GatewayReferenceID string      `json:"gateway_reference_id"`
	ErrorMessage       string      `json:"error_message"`
	CreatedAt          time.Time   `json:"created_at"`
}

func (r paymentRecord) toDomain() (core.Payment, error) {
	amount := core.Money{}
	if r.Amount != "" {
		parsed, err := core.ParseAmount(r.Amount.String())
		if err != nil {
			return core.Payment{}, err
		}
		amount = parsed
	}
	return core.Payment{
		ID:                 r.ID,
		VoucherCode:        r.VoucherCode,
		Gateway:            core.Gateway(r.Gateway),
		Amount:             amount,
		PhoneNumber:        r.PhoneNumber,
		Status:             core.PaymentStatus(r.Status),
		GatewayReferenceID: r.GatewayReferenceID,
		ErrorMessage:       r.ErrorMessage,
		CreatedAt:          r.CreatedAt,
	}, nil
}

type generateVoucherBody struct {
	AmountMB       int    `json:"amountMb"`
	ExpiresDays    int    `json:"expiresDays"`
	Phone          string `json:"phone"`
	PackageType    string `json:"package_type"`
	ExpirationDate string `json:"expiration_date"`
}

type generateVoucherResponse struct {
	Voucher *voucherRecord `json:"voucher"`
}

type initPaymentBody struct {
	Gateway     string      `json:"gateway"`
	Amount      json.Number `json:"amount"`
	PhoneNumber string      `json:"phoneNumber"`
	VoucherCode string      `json:"voucherCode"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}
