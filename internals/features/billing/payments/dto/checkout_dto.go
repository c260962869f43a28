package dto

import (
	"time"

	"github.com/google/uuid"

	"ecclesia_backend/internals/features/billing/payments/model"
)

type CheckoutRequest struct {
	Method string `json:"method" validate:"required,oneof=snap qris"`
}

type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"subscription_payment_id"`
	OrderID     string    `json:"order_id"`
	Method      string    `json:"method"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	SnapToken   *string   `json:"snap_token,omitempty"`
	RedirectURL *string   `json:"redirect_url,omitempty"`
	QRString    *string   `json:"qr_string,omitempty"`
}

func NewCheckoutResponse(p model.SubscriptionPaymentModel) CheckoutResponse {
	return CheckoutResponse{
		PaymentID:   p.SubscriptionPaymentID,
		OrderID:     p.SubscriptionPaymentOrderID,
		Method:      p.SubscriptionPaymentMethod,
		AmountCents: p.SubscriptionPaymentAmountCents,
		Status:      p.SubscriptionPaymentStatus,
		SnapToken:   p.SubscriptionPaymentSnapToken,
		RedirectURL: p.SubscriptionPaymentRedirectURL,
		QRString:    p.SubscriptionPaymentQRString,
	}
}

// Overview is GET /api/a/billing.
type Overview struct {
	ChurchStatus    string     `json:"church_status"`
	NextPaymentDate *time.Time `json:"next_payment_date,omitempty"`
	IsChild         bool       `json:"is_child"`
	PlanID          *uuid.UUID `json:"plan_id,omitempty"`
	PlanCode        string     `json:"plan_code,omitempty"`
	PlanName        string     `json:"plan_name,omitempty"`
	PlanPriceCents  int64      `json:"plan_price_cents"`
}
