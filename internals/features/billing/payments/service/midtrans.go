package service

import (
	"context"
	"unicode/utf8"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/pkg/errors"

	"ecclesia_backend/internals/features/billing/payments/model"
)

/* =========================================================
   Midtrans client
========================================================= */

type Customer struct {
	Name  string
	Email string
	Phone string
}

type SnapResult struct {
	Token       string
	RedirectURL string
}

type QRISResult struct {
	QRString      string
	TransactionID string
}

// Charger starts a payment at the provider.
type Charger interface {
	Snap(ctx context.Context, p model.SubscriptionPaymentModel, planName string, cust Customer) (*SnapResult, error)
	QRIS(ctx context.Context, p model.SubscriptionPaymentModel) (*QRISResult, error)
}

type Midtrans struct {
	snap snap.Client
	core coreapi.Client
}

// InitMidtrans returns nil when no server key is configured.
func InitMidtrans(serverKey string, useProduction bool) *Midtrans {
	if serverKey == "" {
		return nil
	}
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	m := &Midtrans{}
	m.snap.New(serverKey, env)
	m.core.New(serverKey, env)
	return m
}

func (m *Midtrans) Snap(_ context.Context, p model.SubscriptionPaymentModel, planName string, cust Customer) (*SnapResult, error) {
	gross := GrossAmount(p.SubscriptionPaymentAmountCents)
	if gross <= 0 {
		return nil, errors.New("invalid payment amount")
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.SubscriptionPaymentOrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: truncate(cust.Name, 50),
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       p.SubscriptionPaymentOrderID,
			Price:    gross,
			Qty:      1,
			Name:     truncate(defaultString(planName, "Subscription"), 50),
			Category: "SUBSCRIPTION",
		}},
	}
	resp, mErr := m.snap.CreateTransaction(req)
	if mErr != nil {
		return nil, errors.Wrap(mErr, "midtrans snap")
	}
	return &SnapResult{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (m *Midtrans) QRIS(_ context.Context, p model.SubscriptionPaymentModel) (*QRISResult, error) {
	gross := GrossAmount(p.SubscriptionPaymentAmountCents)
	if gross <= 0 {
		return nil, errors.New("invalid payment amount")
	}
	req := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.SubscriptionPaymentOrderID,
			GrossAmt: gross,
		},
		Qris: &coreapi.QrisDetails{Acquirer: "gopay"},
	}
	resp, mErr := m.core.ChargeTransaction(req)
	if mErr != nil {
		return nil, errors.Wrap(mErr, "midtrans qris")
	}
	if resp.QRString == "" {
		return nil, errors.New("midtrans qris: empty qr_string")
	}
	return &QRISResult{QRString: resp.QRString, TransactionID: resp.TransactionID}, nil
}

// truncate keeps at most n characters of s.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
