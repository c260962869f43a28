package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/billing/payments/model"
)

/* ===================== Midtrans ===================== */

// MidtransSignature is sha512(order_id + status_code + gross_amount + server_key), hex.
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func VerifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, got string) bool {
	if serverKey == "" || got == "" {
		return false
	}
	want := MidtransSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(got))) == 1
}

// MapMidtransStatus returns the payment status for a notification; ok=false means ignore.
func MapMidtransStatus(transactionStatus, fraudStatus string) (string, bool) {
	switch strings.ToLower(transactionStatus) {
	case "capture":
		switch strings.ToLower(fraudStatus) {
		case "", "accept":
			return model.StatusPaid, true
		case "challenge":
			return model.StatusPending, true
		default:
			return model.StatusFailed, true
		}
	case "settlement":
		return model.StatusPaid, true
	case "pending":
		return model.StatusPending, true
	case "expire":
		return model.StatusExpired, true
	case "cancel", "deny", "failure":
		return model.StatusFailed, true
	}
	return "", false
}

/* ===================== Asaas ===================== */

func VerifyAsaasToken(configured, got string) bool {
	if configured == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(got)) == 1
}

func MapAsaasEvent(event string) (string, bool) {
	switch strings.ToUpper(event) {
	case "PAYMENT_RECEIVED", "PAYMENT_CONFIRMED":
		return model.StatusPaid, true
	case "PAYMENT_OVERDUE":
		return model.StatusOverdue, true
	case "PAYMENT_DELETED", "PAYMENT_REFUNDED":
		return model.StatusCanceled, true
	}
	return "", false
}

/* ===================== Church effects ===================== */

// NextPaymentDate extends from the later of now and the current due date.
func NextPaymentDate(now time.Time, current *time.Time) time.Time {
	base := now
	if current != nil && current.After(now) {
		base = *current
	}
	return base.AddDate(0, 1, 0)
}

// ChurchStatusFor is the church status a payment status implies, if any.
func ChurchStatusFor(paymentStatus string) (string, bool) {
	switch paymentStatus {
	case model.StatusPaid:
		return constants.ChurchStatusActive, true
	case model.StatusOverdue:
		return constants.ChurchStatusOverdue, true
	}
	return "", false
}

// CanTransition guards payment rows: a paid row only moves to canceled.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if from == model.StatusPaid {
		return to == model.StatusCanceled
	}
	return true
}

/* ===================== Orders ===================== */

func NewOrderID(churchID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("SUB-%s-%d", strings.ToUpper(churchID.String()[:8]), now.UnixMilli())
}

// GrossAmount converts cents to the whole-unit amount Midtrans charges, rounding up.
func GrossAmount(cents int64) int64 {
	if cents <= 0 {
		return 0
	}
	return (cents + 99) / 100
}
