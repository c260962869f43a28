package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/billing/payments/model"
)

func TestMidtransSignature(t *testing.T) {
	sig := MidtransSignature("SUB-1", "200", "50.00", "server-key")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, MidtransSignature("SUB-1", "200", "50.00", "server-key"))
	assert.NotEqual(t, sig, MidtransSignature("SUB-1", "201", "50.00", "server-key"))

	assert.True(t, VerifyMidtransSignature("SUB-1", "200", "50.00", "server-key", sig))
	assert.False(t, VerifyMidtransSignature("SUB-1", "200", "50.01", "server-key", sig))
	assert.False(t, VerifyMidtransSignature("SUB-1", "200", "50.00", "other-key", sig))
	assert.False(t, VerifyMidtransSignature("SUB-1", "200", "50.00", "", sig))
	assert.False(t, VerifyMidtransSignature("SUB-1", "200", "50.00", "server-key", ""))
}

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		tx, fraud string
		want      string
		ok        bool
	}{
		{"settlement", "", model.StatusPaid, true},
		{"capture", "accept", model.StatusPaid, true},
		{"capture", "", model.StatusPaid, true},
		{"capture", "challenge", model.StatusPending, true},
		{"capture", "deny", model.StatusFailed, true},
		{"pending", "", model.StatusPending, true},
		{"expire", "", model.StatusExpired, true},
		{"cancel", "", model.StatusFailed, true},
		{"deny", "", model.StatusFailed, true},
		{"SETTLEMENT", "", model.StatusPaid, true},
		{"refund", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		got, ok := MapMidtransStatus(tc.tx, tc.fraud)
		assert.Equal(t, tc.ok, ok, "%s/%s", tc.tx, tc.fraud)
		assert.Equal(t, tc.want, got, "%s/%s", tc.tx, tc.fraud)
	}
}

func TestMapAsaasEvent(t *testing.T) {
	cases := map[string]string{
		"PAYMENT_RECEIVED":  model.StatusPaid,
		"PAYMENT_CONFIRMED": model.StatusPaid,
		"PAYMENT_OVERDUE":   model.StatusOverdue,
		"PAYMENT_DELETED":   model.StatusCanceled,
		"PAYMENT_REFUNDED":  model.StatusCanceled,
	}
	for ev, want := range cases {
		got, ok := MapAsaasEvent(ev)
		assert.True(t, ok, ev)
		assert.Equal(t, want, got, ev)
	}
	_, ok := MapAsaasEvent("PAYMENT_CREATED")
	assert.False(t, ok)
}

func TestVerifyAsaasToken(t *testing.T) {
	assert.True(t, VerifyAsaasToken("tok", "tok"))
	assert.False(t, VerifyAsaasToken("tok", "tok2"))
	assert.False(t, VerifyAsaasToken("", ""))
	assert.False(t, VerifyAsaasToken("tok", ""))
}

func TestNextPaymentDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC), NextPaymentDate(now, nil))

	past := now.AddDate(0, 0, -20)
	assert.Equal(t, time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC), NextPaymentDate(now, &past))

	future := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC), NextPaymentDate(now, &future))
}

func TestChurchStatusFor(t *testing.T) {
	st, ok := ChurchStatusFor(model.StatusPaid)
	assert.True(t, ok)
	assert.Equal(t, constants.ChurchStatusActive, st)

	st, ok = ChurchStatusFor(model.StatusOverdue)
	assert.True(t, ok)
	assert.Equal(t, constants.ChurchStatusOverdue, st)

	for _, s := range []string{model.StatusPending, model.StatusFailed, model.StatusExpired, model.StatusCanceled} {
		_, ok := ChurchStatusFor(s)
		assert.False(t, ok, s)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.StatusPending, model.StatusPaid))
	assert.True(t, CanTransition(model.StatusPending, model.StatusExpired))
	assert.True(t, CanTransition(model.StatusPaid, model.StatusCanceled))
	assert.False(t, CanTransition(model.StatusPaid, model.StatusPending))
	assert.False(t, CanTransition(model.StatusPaid, model.StatusPaid))
}

func TestOrderIDAndGrossAmount(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467a-9a3c-0d5b0a5c1e01")
	now := time.UnixMilli(1767225600000)
	assert.Equal(t, "SUB-8F14E45F-1767225600000", NewOrderID(id, now))

	assert.Equal(t, int64(50), GrossAmount(4990))
	assert.Equal(t, int64(100), GrossAmount(10000))
	assert.Equal(t, int64(0), GrossAmount(0))
}
