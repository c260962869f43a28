package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/billing/payments/model"
	"ecclesia_backend/internals/features/billing/payments/service"
)

type fakeProcessor struct {
	got     []service.Delivery
	seen    map[string]bool
	orderOK bool
}

func (f *fakeProcessor) Process(_ context.Context, d service.Delivery) (string, error) {
	f.got = append(f.got, d)
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	k := d.Provider + "|" + d.EventKey
	if f.seen[k] {
		return service.OutcomeDuplicate, nil
	}
	f.seen[k] = true
	if !f.orderOK {
		return service.OutcomeUnknownOrder, nil
	}
	if d.Status == "" {
		return service.OutcomeIgnored, nil
	}
	return service.OutcomeProcessed, nil
}

const serverKey = "SB-server-key"

func newWebhookApp(p service.Processor, asaasToken string) *fiber.App {
	app := fiber.New()
	h := NewWebhookController(p, serverKey, asaasToken)
	app.Post("/midtrans", h.Midtrans)
	app.Post("/asaas", h.Asaas)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = sonic.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func midtransBody(orderID, txStatus, sig string) string {
	b, _ := sonic.MarshalString(map[string]string{
		"order_id":           orderID,
		"status_code":        "200",
		"gross_amount":       "50.00",
		"transaction_status": txStatus,
		"transaction_id":     "tx-1",
		"signature_key":      sig,
	})
	return b
}

func TestMidtransWebhookRejectsBadSignature(t *testing.T) {
	p := &fakeProcessor{orderOK: true}
	app := newWebhookApp(p, "")

	code, _ := post(t, app, "/midtrans", midtransBody("SUB-1", "settlement", "deadbeef"), nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Empty(t, p.got)
}

func TestMidtransWebhookSettlementAndDuplicate(t *testing.T) {
	p := &fakeProcessor{orderOK: true}
	app := newWebhookApp(p, "")
	sig := service.MidtransSignature("SUB-1", "200", "50.00", serverKey)
	body := midtransBody("SUB-1", "settlement", sig)

	code, out := post(t, app, "/midtrans", body, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, service.OutcomeProcessed, out["status"])
	require.Len(t, p.got, 1)
	assert.Equal(t, model.ProviderMidtrans, p.got[0].Provider)
	assert.Equal(t, model.StatusPaid, p.got[0].Status)
	assert.Equal(t, "SUB-1", p.got[0].OrderID)
	assert.NotEmpty(t, p.got[0].Payload)

	code, out = post(t, app, "/midtrans", body, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, service.OutcomeDuplicate, out["status"])
}

func TestMidtransWebhookUnknownStatusIsIgnored(t *testing.T) {
	p := &fakeProcessor{orderOK: true}
	app := newWebhookApp(p, "")
	sig := service.MidtransSignature("SUB-2", "200", "50.00", serverKey)

	code, out := post(t, app, "/midtrans", midtransBody("SUB-2", "refund", sig), nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, service.OutcomeIgnored, out["status"])
	require.Len(t, p.got, 1)
	assert.Equal(t, "", p.got[0].Status)
}

func TestAsaasWebhook(t *testing.T) {
	body := `{"id":"evt_1","event":"PAYMENT_OVERDUE","payment":{"id":"pay_1","externalReference":"SUB-9"}}`

	t.Run("not configured", func(t *testing.T) {
		code, _ := post(t, newWebhookApp(&fakeProcessor{}, ""), "/asaas", body, nil)
		assert.Equal(t, fiber.StatusServiceUnavailable, code)
	})

	t.Run("wrong token", func(t *testing.T) {
		p := &fakeProcessor{}
		code, _ := post(t, newWebhookApp(p, "secret"), "/asaas", body, map[string]string{"asaas-access-token": "nope"})
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Empty(t, p.got)
	})

	t.Run("overdue maps and token is not stored", func(t *testing.T) {
		p := &fakeProcessor{orderOK: true}
		code, out := post(t, newWebhookApp(p, "secret"), "/asaas", body, map[string]string{"asaas-access-token": "secret"})
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, service.OutcomeProcessed, out["status"])
		require.Len(t, p.got, 1)
		assert.Equal(t, model.StatusOverdue, p.got[0].Status)
		assert.Equal(t, "evt_1", p.got[0].EventKey)
		assert.Equal(t, "SUB-9", p.got[0].OrderID)
		assert.NotContains(t, strings.ToLower(string(p.got[0].Headers)), "secret")
	})

	t.Run("unknown order still answers 200", func(t *testing.T) {
		p := &fakeProcessor{}
		code, out := post(t, newWebhookApp(p, "secret"), "/asaas", body, map[string]string{"asaas-access-token": "secret"})
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, service.OutcomeUnknownOrder, out["status"])
	})
}
