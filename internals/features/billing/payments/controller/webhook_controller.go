package controller

import (
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"ecclesia_backend/internals/features/billing/payments/model"
	"ecclesia_backend/internals/features/billing/payments/service"
	helper "ecclesia_backend/internals/helpers"
)

type WebhookController struct {
	Processor         service.Processor
	MidtransServerKey string
	AsaasToken        string
}

func NewWebhookController(p service.Processor, midtransServerKey, asaasToken string) *WebhookController {
	return &WebhookController{Processor: p, MidtransServerKey: midtransServerKey, AsaasToken: asaasToken}
}

type midtransNotif struct {
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

type asaasNotif struct {
	ID      string `json:"id"`
	Event   string `json:"event"`
	Payment struct {
		ID                string `json:"id"`
		ExternalReference string `json:"externalReference"`
		Status            string `json:"status"`
	} `json:"payment"`
}

// 🟢 POST /api/webhooks/midtrans
func (h *WebhookController) Midtrans(c *fiber.Ctx) error {
	var n midtransNotif
	if err := sonic.Unmarshal(c.Body(), &n); err != nil || n.OrderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification payload")
	}
	if !service.VerifyMidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, h.MidtransServerKey, n.SignatureKey) {
		log.Printf("[WARN] midtrans webhook: bad signature for order %s", n.OrderID)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}
	status, _ := service.MapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	return h.process(c, service.Delivery{
		Provider:  model.ProviderMidtrans,
		EventKey:  strings.Join([]string{n.OrderID, n.TransactionID, n.TransactionStatus, n.StatusCode}, ":"),
		EventType: n.TransactionStatus,
		OrderID:   n.OrderID,
		Status:    status,
	})
}

// 🟢 POST /api/webhooks/asaas
func (h *WebhookController) Asaas(c *fiber.Ctx) error {
	if h.AsaasToken == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Asaas webhook is not configured")
	}
	if !service.VerifyAsaasToken(h.AsaasToken, c.Get("asaas-access-token")) {
		log.Printf("[WARN] asaas webhook: bad access token")
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid access token")
	}
	var n asaasNotif
	if err := sonic.Unmarshal(c.Body(), &n); err != nil || n.Event == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification payload")
	}
	key := n.ID
	if key == "" {
		key = n.Event + ":" + n.Payment.ID
	}
	status, _ := service.MapAsaasEvent(n.Event)
	return h.process(c, service.Delivery{
		Provider:  model.ProviderAsaas,
		EventKey:  key,
		EventType: n.Event,
		OrderID:   n.Payment.ExternalReference,
		Status:    status,
	})
}

func (h *WebhookController) process(c *fiber.Ctx, d service.Delivery) error {
	d.Payload = append([]byte(nil), c.Body()...)
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() {
		if strings.EqualFold(k, "asaas-access-token") {
			continue
		}
		headers[k] = strings.Join(v, ",")
	}
	if b, err := sonic.Marshal(headers); err == nil {
		d.Headers = b
	}

	outcome, err := h.Processor.Process(c.UserContext(), d)
	if err != nil {
		log.Printf("[ERROR] %s webhook order=%s: %v", d.Provider, d.OrderID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process notification")
	}
	if outcome == service.OutcomeUnknownOrder {
		log.Printf("[WARN] %s webhook: unknown order %q", d.Provider, d.OrderID)
	}
	return c.JSON(fiber.Map{"status": outcome, "order_id": d.OrderID})
}
