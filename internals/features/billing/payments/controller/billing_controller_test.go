package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/billing/payments/model"
	"ecclesia_backend/internals/features/billing/payments/service"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type stubCharger struct{ calls int }

func (s *stubCharger) Snap(context.Context, model.SubscriptionPaymentModel, string, service.Customer) (*service.SnapResult, error) {
	s.calls++
	return &service.SnapResult{Token: "tok"}, nil
}

func (s *stubCharger) QRIS(context.Context, model.SubscriptionPaymentModel) (*service.QRISResult, error) {
	s.calls++
	return &service.QRISResult{QRString: "qr"}, nil
}

func checkoutApp(charger service.Charger, parent *uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocChurchID, uuid.NewString())
		if parent != nil {
			c.Locals(helperAuth.LocChurchParentID, parent.String())
		}
		return c.Next()
	})
	// nil DB: every case below returns before touching the database
	ctl := NewBillingController(nil, charger)
	app.Post("/checkout", ctl.Checkout)
	return app
}

func TestCheckoutGuards(t *testing.T) {
	body := `{"method":"snap"}`

	t.Run("child church", func(t *testing.T) {
		parent := uuid.New()
		ch := &stubCharger{}
		req := httptest.NewRequest("POST", "/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := checkoutApp(ch, &parent).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, ch.calls)
	})

	t.Run("provider not configured", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := checkoutApp(nil, nil).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("unknown method", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/checkout", strings.NewReader(`{"method":"boleto"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := checkoutApp(&stubCharger{}, nil).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}
