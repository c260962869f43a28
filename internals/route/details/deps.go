package details

import (
	"gorm.io/gorm"

	"ecclesia_backend/internals/configs"
	paymentService "ecclesia_backend/internals/features/billing/payments/service"
	"ecclesia_backend/internals/features/whatsapp/gateway"
	"ecclesia_backend/internals/helpers/email"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	"ecclesia_backend/internals/helpers/realtime"
)

// Deps are the shared services handed to every route group.
type Deps struct {
	DB       *gorm.DB
	Cfg      configs.Config
	Store    helperOSS.BlobStore
	Mailer   email.EmailService
	Broker   *realtime.Broker
	Charger  paymentService.Charger // nil when Midtrans is not configured
	Whatsapp gateway.Gateway
}
