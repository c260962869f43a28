package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ProviderMidtrans = "midtrans"
	ProviderAsaas    = "asaas"
)

const (
	MethodSnap = "snap"
	MethodQRIS = "qris"
)

// Payment statuses (subscription_payment_status).
const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusFailed   = "failed"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
	StatusOverdue  = "overdue"
)

type SubscriptionPaymentModel struct {
	SubscriptionPaymentID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subscription_payment_id" json:"subscription_payment_id"`
	SubscriptionPaymentChurchID    uuid.UUID  `gorm:"type:uuid;not null;column:subscription_payment_church_id;index" json:"subscription_payment_church_id"`
	SubscriptionPaymentPlanID      *uuid.UUID `gorm:"type:uuid;column:subscription_payment_plan_id" json:"subscription_payment_plan_id,omitempty"`
	SubscriptionPaymentOrderID     string     `gorm:"type:varchar(64);not null;uniqueIndex;column:subscription_payment_order_id" json:"subscription_payment_order_id"`
	SubscriptionPaymentProvider    string     `gorm:"type:varchar(20);not null;default:'midtrans';column:subscription_payment_provider" json:"subscription_payment_provider"`
	SubscriptionPaymentMethod      string     `gorm:"type:varchar(20);not null;column:subscription_payment_method" json:"subscription_payment_method"`
	SubscriptionPaymentAmountCents int64      `gorm:"not null;check:subscription_payment_amount_cents >= 0;column:subscription_payment_amount_cents" json:"subscription_payment_amount_cents"`
	SubscriptionPaymentStatus      string     `gorm:"type:varchar(20);not null;default:'pending';column:subscription_payment_status;index" json:"subscription_payment_status"`

	SubscriptionPaymentSnapToken     *string `gorm:"type:text;column:subscription_payment_snap_token" json:"subscription_payment_snap_token,omitempty"`
	SubscriptionPaymentRedirectURL   *string `gorm:"type:text;column:subscription_payment_redirect_url" json:"subscription_payment_redirect_url,omitempty"`
	SubscriptionPaymentQRString      *string `gorm:"type:text;column:subscription_payment_qr_string" json:"subscription_payment_qr_string,omitempty"`
	SubscriptionPaymentTransactionID *string `gorm:"type:varchar(120);column:subscription_payment_transaction_id" json:"subscription_payment_transaction_id,omitempty"`
	SubscriptionPaymentError         *string `gorm:"type:text;column:subscription_payment_error" json:"subscription_payment_error,omitempty"`

	SubscriptionPaymentRequestedBy *uuid.UUID `gorm:"type:uuid;column:subscription_payment_requested_by" json:"subscription_payment_requested_by,omitempty"`
	SubscriptionPaymentPaidAt      *time.Time `gorm:"column:subscription_payment_paid_at" json:"subscription_payment_paid_at,omitempty"`
	SubscriptionPaymentCreatedAt   time.Time  `gorm:"column:subscription_payment_created_at;autoCreateTime" json:"subscription_payment_created_at"`
	SubscriptionPaymentUpdatedAt   time.Time  `gorm:"column:subscription_payment_updated_at;autoUpdateTime" json:"subscription_payment_updated_at"`
}

func (SubscriptionPaymentModel) TableName() string { return "subscription_payments" }

// Gateway event outcomes (gateway_event_status).
const (
	EventProcessed    = "processed"
	EventIgnored      = "ignored"
	EventUnknownOrder = "unknown_order"
	EventFailed       = "failed"
)

// GatewayEventModel stores every webhook delivery. The church is unknown
// when the order reference does not match a payment.
type GatewayEventModel struct {
	GatewayEventID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:gateway_event_id" json:"gateway_event_id"`
	GatewayEventChurchID  *uuid.UUID     `gorm:"type:uuid;column:gateway_event_church_id;index" json:"gateway_event_church_id,omitempty"`
	GatewayEventPaymentID *uuid.UUID     `gorm:"type:uuid;column:gateway_event_payment_id;index" json:"gateway_event_payment_id,omitempty"`
	GatewayEventProvider  string         `gorm:"type:varchar(20);not null;column:gateway_event_provider;uniqueIndex:uq_gateway_event_key,priority:1" json:"gateway_event_provider"`
	GatewayEventKey       string         `gorm:"type:varchar(200);not null;column:gateway_event_key;uniqueIndex:uq_gateway_event_key,priority:2" json:"gateway_event_key"`
	GatewayEventType      string         `gorm:"type:varchar(60);column:gateway_event_type" json:"gateway_event_type"`
	GatewayEventOrderID   string         `gorm:"type:varchar(64);column:gateway_event_order_id;index" json:"gateway_event_order_id"`
	GatewayEventStatus    string         `gorm:"type:varchar(20);not null;column:gateway_event_status" json:"gateway_event_status"`
	GatewayEventError     *string        `gorm:"type:text;column:gateway_event_error" json:"gateway_event_error,omitempty"`
	GatewayEventHeaders   datatypes.JSON `gorm:"type:jsonb;column:gateway_event_headers" json:"gateway_event_headers,omitempty"`
	GatewayEventPayload   datatypes.JSON `gorm:"type:jsonb;column:gateway_event_payload" json:"gateway_event_payload,omitempty"`
	GatewayEventCreatedAt time.Time      `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`

	Payment *SubscriptionPaymentModel `gorm:"foreignKey:GatewayEventPaymentID;references:SubscriptionPaymentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GatewayEventModel) TableName() string { return "payment_gateway_events" }
