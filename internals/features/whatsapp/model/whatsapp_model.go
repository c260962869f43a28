package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SessionDisconnected = "disconnected"
	SessionStarting     = "starting"
	SessionQR           = "qr"
	SessionConnected    = "connected"
)

const (
	MessagePending = "pending"
	MessageSending = "sending" // claimed by a dispatcher run
	MessageSent    = "sent"
	MessageFailed  = "failed"
)

type WhatsappSessionModel struct {
	WaSessionID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:wa_session_id" json:"wa_session_id"`
	WaSessionChurchID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:wa_session_church_id" json:"wa_session_church_id"`
	WaSessionName       string     `gorm:"type:varchar(80);not null;column:wa_session_name" json:"wa_session_name"`
	WaSessionStatus     string     `gorm:"type:varchar(20);not null;default:'disconnected';column:wa_session_status" json:"wa_session_status"`
	WaSessionQR         *string    `gorm:"type:text;column:wa_session_qr" json:"wa_session_qr,omitempty"`
	WaSessionPhone      *string    `gorm:"type:varchar(32);column:wa_session_phone" json:"wa_session_phone,omitempty"`
	WaSessionLastSeenAt *time.Time `gorm:"column:wa_session_last_seen_at" json:"wa_session_last_seen_at,omitempty"`
	WaSessionCreatedAt  time.Time  `gorm:"column:wa_session_created_at;autoCreateTime" json:"wa_session_created_at"`
	WaSessionUpdatedAt  time.Time  `gorm:"column:wa_session_updated_at;autoUpdateTime" json:"wa_session_updated_at"`
}

func (WhatsappSessionModel) TableName() string { return "whatsapp_sessions" }

type WhatsappMessageModel struct {
	WaMessageID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:wa_message_id" json:"wa_message_id"`
	WaMessageChurchID  uuid.UUID      `gorm:"type:uuid;not null;index;column:wa_message_church_id" json:"wa_message_church_id"`
	WaMessageTo        string         `gorm:"type:varchar(32);not null;column:wa_message_to" json:"wa_message_to"`
	WaMessageBody      string         `gorm:"type:text;not null;column:wa_message_body" json:"wa_message_body"`
	WaMessageStatus    string         `gorm:"type:varchar(16);not null;default:'pending';column:wa_message_status;index:idx_wa_messages_status_created,priority:1" json:"wa_message_status"`
	WaMessageError     *string        `gorm:"type:text;column:wa_message_error" json:"wa_message_error,omitempty"`
	WaMessageGatewayID *string        `gorm:"type:varchar(120);column:wa_message_gateway_id" json:"wa_message_gateway_id,omitempty"`
	WaMessageMetadata  datatypes.JSON `gorm:"type:jsonb;column:wa_message_metadata" json:"wa_message_metadata,omitempty"`
	WaMessageClaimedAt *time.Time     `gorm:"column:wa_message_claimed_at" json:"wa_message_claimed_at,omitempty"`
	WaMessageSentAt    *time.Time     `gorm:"column:wa_message_sent_at" json:"wa_message_sent_at,omitempty"`
	WaMessageCreatedAt time.Time      `gorm:"column:wa_message_created_at;autoCreateTime;index:idx_wa_messages_status_created,priority:2" json:"wa_message_created_at"`
}

func (WhatsappMessageModel) TableName() string { return "whatsapp_messages" }
