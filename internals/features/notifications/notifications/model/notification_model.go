package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	ChannelInApp    = "in_app"
	ChannelEmail    = "email"
	ChannelWhatsapp = "whatsapp"
)

var Channels = []string{ChannelInApp, ChannelEmail, ChannelWhatsapp}

type NotificationModel struct {
	NotificationID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:notification_id" json:"notification_id"`
	NotificationChurchID     uuid.UUID      `gorm:"type:uuid;not null;index;column:notification_church_id" json:"notification_church_id"`
	NotificationTitle        string         `gorm:"type:varchar(200);not null;column:notification_title" json:"notification_title"`
	NotificationBody         string         `gorm:"type:text;not null;column:notification_body" json:"notification_body"`
	NotificationChannels     pq.StringArray `gorm:"type:text[];not null;column:notification_channels" json:"notification_channels"`
	NotificationTargetUserID *uuid.UUID     `gorm:"type:uuid;column:notification_target_user_id" json:"notification_target_user_id,omitempty"`
	NotificationCreatedBy    *uuid.UUID     `gorm:"type:uuid;column:notification_created_by" json:"notification_created_by,omitempty"`
	NotificationCreatedAt    time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }

type UserNotificationModel struct {
	UserNotificationID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_notification_id" json:"user_notification_id"`
	UserNotificationChurchID       uuid.UUID  `gorm:"type:uuid;not null;index;column:user_notification_church_id" json:"user_notification_church_id"`
	UserNotificationNotificationID uuid.UUID  `gorm:"type:uuid;not null;column:user_notification_notification_id;uniqueIndex:uq_user_notification,priority:1" json:"user_notification_notification_id"`
	UserNotificationUserID         uuid.UUID  `gorm:"type:uuid;not null;column:user_notification_user_id;uniqueIndex:uq_user_notification,priority:2;index:idx_user_notifications_user_read,priority:1" json:"user_notification_user_id"`
	UserNotificationReadAt         *time.Time `gorm:"column:user_notification_read_at;index:idx_user_notifications_user_read,priority:2" json:"user_notification_read_at,omitempty"`
	UserNotificationCreatedAt      time.Time  `gorm:"column:user_notification_created_at;autoCreateTime" json:"user_notification_created_at"`

	Notification *NotificationModel `gorm:"foreignKey:UserNotificationNotificationID;references:NotificationID;constraint:OnDelete:CASCADE" json:"notification,omitempty"`
}

func (UserNotificationModel) TableName() string { return "user_notifications" }
