package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:event_id" json:"event_id"`
	EventChurchID          uuid.UUID      `gorm:"type:uuid;not null;column:event_church_id;index:idx_events_church_start,priority:1;uniqueIndex:uq_events_church_slug,priority:1" json:"event_church_id"`
	EventTitle             string         `gorm:"type:varchar(200);not null;column:event_title" json:"event_title"`
	EventSlug              string         `gorm:"type:varchar(160);not null;column:event_slug;uniqueIndex:uq_events_church_slug,priority:2" json:"event_slug"`
	EventDescription       *string        `gorm:"type:text;column:event_description" json:"event_description,omitempty"`
	EventLocation          *string        `gorm:"type:varchar(255);column:event_location" json:"event_location,omitempty"`
	EventStartsAt          time.Time      `gorm:"not null;column:event_starts_at;index:idx_events_church_start,priority:2" json:"event_starts_at"`
	EventEndsAt            *time.Time     `gorm:"column:event_ends_at" json:"event_ends_at,omitempty"`
	EventShareWithChildren bool           `gorm:"not null;default:false;column:event_share_with_children" json:"event_share_with_children"`
	EventCreatedAt         time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt         time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt         gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"-"`
}

func (EventModel) TableName() string { return "events" }
