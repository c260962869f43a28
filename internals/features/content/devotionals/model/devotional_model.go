package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DevotionalModel struct {
	DevotionalID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:devotional_id" json:"devotional_id"`
	DevotionalChurchID          uuid.UUID      `gorm:"type:uuid;not null;column:devotional_church_id;index:idx_devotionals_church_date,priority:1" json:"devotional_church_id"`
	DevotionalTitle             string         `gorm:"type:varchar(200);not null;column:devotional_title" json:"devotional_title"`
	DevotionalVerseReference    *string        `gorm:"type:varchar(120);column:devotional_verse_reference" json:"devotional_verse_reference,omitempty"`
	DevotionalContent           string         `gorm:"type:text;not null;column:devotional_content" json:"devotional_content"`
	DevotionalAuthor            *string        `gorm:"type:varchar(150);column:devotional_author" json:"devotional_author,omitempty"`
	DevotionalPublishDate       time.Time      `gorm:"type:date;not null;column:devotional_publish_date;index:idx_devotionals_church_date,priority:2" json:"devotional_publish_date"`
	DevotionalShareWithChildren bool           `gorm:"not null;default:false;column:devotional_share_with_children" json:"devotional_share_with_children"`
	DevotionalCreatedAt         time.Time      `gorm:"column:devotional_created_at;autoCreateTime" json:"devotional_created_at"`
	DevotionalUpdatedAt         time.Time      `gorm:"column:devotional_updated_at;autoUpdateTime" json:"devotional_updated_at"`
	DevotionalDeletedAt         gorm.DeletedAt `gorm:"column:devotional_deleted_at;index" json:"-"`
}

func (DevotionalModel) TableName() string { return "devotionals" }
