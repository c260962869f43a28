package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChurchModel struct {
	ChurchID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:church_id" json:"church_id"`
	ChurchName            string         `gorm:"type:varchar(150);not null;column:church_name" json:"church_name"`
	ChurchSlug            string         `gorm:"type:varchar(120);not null;column:church_slug;uniqueIndex:uq_churches_slug_lower,expression:LOWER(church_slug)" json:"church_slug"`
	ChurchParentID        *uuid.UUID     `gorm:"type:uuid;column:church_parent_id;index" json:"church_parent_id,omitempty"`
	ChurchPlanID          *uuid.UUID     `gorm:"type:uuid;column:church_plan_id;index" json:"church_plan_id,omitempty"`
	ChurchStatus          string         `gorm:"type:varchar(20);not null;default:'trial';column:church_status;index" json:"church_status"`
	ChurchNextPaymentDate *time.Time     `gorm:"column:church_next_payment_date" json:"church_next_payment_date,omitempty"`
	ChurchEmail           *string        `gorm:"type:varchar(255);column:church_email" json:"church_email,omitempty"`
	ChurchPhone           *string        `gorm:"type:varchar(32);column:church_phone" json:"church_phone,omitempty"`
	ChurchCity            *string        `gorm:"type:varchar(100);column:church_city" json:"church_city,omitempty"`
	ChurchState           *string        `gorm:"type:varchar(100);column:church_state" json:"church_state,omitempty"`
	ChurchLogoURL         *string        `gorm:"type:text;column:church_logo_url" json:"church_logo_url,omitempty"`
	ChurchCreatedAt       time.Time      `gorm:"column:church_created_at;autoCreateTime" json:"church_created_at"`
	ChurchUpdatedAt       time.Time      `gorm:"column:church_updated_at;autoUpdateTime" json:"church_updated_at"`
	ChurchDeletedAt       gorm.DeletedAt `gorm:"column:church_deleted_at;index" json:"-"`
}

func (ChurchModel) TableName() string { return "churches" }

func (c ChurchModel) IsRoot() bool { return c.ChurchParentID == nil }
