package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	categoryModel "ecclesia_backend/internals/features/finance/categories/model"
)

var Methods = []string{"cash", "pix", "card", "transfer", "other"}

type TransactionModel struct {
	TransactionID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:transaction_id" json:"transaction_id"`
	TransactionChurchID        uuid.UUID      `gorm:"type:uuid;not null;column:transaction_church_id;index:idx_finance_tx_church_date,priority:1" json:"transaction_church_id"`
	TransactionType            string         `gorm:"type:varchar(10);not null;column:transaction_type" json:"transaction_type"`
	TransactionCategoryID      *uuid.UUID     `gorm:"type:uuid;column:transaction_category_id;index" json:"transaction_category_id,omitempty"`
	TransactionAmountCents     int64          `gorm:"not null;check:transaction_amount_cents > 0;column:transaction_amount_cents" json:"transaction_amount_cents"`
	TransactionDescription     *string        `gorm:"type:text;column:transaction_description" json:"transaction_description,omitempty"`
	TransactionOccurredOn      time.Time      `gorm:"type:date;not null;column:transaction_occurred_on;index:idx_finance_tx_church_date,priority:2" json:"transaction_occurred_on"`
	TransactionMethod          string         `gorm:"type:varchar(16);not null;default:'cash';column:transaction_method" json:"transaction_method"`
	TransactionMemberID        *uuid.UUID     `gorm:"type:uuid;column:transaction_member_id" json:"transaction_member_id,omitempty"`
	TransactionCreatedByUserID *uuid.UUID     `gorm:"type:uuid;column:transaction_created_by_user_id" json:"transaction_created_by_user_id,omitempty"`
	TransactionCreatedAt       time.Time      `gorm:"column:transaction_created_at;autoCreateTime" json:"transaction_created_at"`
	TransactionUpdatedAt       time.Time      `gorm:"column:transaction_updated_at;autoUpdateTime" json:"transaction_updated_at"`
	TransactionDeletedAt       gorm.DeletedAt `gorm:"column:transaction_deleted_at;index" json:"-"`

	Category *categoryModel.CategoryModel `gorm:"foreignKey:TransactionCategoryID;references:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}

func (TransactionModel) TableName() string { return "finance_transactions" }
