package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

func IsValidType(t string) bool { return t == TypeIncome || t == TypeExpense }

type CategoryModel struct {
	CategoryID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:category_id" json:"category_id"`
	CategoryChurchID  uuid.UUID `gorm:"type:uuid;not null;column:category_church_id;uniqueIndex:uq_finance_categories_church_name,priority:1" json:"category_church_id"`
	CategoryName      string    `gorm:"type:varchar(100);not null;column:category_name;uniqueIndex:uq_finance_categories_church_name,priority:3" json:"category_name"`
	CategoryType      string    `gorm:"type:varchar(10);not null;column:category_type;uniqueIndex:uq_finance_categories_church_name,priority:2" json:"category_type"`
	CategoryCreatedAt time.Time `gorm:"column:category_created_at;autoCreateTime" json:"category_created_at"`
	CategoryUpdatedAt time.Time `gorm:"column:category_updated_at;autoUpdateTime" json:"category_updated_at"`
}

func (CategoryModel) TableName() string { return "finance_categories" }
