package model

import (
	"time"

	"github.com/google/uuid"

	categoryModel "ecclesia_backend/internals/features/finance/categories/model"
)

type BudgetModel struct {
	BudgetID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:budget_id" json:"budget_id"`
	BudgetChurchID    uuid.UUID `gorm:"type:uuid;not null;index;column:budget_church_id" json:"budget_church_id"`
	BudgetCategoryID  uuid.UUID `gorm:"type:uuid;not null;column:budget_category_id;uniqueIndex:uq_finance_budget_period,priority:1" json:"budget_category_id"`
	BudgetYear        int       `gorm:"not null;column:budget_year;uniqueIndex:uq_finance_budget_period,priority:2" json:"budget_year"`
	BudgetMonth       int       `gorm:"not null;check:budget_month BETWEEN 1 AND 12;column:budget_month;uniqueIndex:uq_finance_budget_period,priority:3" json:"budget_month"`
	BudgetAmountCents int64     `gorm:"not null;check:budget_amount_cents >= 0;column:budget_amount_cents" json:"budget_amount_cents"`
	BudgetCreatedAt   time.Time `gorm:"column:budget_created_at;autoCreateTime" json:"budget_created_at"`
	BudgetUpdatedAt   time.Time `gorm:"column:budget_updated_at;autoUpdateTime" json:"budget_updated_at"`

	Category *categoryModel.CategoryModel `gorm:"foreignKey:BudgetCategoryID;references:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
}

func (BudgetModel) TableName() string { return "finance_budgets" }
