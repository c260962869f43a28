package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecclesia_backend/internals/features/finance/budgets/model"
	categoryModel "ecclesia_backend/internals/features/finance/categories/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type BudgetController struct {
	DB *gorm.DB
}

func NewBudgetController(db *gorm.DB) *BudgetController {
	return &BudgetController{DB: db}
}

type upsertBudgetRequest struct {
	CategoryID  uuid.UUID `json:"budget_category_id" validate:"required"`
	Year        int       `json:"budget_year" validate:"required,min=1900,max=3000"`
	Month       int       `json:"budget_month" validate:"required,min=1,max=12"`
	AmountCents int64     `json:"budget_amount_cents" validate:"min=0"`
}

// 🟢 GET /api/a/finance/budgets?year=&month=
func (ctl *BudgetController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	tx := ctl.DB.WithContext(c.UserContext()).Preload("Category").
		Where("budget_church_id = ? AND budget_year = ?", churchID, c.QueryInt("year", now.Year()))
	if m := c.QueryInt("month", 0); m > 0 {
		tx = tx.Where("budget_month = ?", m)
	}
	var rows []model.BudgetModel
	if err := tx.Order("budget_month ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Budgets loaded", rows)
}

// 🟢 PUT /api/a/finance/budgets
// one budget per category and month
func (ctl *BudgetController) Upsert(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req upsertBudgetRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&categoryModel.CategoryModel{}).
		Where("category_id = ? AND category_church_id = ?", req.CategoryID, churchID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Category not found in this church")
	}

	row := model.BudgetModel{
		BudgetChurchID:    churchID,
		BudgetCategoryID:  req.CategoryID,
		BudgetYear:        req.Year,
		BudgetMonth:       req.Month,
		BudgetAmountCents: req.AmountCents,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "budget_category_id"}, {Name: "budget_year"}, {Name: "budget_month"}},
		DoUpdates: clause.AssignmentColumns([]string{"budget_amount_cents", "budget_updated_at"}),
	}).Create(&row).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Budget saved", row)
}

// 🟢 DELETE /api/a/finance/budgets/:id
func (ctl *BudgetController) Delete(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).
		Where("budget_id = ? AND budget_church_id = ?", id, churchID).
		Delete(&model.BudgetModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Budget not found")
	}
	return helper.JsonDeleted(c, "Budget deleted", fiber.Map{"budget_id": id})
}
