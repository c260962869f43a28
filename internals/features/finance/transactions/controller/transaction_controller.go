package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	budgetModel "ecclesia_backend/internals/features/finance/budgets/model"
	categoryModel "ecclesia_backend/internals/features/finance/categories/model"
	"ecclesia_backend/internals/features/finance/transactions/dto"
	"ecclesia_backend/internals/features/finance/transactions/model"
	"ecclesia_backend/internals/features/finance/transactions/service"
	memberService "ecclesia_backend/internals/features/members/members/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

// checkRefs verifies the category (same church and type) and the member.
func (ctl *TransactionController) checkRefs(ctx context.Context, churchID uuid.UUID, t *model.TransactionModel) error {
	if t.TransactionCategoryID != nil {
		var cat categoryModel.CategoryModel
		err := ctl.DB.WithContext(ctx).
			First(&cat, "category_id = ? AND category_church_id = ?", *t.TransactionCategoryID, churchID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Category not found in this church")
		}
		if err != nil {
			return err
		}
		if cat.CategoryType != t.TransactionType {
			return fiber.NewError(fiber.StatusBadRequest, "Category type does not match the transaction type")
		}
	}
	if t.TransactionMemberID != nil {
		return memberService.EnsureMembers(ctx, ctl.DB, churchID, *t.TransactionMemberID)
	}
	return nil
}

func (ctl *TransactionController) find(c *fiber.Ctx) (*model.TransactionModel, uuid.UUID, error) {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return nil, churchID, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, churchID, err
	}
	var t model.TransactionModel
	if err := ctl.DB.WithContext(c.UserContext()).Preload("Category").
		First(&t, "transaction_id = ? AND transaction_church_id = ?", id, churchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, churchID, fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return nil, churchID, err
	}
	return &t, churchID, nil
}

// 🟢 GET /api/a/finance/transactions?type=&category_id=&member_id=&from=&to=
func (ctl *TransactionController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.TransactionModel{}).
		Where("transaction_church_id = ?", churchID)

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if !categoryModel.IsValidType(t) {
			return helper.JsonError(c, fiber.StatusBadRequest, "type must be income or expense")
		}
		tx = tx.Where("transaction_type = ?", t)
	}
	catID, err := helper.ParseUUIDQuery(c, "category_id")
	if err != nil {
		return err
	}
	if catID != nil {
		tx = tx.Where("transaction_category_id = ?", *catID)
	}
	memberID, err := helper.ParseUUIDQuery(c, "member_id")
	if err != nil {
		return err
	}
	if memberID != nil {
		tx = tx.Where("transaction_member_id = ?", *memberID)
	}
	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return err
	}
	if from != nil {
		tx = tx.Where("transaction_occurred_on >= ?", *from)
	}
	to, err := helper.ParseDateQuery(c, "to")
	if err != nil {
		return err
	}
	if to != nil {
		tx = tx.Where("transaction_occurred_on <= ?", *to)
	}

	paging := helper.ResolvePaging(c, 50, 200)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.TransactionModel
	if err := tx.Preload("Category").
		Order("transaction_occurred_on DESC, transaction_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Transactions loaded", rows, paging.Pagination(total))
}

// 🟢 GET /api/a/finance/transactions/:id
func (ctl *TransactionController) GetByID(c *fiber.Ctx) error {
	t, _, err := ctl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Transaction loaded", t)
}

// 🟢 POST /api/a/finance/transactions
func (ctl *TransactionController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTransactionRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	var author *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		author = &uid
	}
	t, err := req.ToModel(churchID, author)
	if err != nil {
		return err
	}
	if err := ctl.checkRefs(c.UserContext(), churchID, t); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(t).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Transaction recorded", t)
}

// 🟢 PATCH /api/a/finance/transactions/:id
// the type cannot change
func (ctl *TransactionController) Update(c *fiber.Ctx) error {
	t, churchID, err := ctl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Apply(t); err != nil {
		return err
	}
	if err := ctl.checkRefs(c.UserContext(), churchID, t); err != nil {
		return err
	}
	t.Category = nil
	if err := ctl.DB.WithContext(c.UserContext()).Save(t).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Transaction updated", t)
}

// 🟢 DELETE /api/a/finance/transactions/:id
func (ctl *TransactionController) Delete(c *fiber.Ctx) error {
	t, _, err := ctl.find(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(t).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Transaction deleted", fiber.Map{"transaction_id": t.TransactionID})
}

// 🟢 GET /api/a/finance/summary?year=&month= (defaults to the current month)
func (ctl *TransactionController) Summary(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 || year < 1900 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year or month")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var totals []service.CategoryTotal
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("finance_transactions AS t").
		Select(`t.transaction_category_id AS category_id,
			COALESCE(fc.category_name, '') AS category_name,
			t.transaction_type AS type,
			SUM(t.transaction_amount_cents)::bigint AS total_cents`).
		Joins("LEFT JOIN finance_categories fc ON fc.category_id = t.transaction_category_id").
		Where("t.transaction_church_id = ? AND t.transaction_deleted_at IS NULL", churchID).
		Where("t.transaction_occurred_on >= ? AND t.transaction_occurred_on < ?", start, end).
		Group("t.transaction_category_id, fc.category_name, t.transaction_type").
		Scan(&totals).Error; err != nil {
		return err
	}

	var budgets []service.BudgetLine
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&budgetModel.BudgetModel{}).
		Select(`finance_budgets.budget_category_id AS category_id,
			fc.category_name AS category_name,
			fc.category_type AS type,
			finance_budgets.budget_amount_cents AS amount_cents`).
		Joins("JOIN finance_categories fc ON fc.category_id = finance_budgets.budget_category_id").
		Where("finance_budgets.budget_church_id = ? AND budget_year = ? AND budget_month = ?", churchID, year, month).
		Scan(&budgets).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "Finance summary", service.Summarize(year, month, totals, budgets))
}
