package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/finance/categories/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

type categoryRequest struct {
	Name string `json:"category_name" validate:"required,max=100"`
	Type string `json:"category_type" validate:"required,oneof=income expense"`
}

// 🟢 GET /api/a/finance/categories?type=
func (ctl *CategoryController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).Where("category_church_id = ?", churchID)
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		if !model.IsValidType(t) {
			return helper.JsonError(c, fiber.StatusBadRequest, "type must be income or expense")
		}
		tx = tx.Where("category_type = ?", t)
	}
	var rows []model.CategoryModel
	if err := tx.Order("category_type ASC, category_name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Categories loaded", rows)
}

// 🟢 POST /api/a/finance/categories
func (ctl *CategoryController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	row := model.CategoryModel{
		CategoryChurchID: churchID,
		CategoryName:     strings.TrimSpace(req.Name),
		CategoryType:     req.Type,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A category with this name already exists")
		}
		return err
	}
	return helper.JsonCreated(c, "Category created", row)
}

func (ctl *CategoryController) find(c *fiber.Ctx) (*model.CategoryModel, error) {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var row model.CategoryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "category_id = ? AND category_church_id = ?", id, churchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return nil, err
	}
	return &row, nil
}

// 🟢 PATCH /api/a/finance/categories/:id
// the type is fixed once created
func (ctl *CategoryController) Rename(c *fiber.Ctx) error {
	row, err := ctl.find(c)
	if err != nil {
		return err
	}
	var req struct {
		Name string `json:"category_name" validate:"required,max=100"`
	}
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	row.CategoryName = strings.TrimSpace(req.Name)
	if err := ctl.DB.WithContext(c.UserContext()).Save(row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A category with this name already exists")
		}
		return err
	}
	return helper.JsonUpdated(c, "Category updated", row)
}

// 🟢 DELETE /api/a/finance/categories/:id
func (ctl *CategoryController) Delete(c *fiber.Ctx) error {
	row, err := ctl.find(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(row).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Category is used by transactions or budgets")
		}
		return err
	}
	return helper.JsonDeleted(c, "Category deleted", fiber.Map{"category_id": row.CategoryID})
}
