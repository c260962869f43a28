package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/plans/dto"
	"ecclesia_backend/internals/features/billing/plans/model"
	helper "ecclesia_backend/internals/helpers"
)

type PlanController struct {
	DB *gorm.DB
}

func NewPlanController(db *gorm.DB) *PlanController {
	return &PlanController{DB: db}
}

// 🟢 GET /api/public/plans
func (ctl *PlanController) PublicList(c *fiber.Ctx) error {
	var rows []model.PlanModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("plan_is_active = TRUE").
		Order("plan_price_cents ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Plans loaded", rows)
}

/* ===================== OWNER ===================== */

// 🟢 GET /api/o/plans
func (ctl *PlanController) OwnerList(c *fiber.Ctx) error {
	var rows []model.PlanModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("plan_price_cents ASC, plan_code ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Plans loaded", rows)
}

// 🟢 POST /api/o/plans
func (ctl *PlanController) Create(c *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Plan code already exists")
		}
		return err
	}
	return helper.JsonCreated(c, "Plan created", m)
}

// 🟢 PATCH /api/o/plans/:id
func (ctl *PlanController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var m model.PlanModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "plan_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Plan not found")
		}
		return err
	}
	var req dto.UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !req.Apply(&m) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Plan name is required and limits cannot be negative")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Plan updated", m)
}

// 🟢 DELETE /api/o/plans/:id
// Plans still referenced by a church are deactivated instead.
func (ctl *PlanController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var inUse int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("churches").
		Where("church_plan_id = ? AND church_deleted_at IS NULL", id).
		Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		res := ctl.DB.WithContext(c.UserContext()).Model(&model.PlanModel{}).
			Where("plan_id = ?", id).
			Update("plan_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Plan not found")
		}
		return helper.JsonUpdated(c, "Plan is in use and was deactivated", fiber.Map{"plan_id": id, "plan_is_active": false})
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.PlanModel{}, "plan_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Plan not found")
	}
	return helper.JsonDeleted(c, "Plan deleted", fiber.Map{"plan_id": id})
}
