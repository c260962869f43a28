package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/churches/sharing"
	"ecclesia_backend/internals/features/content/devotionals/dto"
	"ecclesia_backend/internals/features/content/devotionals/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type DevotionalController struct {
	DB *gorm.DB
}

func NewDevotionalController(db *gorm.DB) *DevotionalController {
	return &DevotionalController{DB: db}
}

func devotionalScope(vis sharing.Visibility) func(*gorm.DB) *gorm.DB {
	return sharing.Scope(vis, "devotional_church_id", "devotional_share_with_children")
}

func (ctl *DevotionalController) load(c *fiber.Ctx) (*model.DevotionalModel, sharing.Visibility, error) {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return nil, vis, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, vis, err
	}
	var d model.DevotionalModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&d, "devotional_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vis, fiber.NewError(fiber.StatusNotFound, "Devotional not found")
		}
		return nil, vis, err
	}
	if !sharing.CanView(vis, d.DevotionalChurchID, d.DevotionalShareWithChildren) {
		return nil, vis, fiber.NewError(fiber.StatusNotFound, "Devotional not found")
	}
	return &d, vis, nil
}

// 🟢 GET /api/u/devotionals
func (ctl *DevotionalController) List(c *fiber.Ctx) error {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return err
	}
	if helper.QueryBool(c, "include_children") && helperAuth.IsStaff(c) {
		if vis, err = vis.WithChildren(ctl.DB.WithContext(c.UserContext())); err != nil {
			return err
		}
	}
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.DevotionalModel{}).Scopes(devotionalScope(vis))
	// members only see what is already published
	if !helperAuth.IsStaff(c) {
		tx = tx.Where("devotional_publish_date <= ?", time.Now().UTC())
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.DevotionalModel
	if err := tx.Order("devotional_publish_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Devotionals loaded", rows, paging.Pagination(total))
}

// 🟢 GET /api/u/devotionals/today
// latest published on or before today
func (ctl *DevotionalController) Today(c *fiber.Ctx) error {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return err
	}
	var d model.DevotionalModel
	err = ctl.DB.WithContext(c.UserContext()).
		Scopes(devotionalScope(vis)).
		Where("devotional_publish_date <= ?", time.Now().UTC().Format("2006-01-02")).
		Order("devotional_publish_date DESC, devotional_created_at DESC").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonOK(c, "No devotional published yet", nil)
	}
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Devotional of the day", d)
}

// 🟢 GET /api/u/devotionals/:id
func (ctl *DevotionalController) GetByID(c *fiber.Ctx) error {
	d, _, err := ctl.load(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Devotional loaded", d)
}

// 🟢 POST /api/a/devotionals
func (ctl *DevotionalController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateDevotionalRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	d, err := req.ToModel(churchID)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(d).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Devotional created", d)
}

// 🟢 PATCH /api/a/devotionals/:id
func (ctl *DevotionalController) Update(c *fiber.Ctx) error {
	d, vis, err := ctl.load(c)
	if err != nil {
		return err
	}
	if !sharing.CanEdit(vis, d.DevotionalChurchID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owning church can change this devotional")
	}
	var req dto.UpdateDevotionalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Apply(d); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(d).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Devotional updated", d)
}

// 🟢 DELETE /api/a/devotionals/:id
func (ctl *DevotionalController) Delete(c *fiber.Ctx) error {
	d, vis, err := ctl.load(c)
	if err != nil {
		return err
	}
	if !sharing.CanEdit(vis, d.DevotionalChurchID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owning church can delete this devotional")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(d).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Devotional deleted", fiber.Map{"devotional_id": d.DevotionalID})
}
