package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	memberService "ecclesia_backend/internals/features/members/members/service"
	"ecclesia_backend/internals/features/ministries/ministries/dto"
	"ecclesia_backend/internals/features/ministries/ministries/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/realtime"
)

type MinistryController struct {
	DB *gorm.DB
}

func NewMinistryController(db *gorm.DB) *MinistryController {
	return &MinistryController{DB: db}
}

func (ctl *MinistryController) find(c *fiber.Ctx, churchID uuid.UUID) (*model.MinistryModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.MinistryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("ministry_id = ? AND ministry_church_id = ?", id, churchID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Ministry not found")
		}
		return nil, err
	}
	return &m, nil
}

// 🟢 GET /api/a/ministries?q=
func (ctl *MinistryController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).Where("ministry_church_id = ?", churchID)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("ministry_name ILIKE ?", "%"+q+"%")
	}
	var rows []model.MinistryModel
	if err := tx.Order("ministry_name ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Ministries loaded", rows)
}

// 🟢 GET /api/a/ministries/:id
func (ctl *MinistryController) GetByID(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	vols, err := ctl.volunteers(c, m.MinistryID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Ministry loaded", fiber.Map{"ministry": m, "volunteers": vols})
}

// 🟢 POST /api/a/ministries
func (ctl *MinistryController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateMinistryRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if req.MinistryLeaderMemberID != nil {
		if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, *req.MinistryLeaderMemberID); err != nil {
			return err
		}
	}
	m := req.ToModel(churchID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministries", constants.ActionInsert, m.MinistryID)
	return helper.JsonCreated(c, "Ministry created", m)
}

// 🟢 PATCH /api/a/ministries/:id
func (ctl *MinistryController) Update(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	var req dto.UpdateMinistryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Apply(m); err != nil {
		return err
	}
	if m.MinistryLeaderMemberID != nil {
		if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, *m.MinistryLeaderMemberID); err != nil {
			return err
		}
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministries", constants.ActionUpdate, m.MinistryID)
	return helper.JsonUpdated(c, "Ministry updated", m)
}

// 🟢 DELETE /api/a/ministries/:id
func (ctl *MinistryController) Delete(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("volunteer_ministry_id = ?", m.MinistryID).Delete(&model.VolunteerModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministries", constants.ActionDelete, m.MinistryID)
	return helper.JsonDeleted(c, "Ministry deleted", fiber.Map{"ministry_id": m.MinistryID})
}

/* ===================== Volunteers ===================== */

func (ctl *MinistryController) volunteers(c *fiber.Ctx, ministryID uuid.UUID) ([]dto.VolunteerResponse, error) {
	var out []dto.VolunteerResponse
	err := ctl.DB.WithContext(c.UserContext()).
		Table("ministry_volunteers AS v").
		Select("v.volunteer_id, v.volunteer_member_id, m.member_name, m.member_phone, v.volunteer_function").
		Joins("JOIN members m ON m.member_id = v.volunteer_member_id AND m.member_deleted_at IS NULL").
		Where("v.volunteer_ministry_id = ?", ministryID).
		Order("m.member_name ASC").
		Scan(&out).Error
	return out, err
}

// 🟢 GET /api/a/ministries/:id/volunteers
func (ctl *MinistryController) ListVolunteers(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	vols, err := ctl.volunteers(c, m.MinistryID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Volunteers loaded", vols)
}

// 🟢 POST /api/a/ministries/:id/volunteers
func (ctl *MinistryController) AddVolunteer(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	var req dto.AddVolunteerRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, req.MemberID); err != nil {
		return err
	}
	v := model.VolunteerModel{
		VolunteerChurchID:   churchID,
		VolunteerMinistryID: m.MinistryID,
		VolunteerMemberID:   req.MemberID,
		VolunteerFunction:   req.Function,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&v).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Member is already a volunteer of this ministry")
		}
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "ministry_volunteers", constants.ActionInsert, v.VolunteerID)
	return helper.JsonCreated(c, "Volunteer added", v)
}

// 🟢 DELETE /api/a/ministries/:id/volunteers/:member_id
func (ctl *MinistryController) RemoveVolunteer(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	memberID, err := helper.ParseUUIDParam(c, "member_id")
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).
		Where("volunteer_ministry_id = ? AND volunteer_member_id = ?", m.MinistryID, memberID).
		Delete(&model.VolunteerModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Volunteer not found")
	}
	realtime.Emit(c.UserContext(), churchID, "ministry_volunteers", constants.ActionDelete, memberID)
	return helper.JsonDeleted(c, "Volunteer removed", fiber.Map{"member_id": memberID})
}
