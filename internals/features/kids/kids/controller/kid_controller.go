package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/kids/kids/dto"
	"ecclesia_backend/internals/features/kids/kids/model"
	"ecclesia_backend/internals/features/kids/kids/service"
	memberService "ecclesia_backend/internals/features/members/members/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/realtime"
)

const checkinTable = "kid_checkins"

type KidController struct {
	DB *gorm.DB
}

func NewKidController(db *gorm.DB) *KidController {
	return &KidController{DB: db}
}

func (ctl *KidController) find(c *fiber.Ctx) (*model.KidModel, uuid.UUID, error) {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return nil, churchID, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, churchID, err
	}
	var k model.KidModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&k, "kid_id = ? AND kid_church_id = ?", id, churchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, churchID, fiber.NewError(fiber.StatusNotFound, "Kid not found")
		}
		return nil, churchID, err
	}
	return &k, churchID, nil
}

/* ===================== Kids ===================== */

// 🟢 GET /api/a/kids?q=
func (ctl *KidController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 50, 200)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.KidModel{}).Where("kid_church_id = ?", churchID)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("kid_name ILIKE ?", "%"+q+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.KidModel
	if err := tx.Order("kid_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Kids loaded", rows, paging.Pagination(total))
}

// 🟢 GET /api/a/kids/:id
func (ctl *KidController) GetByID(c *fiber.Ctx) error {
	k, _, err := ctl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Kid loaded", k)
}

// 🟢 POST /api/a/kids
func (ctl *KidController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateKidRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, req.GuardianMemberIDs...); err != nil {
		return err
	}
	k, err := req.ToModel(churchID)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(k).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Kid registered", k)
}

// 🟢 PATCH /api/a/kids/:id
func (ctl *KidController) Update(c *fiber.Ctx) error {
	k, churchID, err := ctl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateKidRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	guardians, err := req.Apply(k)
	if err != nil {
		return err
	}
	if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, guardians...); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(k).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Kid updated", k)
}

// 🟢 DELETE /api/a/kids/:id
func (ctl *KidController) Delete(c *fiber.Ctx) error {
	k, _, err := ctl.find(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(k).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Kid deleted", fiber.Map{"kid_id": k.KidID})
}

/* ===================== Check-in ===================== */

// 🟢 POST /api/a/kids/:id/checkin
// the response carries the security code once
func (ctl *KidController) CheckIn(c *fiber.Ctx) error {
	k, churchID, err := ctl.find(c)
	if err != nil {
		return err
	}
	var req dto.CheckInRequest
	if len(c.Body()) > 0 {
		if ok, err := helper.ParseAndValidate(c, &req); !ok {
			return err
		}
	}
	code, err := service.GenerateCode(nil)
	if err != nil {
		return err
	}
	row := model.KidCheckinModel{
		KidCheckinChurchID: churchID,
		KidCheckinKidID:    k.KidID,
		KidCheckinCode:     code,
		KidCheckinRoom:     req.Room,
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		row.KidCheckinCheckedInBy = &uid
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kid is already checked in")
		}
		return err
	}
	realtime.Emit(c.UserContext(), churchID, checkinTable, constants.ActionInsert, row.KidCheckinID)
	log.Printf("[INFO] kid %s checked in (church=%s)", k.KidID, churchID)
	return helper.JsonCreated(c, "Kid checked in", row)
}

// 🟢 POST /api/a/checkins/:id/checkout
func (ctl *KidController) CheckOut(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CheckOutRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if req.PickupMemberID != nil {
		if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, churchID, *req.PickupMemberID); err != nil {
			return err
		}
	}

	var row model.KidCheckinModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "kid_checkin_id = ? AND kid_checkin_church_id = ?", id, churchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Check-in not found")
		}
		return err
	}
	if row.KidCheckinCheckedOutAt != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Kid was already checked out")
	}
	if !service.CodeMatches(row.KidCheckinCode, req.Code) {
		log.Printf("[WARN] check-out code mismatch for check-in %s", row.KidCheckinID)
		return helper.JsonError(c, fiber.StatusForbidden, "Security code does not match")
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"kid_checkin_checked_out_at":   now,
		"kid_checkin_pickup_member_id": req.PickupMemberID,
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		updates["kid_checkin_checked_out_by"] = uid
	}
	res := ctl.DB.WithContext(c.UserContext()).Model(&model.KidCheckinModel{}).
		Where("kid_checkin_id = ? AND kid_checkin_checked_out_at IS NULL", row.KidCheckinID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Kid was already checked out")
	}
	realtime.Emit(c.UserContext(), churchID, checkinTable, constants.ActionUpdate, row.KidCheckinID)
	return helper.JsonOK(c, "Kid checked out", fiber.Map{
		"kid_checkin_id":             row.KidCheckinID,
		"kid_checkin_checked_out_at": now,
	})
}

// 🟢 GET /api/a/checkins/open
// codes stay hidden from staff
func (ctl *KidController) ListOpen(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var rows []model.KidCheckinModel
	if err := ctl.DB.WithContext(c.UserContext()).Preload("Kid").
		Where("kid_checkin_church_id = ? AND kid_checkin_checked_out_at IS NULL", churchID).
		Order("kid_checkin_checked_in_at ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		rows[i].KidCheckinCode = ""
	}
	return helper.JsonOK(c, "Open check-ins", rows)
}

// 🟢 GET /api/u/kids/mine
// kids the caller is a guardian of
func (ctl *KidController) Mine(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	memberID, err := memberService.MemberIDOfUser(c.UserContext(), ctl.DB, churchID, userID)
	if err != nil {
		return err
	}
	var kids []model.KidModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("kid_church_id = ? AND ?::uuid = ANY(kid_guardian_member_ids)", churchID, memberID.String()).
		Order("kid_name ASC").Find(&kids).Error; err != nil {
		return err
	}
	ids := make([]uuid.UUID, len(kids))
	for i, k := range kids {
		ids[i] = k.KidID
	}
	open := map[uuid.UUID]model.KidCheckinModel{}
	if len(ids) > 0 {
		var rows []model.KidCheckinModel
		if err := ctl.DB.WithContext(c.UserContext()).
			Where("kid_checkin_kid_id IN ? AND kid_checkin_checked_out_at IS NULL", ids).
			Find(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			open[r.KidCheckinKidID] = r
		}
	}
	out := make([]dto.MyKid, 0, len(kids))
	for _, k := range kids {
		mk := dto.MyKid{KidModel: k}
		if r, ok := open[k.KidID]; ok {
			r := r
			mk.OpenCheckin = &r
		}
		out = append(out, mk)
	}
	return helper.JsonOK(c, "My kids", out)
}
