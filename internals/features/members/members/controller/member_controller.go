package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/members/members/dto"
	"ecclesia_backend/internals/features/members/members/model"
	"ecclesia_backend/internals/features/members/members/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/email"
	helperOSS "ecclesia_backend/internals/helpers/oss"
	"ecclesia_backend/internals/helpers/realtime"
)

type MemberController struct {
	DB     *gorm.DB
	Store  helperOSS.BlobStore
	Mailer email.EmailService
}

func NewMemberController(db *gorm.DB, store helperOSS.BlobStore, mailer email.EmailService) *MemberController {
	return &MemberController{DB: db, Store: store, Mailer: mailer}
}

func (ctl *MemberController) churchName(c *fiber.Ctx, churchID any) string {
	var name string
	_ = ctl.DB.WithContext(c.UserContext()).
		Table("churches").
		Select("church_name").
		Where("church_id = ?", churchID).
		Scan(&name).Error
	return name
}

// findOwned loads a member of the caller's church.
func (ctl *MemberController) findOwned(c *fiber.Ctx) (*model.MemberModel, error) {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.MemberModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("member_id = ? AND member_church_id = ?", id, churchID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return nil, err
	}
	return &m, nil
}

/* =========================================================
   LIST
   GET /api/a/members?q=&role=&status=&page=&per_page=
   ========================================================= */
func (ctl *MemberController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.MemberModel{}).
		Where("member_church_id = ?", churchID)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("(member_name ILIKE ? OR member_email ILIKE ? OR member_phone ILIKE ?)", like, like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		if !constants.IsValidChurchRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role filter")
		}
		tx = tx.Where("member_role = ?", role)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("member_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.MemberModel
	if err := tx.Order("member_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Members loaded", dto.FromModels(rows), paging.Pagination(total))
}

// 🟢 GET /api/a/members/:id
func (ctl *MemberController) GetByID(c *fiber.Ctx) error {
	m, err := ctl.findOwned(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Member loaded", dto.FromModel(*m))
}

// 🟢 GET /api/u/members/me
func (ctl *MemberController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var m model.MemberModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("member_user_id = ? AND member_church_id = ?", userID, churchID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No member record linked to this account")
		}
		return err
	}
	return helper.JsonOK(c, "Member loaded", dto.FromModel(m))
}

/* =========================================================
   CREATE
   POST /api/a/members
   ========================================================= */
func (ctl *MemberController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateMemberRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()
	if !canAssignRole(c, req.MemberRole) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("pastor/admin role assignment"))
	}

	m, err := req.ToModel(churchID)
	if err != nil {
		return err
	}
	if err := service.EnsureCapacity(c.UserContext(), ctl.DB, churchID); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "This user is already linked to another member")
		}
		return err
	}

	service.SendWelcome(ctl.Mailer, *m, ctl.churchName(c, churchID))
	realtime.Emit(c.UserContext(), churchID, "members", constants.ActionInsert, m.MemberID)
	return helper.JsonCreated(c, "Member created", dto.FromModel(*m))
}

/* =========================================================
   PATCH
   PATCH /api/a/members/:id
   ========================================================= */
func (ctl *MemberController) Update(c *fiber.Ctx) error {
	m, err := ctl.findOwned(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	prevRole := m.MemberRole
	if err := req.Apply(m); err != nil {
		return err
	}
	if m.MemberRole != prevRole && (!canAssignRole(c, m.MemberRole) || !canAssignRole(c, prevRole)) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("pastor/admin role assignment"))
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "This user is already linked to another member")
		}
		return err
	}
	realtime.Emit(c.UserContext(), m.MemberChurchID, "members", constants.ActionUpdate, m.MemberID)
	return helper.JsonUpdated(c, "Member updated", dto.FromModel(*m))
}

// 🟢 DELETE /api/a/members/:id (soft delete)
func (ctl *MemberController) Delete(c *fiber.Ctx) error {
	m, err := ctl.findOwned(c)
	if err != nil {
		return err
	}
	if m.MemberRole == constants.ChurchRolePastor && !helperAuth.HasChurchRole(c, constants.PastorOnly...) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorPastor("pastor removal"))
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Member is still referenced by other records")
		}
		return err
	}
	realtime.Emit(c.UserContext(), m.MemberChurchID, "members", constants.ActionDelete, m.MemberID)
	return helper.JsonDeleted(c, "Member deleted", fiber.Map{"member_id": m.MemberID})
}

/* =========================================================
   PHOTO
   POST /api/a/members/:id/photo (multipart: photo|file)
   ========================================================= */
func (ctl *MemberController) UploadPhoto(c *fiber.Ctx) error {
	m, err := ctl.findOwned(c)
	if err != nil {
		return err
	}
	fh, err := helperOSS.GetFormFile(c, "photo", "file")
	if err != nil {
		return err
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "photo file is required")
	}

	url, err := ctl.Store.UploadImage(c.UserContext(), helperOSS.ChurchDir(m.MemberChurchID, "members"), fh, helperOSS.PhotoOptions)
	if err != nil {
		return err
	}
	oldURL := m.MemberPhotoURL

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(m).
		Update("member_photo_url", url).Error; err != nil {
		if delErr := ctl.Store.DeleteByPublicURL(c.UserContext(), url); delErr != nil {
			log.Printf("[WARN] orphan member photo %s: %v", url, delErr)
		}
		return err
	}
	if oldURL != nil && *oldURL != "" {
		if err := ctl.Store.DeleteByPublicURL(c.UserContext(), *oldURL); err != nil {
			log.Printf("[WARN] old member photo not removed %s: %v", *oldURL, err)
		}
	}
	m.MemberPhotoURL = &url
	return helper.JsonUpdated(c, "Photo updated", dto.FromModel(*m))
}

// pastor/admin roles can only be handed out by a pastor or admin.
func canAssignRole(c *fiber.Ctx, role string) bool {
	if !constants.HasRole(role, constants.AdminRoles) {
		return true
	}
	return helperAuth.HasChurchRole(c, constants.AdminRoles...)
}
