package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/churches/sharing"
	"ecclesia_backend/internals/features/content/schools/dto"
	"ecclesia_backend/internals/features/content/schools/model"
	memberService "ecclesia_backend/internals/features/members/members/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

func (ctl *SchoolController) load(c *fiber.Ctx, param string) (*model.SchoolModel, sharing.Visibility, error) {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return nil, vis, err
	}
	id, err := helper.ParseUUIDParam(c, param)
	if err != nil {
		return nil, vis, err
	}
	var s model.SchoolModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&s, "school_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vis, fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		return nil, vis, err
	}
	if !sharing.CanView(vis, s.SchoolChurchID, s.SchoolShareWithChildren) {
		return nil, vis, fiber.NewError(fiber.StatusNotFound, "School not found")
	}
	return &s, vis, nil
}

/* ===================== Schools ===================== */

// 🟢 GET /api/u/schools?q=&include_children=
func (ctl *SchoolController) List(c *fiber.Ctx) error {
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
	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.SchoolModel{}).
		Scopes(sharing.Scope(vis, "school_church_id", "school_share_with_children"))
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("school_name ILIKE ?", "%"+q+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.SchoolModel
	if err := tx.Order("school_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Schools loaded", rows, paging.Pagination(total))
}

// 🟢 GET /api/u/schools/:id
func (ctl *SchoolController) GetByID(c *fiber.Ctx) error {
	s, _, err := ctl.load(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "School loaded", s)
}

// 🟢 POST /api/a/schools
func (ctl *SchoolController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateSchoolRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	s := req.ToModel(churchID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(s).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "School created", s)
}

// 🟢 PATCH /api/a/schools/:id
func (ctl *SchoolController) Update(c *fiber.Ctx) error {
	s, vis, err := ctl.load(c, "id")
	if err != nil {
		return err
	}
	if !sharing.CanEdit(vis, s.SchoolChurchID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owning church can change this school")
	}
	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Apply(s)
	if s.SchoolName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "school_name cannot be empty")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(s).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "School updated", s)
}

// 🟢 DELETE /api/a/schools/:id
func (ctl *SchoolController) Delete(c *fiber.Ctx) error {
	s, vis, err := ctl.load(c, "id")
	if err != nil {
		return err
	}
	if !sharing.CanEdit(vis, s.SchoolChurchID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the owning church can delete this school")
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_school_id = ?", s.SchoolID).Delete(&model.EnrollmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(s).Error
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "School deleted", fiber.Map{"school_id": s.SchoolID})
}

/* ===================== Enrollments ===================== */

// 🟢 GET /api/a/schools/:id/enrollments
// The owning church sees every enrollment; a child church sees only its own members.
func (ctl *SchoolController) ListEnrollments(c *fiber.Ctx) error {
	s, vis, err := ctl.load(c, "id")
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).
		Table("school_enrollments AS e").
		Select(`e.enrollment_id, e.enrollment_church_id, e.enrollment_member_id AS member_id,
			m.member_name, e.enrollment_created_at AS enrolled_at`).
		Joins("JOIN members m ON m.member_id = e.enrollment_member_id AND m.member_deleted_at IS NULL").
		Where("e.enrollment_school_id = ?", s.SchoolID)
	if !sharing.CanEdit(vis, s.SchoolChurchID) {
		tx = tx.Where("e.enrollment_church_id = ?", vis.ViewerID)
	}
	var rows []dto.EnrollmentResponse
	if err := tx.Order("m.member_name ASC").Scan(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Enrollments loaded", rows)
}

// 🟢 POST /api/a/schools/:id/enrollments
func (ctl *SchoolController) Enroll(c *fiber.Ctx) error {
	s, vis, err := ctl.load(c, "id")
	if err != nil {
		return err
	}
	var req dto.EnrollRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if err := memberService.EnsureMembers(c.UserContext(), ctl.DB, vis.ViewerID, req.MemberID); err != nil {
		return err
	}
	e := model.EnrollmentModel{
		EnrollmentChurchID: vis.ViewerID,
		EnrollmentSchoolID: s.SchoolID,
		EnrollmentMemberID: req.MemberID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&e).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Member is already enrolled in this school")
		}
		return err
	}
	return helper.JsonCreated(c, "Member enrolled", e)
}

// 🟢 DELETE /api/a/schools/:id/enrollments/:enrollment_id
func (ctl *SchoolController) Unenroll(c *fiber.Ctx) error {
	s, vis, err := ctl.load(c, "id")
	if err != nil {
		return err
	}
	eid, err := helper.ParseUUIDParam(c, "enrollment_id")
	if err != nil {
		return err
	}
	tx := ctl.DB.WithContext(c.UserContext()).
		Where("enrollment_id = ? AND enrollment_school_id = ?", eid, s.SchoolID)
	if !sharing.CanEdit(vis, s.SchoolChurchID) {
		tx = tx.Where("enrollment_church_id = ?", vis.ViewerID)
	}
	res := tx.Delete(&model.EnrollmentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	return helper.JsonDeleted(c, "Enrollment removed", fiber.Map{"enrollment_id": eid})
}
