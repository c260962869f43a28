package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/constants"
	memberService "ecclesia_backend/internals/features/members/members/service"
	ministryModel "ecclesia_backend/internals/features/ministries/ministries/model"
	"ecclesia_backend/internals/features/ministries/schedules/dto"
	"ecclesia_backend/internals/features/ministries/schedules/model"
	"ecclesia_backend/internals/features/ministries/schedules/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/realtime"
)

type ScheduleController struct {
	DB *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db}
}

func (ctl *ScheduleController) find(c *fiber.Ctx, churchID uuid.UUID) (*model.ScheduleModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var s model.ScheduleModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Assignments").
		Where("schedule_id = ? AND schedule_church_id = ?", id, churchID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Schedule not found")
		}
		return nil, err
	}
	return &s, nil
}

/* =========================================================
   LIST
   GET /api/a/schedules?from=YYYY-MM-DD&to=YYYY-MM-DD&ministry_id=
   ========================================================= */
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := helper.ParseDateQuery(c, "to")
	if err != nil {
		return err
	}
	ministryID, err := helper.ParseUUIDQuery(c, "ministry_id")
	if err != nil {
		return err
	}

	tx := ctl.DB.WithContext(c.UserContext()).
		Preload("Assignments").
		Where("schedule_church_id = ?", churchID)
	if from != nil {
		tx = tx.Where("schedule_service_date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("schedule_service_date < ?", to.AddDate(0, 0, 1))
	}
	if ministryID != nil {
		tx = tx.Where("schedule_ministry_id = ?", *ministryID)
	}
	var rows []model.ScheduleModel
	if err := tx.Order("schedule_service_date ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Schedules loaded", rows)
}

// 🟢 GET /api/a/schedules/:id
func (ctl *ScheduleController) GetByID(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	s, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Schedule loaded", s)
}

/* =========================================================
   CREATE
   POST /api/a/schedules
   ========================================================= */
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}

	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&ministryModel.MinistryModel{}).
		Where("ministry_id = ? AND ministry_church_id = ?", req.MinistryID, churchID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ministry not found in this church")
	}
	roster, err := service.VolunteerSet(c.UserContext(), ctl.DB, req.MinistryID)
	if err != nil {
		return err
	}
	if err := service.ValidateAssignments(req.Assignments, roster); err != nil {
		return err
	}

	s := model.ScheduleModel{
		ScheduleChurchID:    churchID,
		ScheduleMinistryID:  req.MinistryID,
		ScheduleTitle:       req.Title,
		ScheduleServiceDate: req.ServiceDate.UTC(),
		ScheduleNotes:       req.Notes,
	}
	for _, a := range req.Assignments {
		s.Assignments = append(s.Assignments, model.ScheduleAssignmentModel{
			AssignmentChurchID: churchID,
			AssignmentMemberID: a.MemberID,
			AssignmentFunction: a.Function,
			AssignmentStatus:   model.AssignmentPending,
		})
	}
	// Create with associations runs in one transaction.
	if err := ctl.DB.WithContext(c.UserContext()).Create(&s).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A member can only be assigned once per schedule")
		}
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "schedules", constants.ActionInsert, s.ScheduleID)
	return helper.JsonCreated(c, "Schedule created", s)
}

// 🟢 PATCH /api/a/schedules/:id
func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	s, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Title.ApplyRequired(&s.ScheduleTitle)
	req.ServiceDate.ApplyRequired(&s.ScheduleServiceDate)
	req.Notes.ApplyTo(&s.ScheduleNotes)

	if err := ctl.DB.WithContext(c.UserContext()).Model(s).Updates(map[string]any{
		"schedule_title":        s.ScheduleTitle,
		"schedule_service_date": s.ScheduleServiceDate,
		"schedule_notes":        s.ScheduleNotes,
	}).Error; err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "schedules", constants.ActionUpdate, s.ScheduleID)
	return helper.JsonUpdated(c, "Schedule updated", s)
}

// 🟢 DELETE /api/a/schedules/:id
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	s, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_assignment_schedule_id = ?", s.ScheduleID).Delete(&model.ScheduleAssignmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ScheduleModel{}, "schedule_id = ?", s.ScheduleID).Error
	})
	if err != nil {
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "schedules", constants.ActionDelete, s.ScheduleID)
	return helper.JsonDeleted(c, "Schedule deleted", fiber.Map{"schedule_id": s.ScheduleID})
}

// 🟢 POST /api/a/schedules/:id/assignments
func (ctl *ScheduleController) AddAssignment(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	s, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	var req dto.AssignmentInput
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	roster, err := service.VolunteerSet(c.UserContext(), ctl.DB, s.ScheduleMinistryID)
	if err != nil {
		return err
	}
	all := []dto.AssignmentInput{req}
	for _, a := range s.Assignments {
		all = append(all, dto.AssignmentInput{MemberID: a.AssignmentMemberID})
		roster[a.AssignmentMemberID] = true
	}
	if err := service.ValidateAssignments(all, roster); err != nil {
		return err
	}

	a := model.ScheduleAssignmentModel{
		AssignmentChurchID:   churchID,
		AssignmentScheduleID: s.ScheduleID,
		AssignmentMemberID:   req.MemberID,
		AssignmentFunction:   req.Function,
		AssignmentStatus:     model.AssignmentPending,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&a).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A member can only be assigned once per schedule")
		}
		return err
	}
	realtime.Emit(c.UserContext(), churchID, "schedule_assignments", constants.ActionInsert, a.AssignmentID)
	return helper.JsonCreated(c, "Assignment added", a)
}

// 🟢 DELETE /api/a/schedules/:id/assignments/:assignment_id
func (ctl *ScheduleController) RemoveAssignment(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	s, err := ctl.find(c, churchID)
	if err != nil {
		return err
	}
	aid, err := helper.ParseUUIDParam(c, "assignment_id")
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).
		Where("schedule_assignment_id = ? AND schedule_assignment_schedule_id = ?", aid, s.ScheduleID).
		Delete(&model.ScheduleAssignmentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	realtime.Emit(c.UserContext(), churchID, "schedule_assignments", constants.ActionDelete, aid)
	return helper.JsonDeleted(c, "Assignment removed", fiber.Map{"assignment_id": aid})
}

/* ===================== Member side ===================== */

// 🟢 GET /api/u/schedules/mine?from=
func (ctl *ScheduleController) Mine(c *fiber.Ctx) error {
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
	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return err
	}
	if from == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		from = &today
	}

	var out []dto.MyAssignment
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("schedule_assignments AS a").
		Select(`a.schedule_assignment_id AS assignment_id, s.schedule_id, s.schedule_title,
			s.schedule_service_date, mi.ministry_id, mi.ministry_name,
			a.schedule_assignment_function AS function, a.schedule_assignment_status AS status`).
		Joins("JOIN schedules s ON s.schedule_id = a.schedule_assignment_schedule_id AND s.schedule_deleted_at IS NULL").
		Joins("JOIN ministries mi ON mi.ministry_id = s.schedule_ministry_id").
		Where("a.schedule_assignment_member_id = ? AND s.schedule_service_date >= ?", memberID, *from).
		Order("s.schedule_service_date ASC").
		Scan(&out).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Your schedules", out)
}

// 🟢 PATCH /api/u/schedules/assignments/:id {status}
func (ctl *ScheduleController) Respond(c *fiber.Ctx) error {
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
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RespondRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}

	var a model.ScheduleAssignmentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("schedule_assignment_id = ? AND schedule_assignment_member_id = ?", id, memberID).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return err
	}
	if !service.CanRespond(a.AssignmentStatus, req.Status) {
		return helper.JsonError(c, fiber.StatusConflict, "Assignment already "+a.AssignmentStatus)
	}
	now := time.Now().UTC()
	if err := ctl.DB.WithContext(c.UserContext()).Model(&a).Updates(map[string]any{
		"schedule_assignment_status":       req.Status,
		"schedule_assignment_responded_at": now,
	}).Error; err != nil {
		return err
	}
	a.AssignmentStatus, a.AssignmentRespondedAt = req.Status, &now
	realtime.Emit(c.UserContext(), churchID, "schedule_assignments", constants.ActionUpdate, a.AssignmentID)
	return helper.JsonUpdated(c, "Response saved", a)
}
