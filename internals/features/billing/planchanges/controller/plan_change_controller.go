package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/billing/planchanges/dto"
	"ecclesia_backend/internals/features/billing/planchanges/model"
	planModel "ecclesia_backend/internals/features/billing/plans/model"
	churchModel "ecclesia_backend/internals/features/churches/churches/model"
	churchService "ecclesia_backend/internals/features/churches/churches/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/email"
)

type PlanChangeController struct {
	DB     *gorm.DB
	Mailer email.EmailService
}

func NewPlanChangeController(db *gorm.DB, mailer email.EmailService) *PlanChangeController {
	return &PlanChangeController{DB: db, Mailer: mailer}
}

/* ===================== CHURCH ===================== */

// 🟢 POST /api/a/billing/plan-requests
func (ctl *PlanChangeController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	if helperAuth.GetParentChurchID(c) != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Child churches follow the plan of their mother church")
	}
	var req dto.CreatePlanChangeRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	church, err := churchService.FindByID(c.UserContext(), ctl.DB, churchID)
	if err != nil {
		return err
	}
	var plan planModel.PlanModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&plan, "plan_id = ? AND plan_is_active = TRUE", req.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Plan not found")
		}
		return err
	}
	if church.ChurchPlanID != nil && *church.ChurchPlanID == plan.PlanID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Church is already on this plan")
	}

	row := model.PlanChangeModel{
		PlanChangeChurchID:   churchID,
		PlanChangePlanID:     plan.PlanID,
		PlanChangeFromPlanID: church.ChurchPlanID,
		PlanChangeStatus:     model.StatusPending,
		PlanChangeReason:     req.Reason,
	}
	if uid, err := helperAuth.GetUserID(c); err == nil {
		row.PlanChangeRequestedBy = &uid
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A plan change request is already pending")
		}
		return err
	}
	row.Plan = &plan
	return helper.JsonCreated(c, "Plan change requested", row)
}

// 🟢 GET /api/a/billing/plan-requests
func (ctl *PlanChangeController) Mine(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var rows []model.PlanChangeModel
	if err := ctl.DB.WithContext(c.UserContext()).Preload("Plan").
		Where("plan_change_church_id = ?", churchID).
		Order("plan_change_created_at DESC").
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Plan change requests loaded", rows)
}

/* ===================== OWNER ===================== */

// 🟢 GET /api/o/plan-requests?status=pending
func (ctl *PlanChangeController) OwnerList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.PlanChangeModel{})
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		tx = tx.Where("plan_change_status = ?", st)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.PlanChangeModel
	if err := tx.Preload("Plan").
		Order("plan_change_created_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Plan change requests loaded", rows, paging.Pagination(total))
}

// 🟢 POST /api/o/plan-requests/:id/approve
func (ctl *PlanChangeController) Approve(c *fiber.Ctx) error {
	return ctl.decide(c, model.StatusApproved)
}

// 🟢 POST /api/o/plan-requests/:id/reject
func (ctl *PlanChangeController) Reject(c *fiber.Ctx) error {
	return ctl.decide(c, model.StatusRejected)
}

func (ctl *PlanChangeController) decide(c *fiber.Ctx, status string) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.DecideRequest
	if len(c.Body()) > 0 {
		if ok, err := helper.ParseAndValidate(c, &req); !ok {
			return err
		}
	}
	var decidedBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		decidedBy = &uid
	}

	var pc model.PlanChangeModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Plan").First(&pc, "plan_change_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Plan change request not found")
			}
			return err
		}
		now := time.Now().UTC()
		res := tx.Model(&model.PlanChangeModel{}).
			Where("plan_change_id = ? AND plan_change_status = ?", id, model.StatusPending).
			Updates(map[string]any{
				"plan_change_status":     status,
				"plan_change_note":       req.Note,
				"plan_change_decided_by": decidedBy,
				"plan_change_decided_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Plan change request was already decided")
		}
		pc.PlanChangeStatus = status
		pc.PlanChangeNote = req.Note
		pc.PlanChangeDecidedBy = decidedBy
		pc.PlanChangeDecidedAt = &now

		if status != model.StatusApproved {
			return nil
		}
		// children carry the mother's plan
		return tx.Model(&churchModel.ChurchModel{}).
			Where("church_id = ? OR church_parent_id = ?", pc.PlanChangeChurchID, pc.PlanChangeChurchID).
			Update("church_plan_id", pc.PlanChangePlanID).Error
	})
	if err != nil {
		return err
	}

	ctl.notify(c, pc)
	log.Printf("[INFO] plan change %s %s (church=%s)", pc.PlanChangeID, status, pc.PlanChangeChurchID)
	return helper.JsonUpdated(c, "Plan change request "+status, pc)
}

func (ctl *PlanChangeController) notify(c *fiber.Ctx, pc model.PlanChangeModel) {
	if ctl.Mailer == nil {
		return
	}
	church, err := churchService.FindByID(c.UserContext(), ctl.DB, pc.PlanChangeChurchID)
	if err != nil {
		log.Printf("[WARN] plan change mail: load church %s: %v", pc.PlanChangeChurchID, err)
		return
	}
	planName := ""
	if pc.Plan != nil {
		planName = pc.Plan.PlanName
	}
	if msg := dto.DecisionMail(church.ChurchName, church.ChurchEmail, pc, planName); msg != nil {
		ctl.Mailer.SendMessages(msg)
	}
}
