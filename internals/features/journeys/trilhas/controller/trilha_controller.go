package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/churches/sharing"
	"ecclesia_backend/internals/features/journeys/trilhas/dto"
	"ecclesia_backend/internals/features/journeys/trilhas/model"
	"ecclesia_backend/internals/features/journeys/trilhas/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type JourneyController struct {
	DB *gorm.DB
}

func NewJourneyController(db *gorm.DB) *JourneyController {
	return &JourneyController{DB: db}
}

var errTrilhaNotFound = fiber.NewError(fiber.StatusNotFound, "Trilha not found")

func (ctl *JourneyController) visibleTrilha(c *fiber.Ctx, id uuid.UUID) (*model.TrilhaModel, sharing.Visibility, error) {
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return nil, vis, err
	}
	var t model.TrilhaModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&t, "trilha_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vis, errTrilhaNotFound
		}
		return nil, vis, err
	}
	if !sharing.CanView(vis, t.TrilhaChurchID, t.TrilhaShareWithChildren) {
		return nil, vis, errTrilhaNotFound
	}
	return &t, vis, nil
}

func (ctl *JourneyController) ownedTrilha(c *fiber.Ctx, id uuid.UUID) (*model.TrilhaModel, error) {
	t, vis, err := ctl.visibleTrilha(c, id)
	if err != nil {
		return nil, err
	}
	if !sharing.CanEdit(vis, t.TrilhaChurchID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only the owning church can change this trilha")
	}
	return t, nil
}

// loadTree fills etapas, passos and questions in position order.
func (ctl *JourneyController) loadTree(ctx context.Context, t *model.TrilhaModel) error {
	return ctl.DB.WithContext(ctx).
		Preload("Etapas", func(db *gorm.DB) *gorm.DB { return db.Order("etapa_position ASC, etapa_created_at ASC") }).
		Preload("Etapas.Passos", func(db *gorm.DB) *gorm.DB { return db.Order("passo_position ASC, passo_created_at ASC") }).
		Preload("Etapas.Passos.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_question_position ASC, quiz_question_created_at ASC")
		}).
		First(t, "trilha_id = ?", t.TrilhaID).Error
}

func (ctl *JourneyController) doneSet(ctx context.Context, userID, trilhaID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := ctl.DB.WithContext(ctx).
		Table("passo_progress AS pp").
		Joins("JOIN passos p ON p.passo_id = pp.passo_progress_passo_id").
		Joins("JOIN etapas e ON e.etapa_id = p.passo_etapa_id").
		Where("pp.passo_progress_user_id = ? AND e.etapa_trilha_id = ?", userID, trilhaID).
		Pluck("pp.passo_progress_passo_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

/* ===================== Learner reads ===================== */

// 🟢 GET /api/u/trilhas?q=&include_children=
func (ctl *JourneyController) List(c *fiber.Ctx) error {
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
		Model(&model.TrilhaModel{}).
		Scopes(sharing.Scope(vis, "trilha_church_id", "trilha_share_with_children"))
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("trilha_title ILIKE ?", "%"+q+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return err
	}
	var rows []model.TrilhaModel
	if err := tx.Order("trilha_created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "Trilhas loaded", rows, paging.Pagination(total))
}

// 🟢 GET /api/u/trilhas/:id/tree
func (ctl *JourneyController) Tree(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, _, err := ctl.visibleTrilha(c, id)
	if err != nil {
		return err
	}
	if err := ctl.loadTree(c.UserContext(), t); err != nil {
		return err
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	done, err := ctl.doneSet(c.UserContext(), userID, t.TrilhaID)
	if err != nil {
		return err
	}
	withAnswers := helperAuth.IsStaff(c) || helperAuth.IsSuperadmin(c)
	return helper.JsonOK(c, "Trilha tree loaded", dto.BuildTree(*t, done, withAnswers))
}

// 🟢 GET /api/u/trilhas/:id/progress
func (ctl *JourneyController) Progress(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, _, err := ctl.visibleTrilha(c, id)
	if err != nil {
		return err
	}
	if err := ctl.loadTree(c.UserContext(), t); err != nil {
		return err
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	done, err := ctl.doneSet(c.UserContext(), userID, t.TrilhaID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Progress loaded", service.Progress(t.TrilhaID, t.Etapas, done))
}

/* ===================== Trilha writes ===================== */

// 🟢 POST /api/a/trilhas
func (ctl *JourneyController) CreateTrilha(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTrilhaRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	t := model.TrilhaModel{
		TrilhaChurchID:          churchID,
		TrilhaTitle:             strings.TrimSpace(req.Title),
		TrilhaDescription:       req.Description,
		TrilhaShareWithChildren: req.ShareWithChildren,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&t).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Trilha created", t)
}

// 🟢 PATCH /api/a/trilhas/:id
func (ctl *JourneyController) UpdateTrilha(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, err := ctl.ownedTrilha(c, id)
	if err != nil {
		return err
	}
	var req dto.UpdateTrilhaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Apply(t)
	if t.TrilhaTitle == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "trilha_title cannot be empty")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(t).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Trilha updated", t)
}

// 🟢 DELETE /api/a/trilhas/:id
func (ctl *JourneyController) DeleteTrilha(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, err := ctl.ownedTrilha(c, id)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(t).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Trilha deleted", fiber.Map{"trilha_id": t.TrilhaID})
}
