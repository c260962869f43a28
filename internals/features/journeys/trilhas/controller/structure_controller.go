package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/journeys/trilhas/dto"
	"ecclesia_backend/internals/features/journeys/trilhas/model"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

// nextPosition appends after the last sibling.
func (ctl *JourneyController) nextPosition(ctx context.Context, table, posCol, parentCol string, parentID uuid.UUID) (int, error) {
	var next int
	err := ctl.DB.WithContext(ctx).Table(table).
		Select("COALESCE(MAX("+posCol+") + 1, 0)").
		Where(parentCol+" = ?", parentID).
		Scan(&next).Error
	return next, err
}

// owned loads a row of the caller's church by id, 404 otherwise.
func (ctl *JourneyController) owned(c *fiber.Ctx, dst any, idCol, churchCol, label string) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Where(idCol+" = ? AND "+churchCol+" = ?", id, churchID).
		First(dst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, label+" not found")
		}
		return err
	}
	return nil
}

/* ===================== Etapas ===================== */

// 🟢 POST /api/a/trilhas/:id/etapas
func (ctl *JourneyController) CreateEtapa(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, err := ctl.ownedTrilha(c, id)
	if err != nil {
		return err
	}
	var req dto.CreateEtapaRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	pos := 0
	if req.Position != nil {
		pos = *req.Position
	} else if pos, err = ctl.nextPosition(c.UserContext(), "etapas", "etapa_position", "etapa_trilha_id", t.TrilhaID); err != nil {
		return err
	}
	e := model.EtapaModel{
		EtapaChurchID: t.TrilhaChurchID,
		EtapaTrilhaID: t.TrilhaID,
		EtapaTitle:    strings.TrimSpace(req.Title),
		EtapaPosition: pos,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&e).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Etapa created", e)
}

// 🟢 PATCH /api/a/etapas/:id
func (ctl *JourneyController) UpdateEtapa(c *fiber.Ctx) error {
	var e model.EtapaModel
	if err := ctl.owned(c, &e, "etapa_id", "etapa_church_id", "Etapa"); err != nil {
		return err
	}
	var req dto.UpdateEtapaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Title.ApplyRequired(&e.EtapaTitle)
	req.Position.ApplyRequired(&e.EtapaPosition)
	if strings.TrimSpace(e.EtapaTitle) == "" || e.EtapaPosition < 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid etapa_title or etapa_position")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&e).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Etapa updated", e)
}

// 🟢 DELETE /api/a/etapas/:id
func (ctl *JourneyController) DeleteEtapa(c *fiber.Ctx) error {
	var e model.EtapaModel
	if err := ctl.owned(c, &e, "etapa_id", "etapa_church_id", "Etapa"); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&e).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Etapa deleted", fiber.Map{"etapa_id": e.EtapaID})
}

/* ===================== Passos ===================== */

// 🟢 POST /api/a/etapas/:id/passos
func (ctl *JourneyController) CreatePasso(c *fiber.Ctx) error {
	var e model.EtapaModel
	if err := ctl.owned(c, &e, "etapa_id", "etapa_church_id", "Etapa"); err != nil {
		return err
	}
	var req dto.CreatePassoRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	pos := 0
	if req.Position != nil {
		pos = *req.Position
	} else {
		var err error
		if pos, err = ctl.nextPosition(c.UserContext(), "passos", "passo_position", "passo_etapa_id", e.EtapaID); err != nil {
			return err
		}
	}
	p := model.PassoModel{
		PassoChurchID: e.EtapaChurchID,
		PassoEtapaID:  e.EtapaID,
		PassoTitle:    strings.TrimSpace(req.Title),
		PassoContent:  req.Content,
		PassoVideoURL: req.VideoURL,
		PassoPosition: pos,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Passo created", p)
}

// 🟢 PATCH /api/a/passos/:id
func (ctl *JourneyController) UpdatePasso(c *fiber.Ctx) error {
	var p model.PassoModel
	if err := ctl.owned(c, &p, "passo_id", "passo_church_id", "Passo"); err != nil {
		return err
	}
	var req dto.UpdatePassoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Title.ApplyRequired(&p.PassoTitle)
	req.Content.ApplyTo(&p.PassoContent)
	req.VideoURL.ApplyTo(&p.PassoVideoURL)
	req.Position.ApplyRequired(&p.PassoPosition)
	if strings.TrimSpace(p.PassoTitle) == "" || p.PassoPosition < 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid passo_title or passo_position")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&p).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Passo updated", p)
}

// 🟢 DELETE /api/a/passos/:id
func (ctl *JourneyController) DeletePasso(c *fiber.Ctx) error {
	var p model.PassoModel
	if err := ctl.owned(c, &p, "passo_id", "passo_church_id", "Passo"); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&p).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Passo deleted", fiber.Map{"passo_id": p.PassoID})
}

/* ===================== Quiz questions ===================== */

func validCorrectIndex(idx int, options []string) bool {
	return idx >= 0 && idx < len(options)
}

// 🟢 POST /api/a/passos/:id/questions
func (ctl *JourneyController) CreateQuestion(c *fiber.Ctx) error {
	var p model.PassoModel
	if err := ctl.owned(c, &p, "passo_id", "passo_church_id", "Passo"); err != nil {
		return err
	}
	var req dto.CreateQuestionRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if !validCorrectIndex(req.CorrectIndex, req.Options) {
		return helper.JsonError(c, fiber.StatusBadRequest, "quiz_question_correct_index is out of range")
	}
	pos := 0
	if req.Position != nil {
		pos = *req.Position
	} else {
		var err error
		if pos, err = ctl.nextPosition(c.UserContext(), "quiz_questions", "quiz_question_position", "quiz_question_passo_id", p.PassoID); err != nil {
			return err
		}
	}
	q := model.QuizQuestionModel{
		QuizQuestionChurchID:     p.PassoChurchID,
		QuizQuestionPassoID:      p.PassoID,
		QuizQuestionPrompt:       strings.TrimSpace(req.Prompt),
		QuizQuestionOptions:      req.Options,
		QuizQuestionCorrectIndex: req.CorrectIndex,
		QuizQuestionPosition:     pos,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&q).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Question created", q)
}

// 🟢 PATCH /api/a/questions/:id
func (ctl *JourneyController) UpdateQuestion(c *fiber.Ctx) error {
	var q model.QuizQuestionModel
	if err := ctl.owned(c, &q, "quiz_question_id", "quiz_question_church_id", "Question"); err != nil {
		return err
	}
	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Prompt.ApplyRequired(&q.QuizQuestionPrompt)
	if v, ok := req.Options.Get(); ok && v != nil {
		q.QuizQuestionOptions = *v
	}
	req.CorrectIndex.ApplyRequired(&q.QuizQuestionCorrectIndex)
	req.Position.ApplyRequired(&q.QuizQuestionPosition)
	if len(q.QuizQuestionOptions) < 2 || !validCorrectIndex(q.QuizQuestionCorrectIndex, q.QuizQuestionOptions) {
		return helper.JsonError(c, fiber.StatusBadRequest, "A question needs at least two options and a valid correct index")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&q).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Question updated", q)
}

// 🟢 DELETE /api/a/questions/:id
func (ctl *JourneyController) DeleteQuestion(c *fiber.Ctx) error {
	var q model.QuizQuestionModel
	if err := ctl.owned(c, &q, "quiz_question_id", "quiz_question_church_id", "Question"); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&q).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"quiz_question_id": q.QuizQuestionID})
}
