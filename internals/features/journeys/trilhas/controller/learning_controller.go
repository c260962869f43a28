package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecclesia_backend/internals/features/churches/sharing"
	"ecclesia_backend/internals/features/journeys/trilhas/dto"
	"ecclesia_backend/internals/features/journeys/trilhas/model"
	"ecclesia_backend/internals/features/journeys/trilhas/service"
	helper "ecclesia_backend/internals/helpers"
	helperAuth "ecclesia_backend/internals/helpers/auth"
)

type learner struct {
	UserID   uuid.UUID
	ChurchID uuid.UUID
}

// visiblePasso resolves the passo through its trilha and applies the sharing rule.
func (ctl *JourneyController) visiblePasso(c *fiber.Ctx) (*model.PassoModel, learner, error) {
	var who learner
	vis, err := sharing.FromCtx(c)
	if err != nil {
		return nil, who, err
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return nil, who, err
	}
	who = learner{UserID: userID, ChurchID: vis.ViewerID}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, who, err
	}
	var owner struct {
		TrilhaChurchID          uuid.UUID
		TrilhaShareWithChildren bool
	}
	res := ctl.DB.WithContext(c.UserContext()).
		Table("passos AS p").
		Select("t.trilha_church_id, t.trilha_share_with_children").
		Joins("JOIN etapas e ON e.etapa_id = p.passo_etapa_id").
		Joins("JOIN trilhas t ON t.trilha_id = e.etapa_trilha_id AND t.trilha_deleted_at IS NULL").
		Where("p.passo_id = ?", id).
		Scan(&owner)
	if res.Error != nil {
		return nil, who, res.Error
	}
	if res.RowsAffected == 0 || !sharing.CanView(vis, owner.TrilhaChurchID, owner.TrilhaShareWithChildren) {
		return nil, who, fiber.NewError(fiber.StatusNotFound, "Passo not found")
	}

	var p model.PassoModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("quiz_question_position ASC") }).
		First(&p, "passo_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, who, fiber.NewError(fiber.StatusNotFound, "Passo not found")
		}
		return nil, who, err
	}
	return &p, who, nil
}

func (ctl *JourneyController) markDone(tx *gorm.DB, p *model.PassoModel, who learner) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PassoProgressModel{
		PassoProgressChurchID: who.ChurchID,
		PassoProgressPassoID:  p.PassoID,
		PassoProgressUserID:   who.UserID,
	}).Error
}

// 🟢 POST /api/u/passos/:id/complete
func (ctl *JourneyController) Complete(c *fiber.Ctx) error {
	p, who, err := ctl.visiblePasso(c)
	if err != nil {
		return err
	}
	if len(p.Questions) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "This passo has a quiz; submit the quiz to complete it")
	}
	if err := ctl.markDone(ctl.DB.WithContext(c.UserContext()), p, who); err != nil {
		return err
	}
	return helper.JsonOK(c, "Passo completed", fiber.Map{"passo_id": p.PassoID, "completed": true})
}

// 🟢 POST /api/u/passos/:id/quiz
func (ctl *JourneyController) SubmitQuiz(c *fiber.Ctx) error {
	p, who, err := ctl.visiblePasso(c)
	if err != nil {
		return err
	}
	if len(p.Questions) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "This passo has no quiz")
	}
	var req dto.SubmitQuizRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	answers := req.AsMap()
	result := service.Grade(p.Questions, answers)

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.QuizAttemptModel{
			QuizAttemptChurchID: who.ChurchID,
			QuizAttemptPassoID:  p.PassoID,
			QuizAttemptUserID:   who.UserID,
			QuizAttemptScore:    result.Score,
			QuizAttemptPassed:   result.Passed,
			QuizAttemptAnswers:  service.AnswerList(p.Questions, answers),
		}).Error; err != nil {
			return err
		}
		if result.Passed {
			return ctl.markDone(tx, p, who)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Quiz graded", result)
}
