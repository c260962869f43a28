package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ecclesia_backend/internals/features/journeys/trilhas/model"
)

func question(correct int) model.QuizQuestionModel {
	return model.QuizQuestionModel{
		QuizQuestionID:           uuid.New(),
		QuizQuestionOptions:      []string{"a", "b", "c"},
		QuizQuestionCorrectIndex: correct,
	}
}

func TestGrade(t *testing.T) {
	qs := []model.QuizQuestionModel{question(0), question(1), question(2), question(0)}

	all := map[uuid.UUID]int{}
	for _, q := range qs {
		all[q.QuizQuestionID] = q.QuizQuestionCorrectIndex
	}
	res := Grade(qs, all)
	assert.Equal(t, GradeResult{Correct: 4, Total: 4, Score: 100, Passed: true}, res)

	// 3 of 4 = 75%
	delete(all, qs[3].QuizQuestionID)
	res = Grade(qs, all)
	assert.Equal(t, 75, res.Score)
	assert.True(t, res.Passed)

	// 2 of 4 = 50%, out of range answer counts as wrong
	all[qs[2].QuizQuestionID] = 9
	res = Grade(qs, all)
	assert.Equal(t, 2, res.Correct)
	assert.False(t, res.Passed)
}

func TestGradeThresholdBoundary(t *testing.T) {
	qs := make([]model.QuizQuestionModel, 10)
	answers := map[uuid.UUID]int{}
	for i := range qs {
		qs[i] = question(1)
		if i < 7 {
			answers[qs[i].QuizQuestionID] = 1
		}
	}
	res := Grade(qs, answers)
	assert.Equal(t, 70, res.Score)
	assert.True(t, res.Passed)
}

func TestGradeEmpty(t *testing.T) {
	res := Grade(nil, nil)
	assert.Equal(t, 0, res.Total)
	assert.False(t, res.Passed)
}

func TestAnswerList(t *testing.T) {
	qs := []model.QuizQuestionModel{question(0), question(1)}
	got := AnswerList(qs, map[uuid.UUID]int{qs[1].QuizQuestionID: 2})
	assert.Equal(t, []int64{-1, 2}, got)
}

func TestProgress(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	etapas := []model.EtapaModel{
		{EtapaID: uuid.New(), EtapaTitle: "One", Passos: []model.PassoModel{{PassoID: p1}, {PassoID: p2}}},
		{EtapaID: uuid.New(), EtapaTitle: "Two", Passos: []model.PassoModel{{PassoID: p3}}},
		{EtapaID: uuid.New(), EtapaTitle: "Empty"},
	}
	got := Progress(uuid.New(), etapas, map[uuid.UUID]bool{p1: true, p3: true})

	assert.Equal(t, 2, got.Completed)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 66, got.Percent)
	assert.Len(t, got.Etapas, 3)
	assert.Equal(t, 1, got.Etapas[0].Completed)
	assert.Equal(t, 0, got.Etapas[2].Total)
}
