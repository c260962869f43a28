package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecclesia_backend/internals/features/journeys/trilhas/model"
)

func sampleTrilha() model.TrilhaModel {
	passoID := uuid.New()
	return model.TrilhaModel{
		TrilhaID:    uuid.New(),
		TrilhaTitle: "Foundations",
		Etapas: []model.EtapaModel{{
			EtapaID:    uuid.New(),
			EtapaTitle: "Start",
			Passos: []model.PassoModel{{
				PassoID:    passoID,
				PassoTitle: "Prayer",
				Questions: []model.QuizQuestionModel{{
					QuizQuestionID:           uuid.New(),
					QuizQuestionPrompt:       "?",
					QuizQuestionOptions:      []string{"a", "b"},
					QuizQuestionCorrectIndex: 1,
				}},
			}},
		}},
	}
}

func TestBuildTreeHidesAnswers(t *testing.T) {
	tr := sampleTrilha()
	tree := BuildTree(tr, nil, false)
	require.Len(t, tree.Etapas, 1)
	require.Len(t, tree.Etapas[0].Passos, 1)
	q := tree.Etapas[0].Passos[0].Questions[0]
	assert.Nil(t, q.CorrectIndex)
	assert.False(t, tree.Etapas[0].Passos[0].Completed)
}

func TestBuildTreeWithAnswersAndProgress(t *testing.T) {
	tr := sampleTrilha()
	pid := tr.Etapas[0].Passos[0].PassoID
	tree := BuildTree(tr, map[uuid.UUID]bool{pid: true}, true)
	p := tree.Etapas[0].Passos[0]
	require.NotNil(t, p.Questions[0].CorrectIndex)
	assert.Equal(t, 1, *p.Questions[0].CorrectIndex)
	assert.True(t, p.Completed)
}

func TestSubmitQuizAsMap(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	req := SubmitQuizRequest{Answers: []QuizAnswer{{QuestionID: a, Option: 1}, {QuestionID: b, Option: 0}, {QuestionID: a, Option: 2}}}
	m := req.AsMap()
	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[a])
}
