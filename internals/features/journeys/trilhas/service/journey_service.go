package service

import (
	"github.com/google/uuid"

	"ecclesia_backend/internals/features/journeys/trilhas/model"
)

// PassThreshold is the minimum quiz score (percent) that completes a passo.
const PassThreshold = 70

type GradeResult struct {
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Score   int  `json:"score"`
	Passed  bool `json:"passed"`
}

// Grade scores answers (question id -> chosen option). Unanswered or out of
// range answers count as wrong. Score is rounded down.
func Grade(questions []model.QuizQuestionModel, answers map[uuid.UUID]int) GradeResult {
	res := GradeResult{Total: len(questions)}
	if res.Total == 0 {
		return res
	}
	for _, q := range questions {
		got, ok := answers[q.QuizQuestionID]
		if !ok || got < 0 || got >= len(q.QuizQuestionOptions) {
			continue
		}
		if got == q.QuizQuestionCorrectIndex {
			res.Correct++
		}
	}
	res.Score = res.Correct * 100 / res.Total
	res.Passed = res.Score >= PassThreshold
	return res
}

// AnswerList keeps the submitted options in question order for storage; -1 marks a blank.
func AnswerList(questions []model.QuizQuestionModel, answers map[uuid.UUID]int) []int64 {
	out := make([]int64, len(questions))
	for i, q := range questions {
		if v, ok := answers[q.QuizQuestionID]; ok {
			out[i] = int64(v)
		} else {
			out[i] = -1
		}
	}
	return out
}

type EtapaProgress struct {
	EtapaID   uuid.UUID `json:"etapa_id"`
	Title     string    `json:"etapa_title"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

type TrilhaProgress struct {
	TrilhaID  uuid.UUID       `json:"trilha_id"`
	Etapas    []EtapaProgress `json:"etapas"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Percent   int             `json:"percent"`
}

func Progress(trilhaID uuid.UUID, etapas []model.EtapaModel, done map[uuid.UUID]bool) TrilhaProgress {
	out := TrilhaProgress{TrilhaID: trilhaID, Etapas: make([]EtapaProgress, 0, len(etapas))}
	for _, e := range etapas {
		ep := EtapaProgress{EtapaID: e.EtapaID, Title: e.EtapaTitle, Total: len(e.Passos)}
		for _, p := range e.Passos {
			if done[p.PassoID] {
				ep.Completed++
			}
		}
		out.Completed += ep.Completed
		out.Total += ep.Total
		out.Etapas = append(out.Etapas, ep)
	}
	if out.Total > 0 {
		out.Percent = out.Completed * 100 / out.Total
	}
	return out
}
