package dto

import (
	"strings"

	"github.com/google/uuid"

	"ecclesia_backend/internals/features/journeys/trilhas/model"
	helper "ecclesia_backend/internals/helpers"
)

/* ===== Trilha ===== */

type CreateTrilhaRequest struct {
	Title             string  `json:"trilha_title" validate:"required,min=3,max=200"`
	Description       *string `json:"trilha_description"`
	ShareWithChildren bool    `json:"trilha_share_with_children"`
}

type UpdateTrilhaRequest struct {
	Title             helper.PatchField[string] `json:"trilha_title"`
	Description       helper.PatchField[string] `json:"trilha_description"`
	ShareWithChildren helper.PatchField[bool]   `json:"trilha_share_with_children"`
}

func (r UpdateTrilhaRequest) Apply(m *model.TrilhaModel) {
	r.Title.ApplyRequired(&m.TrilhaTitle)
	r.Description.ApplyTo(&m.TrilhaDescription)
	r.ShareWithChildren.ApplyRequired(&m.TrilhaShareWithChildren)
	m.TrilhaTitle = strings.TrimSpace(m.TrilhaTitle)
}

/* ===== Etapa / Passo / Question ===== */

type CreateEtapaRequest struct {
	Title    string `json:"etapa_title" validate:"required,max=200"`
	Position *int   `json:"etapa_position" validate:"omitempty,min=0"`
}

type UpdateEtapaRequest struct {
	Title    helper.PatchField[string] `json:"etapa_title"`
	Position helper.PatchField[int]    `json:"etapa_position"`
}

type CreatePassoRequest struct {
	Title    string  `json:"passo_title" validate:"required,max=200"`
	Content  *string `json:"passo_content"`
	VideoURL *string `json:"passo_video_url" validate:"omitempty,url"`
	Position *int    `json:"passo_position" validate:"omitempty,min=0"`
}

type UpdatePassoRequest struct {
	Title    helper.PatchField[string] `json:"passo_title"`
	Content  helper.PatchField[string] `json:"passo_content"`
	VideoURL helper.PatchField[string] `json:"passo_video_url"`
	Position helper.PatchField[int]    `json:"passo_position"`
}

type CreateQuestionRequest struct {
	Prompt       string   `json:"quiz_question_prompt" validate:"required"`
	Options      []string `json:"quiz_question_options" validate:"required,min=2,max=8,dive,required"`
	CorrectIndex int      `json:"quiz_question_correct_index" validate:"min=0"`
	Position     *int     `json:"quiz_question_position" validate:"omitempty,min=0"`
}

type UpdateQuestionRequest struct {
	Prompt       helper.PatchField[string]   `json:"quiz_question_prompt"`
	Options      helper.PatchField[[]string] `json:"quiz_question_options"`
	CorrectIndex helper.PatchField[int]      `json:"quiz_question_correct_index"`
	Position     helper.PatchField[int]      `json:"quiz_question_position"`
}

/* ===== Learner ===== */

type QuizAnswer struct {
	QuestionID uuid.UUID `json:"quiz_question_id" validate:"required"`
	Option     int       `json:"option"`
}

type SubmitQuizRequest struct {
	Answers []QuizAnswer `json:"answers" validate:"required,min=1,dive"`
}

func (r SubmitQuizRequest) AsMap() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(r.Answers))
	for _, a := range r.Answers {
		out[a.QuestionID] = a.Option
	}
	return out
}

/* ===== Tree ===== */

type QuestionNode struct {
	QuestionID   uuid.UUID `json:"quiz_question_id"`
	Prompt       string    `json:"quiz_question_prompt"`
	Options      []string  `json:"quiz_question_options"`
	CorrectIndex *int      `json:"quiz_question_correct_index,omitempty"`
}

type PassoNode struct {
	PassoID   uuid.UUID      `json:"passo_id"`
	Title     string         `json:"passo_title"`
	Content   *string        `json:"passo_content,omitempty"`
	VideoURL  *string        `json:"passo_video_url,omitempty"`
	Position  int            `json:"passo_position"`
	Completed bool           `json:"completed"`
	Questions []QuestionNode `json:"questions"`
}

type EtapaNode struct {
	EtapaID  uuid.UUID   `json:"etapa_id"`
	Title    string      `json:"etapa_title"`
	Position int         `json:"etapa_position"`
	Passos   []PassoNode `json:"passos"`
}

type TreeResponse struct {
	Trilha model.TrilhaModel `json:"trilha"`
	Etapas []EtapaNode       `json:"etapas"`
}

// BuildTree renders the loaded trilha. withAnswers exposes correct_index.
func BuildTree(t model.TrilhaModel, done map[uuid.UUID]bool, withAnswers bool) TreeResponse {
	out := TreeResponse{Trilha: t, Etapas: make([]EtapaNode, 0, len(t.Etapas))}
	for _, e := range t.Etapas {
		en := EtapaNode{EtapaID: e.EtapaID, Title: e.EtapaTitle, Position: e.EtapaPosition, Passos: make([]PassoNode, 0, len(e.Passos))}
		for _, p := range e.Passos {
			pn := PassoNode{
				PassoID:   p.PassoID,
				Title:     p.PassoTitle,
				Content:   p.PassoContent,
				VideoURL:  p.PassoVideoURL,
				Position:  p.PassoPosition,
				Completed: done[p.PassoID],
				Questions: make([]QuestionNode, 0, len(p.Questions)),
			}
			for _, q := range p.Questions {
				qn := QuestionNode{QuestionID: q.QuizQuestionID, Prompt: q.QuizQuestionPrompt, Options: q.QuizQuestionOptions}
				if withAnswers {
					idx := q.QuizQuestionCorrectIndex
					qn.CorrectIndex = &idx
				}
				pn.Questions = append(pn.Questions, qn)
			}
			en.Passos = append(en.Passos, pn)
		}
		out.Etapas = append(out.Etapas, en)
	}
	return out
}
