package dto

import (
	"time"

	"github.com/google/uuid"

	helper "ecclesia_backend/internals/helpers"
)

type CreateDemandRequest struct {
	Title            string     `json:"title" validate:"required,min=2,max=200"`
	Description      *string    `json:"description"`
	MinistryID       *uuid.UUID `json:"ministry_id"`
	DueDate          *time.Time `json:"due_date"`
	AssigneeMemberID *uuid.UUID `json:"assignee_member_id"`
	Status           string     `json:"status" validate:"omitempty,oneof=todo doing done"`
}

type UpdateDemandRequest struct {
	Title            helper.PatchField[string]    `json:"title"`
	Description      helper.PatchField[string]    `json:"description"`
	MinistryID       helper.PatchField[uuid.UUID] `json:"ministry_id"`
	DueDate          helper.PatchField[time.Time] `json:"due_date"`
	AssigneeMemberID helper.PatchField[uuid.UUID] `json:"assignee_member_id"`
}

type MoveDemandRequest struct {
	Status   string `json:"status" validate:"required,oneof=todo doing done"`
	Position int    `json:"position" validate:"min=0"`
	// board filter the position was taken from
	MinistryID *uuid.UUID `json:"ministry_id"`
}
