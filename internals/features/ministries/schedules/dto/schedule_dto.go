package dto

import (
	"time"

	"github.com/google/uuid"

	helper "ecclesia_backend/internals/helpers"
)

type AssignmentInput struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Function *string   `json:"function" validate:"omitempty,max=80"`
}

type CreateScheduleRequest struct {
	MinistryID  uuid.UUID         `json:"ministry_id" validate:"required"`
	Title       string            `json:"title" validate:"required,min=2,max=150"`
	ServiceDate time.Time         `json:"service_date" validate:"required"`
	Notes       *string           `json:"notes"`
	Assignments []AssignmentInput `json:"assignments" validate:"omitempty,dive"`
}

type UpdateScheduleRequest struct {
	Title       helper.PatchField[string]    `json:"title"`
	ServiceDate helper.PatchField[time.Time] `json:"service_date"`
	Notes       helper.PatchField[string]    `json:"notes"`
}

type RespondRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed declined"`
}

type MyAssignment struct {
	AssignmentID        uuid.UUID `json:"assignment_id"`
	ScheduleID          uuid.UUID `json:"schedule_id"`
	ScheduleTitle       string    `json:"schedule_title"`
	ScheduleServiceDate time.Time `json:"schedule_service_date"`
	MinistryID          uuid.UUID `json:"ministry_id"`
	MinistryName        string    `json:"ministry_name"`
	Function            *string   `json:"function,omitempty"`
	Status              string    `json:"status"`
}
