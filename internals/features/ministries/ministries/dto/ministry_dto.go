package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/features/ministries/ministries/model"
	helper "ecclesia_backend/internals/helpers"
)

type CreateMinistryRequest struct {
	MinistryName           string     `json:"ministry_name" validate:"required,min=2,max=120"`
	MinistryDescription    *string    `json:"ministry_description"`
	MinistryLeaderMemberID *uuid.UUID `json:"ministry_leader_member_id"`
	MinistryColor          *string    `json:"ministry_color" validate:"omitempty,hexcolor"`
}

func (r CreateMinistryRequest) ToModel(churchID uuid.UUID) *model.MinistryModel {
	return &model.MinistryModel{
		MinistryChurchID:       churchID,
		MinistryName:           strings.TrimSpace(r.MinistryName),
		MinistryDescription:    r.MinistryDescription,
		MinistryLeaderMemberID: r.MinistryLeaderMemberID,
		MinistryColor:          r.MinistryColor,
	}
}

type UpdateMinistryRequest struct {
	MinistryName           helper.PatchField[string]    `json:"ministry_name"`
	MinistryDescription    helper.PatchField[string]    `json:"ministry_description"`
	MinistryLeaderMemberID helper.PatchField[uuid.UUID] `json:"ministry_leader_member_id"`
	MinistryColor          helper.PatchField[string]    `json:"ministry_color"`
}

func (r UpdateMinistryRequest) Apply(m *model.MinistryModel) error {
	if v, ok := r.MinistryName.Get(); ok {
		if v == nil || len(strings.TrimSpace(*v)) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "ministry_name is required")
		}
		m.MinistryName = strings.TrimSpace(*v)
	}
	r.MinistryDescription.ApplyTo(&m.MinistryDescription)
	r.MinistryLeaderMemberID.ApplyTo(&m.MinistryLeaderMemberID)
	r.MinistryColor.ApplyTo(&m.MinistryColor)
	return nil
}

type AddVolunteerRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Function *string   `json:"function" validate:"omitempty,max=80"`
}

type VolunteerResponse struct {
	VolunteerID       uuid.UUID `json:"volunteer_id"`
	VolunteerMemberID uuid.UUID `json:"volunteer_member_id"`
	MemberName        string    `json:"member_name"`
	MemberPhone       *string   `json:"member_phone,omitempty"`
	VolunteerFunction *string   `json:"volunteer_function,omitempty"`
}
