package dto

import (
	"strings"

	"ecclesia_backend/internals/features/billing/plans/model"
	helper "ecclesia_backend/internals/helpers"
)

type CreatePlanRequest struct {
	PlanCode             string  `json:"plan_code" validate:"required,max=40"`
	PlanName             string  `json:"plan_name" validate:"required,max=100"`
	PlanDescription      *string `json:"plan_description"`
	PlanPriceCents       int64   `json:"plan_price_cents" validate:"min=0"`
	PlanMaxMembers       int     `json:"plan_max_members" validate:"min=0"`
	PlanMaxChildChurches int     `json:"plan_max_child_churches" validate:"min=0"`
	PlanIsActive         *bool   `json:"plan_is_active"`
}

func (r CreatePlanRequest) ToModel() *model.PlanModel {
	active := true
	if r.PlanIsActive != nil {
		active = *r.PlanIsActive
	}
	return &model.PlanModel{
		PlanCode:             strings.ToLower(strings.TrimSpace(r.PlanCode)),
		PlanName:             strings.TrimSpace(r.PlanName),
		PlanDescription:      r.PlanDescription,
		PlanPriceCents:       r.PlanPriceCents,
		PlanMaxMembers:       r.PlanMaxMembers,
		PlanMaxChildChurches: r.PlanMaxChildChurches,
		PlanIsActive:         active,
	}
}

// UpdatePlanRequest is a partial update; plan_code is immutable.
type UpdatePlanRequest struct {
	PlanName             helper.PatchField[string] `json:"plan_name"`
	PlanDescription      helper.PatchField[string] `json:"plan_description"`
	PlanPriceCents       helper.PatchField[int64]  `json:"plan_price_cents"`
	PlanMaxMembers       helper.PatchField[int]    `json:"plan_max_members"`
	PlanMaxChildChurches helper.PatchField[int]    `json:"plan_max_child_churches"`
	PlanIsActive         helper.PatchField[bool]   `json:"plan_is_active"`
}

func (r UpdatePlanRequest) Apply(m *model.PlanModel) bool {
	r.PlanName.ApplyRequired(&m.PlanName)
	r.PlanDescription.ApplyTo(&m.PlanDescription)
	r.PlanPriceCents.ApplyRequired(&m.PlanPriceCents)
	r.PlanMaxMembers.ApplyRequired(&m.PlanMaxMembers)
	r.PlanMaxChildChurches.ApplyRequired(&m.PlanMaxChildChurches)
	r.PlanIsActive.ApplyRequired(&m.PlanIsActive)
	return strings.TrimSpace(m.PlanName) != "" &&
		m.PlanPriceCents >= 0 && m.PlanMaxMembers >= 0 && m.PlanMaxChildChurches >= 0
}
