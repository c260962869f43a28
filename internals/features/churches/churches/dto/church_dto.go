package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecclesia_backend/internals/features/churches/churches/model"
	helper "ecclesia_backend/internals/helpers"
)

type ChurchSummary struct {
	ChurchID   uuid.UUID `json:"church_id"`
	ChurchName string    `json:"church_name"`
	ChurchSlug string    `json:"church_slug"`
}

type ChurchResponse struct {
	ChurchID              uuid.UUID       `json:"church_id"`
	ChurchName            string          `json:"church_name"`
	ChurchSlug            string          `json:"church_slug"`
	ChurchParentID        *uuid.UUID      `json:"church_parent_id,omitempty"`
	ChurchPlanID          *uuid.UUID      `json:"church_plan_id,omitempty"`
	ChurchStatus          string          `json:"church_status"`
	ChurchNextPaymentDate *time.Time      `json:"church_next_payment_date,omitempty"`
	ChurchEmail           *string         `json:"church_email,omitempty"`
	ChurchPhone           *string         `json:"church_phone,omitempty"`
	ChurchCity            *string         `json:"church_city,omitempty"`
	ChurchState           *string         `json:"church_state,omitempty"`
	ChurchLogoURL         *string         `json:"church_logo_url,omitempty"`
	ChurchCreatedAt       time.Time       `json:"church_created_at"`
	Parent                *ChurchSummary  `json:"parent,omitempty"`
	Children              []ChurchSummary `json:"children,omitempty"`
}

func FromModel(m model.ChurchModel) ChurchResponse {
	return ChurchResponse{
		ChurchID:              m.ChurchID,
		ChurchName:            m.ChurchName,
		ChurchSlug:            m.ChurchSlug,
		ChurchParentID:        m.ChurchParentID,
		ChurchPlanID:          m.ChurchPlanID,
		ChurchStatus:          m.ChurchStatus,
		ChurchNextPaymentDate: m.ChurchNextPaymentDate,
		ChurchEmail:           m.ChurchEmail,
		ChurchPhone:           m.ChurchPhone,
		ChurchCity:            m.ChurchCity,
		ChurchState:           m.ChurchState,
		ChurchLogoURL:         m.ChurchLogoURL,
		ChurchCreatedAt:       m.ChurchCreatedAt,
	}
}

func FromModels(rows []model.ChurchModel) []ChurchResponse {
	out := make([]ChurchResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

func Summary(m model.ChurchModel) ChurchSummary {
	return ChurchSummary{ChurchID: m.ChurchID, ChurchName: m.ChurchName, ChurchSlug: m.ChurchSlug}
}

/* =========================================================
   PATCH /api/a/church
   ========================================================= */

type UpdateChurchRequest struct {
	ChurchName  helper.PatchField[string] `json:"church_name"`
	ChurchSlug  helper.PatchField[string] `json:"church_slug"`
	ChurchEmail helper.PatchField[string] `json:"church_email"`
	ChurchPhone helper.PatchField[string] `json:"church_phone"`
	ChurchCity  helper.PatchField[string] `json:"church_city"`
	ChurchState helper.PatchField[string] `json:"church_state"`
}

// Apply returns the requested slug base (already slugified) when one was sent.
func (r UpdateChurchRequest) Apply(m *model.ChurchModel) (slugBase string) {
	if v, ok := r.ChurchName.Get(); ok && v != nil && strings.TrimSpace(*v) != "" {
		m.ChurchName = strings.TrimSpace(*v)
	}
	if v, ok := r.ChurchSlug.Get(); ok && v != nil {
		slugBase = helper.Slugify(*v, 120)
	}
	if v, ok := r.ChurchEmail.Get(); ok {
		if v != nil {
			v = helper.StrPtr(strings.ToLower(*v))
		}
		m.ChurchEmail = v
	}
	r.ChurchPhone.ApplyTo(&m.ChurchPhone)
	r.ChurchCity.ApplyTo(&m.ChurchCity)
	r.ChurchState.ApplyTo(&m.ChurchState)
	return slugBase
}

/* =========================================================
   PATCH /api/o/churches/:id/status
   ========================================================= */

type UpdateStatusRequest struct {
	Status          string     `json:"status" validate:"required,oneof=trial active overdue suspended canceled"`
	NextPaymentDate *time.Time `json:"next_payment_date"`
}
