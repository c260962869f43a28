package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/constants"
	"ecclesia_backend/internals/features/members/members/model"
	helper "ecclesia_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, field+" must be YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

/* =========================================================
   CREATE
   ========================================================= */

type CreateMemberRequest struct {
	MemberName          string     `json:"member_name" validate:"required,min=2,max=150"`
	MemberEmail         *string    `json:"member_email" validate:"omitempty,email,max=255"`
	MemberPhone         *string    `json:"member_phone" validate:"omitempty,max=32"`
	MemberBirthDate     *string    `json:"member_birth_date"`
	MemberGender        *string    `json:"member_gender" validate:"omitempty,oneof=male female"`
	MemberMaritalStatus *string    `json:"member_marital_status" validate:"omitempty,max=32"`
	MemberAddress       *string    `json:"member_address"`
	MemberRole          string     `json:"member_role" validate:"omitempty,oneof=pastor admin leader treasurer teacher member"`
	MemberStatus        string     `json:"member_status" validate:"omitempty,oneof=visitor active inactive transferred"`
	MemberBaptized      bool       `json:"member_baptized"`
	MemberJoinedAt      *string    `json:"member_joined_at"`
	MemberUserID        *uuid.UUID `json:"member_user_id"`
	MemberNotes         *string    `json:"member_notes"`
}

func (r *CreateMemberRequest) Normalize() {
	r.MemberName = strings.TrimSpace(r.MemberName)
	if r.MemberEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*r.MemberEmail))
		r.MemberEmail = helper.StrPtr(e)
	}
	if r.MemberPhone != nil {
		r.MemberPhone = helper.StrPtr(*r.MemberPhone)
	}
	if r.MemberRole == "" {
		r.MemberRole = constants.ChurchRoleMember
	}
	if r.MemberStatus == "" {
		r.MemberStatus = model.MemberStatusVisitor
	}
}

func (r CreateMemberRequest) ToModel(churchID uuid.UUID) (*model.MemberModel, error) {
	birth, err := parseDate("member_birth_date", r.MemberBirthDate)
	if err != nil {
		return nil, err
	}
	joined, err := parseDate("member_joined_at", r.MemberJoinedAt)
	if err != nil {
		return nil, err
	}
	return &model.MemberModel{
		MemberChurchID:      churchID,
		MemberUserID:        r.MemberUserID,
		MemberName:          r.MemberName,
		MemberEmail:         r.MemberEmail,
		MemberPhone:         r.MemberPhone,
		MemberBirthDate:     birth,
		MemberGender:        r.MemberGender,
		MemberMaritalStatus: r.MemberMaritalStatus,
		MemberAddress:       r.MemberAddress,
		MemberRole:          r.MemberRole,
		MemberStatus:        r.MemberStatus,
		MemberBaptized:      r.MemberBaptized,
		MemberJoinedAt:      joined,
		MemberNotes:         r.MemberNotes,
	}, nil
}

/* =========================================================
   PATCH (tri-state)
   ========================================================= */

type UpdateMemberRequest struct {
	MemberName          helper.PatchField[string]    `json:"member_name"`
	MemberEmail         helper.PatchField[string]    `json:"member_email"`
	MemberPhone         helper.PatchField[string]    `json:"member_phone"`
	MemberBirthDate     helper.PatchField[string]    `json:"member_birth_date"`
	MemberGender        helper.PatchField[string]    `json:"member_gender"`
	MemberMaritalStatus helper.PatchField[string]    `json:"member_marital_status"`
	MemberAddress       helper.PatchField[string]    `json:"member_address"`
	MemberRole          helper.PatchField[string]    `json:"member_role"`
	MemberStatus        helper.PatchField[string]    `json:"member_status"`
	MemberBaptized      helper.PatchField[bool]      `json:"member_baptized"`
	MemberJoinedAt      helper.PatchField[string]    `json:"member_joined_at"`
	MemberUserID        helper.PatchField[uuid.UUID] `json:"member_user_id"`
	MemberNotes         helper.PatchField[string]    `json:"member_notes"`
}

// Apply mutates m; it validates enum fields since the validator cannot see inside PatchField.
func (r UpdateMemberRequest) Apply(m *model.MemberModel) error {
	if v, ok := r.MemberName.Get(); ok {
		if v == nil || len(strings.TrimSpace(*v)) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "member_name is required")
		}
		m.MemberName = strings.TrimSpace(*v)
	}
	if v, ok := r.MemberRole.Get(); ok {
		if v == nil || !constants.IsValidChurchRole(*v) {
			return fiber.NewError(fiber.StatusBadRequest, "member_role is invalid")
		}
		m.MemberRole = *v
	}
	if v, ok := r.MemberStatus.Get(); ok {
		if v == nil || !validStatus(*v) {
			return fiber.NewError(fiber.StatusBadRequest, "member_status is invalid")
		}
		m.MemberStatus = *v
	}
	if v, ok := r.MemberEmail.Get(); ok {
		if v != nil {
			e := strings.ToLower(strings.TrimSpace(*v))
			v = helper.StrPtr(e)
		}
		m.MemberEmail = v
	}
	if v, ok := r.MemberBirthDate.Get(); ok {
		t, err := parseDate("member_birth_date", v)
		if err != nil {
			return err
		}
		m.MemberBirthDate = t
	}
	if v, ok := r.MemberJoinedAt.Get(); ok {
		t, err := parseDate("member_joined_at", v)
		if err != nil {
			return err
		}
		m.MemberJoinedAt = t
	}
	r.MemberPhone.ApplyTo(&m.MemberPhone)
	r.MemberGender.ApplyTo(&m.MemberGender)
	r.MemberMaritalStatus.ApplyTo(&m.MemberMaritalStatus)
	r.MemberAddress.ApplyTo(&m.MemberAddress)
	r.MemberNotes.ApplyTo(&m.MemberNotes)
	r.MemberUserID.ApplyTo(&m.MemberUserID)
	r.MemberBaptized.ApplyRequired(&m.MemberBaptized)
	return nil
}

func validStatus(s string) bool {
	for _, st := range model.MemberStatuses {
		if st == s {
			return true
		}
	}
	return false
}

/* =========================================================
   RESPONSE
   ========================================================= */

type MemberResponse struct {
	MemberID            uuid.UUID  `json:"member_id"`
	MemberChurchID      uuid.UUID  `json:"member_church_id"`
	MemberUserID        *uuid.UUID `json:"member_user_id,omitempty"`
	MemberName          string     `json:"member_name"`
	MemberEmail         *string    `json:"member_email,omitempty"`
	MemberPhone         *string    `json:"member_phone,omitempty"`
	MemberBirthDate     *string    `json:"member_birth_date,omitempty"`
	MemberGender        *string    `json:"member_gender,omitempty"`
	MemberMaritalStatus *string    `json:"member_marital_status,omitempty"`
	MemberAddress       *string    `json:"member_address,omitempty"`
	MemberRole          string     `json:"member_role"`
	MemberStatus        string     `json:"member_status"`
	MemberBaptized      bool       `json:"member_baptized"`
	MemberJoinedAt      *string    `json:"member_joined_at,omitempty"`
	MemberPhotoURL      *string    `json:"member_photo_url,omitempty"`
	MemberNotes         *string    `json:"member_notes,omitempty"`
	MemberCreatedAt     time.Time  `json:"member_created_at"`
	MemberUpdatedAt     time.Time  `json:"member_updated_at"`
}

func FromModel(m model.MemberModel) MemberResponse {
	return MemberResponse{
		MemberID:            m.MemberID,
		MemberChurchID:      m.MemberChurchID,
		MemberUserID:        m.MemberUserID,
		MemberName:          m.MemberName,
		MemberEmail:         m.MemberEmail,
		MemberPhone:         m.MemberPhone,
		MemberBirthDate:     formatDate(m.MemberBirthDate),
		MemberGender:        m.MemberGender,
		MemberMaritalStatus: m.MemberMaritalStatus,
		MemberAddress:       m.MemberAddress,
		MemberRole:          m.MemberRole,
		MemberStatus:        m.MemberStatus,
		MemberBaptized:      m.MemberBaptized,
		MemberJoinedAt:      formatDate(m.MemberJoinedAt),
		MemberPhotoURL:      m.MemberPhotoURL,
		MemberNotes:         m.MemberNotes,
		MemberCreatedAt:     m.MemberCreatedAt,
		MemberUpdatedAt:     m.MemberUpdatedAt,
	}
}

func FromModels(rows []model.MemberModel) []MemberResponse {
	out := make([]MemberResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
