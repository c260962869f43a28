package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecclesia_backend/internals/features/content/schools/model"
	helper "ecclesia_backend/internals/helpers"
)

type CreateSchoolRequest struct {
	Name              string  `json:"school_name" validate:"required,min=2,max=150"`
	Description       *string `json:"school_description"`
	ShareWithChildren bool    `json:"school_share_with_children"`
}

func (r CreateSchoolRequest) ToModel(churchID uuid.UUID) *model.SchoolModel {
	return &model.SchoolModel{
		SchoolChurchID:          churchID,
		SchoolName:              strings.TrimSpace(r.Name),
		SchoolDescription:       r.Description,
		SchoolShareWithChildren: r.ShareWithChildren,
	}
}

type UpdateSchoolRequest struct {
	Name              helper.PatchField[string] `json:"school_name"`
	Description       helper.PatchField[string] `json:"school_description"`
	ShareWithChildren helper.PatchField[bool]   `json:"school_share_with_children"`
}

func (r UpdateSchoolRequest) Apply(m *model.SchoolModel) {
	r.Name.ApplyRequired(&m.SchoolName)
	r.Description.ApplyTo(&m.SchoolDescription)
	r.ShareWithChildren.ApplyRequired(&m.SchoolShareWithChildren)
	m.SchoolName = strings.TrimSpace(m.SchoolName)
}

type EnrollRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
}

type EnrollmentResponse struct {
	EnrollmentID       uuid.UUID `json:"enrollment_id"`
	EnrollmentChurchID uuid.UUID `json:"enrollment_church_id"`
	MemberID           uuid.UUID `json:"member_id"`
	MemberName         string    `json:"member_name"`
	EnrolledAt         time.Time `json:"enrolled_at"`
}
