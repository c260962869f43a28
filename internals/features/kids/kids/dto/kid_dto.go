package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ecclesia_backend/internals/features/kids/kids/model"
	helper "ecclesia_backend/internals/helpers"
)

type CreateKidRequest struct {
	Name              string      `json:"kid_name" validate:"required,max=150"`
	BirthDate         string      `json:"kid_birth_date"`
	GuardianMemberIDs []uuid.UUID `json:"kid_guardian_member_ids" validate:"required,min=1"`
	Allergies         []string    `json:"kid_allergies" validate:"omitempty,dive,max=80"`
	Notes             *string     `json:"kid_notes"`
}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "kid_birth_date must be YYYY-MM-DD")
	}
	return &d, nil
}

func UUIDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id.String())
		}
	}
	return out
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r CreateKidRequest) ToModel(churchID uuid.UUID) (*model.KidModel, error) {
	bd, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return nil, err
	}
	return &model.KidModel{
		KidChurchID:          churchID,
		KidName:              strings.TrimSpace(r.Name),
		KidBirthDate:         bd,
		KidGuardianMemberIDs: UUIDStrings(r.GuardianMemberIDs),
		KidAllergies:         cleanList(r.Allergies),
		KidNotes:             r.Notes,
	}, nil
}

type UpdateKidRequest struct {
	Name              helper.PatchField[string]      `json:"kid_name"`
	BirthDate         helper.PatchField[string]      `json:"kid_birth_date"`
	GuardianMemberIDs helper.PatchField[[]uuid.UUID] `json:"kid_guardian_member_ids"`
	Allergies         helper.PatchField[[]string]    `json:"kid_allergies"`
	Notes             helper.PatchField[string]      `json:"kid_notes"`
}

// Apply returns the guardian ids to verify when they changed.
func (r UpdateKidRequest) Apply(m *model.KidModel) ([]uuid.UUID, error) {
	r.Name.ApplyRequired(&m.KidName)
	r.Notes.ApplyTo(&m.KidNotes)
	if v, ok := r.BirthDate.Get(); ok {
		if v == nil {
			m.KidBirthDate = nil
		} else {
			bd, err := parseBirthDate(*v)
			if err != nil {
				return nil, err
			}
			m.KidBirthDate = bd
		}
	}
	if v, ok := r.Allergies.Get(); ok {
		if v == nil {
			m.KidAllergies = []string{}
		} else {
			m.KidAllergies = cleanList(*v)
		}
	}
	var guardians []uuid.UUID
	if v, ok := r.GuardianMemberIDs.Get(); ok && v != nil {
		if len(*v) == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "A kid needs at least one guardian")
		}
		guardians = *v
		m.KidGuardianMemberIDs = UUIDStrings(guardians)
	}
	if strings.TrimSpace(m.KidName) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "kid_name cannot be empty")
	}
	return guardians, nil
}

type CheckInRequest struct {
	Room *string `json:"room" validate:"omitempty,max=80"`
}

type CheckOutRequest struct {
	Code           string     `json:"code" validate:"required"`
	PickupMemberID *uuid.UUID `json:"pickup_member_id"`
}

// MyKid is what a guardian sees, including the code of an open check-in.
type MyKid struct {
	model.KidModel
	OpenCheckin *model.KidCheckinModel `json:"open_checkin,omitempty"`
}
