package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecclesia_backend/internals/features/ministries/schedules/dto"
)

// ValidateAssignments rejects duplicate members and members outside the ministry roster.
func ValidateAssignments(in []dto.AssignmentInput, volunteers map[uuid.UUID]bool) error {
	seen := make(map[uuid.UUID]bool, len(in))
	for _, a := range in {
		if seen[a.MemberID] {
			return fiber.NewError(fiber.StatusConflict, "A member can only be assigned once per schedule")
		}
		seen[a.MemberID] = true
		if !volunteers[a.MemberID] {
			return fiber.NewError(fiber.StatusBadRequest, "Assigned member is not a volunteer of this ministry")
		}
	}
	return nil
}

func VolunteerSet(ctx context.Context, db *gorm.DB, ministryID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := db.WithContext(ctx).Table("ministry_volunteers").
		Where("volunteer_ministry_id = ?", ministryID).
		Pluck("volunteer_member_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// CanRespond: the answer must be confirmed or declined and differ from the current one.
func CanRespond(current, next string) bool {
	if next != "confirmed" && next != "declined" {
		return false
	}
	return current != next
}
